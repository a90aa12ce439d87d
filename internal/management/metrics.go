package management

import (
	"fmt"

	"management-quality/internal/types"
)

// roicGreenThreshold is the per-period sum ROIC must exceed for a green flag
const roicGreenThreshold = 18

// ROICDefinition scores how well management reinvests surplus cash
func ROICDefinition(rules RuleSet) MetricDefinition {
	return MetricDefinition{
		Metric: types.MetricROIC,
		What:   "How well the management invests the surplus cash.",
		Goals:  "roic 10% minimum, roic 15% Ideal, roic 20% Amazing",
		Rules:  rules,
		RedFlag: func(n int) string {
			return fmt.Sprintf("ROIC was below target on %d occasions over the last %d years", n, WindowYears)
		},
		GreenFlag: func(periodTotal int) (string, bool) {
			if periodTotal > roicGreenThreshold {
				return "Management has consistently earned an outstanding return on invested capital", true
			}
			return "", false
		},
	}
}

// CurrentRatioDefinition scores short-term liquidity
func CurrentRatioDefinition(rules RuleSet) MetricDefinition {
	ceiling := rules.MaxScore() * WindowYears
	return MetricDefinition{
		Metric: types.MetricCurrentRatio,
		What:   "How is the debt in the companies handled. Current Ratio is the current assets with its total liabilities.",
		Goals:  "> 1 is a must, > 2 is ideal",
		Rules:  rules,
		RedFlag: func(n int) string {
			return fmt.Sprintf("Current ratio was below 1 on %d occasions over the last %d years", n, WindowYears)
		},
		GreenFlag: func(periodTotal int) (string, bool) {
			if periodTotal == ceiling {
				return fmt.Sprintf("Current ratio has been 2 or above in each of the last %d years", WindowYears), true
			}
			return "", false
		},
	}
}

// DebtToEquityDefinition scores leverage
func DebtToEquityDefinition(rules RuleSet) MetricDefinition {
	ceiling := rules.MaxScore() * WindowYears
	return MetricDefinition{
		Metric: types.MetricDebtToEquity,
		What:   "How leveraged the company is (e.g. Risk)",
		Goals:  ".5 or less is ideal",
		Rules:  rules,
		RedFlag: func(n int) string {
			return fmt.Sprintf("Debt to equity was 0.5 or above on %d occasions over the last %d years", n, WindowYears)
		},
		GreenFlag: func(periodTotal int) (string, bool) {
			if periodTotal == ceiling {
				return fmt.Sprintf("Debt to equity has stayed below 0.5 in each of the last %d years", WindowYears), true
			}
			return "", false
		},
	}
}
