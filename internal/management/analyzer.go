package management

import (
	"gonum.org/v1/gonum/floats"

	"management-quality/internal/interfaces"
	"management-quality/internal/types"
)

// WindowYears is the number of annual periods every metric is scored over
const WindowYears = 10

// MetricDefinition describes how one metric is presented and flagged
type MetricDefinition struct {
	Metric types.Metric
	What   string
	Goals  string
	Rules  RuleSet

	// RedFlag renders the warning for n bad periods
	RedFlag func(n int) string
	// GreenFlag inspects the per-period sum, before the average's score is added
	GreenFlag func(periodTotal int) (string, bool)
}

// SeriesAnalyzer applies a metric definition to a yearly series
type SeriesAnalyzer struct {
	def MetricDefinition
}

var _ interfaces.SeriesAnalyzer = (*SeriesAnalyzer)(nil)

// NewSeriesAnalyzer creates an analyzer for the given metric definition
func NewSeriesAnalyzer(def MetricDefinition) *SeriesAnalyzer {
	return &SeriesAnalyzer{def: def}
}

// Metric returns the metric this analyzer scores
func (a *SeriesAnalyzer) Metric() types.Metric {
	return a.def.Metric
}

// Analyze scores each period, the window average and derives flags.
// The average always divides by WindowYears, whatever the series length.
func (a *SeriesAnalyzer) Analyze(periods []string, values []float64) types.SeriesAnalysisResult {
	result := types.SeriesAnalysisResult{
		Metric:     a.def.Metric,
		What:       a.def.What,
		Goals:      a.def.Goals,
		Periods:    append([]string{}, periods...),
		Values:     append([]float64{}, values...),
		Scores:     make([]int, len(values)),
		RedFlags:   []string{},
		GreenFlags: []string{},
	}

	for i, v := range values {
		out := a.def.Rules.Score(v)
		result.Scores[i] = out.Score
		result.PeriodTotal += out.Score
		if out.Bad {
			result.BadPeriods++
		}
	}

	result.Average = floats.Sum(values) / WindowYears
	result.AverageScore = a.def.Rules.Score(result.Average).Score
	result.Total = result.PeriodTotal + result.AverageScore

	if result.BadPeriods > 0 && a.def.RedFlag != nil {
		result.RedFlags = append(result.RedFlags, a.def.RedFlag(result.BadPeriods))
	}
	if a.def.GreenFlag != nil {
		if msg, ok := a.def.GreenFlag(result.PeriodTotal); ok {
			result.GreenFlags = append(result.GreenFlags, msg)
		}
	}

	return result
}
