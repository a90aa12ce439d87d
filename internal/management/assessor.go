package management

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"management-quality/internal/interfaces"
	"management-quality/internal/logger"
	"management-quality/internal/types"
)

// ErrInsufficientHistory is returned when fewer than WindowYears of results are reported
var ErrInsufficientHistory = errors.New("company has not been reporting results for 10 years")

// ErrMissingField is returned when a required annual series is absent from the dataset
var ErrMissingField = errors.New("missing annual field")

const (
	reportType = "management"
	question1  = "Does the CEO have high levels of stock ownership"
)

// Assessor implements the ManagementAssessor interface
type Assessor struct {
	cfg       *types.ManagementConfig
	rules     RuleBook
	roic      interfaces.SeriesAnalyzer
	liquidity interfaces.SeriesAnalyzer
	leverage  interfaces.SeriesAnalyzer
}

var _ interfaces.ManagementAssessor = (*Assessor)(nil)

// NewAssessor creates an assessor for the configured rule policy
func NewAssessor(cfg *types.ManagementConfig) (*Assessor, error) {
	if cfg == nil {
		cfg = &types.ManagementConfig{Policy: types.PolicyCanonical, WindowYears: WindowYears}
	}
	if cfg.WindowYears != 0 && cfg.WindowYears != WindowYears {
		return nil, fmt.Errorf("window_years must be %d, got %d", WindowYears, cfg.WindowYears)
	}
	rules, err := RulesFor(cfg.Policy)
	if err != nil {
		return nil, err
	}

	return &Assessor{
		cfg:       cfg,
		rules:     rules,
		roic:      NewSeriesAnalyzer(ROICDefinition(rules.ROIC)),
		liquidity: NewSeriesAnalyzer(CurrentRatioDefinition(rules.CurrentRatio)),
		leverage:  NewSeriesAnalyzer(DebtToEquityDefinition(rules.DebtToEquity)),
	}, nil
}

// Rules returns the rule book in use
func (a *Assessor) Rules() RuleBook {
	return a.rules
}

// Assess checks the reporting history and scores the most recent window
func (a *Assessor) Assess(ctx context.Context, symbol string, dataset *types.FinancialDataset, reportDate time.Time) (*types.ManagementReport, error) {
	if dataset == nil {
		return nil, fmt.Errorf("no dataset for %s", symbol)
	}

	op := logger.StartOperation(ctx, "management.assess", "symbol", symbol, "policy", string(a.rules.Policy))
	ctx = op.GetContext()

	annual := dataset.Annual()
	if len(annual.Revenue) < WindowYears {
		err := fmt.Errorf("%s: %w (found %d)", symbol, ErrInsufficientHistory, len(annual.Revenue))
		op.EndWithError(err)
		return nil, err
	}
	if err := requireFields(annual); err != nil {
		err = fmt.Errorf("%s: %w", symbol, err)
		op.EndWithError(err)
		return nil, err
	}

	report := a.Build(
		symbol,
		PeriodLabels(LastN(WindowYears, annual.PeriodEndDate)),
		LastN(WindowYears, annual.ROIC),
		LastN(WindowYears, annual.CurrentRatio),
		LastN(WindowYears, annual.DebtToEquity),
		reportDate,
	)

	for _, res := range report.Results() {
		logger.Score(ctx, symbol, string(res.Metric), res.Total, res.BadPeriods,
			"red_flags", len(res.RedFlags),
			"green_flags", len(res.GreenFlags))
	}

	logger.Info(ctx, "Management assessment complete",
		"symbol", symbol,
		"score", report.Score,
		"source", dataset.Source)
	op.End("score", report.Score)

	return report, nil
}

// Build runs the three metric analyzers and sums their totals
func (a *Assessor) Build(symbol string, periods []string, roic, currentRatio, debtToEquity []float64, reportDate time.Time) *types.ManagementReport {
	report := &types.ManagementReport{
		Type:              reportType,
		Symbol:            symbol,
		ReportDate:        reportDate,
		Policy:            a.rules.Policy,
		Question1:         question1,
		ROICScore:         a.roic.Analyze(periods, roic),
		CurrentRatioScore: a.liquidity.Analyze(periods, currentRatio),
		DebtToEquityScore: a.leverage.Analyze(periods, debtToEquity),
	}
	report.Score = report.ROICScore.Total + report.CurrentRatioScore.Total + report.DebtToEquityScore.Total
	return report
}

// requireFields rejects datasets where a scored series or the period dates are absent.
// Present but short series are scored as given.
func requireFields(annual *types.AnnualFinancials) error {
	fields := []struct {
		name    string
		missing bool
	}{
		{"roic", annual.ROIC == nil},
		{"current_ratio", annual.CurrentRatio == nil},
		{"debt_to_equity", annual.DebtToEquity == nil},
		{"period_end_date", annual.PeriodEndDate == nil},
	}
	for _, f := range fields {
		if f.missing {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return nil
}

// LastN returns the trailing n entries of values, or all of them when shorter
func LastN[T any](n int, values []T) []T {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

// PeriodLabels reduces YYYY-MM-DD period end dates to their leading year
func PeriodLabels(dates []string) []string {
	labels := make([]string, len(dates))
	for i, d := range dates {
		year, _, _ := strings.Cut(d, "-")
		labels[i] = year
	}
	return labels
}
