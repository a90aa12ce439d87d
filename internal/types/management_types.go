package types

import "time"

// Metric identifies one of the scored financial ratios
type Metric string

const (
	MetricROIC         Metric = "ROIC"
	MetricCurrentRatio Metric = "CURRENT_RATIO"
	MetricDebtToEquity Metric = "DEBT_TO_EQUITY"
)

// RulePolicy selects which rule table family is applied
type RulePolicy string

const (
	PolicyCanonical RulePolicy = "CANONICAL"
	PolicyLegacy    RulePolicy = "LEGACY"
)

// SeriesAnalysisResult is the scored outcome of one metric over the window
type SeriesAnalysisResult struct {
	Metric       Metric    `json:"metric"`
	What         string    `json:"what"`
	Goals        string    `json:"goals"`
	Periods      []string  `json:"periods"`
	Values       []float64 `json:"values"`
	Scores       []int     `json:"scores"`
	PeriodTotal  int       `json:"period_total"` // sum of per-period scores
	Average      float64   `json:"average"`
	AverageScore int       `json:"average_score"`
	Total        int       `json:"total"` // PeriodTotal + AverageScore
	BadPeriods   int       `json:"bad_periods"`
	RedFlags     []string  `json:"red_flags"`
	GreenFlags   []string  `json:"green_flags"`
}

// ManagementReport is the complete management quality assessment for a symbol
type ManagementReport struct {
	Type              string               `json:"type"`
	Symbol            string               `json:"symbol"`
	ReportDate        time.Time            `json:"report_date"`
	Policy            RulePolicy           `json:"policy"`
	Question1         string               `json:"question1"`
	ROICScore         SeriesAnalysisResult `json:"roicScore"`
	CurrentRatioScore SeriesAnalysisResult `json:"current_ratioScore"`
	DebtToEquityScore SeriesAnalysisResult `json:"debt_to_equityScore"`
	Score             int                  `json:"score"`
}

// Results returns the metric sections in report order
func (r *ManagementReport) Results() []SeriesAnalysisResult {
	return []SeriesAnalysisResult{r.ROICScore, r.CurrentRatioScore, r.DebtToEquityScore}
}

// FinancialDataset mirrors the fundamentals document stored per symbol
type FinancialDataset struct {
	Data struct {
		Data struct {
			Financials struct {
				Annual AnnualFinancials `json:"annual"`
			} `json:"financials"`
		} `json:"data"`
	} `json:"data"`

	// Source is the file the dataset was read from; not part of the document
	Source string `json:"-"`
}

// AnnualFinancials holds yearly series in ascending fiscal-year order
type AnnualFinancials struct {
	Revenue       []float64 `json:"revenue"`
	ROIC          []float64 `json:"roic"`
	CurrentRatio  []float64 `json:"current_ratio"`
	DebtToEquity  []float64 `json:"debt_to_equity"`
	PeriodEndDate []string  `json:"period_end_date"`
}

// Annual is shorthand for the nested annual block
func (d *FinancialDataset) Annual() *AnnualFinancials {
	return &d.Data.Data.Financials.Annual
}

// ManagementConfig holds the settings used by one scoring run
type ManagementConfig struct {
	Policy      RulePolicy `yaml:"rule_policy"`
	WindowYears int        `yaml:"window_years"`
}
