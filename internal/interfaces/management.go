package interfaces

import (
	"context"
	"time"

	"management-quality/internal/types"
)

// ManagementAssessor scores management quality from a financial dataset
type ManagementAssessor interface {
	// Assess validates history and builds the report for a symbol
	Assess(ctx context.Context, symbol string, dataset *types.FinancialDataset, reportDate time.Time) (*types.ManagementReport, error)

	// Build runs the three metric analyzers over aligned series
	Build(symbol string, periods []string, roic, currentRatio, debtToEquity []float64, reportDate time.Time) *types.ManagementReport
}

// SeriesAnalyzer scores one metric across the yearly window
type SeriesAnalyzer interface {
	Metric() types.Metric
	Analyze(periods []string, values []float64) types.SeriesAnalysisResult
}

// DatasetSource locates and parses the most recent fundamentals for a symbol
type DatasetSource interface {
	FindLatestDataset(ctx context.Context, symbol string) (*types.FinancialDataset, error)
}

// ReportSink persists a finished report and returns where it went
type ReportSink interface {
	Write(ctx context.Context, report *types.ManagementReport) (string, error)
}
