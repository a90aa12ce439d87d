package datasource

import (
	"context"
	"fmt"

	"management-quality/internal/types"
)

// MockDataSource serves a fixed twelve-year dataset for demos and tests
type MockDataSource struct {
	years   int
	lastFY  int
	dataset func(years, lastFY int) *types.FinancialDataset
}

// NewMockDataSource creates a new mock data source
func NewMockDataSource() *MockDataSource {
	return &MockDataSource{
		years:   12,
		lastFY:  2024,
		dataset: healthyCompany,
	}
}

// NewShortHistoryMockDataSource serves a company with only `years` of results
func NewShortHistoryMockDataSource(years int) *MockDataSource {
	return &MockDataSource{
		years:   years,
		lastFY:  2024,
		dataset: healthyCompany,
	}
}

// FindLatestDataset returns mock fundamentals regardless of symbol
func (m *MockDataSource) FindLatestDataset(ctx context.Context, symbol string) (*types.FinancialDataset, error) {
	ds := m.dataset(m.years, m.lastFY)
	ds.Source = fmt.Sprintf("mock://%s", symbol)
	return ds, nil
}

// healthyCompany grows revenue steadily with strong returns, one weak year
// of liquidity and one year of elevated leverage
func healthyCompany(years, lastFY int) *types.FinancialDataset {
	ds := &types.FinancialDataset{}
	annual := ds.Annual()

	for i := 0; i < years; i++ {
		fy := lastFY - years + 1 + i
		annual.PeriodEndDate = append(annual.PeriodEndDate, fmt.Sprintf("%d-12-31", fy))
		annual.Revenue = append(annual.Revenue, 1_000_000_000*(1+0.08*float64(i)))
		annual.ROIC = append(annual.ROIC, 0.14+0.01*float64(i%4))
		annual.CurrentRatio = append(annual.CurrentRatio, 2.1)
		annual.DebtToEquity = append(annual.DebtToEquity, 0.3)
	}

	if years > 2 {
		annual.CurrentRatio[years-3] = 0.9
		annual.DebtToEquity[years-2] = 0.55
	}

	return ds
}
