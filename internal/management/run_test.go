package management

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"management-quality/internal/management/datasource"
	"management-quality/internal/types"
)

type failingSink struct {
	calls int
}

func (f *failingSink) Write(ctx context.Context, report *types.ManagementReport) (string, error) {
	f.calls++
	return "", errors.New("disk full")
}

type staticSource struct {
	dataset *types.FinancialDataset
	err     error
}

func (s staticSource) FindLatestDataset(ctx context.Context, symbol string) (*types.FinancialDataset, error) {
	return s.dataset, s.err
}

func newRunner(t *testing.T, base string) *Runner {
	t.Helper()
	a, err := NewAssessor(nil)
	require.NoError(t, err)
	r := NewReporter(base, "management", 4)
	return &Runner{
		Source:   datasource.NewMockDataSource(),
		Assessor: a,
		Sink:     r,
		Reporter: r,
		Console:  &bytes.Buffer{},
		Format:   FormatText,
		Now:      func() time.Time { return reportDate },
	}
}

func TestRunWritesReport(t *testing.T) {
	base := t.TempDir()
	runner := newRunner(t, base)

	result, err := runner.Run(context.Background(), "MOCK")
	require.NoError(t, err)

	assert.NoError(t, result.WriteErr)
	assert.FileExists(t, result.Path)
	assert.Equal(t, 34, result.Report.Score)
	assert.Contains(t, runner.Console.(*bytes.Buffer).String(), "MANAGEMENT QUALITY REPORT - MOCK")
}

func TestRunDryRun(t *testing.T) {
	base := t.TempDir()
	runner := newRunner(t, base)
	runner.DryRun = true

	result, err := runner.Run(context.Background(), "MOCK")
	require.NoError(t, err)

	assert.Empty(t, result.Path)
	assert.NoDirExists(t, runner.Reporter.OutputDir("MOCK"))
}

func TestRunWriteFailureIsNotFatal(t *testing.T) {
	runner := newRunner(t, t.TempDir())
	sink := &failingSink{}
	runner.Sink = sink

	result, err := runner.Run(context.Background(), "MOCK")
	require.NoError(t, err)

	assert.Equal(t, 1, sink.calls)
	assert.Error(t, result.WriteErr)
	assert.Empty(t, result.Path)
	// The JSON report is echoed so it is not lost
	assert.Contains(t, runner.Console.(*bytes.Buffer).String(), "\"type\": \"management\"")
}

func TestRunInsufficientHistoryIsFatal(t *testing.T) {
	runner := newRunner(t, t.TempDir())
	runner.Source = datasource.NewShortHistoryMockDataSource(7)
	sink := &failingSink{}
	runner.Sink = sink

	result, err := runner.Run(context.Background(), "NEWCO")

	assert.ErrorIs(t, err, ErrInsufficientHistory)
	assert.Nil(t, result)
	assert.Zero(t, sink.calls)
	assert.Empty(t, runner.Console.(*bytes.Buffer).String())
}

func TestRunSourceErrorIsFatal(t *testing.T) {
	runner := newRunner(t, t.TempDir())
	runner.Source = staticSource{err: datasource.ErrNoDataset}

	_, err := runner.Run(context.Background(), "ACME")
	assert.ErrorIs(t, err, datasource.ErrNoDataset)
}

func TestRunMissingAnnualFieldIsFatal(t *testing.T) {
	ds := newDataset(10, 0.15, 1.5, 0.2)
	ds.Annual().DebtToEquity = nil

	runner := newRunner(t, t.TempDir())
	runner.Source = staticSource{dataset: ds}
	sink := &failingSink{}
	runner.Sink = sink

	result, err := runner.Run(context.Background(), "ACME")

	assert.ErrorIs(t, err, ErrMissingField)
	assert.Nil(t, result)
	assert.Zero(t, sink.calls)
	assert.Empty(t, runner.Console.(*bytes.Buffer).String())
}
