package management

import (
	"context"
	"io"
	"time"

	"management-quality/internal/interfaces"
	"management-quality/internal/logger"
	"management-quality/internal/types"
)

// Runner wires the dataset source, assessor and report sink for one symbol
type Runner struct {
	Source   interfaces.DatasetSource
	Assessor interfaces.ManagementAssessor
	Sink     interfaces.ReportSink
	Reporter *Reporter
	Console  io.Writer
	Format   ReportFormat
	DryRun   bool
	Now      func() time.Time
}

// RunResult describes what a run produced
type RunResult struct {
	Report *types.ManagementReport
	Path   string // empty when nothing was written

	// WriteErr is set when the report could not be stored; the run still counts as done
	WriteErr error
}

// Run loads, scores and stores the report for symbol. Load and scoring
// errors are fatal; a write failure is logged and the report echoed as JSON.
func (r *Runner) Run(ctx context.Context, symbol string) (*RunResult, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	dataset, err := r.Source.FindLatestDataset(ctx, symbol)
	if err != nil {
		return nil, err
	}

	report, err := r.Assessor.Assess(ctx, symbol, dataset, now())
	if err != nil {
		return nil, err
	}

	result := &RunResult{Report: report}

	if r.Console != nil && r.Reporter != nil {
		content, err := r.Reporter.GenerateReport(report, r.Format)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to render report", err, "format", string(r.Format))
		} else {
			io.WriteString(r.Console, content+"\n")
		}
	}

	if r.DryRun || r.Sink == nil {
		logger.Info(ctx, "Dry run, report not written", "symbol", symbol)
		return result, nil
	}

	path, err := r.Sink.Write(ctx, report)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to write report", err, "symbol", symbol)
		result.WriteErr = err
		r.echo(ctx, report)
		return result, nil
	}
	result.Path = path

	return result, nil
}

// echo prints the JSON report so a failed write does not lose it
func (r *Runner) echo(ctx context.Context, report *types.ManagementReport) {
	if r.Console == nil || r.Reporter == nil || r.Format == FormatJSON {
		return
	}
	content, err := r.Reporter.GenerateReport(report, FormatJSON)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to render report", err)
		return
	}
	logger.Warn(ctx, "Echoing unsaved report to console", "symbol", report.Symbol)
	io.WriteString(r.Console, content+"\n")
}
