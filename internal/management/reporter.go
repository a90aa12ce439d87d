package management

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"management-quality/internal/logger"
	"management-quality/internal/types"
)

// ReportFormat specifies the output format for management reports
type ReportFormat string

const (
	FormatJSON ReportFormat = "json"
	FormatText ReportFormat = "text"
	FormatCSV  ReportFormat = "csv"
)

// ParseReportFormat maps a flag value to a format, defaulting to text
func ParseReportFormat(s string) (ReportFormat, error) {
	switch ReportFormat(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatText, "":
		return FormatText, nil
	default:
		return FormatText, fmt.Errorf("unknown format: %s", s)
	}
}

// ReportFileName is the dated file name a report is stored under
func ReportFileName(date time.Time) string {
	return date.Format("2006.01.02") + ".json"
}

// Reporter renders reports and stores them under <base>/<symbol>/<reportDir>
type Reporter struct {
	basePath  string
	reportDir string
	indent    int
}

// NewReporter creates a new reporter
func NewReporter(basePath, reportDir string, indent int) *Reporter {
	if reportDir == "" {
		reportDir = "management"
	}
	if indent <= 0 {
		indent = 4
	}
	return &Reporter{
		basePath:  basePath,
		reportDir: reportDir,
		indent:    indent,
	}
}

// OutputDir returns the directory reports for symbol are written to
func (r *Reporter) OutputDir(symbol string) string {
	return filepath.Join(r.basePath, symbol, r.reportDir)
}

// GenerateReport renders a report in the specified format
func (r *Reporter) GenerateReport(report *types.ManagementReport, format ReportFormat) (string, error) {
	switch format {
	case FormatJSON:
		return r.generateJSONReport(report)
	case FormatText:
		return r.generateTextReport(report)
	case FormatCSV:
		return r.generateCSVReport(report)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// Write stores the report as pretty-printed JSON named by its report date
func (r *Reporter) Write(ctx context.Context, report *types.ManagementReport) (string, error) {
	op := logger.StartOperation(ctx, "management.write_report", "symbol", report.Symbol)

	content, err := r.generateJSONReport(report)
	if err != nil {
		op.EndWithError(err)
		return "", err
	}

	if err := r.EnsureDirs(report.Symbol); err != nil {
		op.EndWithError(err)
		return "", err
	}

	path := filepath.Join(r.OutputDir(report.Symbol), ReportFileName(report.ReportDate))
	logger.Info(op.GetContext(), "Writing report", "path", path)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		op.EndWithError(err)
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	op.End("path", path)
	return path, nil
}

// EnsureDirs creates the symbol and report directories when missing
func (r *Reporter) EnsureDirs(symbol string) error {
	for _, dir := range []string{filepath.Join(r.basePath, symbol), r.OutputDir(symbol)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

func (r *Reporter) generateJSONReport(report *types.ManagementReport) (string, error) {
	data, err := json.MarshalIndent(report, "", strings.Repeat(" ", r.indent))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *Reporter) generateTextReport(report *types.ManagementReport) (string, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("MANAGEMENT QUALITY REPORT - %s\n", report.Symbol))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n", report.ReportDate.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Rule Policy: %s\n", report.Policy))
	sb.WriteString(fmt.Sprintf("Overall Score: %d\n", report.Score))
	sb.WriteString(fmt.Sprintf("Open Question: %s\n", report.Question1))

	// Band listing is skipped for reports carrying an unknown policy
	book, bookErr := RulesFor(report.Policy)
	for _, res := range report.Results() {
		var rules []string
		if bookErr == nil {
			if rs, ok := book.For(res.Metric); ok {
				rules = rs.Describe()
			}
		}
		r.addMetricSection(&sb, res, rules)
	}

	sb.WriteString("\n" + strings.Repeat("=", 80) + "\n")
	sb.WriteString("END OF REPORT\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	return sb.String(), nil
}

func (r *Reporter) addMetricSection(sb *strings.Builder, res types.SeriesAnalysisResult, rules []string) {
	sb.WriteString("\n\n" + strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%s\n", strings.ReplaceAll(string(res.Metric), "_", " ")))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%s\n", res.What))
	sb.WriteString(fmt.Sprintf("Goals: %s\n", res.Goals))
	if len(rules) > 0 {
		sb.WriteString("Rules:\n")
		for _, rule := range rules {
			sb.WriteString(fmt.Sprintf("  %s\n", rule))
		}
	}
	sb.WriteString("\n")

	for i, v := range res.Values {
		period := ""
		if i < len(res.Periods) {
			period = res.Periods[i]
		}
		sb.WriteString(fmt.Sprintf("  %-6s %10.4f  %+d\n", period, v, res.Scores[i]))
	}
	sb.WriteString(fmt.Sprintf("  %-6s %10.4f  %+d\n", "avg", res.Average, res.AverageScore))
	sb.WriteString(fmt.Sprintf("Total: %d\n", res.Total))

	for _, flag := range res.RedFlags {
		sb.WriteString(fmt.Sprintf("  ⚠ %s\n", flag))
	}
	for _, flag := range res.GreenFlags {
		sb.WriteString(fmt.Sprintf("  ✔ %s\n", flag))
	}
}

func (r *Reporter) generateCSVReport(report *types.ManagementReport) (string, error) {
	var sb strings.Builder

	sb.WriteString("Symbol,ReportDate,Policy,Score\n")
	sb.WriteString(fmt.Sprintf("%s,%s,%s,%d\n\n",
		report.Symbol,
		report.ReportDate.Format("2006-01-02"),
		report.Policy,
		report.Score))

	sb.WriteString("Metric,Period,Value,Score\n")
	for _, res := range report.Results() {
		for i, v := range res.Values {
			period := ""
			if i < len(res.Periods) {
				period = res.Periods[i]
			}
			sb.WriteString(fmt.Sprintf("%s,%s,%g,%d\n", res.Metric, period, v, res.Scores[i]))
		}
		sb.WriteString(fmt.Sprintf("%s,average,%g,%d\n", res.Metric, res.Average, res.AverageScore))
	}

	sb.WriteString("\nMetric,Kind,Description\n")
	for _, res := range report.Results() {
		for _, flag := range res.RedFlags {
			sb.WriteString(fmt.Sprintf("%s,RED,\"%s\"\n", res.Metric, strings.ReplaceAll(flag, "\"", "\"\"")))
		}
		for _, flag := range res.GreenFlags {
			sb.WriteString(fmt.Sprintf("%s,GREEN,\"%s\"\n", res.Metric, strings.ReplaceAll(flag, "\"", "\"\"")))
		}
	}

	return sb.String(), nil
}
