package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"management-quality/internal/logger"
	"management-quality/internal/management"
	"management-quality/internal/store"
)

var (
	configPath string
	basePath   string
	policy     string
	dataSource string
	format     string
	dryRun     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "management <symbol>",
		Short: "Score management quality from ten years of annual financials",
		Long: "Reads the latest fundamentals file under <base>/<symbol>/core, scores ROIC, " +
			"current ratio and debt to equity, and writes <base>/<symbol>/management/YYYY.MM.DD.json.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	rootCmd.Flags().StringVar(&basePath, "base-path", "", "base directory holding one folder per symbol (overrides config)")
	rootCmd.Flags().StringVar(&policy, "policy", "", "rule policy: CANONICAL or LEGACY (overrides config)")
	rootCmd.Flags().StringVar(&dataSource, "data-source", "", "data source: FILESYSTEM or MOCK (overrides config)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "", "console output format: text, json, or csv")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the report without writing it")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	symbol := args[0]

	cfg, err := store.LoadConfig(configPath,
		store.WithBasePath(basePath),
		store.WithRulePolicy(policy),
		store.WithDataSource(dataSource),
	)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := logger.Init(); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = logger.Shutdown(shutdownCtx)
	}()

	consoleFormat := cfg.Report.ConsoleFormat
	if format != "" {
		consoleFormat = format
	}
	reportFormat, err := management.ParseReportFormat(consoleFormat)
	if err != nil {
		return err
	}

	source, err := management.CreateDataSource(cfg)
	if err != nil {
		return fmt.Errorf("creating data source: %w", err)
	}

	assessor, err := management.NewAssessor(cfg.ManagementConfig())
	if err != nil {
		return fmt.Errorf("creating assessor: %w", err)
	}

	reporter := management.NewReporter(cfg.BasePath, cfg.ReportDir, cfg.Report.Indent)
	runner := &management.Runner{
		Source:   source,
		Assessor: assessor,
		Sink:     reporter,
		Reporter: reporter,
		Console:  cmd.OutOrStdout(),
		Format:   reportFormat,
		DryRun:   dryRun,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := runner.Run(ctx, symbol)
	if err != nil {
		logger.ErrorWithErr(ctx, "Management analysis failed", err, "symbol", symbol)
		return err
	}

	if result.Path != "" {
		logger.Info(ctx, "Report saved", "path", result.Path)
	}
	logger.Info(ctx, "Analysis complete", "symbol", symbol, "score", result.Report.Score)
	return nil
}
