// Command expense-report runs the full reporting pipeline over a
// household-expense spreadsheet: load, clean, analyze, export the report,
// render the charts, and embed them. It holds no pipeline logic of its
// own; it only orchestrates the internal packages and reports failures.
package main

import (
	"flag"
	"log/slog"
	"os"

	"expensecli/internal/analyzer"
	"expensecli/internal/charts"
	"expensecli/internal/cleaner"
	"expensecli/internal/config"
	"expensecli/internal/infrastructure"
	"expensecli/internal/loader"
	"expensecli/internal/report"
)

func main() {
	input := flag.String("input", "", "input spreadsheet (defaults to configured input file)")
	out := flag.String("out", "", "output report file (defaults to configured report file)")
	chartsDir := flag.String("charts-dir", "", "directory for chart images (defaults to configured charts dir)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger := infrastructure.NewLogger(cfg.Logging)

	paths := config.NewPaths(cfg.Paths)
	if *input != "" {
		paths.InputFile = *input
	}
	if *out != "" {
		paths.ReportFile = *out
	}
	if *chartsDir != "" {
		paths.ChartsDir = *chartsDir
	}

	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("failed to create output directories", "error", err)
		os.Exit(1)
	}

	ds, err := loader.Load(paths.InputFile, logger)
	if err != nil {
		logger.Error("load failed", "error", err)
		os.Exit(1)
	}

	cleaned, err := cleaner.Clean(ds, logger)
	if err != nil {
		logger.Error("clean failed", "error", err)
		os.Exit(1)
	}
	for i, rec := range cleaned.Records {
		if i >= 5 {
			break
		}
		logger.Debug("cleaned record",
			slog.Int("row", i),
			slog.String("category", rec.Category),
			slog.String("item", rec.Item),
			slog.Int("amount", rec.Amount),
			slog.String("payment_mode", rec.PaymentMode),
			slog.Bool("amount_valid", rec.AmountValid))
	}

	results := analyzer.Analyze(cleaned, logger)

	if err := report.Export(paths.ReportFile, results, logger); err != nil {
		logger.Error("report export failed", "error", err)
		os.Exit(1)
	}

	chartPaths, err := charts.Generate(cleaned, results, paths.ChartsDir, logger)
	if err != nil {
		logger.Error("chart generation failed", "error", err)
		os.Exit(1)
	}

	if err := report.EmbedCharts(paths.ReportFile, chartPaths, logger); err != nil {
		logger.Error("chart embedding failed", "error", err)
		os.Exit(1)
	}

	logger.Info("pipeline complete",
		slog.String("report", paths.ReportFile),
		slog.Int("charts", len(chartPaths)))
}
