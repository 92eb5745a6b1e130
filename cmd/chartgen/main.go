package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"mpicli/internal/config"
	"mpicli/internal/exporter"
	"mpicli/internal/infrastructure"
	"mpicli/internal/series"
	"mpicli/internal/services"
	"mpicli/internal/store"
	"mpicli/pkg/contracts"
)

func main() {
	from := flag.String("from", "", "start date YYYY-MM-DD (defaults to the lookback before -to)")
	to := flag.String("to", "", "end date YYYY-MM-DD (defaults to today)")
	categories := flag.String("categories", "", "comma-separated category codes (defaults to all chartable)")
	currency := flag.Int("currency", 0, "currency code: 1 hryvnia, 2 dollar, 3 euro (defaults to hryvnia)")
	composite := flag.Bool("composite", false, "include the weighted composite series")
	format := flag.String("format", "csv", "output format: csv | json | xlsx")
	dbPath := flag.String("db", "", "price database path (defaults to config)")
	out := flag.String("out", "", "output file path (defaults to a dated file in the reports directory)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "chartgen")

	outputFormat, err := exporter.ParseFormat(*format)
	if err != nil {
		logger.Error("Invalid format flag", "error", err)
		os.Exit(1)
	}

	codes, err := parseCategoryCodes(*categories)
	if err != nil {
		logger.Error("Invalid categories flag", "error", err)
		os.Exit(1)
	}

	if *currency == 0 {
		*currency = cfg.Chart.DefaultCurrency
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.Path
	}
	if *out == "" {
		filename := fmt.Sprintf("chart_%s.%s", time.Now().Format("20060102"), outputFormat)
		*out = filepath.Join(cfg.Reports.Dir, filename)
	}

	if _, err := os.Stat(*dbPath); os.IsNotExist(err) {
		logger.Error("Price database not found",
			"path", *dbPath,
			"hint", "check -db or MPI_DATABASE_PATH")
		os.Exit(1)
	}

	// Tag the whole run so every log line carries the same trace ID.
	ctx := infrastructure.ContextWithTraceID(context.Background())
	logger.InfoContext(ctx, "Starting chart generation",
		"db", *dbPath,
		"format", string(outputFormat),
		"out", *out)

	db, err := store.OpenSQLite(*dbPath, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to open price database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	calc := series.NewCalculator(db, logger, &series.CalculatorConfig{
		LookbackDays: cfg.Chart.LookbackDays,
		Missing:      missingPolicy(cfg.Chart.MissingPolicy),
	})

	report, err := services.NewChartService(calc, logger).BuildCharts(ctx, services.ChartRequest{
		From:       *from,
		To:         *to,
		Categories: codes,
		Currency:   *currency,
		Composite:  *composite,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build chart report", "error", err)
		os.Exit(1)
	}

	if err := exporter.NewChartExporter(logger).Export(report, outputFormat, *out); err != nil {
		logger.ErrorContext(ctx, "Failed to export chart report", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Chart report written",
		"path", *out,
		"series", len(report.Series),
		"run_id", report.ID)
}

// parseCategoryCodes parses "2,3,5" into category codes. Empty input means
// the service defaults.
func parseCategoryCodes(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	codes := make([]int, 0, len(parts))
	for _, part := range parts {
		code, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("category code %q is not a number", part)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func missingPolicy(name string) series.MissingPolicy {
	if name == "fail" {
		return series.FailOnMissing
	}
	return series.SkipMissing
}
