package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/shopspring/decimal"

	"github.com/weighworks/weighbridge-parser/internal/common"
	"github.com/weighworks/weighbridge-parser/internal/export"
	"github.com/weighworks/weighbridge-parser/internal/extract"
	"github.com/weighworks/weighbridge-parser/internal/ingest"
	"github.com/weighworks/weighbridge-parser/internal/normalize"
	"github.com/weighworks/weighbridge-parser/internal/pipeline"
	"github.com/weighworks/weighbridge-parser/internal/preprocess"
	"github.com/weighworks/weighbridge-parser/internal/validate"
)

func main() {
	fs := ff.NewFlagSet("weighbridge-parser")
	var (
		output    = fs.StringLong("output", "", "output file path (default: auto-generated under OUTPUT_DIR)")
		format    = fs.StringLong("format", "json", "output format: json, csv or xlsx")
		tolerance = fs.StringLong("tolerance", "", "weight tolerance in kg (overrides WEIGHT_TOLERANCE_KG)")
		logLevel  = fs.StringLong("log-level", "", "log level: DEBUG, INFO, WARN, ERROR")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("WEIGHBRIDGE"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	inputs := fs.GetArgs()
	if len(inputs) == 0 {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: at least one input file or glob is required")
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *tolerance != "" {
		d, err := decimal.NewFromString(*tolerance)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: invalid --tolerance: %v\n", err)
			os.Exit(1)
		}
		cfg.Validation.ToleranceKg = d
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	outFormat, err := export.ParseFormat(*format)
	if err != nil {
		logger.Error("invalid output format", "format", *format, "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	reader := ingest.NewReader(logger)
	paths, err := reader.ListInputs(inputs)
	if err != nil {
		logger.Error("failed to resolve inputs", "err", err)
		os.Exit(1)
	}

	processor := pipeline.NewProcessor(
		logger,
		preprocess.NewCleaner(logger),
		extract.NewExtractor(extract.DefaultRegistry(), logger),
		normalize.NewNormalizer(logger),
		validate.NewValidator(cfg.Validation, logger),
	)

	reports, summary := processor.ProcessBatch(ctx, reader, paths)

	outPath := *output
	if outPath == "" {
		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			logger.Error("failed to create output dir", "dir", cfg.Output.Dir, "err", err)
			os.Exit(1)
		}
		stamp := time.Now().Format("20060102_150405")
		outPath = filepath.Join(cfg.Output.Dir, fmt.Sprintf("parsed_results_%s.%s", stamp, outFormat))
	}

	writer := export.NewWriter(cfg.Output, logger)
	if err := writer.Write(outPath, outFormat, reports); err != nil {
		logger.Error("failed to write results", "path", outPath, "err", err)
		os.Exit(1)
	}

	logger.Info("run complete",
		"output", outPath,
		"total", summary.Total,
		"valid", summary.Valid,
		"warned", summary.Warned,
		"failed", summary.Failed,
	)

	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
