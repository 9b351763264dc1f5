// Command converter batch-converts PWA Detailed Report PDFs into a
// three-sheet Excel workbook: every extracted record, the records kept for
// analysis, and per-patient averaged pairs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"pwacli/internal/config"
	"pwacli/internal/dataprocessing"
	"pwacli/internal/exporter"
	"pwacli/internal/files"
	"pwacli/internal/infrastructure"
	"pwacli/internal/pairing"
	"pwacli/internal/validation"
	"pwacli/pkg/contracts/domain"
)

const defaultExportName = "pwa_export.xlsx"

func main() {
	inDir := flag.String("in", "", "input directory for PDF reports (defaults to data/reports relative to executable)")
	outFile := flag.String("out", "", "output .xlsx path (defaults to data/exports/"+defaultExportName+")")
	mode := flag.Int("mode", 0, "analysis mode: 1 = peripheral SYS/DIA/MEAN matching, 2 = peripheral systolic only (defaults to config)")
	pairsFile := flag.String("pairs", "", "optional YAML file pinning the averaged pair per patient")
	workers := flag.Int("workers", 0, "max PDFs parsed concurrently (defaults to config)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	if *inDir == "" {
		*inDir = paths.InputDir
	}
	if *outFile == "" {
		*outFile = paths.GetExportPath(defaultExportName)
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging:  config.LoggingConfig{Level: "info", Output: "both", FilePath: paths.GetLogPath("converter.log")},
			Analysis: config.AnalysisConfig{Mode: 2, Workers: 4},
		}
	}
	if cfg.Logging.FilePath == "logs/converter.log" {
		cfg.Logging.FilePath = paths.GetLogPath("converter.log")
	}
	if *mode == 0 {
		*mode = cfg.Analysis.Mode
	}
	if *workers == 0 {
		*workers = cfg.Analysis.Workers
	}

	analysisMode := pairing.Mode(*mode)
	if !analysisMode.Valid() {
		slog.Error("Invalid analysis mode", "mode", *mode)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithTraceID(context.Background(), infrastructure.NewTraceID())

	telemetry, err := infrastructure.InitializeTracing(cfg.Telemetry.TracingEnabled, logger)
	if err != nil {
		logger.WarnContext(ctx, "Failed to initialize tracing, continuing without",
			slog.String("error", err.Error()))
		telemetry, _ = infrastructure.InitializeTracing(false, logger)
	}
	defer telemetry.Shutdown(context.Background())

	logger.InfoContext(ctx, "Starting PWA report conversion",
		slog.String("input_dir", *inDir),
		slog.String("output_file", *outFile),
		slog.Int("analysis_mode", *mode),
		slog.Int("workers", *workers))

	if err := run(ctx, logger, telemetry.Tracer, *inDir, *outFile, *pairsFile, analysisMode, *workers); err != nil {
		logger.ErrorContext(ctx, "Conversion failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, tracer trace.Tracer, inDir, outFile, pairsFile string, mode pairing.Mode, workers int) error {
	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(inDir, "*.pdf"); err != nil {
		return err
	}

	discovery := files.NewDiscovery(inDir)
	pdfs, err := discovery.FindPDFFiles(inDir)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "PDF files discovered", slog.Int("count", len(pdfs)))
	fmt.Printf("Found %d PDF files\n", len(pdfs))

	if len(pdfs) == 0 {
		return fmt.Errorf("no PDF files found in %s", inDir)
	}

	for _, pdf := range pdfs {
		if err := validator.ValidatePDFSignature(pdf.Path); err != nil {
			logger.WarnContext(ctx, "File skipped by signature check",
				slog.String("file", pdf.Name),
				slog.String("error", err.Error()))
		}
	}

	var overrides map[string][2]string
	if pairsFile != "" {
		overrides, err = pairing.LoadOverrides(pairsFile)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "Manual pair overrides loaded",
			slog.String("file", pairsFile),
			slog.Int("patients", len(overrides)))
	}

	ctx, span := tracer.Start(ctx, "converter.run",
		trace.WithAttributes(attribute.Int("pwa.file_count", len(pdfs))))
	defer span.End()

	processor := dataprocessing.NewProcessor(logger, tracer, workers)
	records, err := processor.ProcessFiles(ctx, files.Paths(pdfs))
	if err != nil {
		return fmt.Errorf("batch processing failed: %w", err)
	}

	prepared := dataprocessing.Prepare(records)

	rejected := 0
	for _, r := range prepared {
		if r.Rejected() {
			rejected++
		}
	}
	logger.InfoContext(ctx, "Records prepared",
		slog.Int("total", len(prepared)),
		slog.Int("rejected", rejected),
		slog.Int("duplicates_removed", len(records)-len(prepared)))

	result := pairing.BuildAnalyzed(prepared, mode, overrides)
	for _, r := range prepared {
		r.Analyzed = result.Kept[r]
	}

	var kept []*domain.Record
	for _, r := range prepared {
		if r.Analyzed {
			kept = append(kept, r)
		}
	}

	logger.InfoContext(ctx, "Pairing complete",
		slog.Int("paired_patients", len(result.Pairs)),
		slog.Int("kept_records", len(kept)))

	writer := exporter.NewWorkbookWriter(logger)
	exported, err := writer.Write(outFile, prepared, kept, result.Averaged)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Conversion complete",
		slog.String("output_file", outFile),
		slog.Int("exported_records", exported))
	fmt.Printf("Exported %d record(s) to %s\n", exported, outFile)

	return nil
}
