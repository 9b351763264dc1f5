package dataprocessing

import (
	"context"
	"log/slog"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"pwacli/internal/pdftext"
	"pwacli/pkg/contracts/domain"
)

// Processor batch-converts PDF files into records. Files are independent, so
// they are parsed concurrently up to the worker limit; results keep input
// order.
type Processor struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	workers int
}

// NewProcessor creates a batch processor. A nil logger or tracer falls back
// to defaults; workers below 1 become 1.
func NewProcessor(logger *slog.Logger, tracer trace.Tracer, workers int) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("dataprocessing")
	}
	if workers < 1 {
		workers = 1
	}
	return &Processor{logger: logger, tracer: tracer, workers: workers}
}

// ProcessFiles converts every path into a record. A PDF that cannot be read
// or is not a Detailed Report becomes a rejection row rather than an error;
// only context cancellation aborts the batch.
func (p *Processor) ProcessFiles(ctx context.Context, paths []string) ([]*domain.Record, error) {
	records := make([]*domain.Record, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i] = p.processFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// processFile converts a single PDF. Extraction failures are logged and
// classified as unrecognized, matching the fail-don't-infer policy for
// format drift.
func (p *Processor) processFile(ctx context.Context, path string) *domain.Record {
	ctx, span := p.tracer.Start(ctx, "dataprocessing.processFile",
		trace.WithAttributes(attribute.String("pwa.source_file", filepath.Base(path))))
	defer span.End()

	name := filepath.Base(path)

	text, err := pdftext.Extract(path)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to extract PDF text",
			slog.String("file", name),
			slog.String("error", err.Error()))
		return domain.NewRejected(domain.KindUnrecognized, name, path)
	}

	kind := DetectKind(text)
	span.SetAttributes(attribute.String("pwa.report_kind", string(kind)))

	if kind != domain.KindDetailed {
		p.logger.WarnContext(ctx, "report rejected",
			slog.String("file", name),
			slog.String("kind", string(kind)))
		return domain.NewRejected(kind, name, path)
	}

	record := ParseReport(text)
	record.SourceFile = name
	record.SourcePath = path
	record.PatientID = PatientIDFromFilename(name)

	p.logger.DebugContext(ctx, "report parsed",
		slog.String("file", name),
		slog.String("patient_id", record.PatientID),
		slog.String("scan_date", record.ScanDate),
		slog.String("scan_time", record.ScanTime))

	return record
}
