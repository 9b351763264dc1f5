// Command inspect parses the given PWA PDF files and prints each extracted
// record as JSON. Debugging aid for checking field extraction against a
// report before running a full batch.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"pwacli/internal/dataprocessing"
	"pwacli/internal/infrastructure"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <report.pdf> [report.pdf ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Quiet console logger; inspection output goes to stdout as JSON.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx := infrastructure.WithTraceID(context.Background(), infrastructure.NewTraceID())

	processor := dataprocessing.NewProcessor(logger, nil, 1)
	records, err := processor.ProcessFiles(ctx, flag.Args())
	if err != nil {
		logger.Error("inspection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			logger.Error("failed to encode record", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}
