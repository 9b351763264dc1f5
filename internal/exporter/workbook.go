// Package exporter writes the converter's three-sheet Excel workbook.
package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"pwacli/pkg/contracts/domain"
)

// Sheet names in workbook order.
const (
	SheetAllData      = "All Data"
	SheetKeptData     = "Kept Data"
	SheetAveragedData = "Averaged Data"
)

// dateNumFmt renders date cells as MM/DD/YY, the format the receiving
// analysis sheets expect.
const dateNumFmt = "mm/dd/yy"

// WorkbookWriter writes records into an xlsx workbook.
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer.
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger}
}

// Write creates the workbook at path with the three sheets: every record,
// the records used in pairs, and the per-patient averages. Returns the
// number of rows written to the All Data sheet.
func (w *WorkbookWriter) Write(path string, all, kept, averaged []*domain.Record) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(dateNumFmt)})
	if err != nil {
		return 0, fmt.Errorf("failed to create date style: %w", err)
	}

	// The default sheet becomes All Data so the workbook never carries an
	// empty Sheet1.
	if err := f.SetSheetName(f.GetSheetName(0), SheetAllData); err != nil {
		return 0, fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetKeptData); err != nil {
		return 0, fmt.Errorf("failed to create sheet %s: %w", SheetKeptData, err)
	}
	if _, err := f.NewSheet(SheetAveragedData); err != nil {
		return 0, fmt.Errorf("failed to create sheet %s: %w", SheetAveragedData, err)
	}

	if err := w.writeSheet(f, SheetAllData, domain.Columns, all, dateStyle); err != nil {
		return 0, err
	}
	if err := w.writeSheet(f, SheetKeptData, domain.Columns, kept, dateStyle); err != nil {
		return 0, err
	}
	if err := w.writeSheet(f, SheetAveragedData, domain.AveragedColumns(), averaged, dateStyle); err != nil {
		return 0, err
	}

	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	w.logger.Info("workbook written",
		slog.String("path", path),
		slog.Int("all_rows", len(all)),
		slog.Int("kept_rows", len(kept)),
		slog.Int("averaged_rows", len(averaged)))

	return len(all), nil
}

// writeSheet fills one sheet: header row followed by one row per record.
func (w *WorkbookWriter) writeSheet(f *excelize.File, sheet string, cols []domain.Column, records []*domain.Record, dateStyle int) error {
	for c, col := range cols {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return fmt.Errorf("failed to write header %q: %w", col.Header, err)
		}
	}

	for rIdx, record := range records {
		for c, col := range cols {
			cell, err := excelize.CoordinatesToCellName(c+1, rIdx+2)
			if err != nil {
				return fmt.Errorf("failed to resolve cell: %w", err)
			}

			value := col.CellValue(record)
			if value == nil {
				continue
			}

			// Date columns become real date cells when the raw string
			// parses; unparseable values stay as text rather than guessing.
			if col.Date {
				if s, ok := value.(string); ok {
					if t, parsed := domain.ParseReportDate(s); parsed {
						if err := f.SetCellValue(sheet, cell, t); err != nil {
							return fmt.Errorf("failed to write date cell %s: %w", cell, err)
						}
						if err := f.SetCellStyle(sheet, cell, cell, dateStyle); err != nil {
							return fmt.Errorf("failed to style date cell %s: %w", cell, err)
						}
						continue
					}
				}
			}

			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	return nil
}

func strPtr(s string) *string {
	return &s
}
