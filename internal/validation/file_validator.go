// Package validation checks input and output locations before a conversion
// run starts, so a bad path fails fast instead of after minutes of parsing.
package validation

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// pdfSignature is the magic prefix every PDF starts with.
var pdfSignature = []byte("%PDF-")

// FileValidator provides common file validation for the converter
// executables.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateInputDirectory validates that the input directory exists and notes
// how many files match the required pattern. Zero matches is not an error
// here; the caller decides whether an empty batch is fatal.
func (v *FileValidator) ValidateInputDirectory(dir string, requiredPattern string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("input directory %s does not exist", dir)
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if requiredPattern != "" {
		pattern := filepath.Join(dir, requiredPattern)
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("failed to check for files: %w", err)
		}
		v.logger.Info("input directory validated",
			slog.String("directory", dir),
			slog.Int("files_found", len(matches)),
			slog.String("pattern", requiredPattern))
	}

	return nil
}

// ValidateOutputDirectory ensures the output directory exists or can be
// created, and is writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Info("output directory validated", slog.String("directory", dir))
	return nil
}

// ValidatePDFSignature checks that the file starts with the %PDF- magic
// bytes. Renamed scans and truncated downloads are caught here before the
// parser touches them.
func (v *FileValidator) ValidatePDFSignature(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	header := make([]byte, len(pdfSignature))
	n, err := file.Read(header)
	if err != nil || n < len(pdfSignature) {
		return fmt.Errorf("%s is too short to be a PDF", path)
	}
	if !bytes.Equal(header, pdfSignature) {
		return fmt.Errorf("%s does not have a PDF signature", path)
	}
	return nil
}
