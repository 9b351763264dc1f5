package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths centralizes the directory layout used by the executables. Everything
// hangs off the executable directory so the tool can be dropped into a folder
// of reports and run in place.
type Paths struct {
	ExecutableDir string
	DataDir       string
	InputDir      string // default location for incoming PDF reports
	OutputDir     string // default location for generated workbooks
	LogsDir       string
}

// GetPaths resolves the standard directory layout relative to the running
// executable.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}
	exeDir := filepath.Dir(exe)

	dataDir := filepath.Join(exeDir, "data")
	return &Paths{
		ExecutableDir: exeDir,
		DataDir:       dataDir,
		InputDir:      filepath.Join(dataDir, "reports"),
		OutputDir:     filepath.Join(dataDir, "exports"),
		LogsDir:       filepath.Join(exeDir, "logs"),
	}, nil
}

// EnsureDirectories creates every directory in the layout.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.InputDir, p.OutputDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the path for a named log file inside the logs directory.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetExportPath returns the path for a named workbook inside the exports
// directory.
func (p *Paths) GetExportPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
