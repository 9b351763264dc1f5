// Package config centralizes configuration and filesystem path resolution
// for the converter executables. Values come from defaults, an optional YAML
// file next to the executable, and PWA_-prefixed environment variables, in
// that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// ConfigFileName is looked up next to the executable.
const ConfigFileName = "pwa-config.yaml"

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/converter.log"`
}

// AnalysisConfig controls the pairing/averaging step.
type AnalysisConfig struct {
	// Mode selects the closest-pair policy: 1 matches on combined
	// peripheral SYS/DIA/MEAN, 2 on peripheral systolic pressure only.
	Mode int `yaml:"mode" envconfig:"MODE" default:"2" validate:"oneof=1 2"`
	// Workers bounds how many PDFs are parsed at once.
	Workers int `yaml:"workers" envconfig:"WORKERS" default:"4" validate:"min=1,max=64"`
}

// TelemetryConfig toggles OpenTelemetry tracing.
type TelemetryConfig struct {
	TracingEnabled bool `yaml:"tracing_enabled" envconfig:"TRACING_ENABLED" default:"false"`
}

// Load loads configuration from the optional YAML file and environment
// variables, then validates the result.
func Load() (*Config, error) {
	var cfg Config

	// Defaults plus environment overrides.
	if err := envconfig.Process("PWA", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(cfg, *fileCfg)
		// Environment still wins over the file.
		if err := envconfig.Process("PWA", &cfg); err != nil {
			return nil, fmt.Errorf("failed to re-apply env config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks field constraints via the validate struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	return &cfg, nil
}

// mergeConfigs overlays non-zero file values on top of the env/default
// config.
func mergeConfigs(base, file Config) Config {
	merged := base
	if file.Logging.Level != "" {
		merged.Logging.Level = file.Logging.Level
	}
	if file.Logging.Output != "" {
		merged.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" {
		merged.Logging.FilePath = file.Logging.FilePath
	}
	if file.Analysis.Mode != 0 {
		merged.Analysis.Mode = file.Analysis.Mode
	}
	if file.Analysis.Workers != 0 {
		merged.Analysis.Workers = file.Analysis.Workers
	}
	if file.Telemetry.TracingEnabled {
		merged.Telemetry.TracingEnabled = true
	}
	return merged
}

// getConfigFilePath returns the expected config file location next to the
// executable, falling back to the working directory.
func getConfigFilePath() string {
	exe, err := os.Executable()
	if err != nil {
		return ConfigFileName
	}
	return filepath.Join(filepath.Dir(exe), ConfigFileName)
}
