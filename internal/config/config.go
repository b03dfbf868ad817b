package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sparcrar/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data    DataConfig
	Output  OutputConfig
	Logging LoggingConfig
}

// DataConfig holds dataset lookup settings
type DataConfig struct {
	// File is tried before the default candidates when set.
	File string
	// BaseDir anchors the default data/RAR.mrt and ../data/RAR.mrt lookups.
	BaseDir string
}

// OutputConfig holds figure and export settings
type OutputConfig struct {
	Dir         string
	SkipFigures bool
	ExportXLSX  bool
	ExportHTML  bool
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Load reads configuration from environment variables and validates it.
// programDir is the directory holding the executable.
func Load(programDir string) (*Config, error) {
	config := &Config{
		Data: DataConfig{
			File:    getEnvOrDefault("RAR_DATA_FILE", ""),
			BaseDir: programDir,
		},
		Output: OutputConfig{
			Dir:         getEnvOrDefault("RAR_OUTPUT_DIR", programDir),
			SkipFigures: getEnvBoolOrDefault("RAR_SKIP_FIGURES", false),
			ExportXLSX:  getEnvBoolOrDefault("RAR_EXPORT_XLSX", false),
			ExportHTML:  getEnvBoolOrDefault("RAR_EXPORT_HTML", false),
		},
		Logging: LoggingConfig{
			Level: strings.ToLower(getEnvOrDefault("RAR_LOG_LEVEL", "info")),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	if !validLevels[c.Logging.Level] {
		return errors.ConfigInvalid("log level must be one of debug, info, warn, error; got " + strconv.Quote(c.Logging.Level))
	}
	return nil
}

// ProgramDir returns the directory of the running executable, falling back
// to the working directory.
func ProgramDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
