package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparcrar/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"RAR_DATA_FILE", "RAR_OUTPUT_DIR", "RAR_LOG_LEVEL", "RAR_SKIP_FIGURES", "RAR_EXPORT_XLSX", "RAR_EXPORT_HTML"} {
		t.Setenv(key, "")
	}

	cfg, err := Load("/opt/sparcrar")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Data.File)
	assert.Equal(t, "/opt/sparcrar", cfg.Data.BaseDir)
	assert.Equal(t, "/opt/sparcrar", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Output.SkipFigures)
	assert.False(t, cfg.Output.ExportXLSX)
	assert.False(t, cfg.Output.ExportHTML)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("RAR_DATA_FILE", "/data/custom.mrt")
	t.Setenv("RAR_OUTPUT_DIR", "/tmp/out")
	t.Setenv("RAR_LOG_LEVEL", "DEBUG")
	t.Setenv("RAR_SKIP_FIGURES", "true")
	t.Setenv("RAR_EXPORT_XLSX", "1")
	t.Setenv("RAR_EXPORT_HTML", "not-a-bool")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "/data/custom.mrt", cfg.Data.File)
	assert.Equal(t, "/tmp/out", cfg.Output.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Output.SkipFigures)
	assert.True(t, cfg.Output.ExportXLSX)
	assert.False(t, cfg.Output.ExportHTML)
}

func TestLoadRejectsUnknownLevel(t *testing.T) {
	t.Setenv("RAR_LOG_LEVEL", "verbose")

	_, err := Load(".")
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestValidateRequiresOutputDir(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Level: "info"}}
	assert.Error(t, cfg.Validate())
}

func TestProgramDir(t *testing.T) {
	assert.NotEmpty(t, ProgramDir())
}
