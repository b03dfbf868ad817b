// Package logging builds the zap logger. Logs go to stderr so that stdout
// carries only the report.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sparcrar/internal/errors"
)

// New returns a production-configured logger at the given level.
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.DisableStacktrace = lvl > zapcore.DebugLevel

	logger, err := config.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}
	return logger, nil
}
