package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewDiagnostics builds the structured logger used for engine diagnostics
// (gate rejections, collaborator misconfiguration). Game events go through
// EventLogger instead.
//
// Dev mode uses the development encoder at debug level. Otherwise level is
// parsed from the given name ("debug", "info", "warn", "error"); empty means info.
func NewDiagnostics(devMode bool, level string) (*zap.Logger, error) {
	if devMode {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
