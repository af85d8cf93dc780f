// Package logging builds the zap loggers used for advisory diagnostics.
// Library code never logs above warn level on its own; callers that want
// debug traces pass a logger built with New.
package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	defaultOnce   sync.Once
	defaultLogger *zap.Logger
)

// New builds a logger for the supplied level ("debug", "info", "warn",
// "error") and format ("console" or "json"). Unknown levels fall back to
// warn and unknown formats to console.
func New(level, format string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	cfg.Encoding = "console"
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		cfg.Encoding = "json"
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	cfg.Sampling = nil
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger.Named("formstate"), nil
}

// ParseLevel maps a textual level onto a zap level.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// Default returns the shared warn-level console logger. When the logger
// cannot be built the returned logger discards everything.
func Default() *zap.Logger {
	defaultOnce.Do(func() {
		logger, err := New("warn", "console")
		if err != nil {
			logger = zap.NewNop()
		}
		defaultLogger = logger
	})
	return defaultLogger
}

// OrDefault returns logger, or Default when logger is nil.
func OrDefault(logger *zap.Logger) *zap.Logger {
	if logger != nil {
		return logger
	}
	return Default()
}
