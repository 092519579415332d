// Package logging builds the process diagnostic logger.
package logging

import (
	"fmt"
	"log"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config selects the logger level and encoding.
type Config struct {
	Level  string
	Format string
}

// New builds a zap logger for cfg.
//
// The console format uses the development encoder with colorless levels; the
// json format uses the production encoder. Both write to stderr.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", FormatConsole:
		zc = zap.NewDevelopmentConfig()
		zc.Development = false
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case FormatJSON:
		zc = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// ParseLevel converts a level name into a zap level. Blank means info.
func ParseLevel(raw string) (zapcore.Level, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(raw)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}

// StdLogger adapts logger for APIs that take a standard library logger, such
// as http.Server.ErrorLog and the request access log.
func StdLogger(logger *zap.Logger) *log.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return zap.NewStdLog(logger)
}
