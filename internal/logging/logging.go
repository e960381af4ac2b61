// Package logging builds the file-backed zap logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// Options configures New.
type Options struct {
	Path    string
	Level   string
	Verbose bool
}

// ParseLevel maps a config value to a zap level. Empty means DefaultLevel.
func ParseLevel(value string) (zapcore.Level, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		value = DefaultLevel
	}
	level, err := zapcore.ParseLevel(value)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q", value)
	}
	return level, nil
}

// New builds a JSON logger that appends to opts.Path. The terminal belongs to
// the UI, so nothing is written to stdout or stderr.
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	if opts.Path == "" {
		return nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{opts.Path}
	config.ErrorOutputPaths = []string{opts.Path}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Sampling = nil
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
