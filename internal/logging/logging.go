// Package logging builds the application's zap logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Stderr as Config.File sends logs to the terminal instead of a file.
const Stderr = "-"

// Config selects the log level and destination.
type Config struct {
	// Level is debug, info, warn, error or off.
	Level string `mapstructure:"level"`

	// File is the log file path. Empty means DefaultPath, Stderr means
	// console output on stderr.
	File string `mapstructure:"file"`
}

// DefaultPath returns $XDG_STATE_HOME/surfmath/surfmath.log, falling back
// to ~/.local/state.
func DefaultPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "surfmath", "surfmath.log"), nil
}

// New builds a logger. The TUI owns the terminal, so by default logs go to
// a JSON file; Stderr switches to the console encoder.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.Level == "off" {
		return zap.NewNop(), nil
	}

	level := zap.InfoLevel
	if cfg.Level != "" {
		l, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = l
	}

	if cfg.File == Stderr {
		zc := zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		zc.DisableStacktrace = true
		return zc.Build()
	}

	path := cfg.File
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}
