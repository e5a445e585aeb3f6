// Package logging sets up the structured logger used throughout zmux. A
// TUI session cannot write its own logs to stderr without corrupting the
// alternate screen buffer, so the logger is always pointed at a rotating
// file sink instead.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Result bundles the logger returned by Setup together with the sink it
// writes to, so the caller can close it on shutdown.
type Result struct {
	Logger *slog.Logger
	Sink   io.Closer
	Path   string
}

// Close closes the underlying log sink, if any.
func (r *Result) Close() error {
	if r.Sink != nil {
		return r.Sink.Close()
	}
	return nil
}

// RotationConfig tunes the lumberjack-backed rotating file sink.
type RotationConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Setup creates a JSON logger that writes to logDir/zmux.log through a
// rotating sink, so long-lived attached sessions don't grow the log file
// without bound.
func Setup(logDir string, level slog.Leveler, rot RotationConfig) (*Result, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(logDir, "zmux.log")

	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rot.MaxSizeMB,
		MaxBackups: rot.MaxBackups,
		MaxAge:     rot.MaxAgeDays,
		Compress:   rot.Compress,
	}

	logger := slog.New(slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: level}))

	return &Result{Logger: logger, Sink: sink, Path: path}, nil
}

// SetupWithWriter creates a logger over an arbitrary writer, bypassing
// file rotation entirely. Useful for tests that want to capture output.
func SetupWithWriter(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
