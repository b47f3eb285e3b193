// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"go.trai.ch/zerr"

	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
}

// New creates a Logger writing human-readable text to stderr.
func New() *Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a Logger writing to w.
func NewWithWriter(w io.Writer) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &Logger{logger: slog.New(handler)}
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.logger.Warn(msg)
}

// Error logs an error. Structured metadata attached via zerr surfaces as
// log attributes.
func (l *Logger) Error(err error) {
	args := []any{"error", err}
	var zErr *zerr.Error
	if errors.As(err, &zErr) {
		for k, v := range zErr.Metadata() {
			args = append(args, k, v)
		}
	}
	l.logger.Error("operation failed", args...)
}
