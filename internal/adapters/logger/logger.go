// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	charmlog "github.com/charmbracelet/log"
	"go.trai.ch/buildsrc/internal/core/ports"
	"go.trai.ch/zerr"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger writing human-readable output to stderr.
func New() ports.Logger {
	l := &Logger{output: os.Stderr}
	l.logger = slog.New(l.handler())
	return l
}

// handler builds the slog handler for the current mode. Callers hold mu or own l exclusively.
func (l *Logger) handler() slog.Handler {
	if l.jsonMode {
		return slog.NewJSONHandler(l.output, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return charmlog.NewWithOptions(l.output, charmlog.Options{
		Level:  charmlog.InfoLevel,
		Prefix: "buildsrc",
	})
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(l.handler())
}

// SetJSON switches between JSON and human-readable logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.logger = slog.New(l.handler())
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg, args...)
}

// Error logs an error together with any zerr metadata attached to it.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", errorArgs(err)...)
}

func errorArgs(err error) []any {
	args := []any{"error", err}

	meta := make(map[string]any)
	collectMetadata(err, meta)
	for _, k := range slices.Sorted(maps.Keys(meta)) {
		args = append(args, k, meta[k])
	}
	return args
}

// collectMetadata merges the zerr metadata of every error in the chain into meta.
// Keys set closer to the top of the chain win.
func collectMetadata(err error, meta map[string]any) {
	for err != nil {
		if zErr, ok := err.(*zerr.Error); ok {
			for k, v := range zErr.Metadata() {
				if _, seen := meta[k]; !seen {
					meta[k] = v
				}
			}
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				collectMetadata(e, meta)
			}
			return
		}
		err = errors.Unwrap(err)
	}
}
