// Package logger provides leveled logging for pew on top of log/slog.
//
// Errors are always written. Debug, Info and Warn records are written only
// in verbose mode (the --verbose flag or log.verbose), which is how operators
// follow a request through the export pipeline.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu    sync.RWMutex
	level = new(slog.LevelVar)
	std   = newLogger(os.Stderr)
)

func init() {
	level.Set(slog.LevelError)
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	if v {
		level.Set(slog.LevelDebug)
		return
	}
	level.Set(slog.LevelError)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	return level.Level() <= slog.LevelDebug
}

// SetOutput redirects log records, e.g. to a buffer in tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	std = newLogger(w)
}

// Logger returns the underlying slog logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

func logf(lvl slog.Level, format string, args ...any) {
	l := Logger()
	ctx := context.Background()
	if !l.Enabled(ctx, lvl) {
		return
	}
	l.Log(ctx, lvl, fmt.Sprintf(format, args...))
}

// Debug logs a formatted message in verbose mode.
func Debug(format string, args ...any) {
	logf(slog.LevelDebug, format, args...)
}

// Section marks the start of a pipeline stage in verbose mode.
func Section(name string) {
	if IsVerbose() {
		Logger().Debug("section", "name", name)
	}
}

// Info logs a formatted message in verbose mode.
func Info(format string, args ...any) {
	logf(slog.LevelInfo, format, args...)
}

// Warn logs a formatted message in verbose mode.
func Warn(format string, args ...any) {
	logf(slog.LevelWarn, format, args...)
}

// Error logs a formatted message regardless of verbose mode.
func Error(format string, args ...any) {
	logf(slog.LevelError, format, args...)
}
