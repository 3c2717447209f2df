// Package logger builds the zerolog logger used across finmock.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ContextKey is the type for context keys used by the logger.
type ContextKey string

// LoggerKey is the context key for the logger instance.
const LoggerKey ContextKey = "logger"

// New creates a console logger writing to w. Verbose enables debug output,
// quiet limits output to warnings and errors; quiet wins if both are set.
func New(w io.Writer, verbose, quiet bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
	}
	return zerolog.New(output).Level(levelFor(verbose, quiet)).With().Timestamp().Logger()
}

// NewWithWriter creates a JSON logger with a custom writer.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// ForFormat builds a "console" or "json" logger writing to w at the level
// verbose and quiet select. An empty format means console.
func ForFormat(format string, w io.Writer, verbose, quiet bool) (zerolog.Logger, error) {
	switch format {
	case "", "console":
		return New(w, verbose, quiet), nil
	case "json":
		if w == nil {
			w = os.Stderr
		}
		return NewWithWriter(w).Level(levelFor(verbose, quiet)), nil
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q, want console or json", format)
	}
}

func levelFor(verbose, quiet bool) zerolog.Level {
	switch {
	case quiet:
		return zerolog.WarnLevel
	case verbose:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithContext adds the logger to the context.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from the context, or a default stderr logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return logger
	}
	return New(os.Stderr, false, false)
}
