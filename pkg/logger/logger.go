// Package logger configures the zerolog logger used for diagnostics.
// User-facing output goes through pkg/console; this logger writes to stderr.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a console-formatted zerolog logger. Verbose enables debug level.
func New(verbose bool) zerolog.Logger {
	return NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}, verbose)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", "bedrock-profiles").
		Logger()
}

// Nop returns a logger that discards everything (tests).
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
