// Package logger provides structured logging for the hospital game.
// Every state transition of the level engine should be traceable through this.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Format selects the encoding of log lines.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Logger provides structured logging with context.
type Logger struct {
	zl zerolog.Logger
}

// NewLogger creates a logger writing to stderr. Stdout belongs to the game view.
func NewLogger(level string, format Format) *Logger {
	return NewLoggerTo(os.Stderr, level, format)
}

// NewLoggerTo creates a logger writing to w.
func NewLoggerTo(w io.Writer, level string, format Format) *Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if format != FormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.TimeOnly,
			NoColor:    !isTerminal(w),
		}
	}

	zl := zerolog.New(out).Level(lvl).With().Timestamp().Str("component", "hospital").Logger()
	return &Logger{zl: zl}
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Info logs informational messages.
func (l *Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

// Warn logs warning messages.
func (l *Logger) Warn(msg string) {
	l.zl.Warn().Msg(msg)
}

// Error logs error messages.
func (l *Logger) Error(msg string) {
	l.zl.Error().Msg(msg)
}

// Event logs a specific game event with the actor that caused it.
func (l *Logger) Event(eventType string, actorID string, details string) {
	l.zl.Info().
		Str("event", eventType).
		Str("actor", actorID).
		Msg(details)
}

// Zerolog exposes the underlying logger for callers that need typed fields.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zl
}
