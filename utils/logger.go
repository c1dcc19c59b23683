package utils

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger provides leveled logging throughout the application.
// Messages keep the printf style used by every component; zerolog handles
// levels, timestamps and console rendering.
type Logger struct {
	zl zerolog.Logger
}

// NewLogger creates a Logger writing coloured console output to stdout.
func NewLogger() *Logger {
	return NewLoggerTo(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	})
}

// NewLoggerTo creates a Logger writing to w. Tests pass a buffer or io.Discard.
func NewLoggerTo(w io.Writer) *Logger {
	zl := zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	return &Logger{zl: zl}
}

// SetLevel changes the minimum level. Unknown names leave the level unchanged.
func (l *Logger) SetLevel(name string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || lvl == zerolog.NoLevel {
		return
	}
	l.zl = l.zl.Level(lvl)
}

func (l *Logger) Info(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}
