package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewConsole returns a human-readable logger on w, normally stderr.
// Stdout carries generated text only.
func NewConsole(w io.Writer, level string) zerolog.Logger {
	return NewWithWriter(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}, level)
}

func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
