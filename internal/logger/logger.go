// Package logger builds the root zerolog logger for the process.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing JSON lines in production and a human readable
// console format everywhere else. Unknown levels fall back to info.
func New(level string, production bool) zerolog.Logger {
	return newWithWriter(level, production, os.Stdout)
}

func newWithWriter(level string, production bool, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = out
	if !production {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "carwash-backend").
		Logger()
}
