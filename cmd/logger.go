package cmd

import (
	"io"

	"github.com/rs/zerolog"
)

// newLogger returns a JSON logger writing to w, or a console logger when human
// is set. Debug lowers the level from info to debug.
func newLogger(w io.Writer, debug, human bool) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if human {
		w = zerolog.ConsoleWriter{Out: w}
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
