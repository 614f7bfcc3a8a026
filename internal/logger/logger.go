// Package logger builds the zerolog logger shared by the CLI and storage.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w at the given level ("debug",
// "info", "warn", ...). An empty level means info. A nil writer means stderr.
func New(level string, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return zerolog.Nop(), err
		}
		lvl = parsed
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(out).With().Timestamp().Logger().Level(lvl), nil
}
