package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/markdave123-py/speechkit/internal/config"
)

type Logger = zerolog.Logger

// NewLogger builds the process logger from config. Pretty output is meant for
// local runs; deployments get one JSON object per line.
func NewLogger(cfg *config.Config) Logger {
	return newLogger(os.Stderr, cfg.LogLevel, cfg.LogPretty)
}

func newLogger(out io.Writer, levelStr string, pretty bool) Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"}
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil || levelStr == "" {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Str("service", "speechkit").Logger()
}
