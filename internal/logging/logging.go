package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/indigo-web/minihttp/config"
	"github.com/rs/zerolog"
)

// New builds the process-wide logger. The level name must be known to zerolog, empty
// name stands for info.
func New(cfg config.Log, w io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if len(cfg.Level) > 0 {
		var err error
		level, err = zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logging: %w", err)
		}
	}

	if cfg.Pretty {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.TimeOnly,
			NoColor:    true,
		}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}
