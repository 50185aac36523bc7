package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration
type Config struct {
	// Level is one of zerolog's level strings: debug, info, warn, error.
	Level string
	// Pretty switches to the human-readable console writer; default is JSON.
	Pretty bool
}

// Setup configures the process-wide zerolog logger. Call once at startup,
// before anything logs.
func Setup(cfg Config) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stdout)
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	log.Logger = logger.Level(level).With().Timestamp().Logger()
}
