package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "maintenance-service"

// New builds the process logger: human readable output in development, JSON
// everywhere else.
func New(env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.DebugLevel
	if env == "production" {
		level = zerolog.InfoLevel
	}

	var base zerolog.Logger
	if env == "development" {
		base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	} else {
		base = zerolog.New(os.Stdout)
	}

	return base.Level(level).With().
		Timestamp().
		Str("service", serviceName).
		Str("env", env).
		Logger()
}
