// internal/logger/logger.go

package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string // trace, debug, info, warn, error
	Format     string // json, console
	TimeFormat string // Go time layout
	Output     string // stdout, stderr, or file path
}

// DefaultConfig returns the configuration used when none is loaded
func DefaultConfig() LogConfig {
	return LogConfig{
		Level:      "info",
		Format:     "console",
		TimeFormat: time.RFC3339,
		Output:     "stdout",
	}
}

// Setup initializes the global logger. The returned closer releases a log
// file opened for Output; it is a no-op for stdout and stderr.
func Setup(config LogConfig) (io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(level)

	var (
		output io.Writer
		closer io.Closer = nopCloser{}
	)
	switch config.Output {
	case "", "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		output, closer = file, file
	}

	if strings.ToLower(config.Format) != "json" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: config.TimeFormat,
		}
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	log.Logger = zerolog.New(output).With().
		Timestamp().
		Logger()

	return closer, nil
}

// WithComponent returns a logger with a component field
func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
