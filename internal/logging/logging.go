// Package logging builds slog loggers backed by zerolog.
//
// Every package logs through *slog.Logger; this package is the only one
// that knows zerolog is underneath.
//
//	log := logging.New(logging.Config{Level: "debug", Format: "console"})
//	log.Debug("implicit tag resolved", "field", "name", "tag", "like")
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum level: debug, info, warn, error.
	// Default: warn
	Level string

	// Format is console or json.
	// Default: console
	Format string

	// Output receives log lines.
	// Default: os.Stderr
	Output io.Writer
}

// New returns a logger for cfg.
func New(cfg Config) *slog.Logger {
	return slog.New(NewHandler(Zerolog(cfg)))
}

// Zerolog builds the underlying zerolog logger for cfg.
func Zerolog(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	output := cfg.Output
	if cfg.Format != "json" {
		output = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: time.TimeOnly,
			NoColor:    true,
		}
	}

	return zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().Timestamp().Logger()
}

// ParseLevel converts a level name to a zerolog level. Unknown names
// map to warn.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}
