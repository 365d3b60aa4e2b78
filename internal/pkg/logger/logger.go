// Package logger owns the process-wide zerolog logger. Services get a copy by
// injection; the package-level helpers serve code that runs before wiring.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var current zerolog.Logger

// LogLevel is a level name as written in configuration
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

type Config struct {
	Level  LogLevel
	Pretty bool      // console output instead of JSON
	Output io.Writer // os.Stdout when nil
}

// ParseLevel is case-insensitive and falls back to info.
func ParseLevel(level LogLevel) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(string(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Configure replaces the global logger, including zerolog's log.Logger.
func Configure(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))

	current = zerolog.New(out).With().Timestamp().Logger()
	log.Logger = current
	return current
}

func Debug() *zerolog.Event { return current.Debug() }
func Info() *zerolog.Event  { return current.Info() }
func Warn() *zerolog.Event  { return current.Warn() }
func Error() *zerolog.Event { return current.Error() }

// Fatal exits the process after the event is written.
func Fatal() *zerolog.Event { return current.Fatal() }

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true})
}
