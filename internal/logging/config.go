// Package logging builds the zerolog logger shared by the loader registry and
// the accessor generator.
//
// The library is silent unless FASTREFLECT_LOG_LEVEL is set.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel   = "FASTREFLECT_LOG_LEVEL"
	EnvLogConsole = "FASTREFLECT_LOG_CONSOLE"
)

type Config struct {
	Level   zerolog.Level
	Console bool
	Out     io.Writer
}

var (
	configureOnce sync.Once
	logger        zerolog.Logger
)

// Logger returns the process-wide library logger, configuring it from the
// environment on first use.
func Logger() zerolog.Logger {
	configureOnce.Do(func() {
		cfg := DefaultConfig()
		applyEnvOverrides(&cfg)
		logger = New(cfg)
	})

	return logger
}

func DefaultConfig() Config {
	return Config{
		Level: zerolog.Disabled,
		Out:   os.Stderr,
	}
}

// New builds a logger from cfg. It never fails: a nil writer discards output.
func New(cfg Config) zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = io.Discard
	}

	if cfg.Console {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).Level(cfg.Level).With().Timestamp().Str("lib", "fastreflect").Logger()
}

func applyEnvOverrides(cfg *Config) {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}

	if v, ok := parseBool(os.Getenv(EnvLogConsole)); ok {
		cfg.Console = v
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return zerolog.NoLevel, false
	}

	if raw == "off" || raw == "none" {
		return zerolog.Disabled, true
	}

	lvl, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.NoLevel, false
	}

	return lvl, true
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}

	return v, true
}
