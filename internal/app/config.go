package app

import (
	"errors"
	"fmt"
)

// Config holds everything an App needs for one assembly pass.
type Config struct {
	// Paths are .hcl files or directories of them.
	Paths []string
	// IncludeBuiltins adds the compiled-in configuration fragments.
	IncludeBuiltins bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 && !cfg.IncludeBuiltins {
		return nil, errors.New("nothing to assemble: give at least one path or enable the built-in working points")
	}

	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	cfg.Paths = append([]string(nil), cfg.Paths...)
	return &cfg, nil
}
