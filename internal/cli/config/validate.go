package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/ebnfgen/internal/cli/output"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !output.Mode(c.OutputFormat).Valid() {
		return fmt.Errorf("invalid output format %q (want one of auto, text, markdown, json, yaml)", c.OutputFormat)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level for the configuration. Verbose forces debug.
func (c *Config) Level() (slog.Level, error) {
	if c.Verbose {
		return slog.LevelDebug, nil
	}
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	level, ok := logLevels[strings.ToLower(c.LogLevel)]
	if !ok {
		return 0, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", c.LogLevel)
	}
	return level, nil
}
