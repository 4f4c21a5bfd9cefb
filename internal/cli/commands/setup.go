package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/ebnfgen/internal/cli/config"
	"github.com/leapstack-labs/ebnfgen/internal/cli/output"
	"github.com/leapstack-labs/ebnfgen/internal/engine"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
// Config and renderer come from the command context when the root command
// stored them there. A non-empty grammarName takes precedence over the
// configured one.
func NewCommandContext(cmd *cobra.Command, grammarName string) *CommandContext {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	if cfg == nil {
		cfg = getConfig()
	}
	logger := config.GetLogger(ctx)

	if grammarName == "" {
		grammarName = cfg.GrammarName
	}
	eng := engine.New(engine.Config{
		GrammarName: grammarName,
		Logger:      logger,
	})

	r := output.FromContext(ctx)
	if r == nil {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: r,
	}
}

// InputPaths returns args, or the configured input when args is empty.
func (c *CommandContext) InputPaths(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return []string{c.Cfg.Input}
}

// ReadInput reads the grammar description at path.
func (c *CommandContext) ReadInput(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		return "", fmt.Errorf("failed to read grammar: %w", err)
	}
	return string(data), nil
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		Input:        getEnvOrDefault(config.EnvPrefix+"INPUT", config.DefaultInput),
		GrammarName:  os.Getenv(config.EnvPrefix + "GRAMMAR_NAME"),
		OutDir:       os.Getenv(config.EnvPrefix + "OUT_DIR"),
		Verbose:      os.Getenv(config.EnvPrefix+"VERBOSE") == "true",
		OutputFormat: getEnvOrDefault(config.EnvPrefix+"OUTPUT", config.DefaultOutput),
		LogLevel:     getEnvOrDefault(config.EnvPrefix+"LOG_LEVEL", config.DefaultLogLevel),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// firstNonEmpty returns the first non-empty value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
