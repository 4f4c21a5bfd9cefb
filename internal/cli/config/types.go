// Package config provides configuration management for the ebnfgen CLI.
//
// Values are layered, highest priority first: explicitly set flags,
// EBNFGEN_* environment variables, the config file, then defaults.
package config

// Config holds all CLI configuration options.
type Config struct {
	// Input is the grammar description read when no file argument is given.
	Input string `koanf:"input"`
	// GrammarName overrides the name derived from the input file.
	GrammarName string `koanf:"grammar_name"`
	// OutDir receives <Name>.g4 files instead of stdout.
	OutDir       string `koanf:"out_dir"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
	LogLevel     string `koanf:"log_level"`
}

// Default configuration values.
const (
	DefaultInput    = "type-expressions.ebnf"
	DefaultOutput   = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel = "warn"
	EnvPrefix       = "EBNFGEN_"
)

// ConfigFileNames are searched in the working directory, in order.
var ConfigFileNames = []string{"ebnfgen.yaml", "ebnfgen.yml"}
