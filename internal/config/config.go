// Package config loads the settings of the calc command from TOML or YAML
// files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding a config file path.
const EnvVar = "CALC_CONFIG"

// Config holds the settings of the calc command. Flags override them.
type Config struct {
	// Prompt is the interactive prompt.
	Prompt string `toml:"prompt" yaml:"prompt"`
	// HistoryFile is where the REPL keeps line history. Environment
	// variables are expanded. Empty disables history.
	HistoryFile string `toml:"history_file" yaml:"history_file"`
	// Color enables styled output.
	Color bool `toml:"color" yaml:"color"`
	// Debug logs tokens and trees of each expression.
	Debug bool `toml:"debug" yaml:"debug"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// Format is the fmt verb for results that aren't integers.
	Format string `toml:"format" yaml:"format"`
	// Mode is the interactive front end, repl or tui.
	Mode string `toml:"mode" yaml:"mode"`
}

// Format is a config file format.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Default returns the settings used when no file sets them.
func Default() *Config {
	return &Config{
		Prompt:      "> ",
		HistoryFile: filepath.Join("$HOME", ".calc_history"),
		Color:       true,
		LogLevel:    "warn",
		Format:      "%g",
		Mode:        "repl",
	}
}

// Load reads a config file. Values the file doesn't set keep their defaults.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(b, detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes config content in the given format over the defaults.
func Parse(content []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover finds the config file to use. An explicit path always wins and
// must exist. Otherwise $CALC_CONFIG and then the default locations are
// tried, and no file at all is not an error.
func Discover(explicit string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	if p := os.Getenv(EnvVar); p != "" {
		cfg, err := Load(p)
		return cfg, p, err
	}
	for _, p := range defaultPaths() {
		if _, err := os.Stat(p); err == nil {
			cfg, err := Load(p)
			return cfg, p, err
		}
	}
	return Default(), "", nil
}

func defaultPaths() []string {
	paths := []string{"./calc.toml", "./calc.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "calc", "config.toml"),
			filepath.Join(home, ".config", "calc", "config.yaml"),
		)
	}
	return paths
}

// detectFormat determines the configuration format from file extension.
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// applyDefaults fills settings that a file set to empty strings.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Prompt == "" {
		c.Prompt = d.Prompt
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Format == "" {
		c.Format = d.Format
	}
	if c.Mode == "" {
		c.Mode = d.Mode
	}
}

func (c *Config) expandEnvVars() {
	c.HistoryFile = os.ExpandEnv(c.HistoryFile)
}

// Validate checks settings that have a fixed set of values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	switch c.Mode {
	case "repl", "tui":
	default:
		return fmt.Errorf("invalid mode %q, want repl or tui", c.Mode)
	}
	if !strings.HasPrefix(c.Format, "%") {
		return fmt.Errorf("invalid format %q, want a fmt verb", c.Format)
	}
	return nil
}

// Histfile returns the expanded history file path.
func (c *Config) Histfile() string {
	return os.ExpandEnv(c.HistoryFile)
}
