// Package config – config.go defines the configuration structures for the
// nextedit tools.
package config

import (
	"fmt"

	"github.com/jholhewres/nextedit/pkg/nextedit/prompt"
)

// Config holds all tool configuration.
type Config struct {
	// Format is the prompt format used when no --format flag is given.
	// Accepts any unique substring of a format name (e.g. "180", "seed").
	Format string `yaml:"format"`

	// MaxTokens is the prompt token budget (default: 4096).
	MaxTokens int `yaml:"max_tokens"`

	// Capture configures request capture for offline inspection.
	Capture CaptureConfig `yaml:"capture"`

	// Logging configures log output.
	Logging LoggingConfig `yaml:"logging"`
}

// CaptureConfig configures the request capture store.
type CaptureConfig struct {
	// Enabled turns request capture on/off (default: false).
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file path (default: "./data/captures.db").
	Path string `yaml:"path"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level is the log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the log format ("json", "text").
	Format string `yaml:"format"`
}

// DefaultConfig returns the default tool configuration.
func DefaultConfig() *Config {
	return &Config{
		Format:    prompt.DefaultFormat.String(),
		MaxTokens: prompt.MaxPromptTokens,
		Capture: CaptureConfig{
			Enabled: false,
			Path:    "./data/captures.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the configuration for values the tools cannot work with.
func (c *Config) Validate() error {
	if _, err := prompt.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format %q", c.Logging.Format)
	}
	return nil
}

// PromptFormat resolves the configured format name to its Format value.
func (c *Config) PromptFormat() (prompt.Format, error) {
	return prompt.ParseFormat(c.Format)
}
