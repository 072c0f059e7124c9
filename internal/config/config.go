package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/MeKo-Tech/scancode/internal/textnorm"
	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

// Config represents the complete configuration of a scancode parser. It can
// be loaded from configuration files and environment variables.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`

	Parser ParserConfig `mapstructure:"parser" yaml:"parser" json:"parser"`

	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
}

// ParserConfig controls which formats are tried and how input is prepared.
type ParserConfig struct {
	// Formats restricts the candidate formats. Empty means all formats.
	Formats []string `mapstructure:"formats" yaml:"formats" json:"formats"`
	// Normalize names a Unicode normalization form (NFC, NFD, NFKC, NFKD)
	// applied before parsing. Empty disables normalization.
	Normalize string `mapstructure:"normalize" yaml:"normalize" json:"normalize"`
	TrimSpace bool   `mapstructure:"trim_space" yaml:"trim_space" json:"trim_space"`
}

// MetricsConfig toggles prometheus instrumentation.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Parser: ParserConfig{
			Formats:   []string{},
			Normalize: "",
			TrimSpace: false,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	for _, name := range c.Parser.Formats {
		if _, ok := barcode.ParseType(name); !ok {
			return fmt.Errorf("invalid parser format: %s", name)
		}
	}

	if c.Parser.Normalize != "" {
		if _, err := textnorm.ParseForm(c.Parser.Normalize); err != nil {
			return fmt.Errorf("invalid normalization form: %s (must be one of: NFC, NFD, NFKC, NFKD)", c.Parser.Normalize)
		}
	}

	return nil
}

// SlogLevel maps LogLevel to a slog level. Unknown values map to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FormatTypes resolves Parser.Formats. Call Validate first; unknown names
// are skipped.
func (c *Config) FormatTypes() []barcode.Type {
	types := make([]barcode.Type, 0, len(c.Parser.Formats))
	for _, name := range c.Parser.Formats {
		if t, ok := barcode.ParseType(name); ok {
			types = append(types, t)
		}
	}
	return types
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
