// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-rsphrase.
//
// go-rsphrase is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package config loads rsphrase settings from a YAML file, RSPHRASE_*
// environment variables and bound command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-rsphrase/pkg/erasure"
	"github.com/jeremyhahn/go-rsphrase/pkg/words"
)

// EnvPrefix is prepended to every environment override, e.g.
// RSPHRASE_SHARES_REQUIRED=4.
const EnvPrefix = "RSPHRASE"

// Keys as seen by viper. Nested keys use dots; the environment form
// replaces them with underscores.
const (
	KeyEncoding       = "encoding"
	KeySharesTotal    = "shares.total"
	KeySharesRequired = "shares.required"
	KeySharesWords    = "shares.words"
	KeyWordList       = "wordlist"
	KeyOutput         = "output"
	KeyVerbose        = "verbose"
	KeyMetricsEnabled = "metrics.enabled"
	KeyMetricsPath    = "metrics.path"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config represents the complete rsphrase configuration
type Config struct {
	// Encoding is the default erasure code for encode, in rs=N.M form
	Encoding string `json:"encoding" yaml:"encoding" mapstructure:"encoding"`

	Shares  SharesConfig  `json:"shares" yaml:"shares" mapstructure:"shares"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" mapstructure:"metrics"`

	// WordList is a path to a 256-word vocabulary. Empty selects the
	// built-in list.
	WordList string `json:"wordlist" yaml:"wordlist" mapstructure:"wordlist"`

	Output  string `json:"output" yaml:"output" mapstructure:"output"`
	Verbose bool   `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
}

// SharesConfig holds the default secret-sharing parameters
type SharesConfig struct {
	Total    int `json:"total" yaml:"total" mapstructure:"total"`
	Required int `json:"required" yaml:"required" mapstructure:"required"`
	Words    int `json:"words" yaml:"words" mapstructure:"words"`
}

// MetricsConfig controls metric collection and the optional text dump
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" yaml:"path" mapstructure:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Encoding: "rs=6.4",
		Shares: SharesConfig{
			Total:    6,
			Required: 3,
			Words:    12,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Output: OutputText,
	}
}

// SetDefaults registers Default() with v so that environment variables
// resolve for every key.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyEncoding, d.Encoding)
	v.SetDefault(KeySharesTotal, d.Shares.Total)
	v.SetDefault(KeySharesRequired, d.Shares.Required)
	v.SetDefault(KeySharesWords, d.Shares.Words)
	v.SetDefault(KeyWordList, d.WordList)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyVerbose, d.Verbose)
	v.SetDefault(KeyMetricsEnabled, d.Metrics.Enabled)
	v.SetDefault(KeyMetricsPath, d.Metrics.Path)
}

// NewViper returns a viper instance with defaults and environment
// overrides wired.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the YAML file at path (when non-empty) into v, unmarshals the
// merged settings and validates them.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = NewViper()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if _, err := c.EncodingValue(); err != nil {
		return err
	}

	if c.Shares.Required < 1 {
		return fmt.Errorf("%w: shares.required must be at least 1, got %d", ErrInvalidConfig, c.Shares.Required)
	}
	if c.Shares.Total <= c.Shares.Required {
		return fmt.Errorf("%w: shares.total (%d) must exceed shares.required (%d)",
			ErrInvalidConfig, c.Shares.Total, c.Shares.Required)
	}
	if c.Shares.Total > erasure.MaxChunks {
		return fmt.Errorf("%w: shares.total cannot exceed %d, got %d",
			ErrInvalidConfig, erasure.MaxChunks, c.Shares.Total)
	}
	if c.Shares.Words < 1 {
		return fmt.Errorf("%w: shares.words must be at least 1, got %d", ErrInvalidConfig, c.Shares.Words)
	}

	switch strings.ToLower(c.Output) {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: invalid output format %q (must be text, json, or yaml)", ErrInvalidConfig, c.Output)
	}
	return nil
}

// EncodingValue parses the configured encoding.
func (c *Config) EncodingValue() (erasure.Encoding, error) {
	enc, err := erasure.ParseEncoding(c.Encoding)
	if err != nil {
		return erasure.Encoding{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return enc, nil
}

// Codec returns the configured vocabulary, loading it from disk when a
// path is set.
func (c *Config) Codec() (words.Codec, error) {
	if c.WordList == "" {
		return words.Default(), nil
	}
	return words.Load(c.WordList)
}
