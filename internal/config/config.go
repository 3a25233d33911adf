// Package config loads and validates application settings from configuration
// files, environment variables, and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/MeKo-Tech/langtab/internal/data"
	"github.com/MeKo-Tech/langtab/internal/detect"
)

// Config is the complete application configuration. It covers every command
// (detect, languages, info, compare, batch, serve); values come from
// langtab.yaml, LANGTAB_* environment variables, and flags, in ascending
// precedence.
type Config struct {
	// Global settings
	DataDir  string `mapstructure:"data_dir" yaml:"data_dir" json:"data_dir"`
	FreqDir  string `mapstructure:"freq_dir" yaml:"freq_dir" json:"freq_dir"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Engine tunables
	Detect DetectConfig `mapstructure:"detect" yaml:"detect" json:"detect"`

	// Output formatting
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server settings (serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Batch processing settings
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// DetectConfig mirrors the engine tunables so they can be set from files and
// environment variables.
type DetectConfig struct {
	PriorWeight   float64 `mapstructure:"prior_weight" yaml:"prior_weight" json:"prior_weight"`
	FreqWeight    float64 `mapstructure:"freq_weight" yaml:"freq_weight" json:"freq_weight"`
	CharWeight    float64 `mapstructure:"char_weight" yaml:"char_weight" json:"char_weight"`
	TopK          int     `mapstructure:"top_k" yaml:"top_k" json:"top_k"`
	MaxCandidates int     `mapstructure:"max_candidates" yaml:"max_candidates" json:"max_candidates"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format         string `mapstructure:"format" yaml:"format" json:"format"`
	File           string `mapstructure:"file" yaml:"file" json:"file"`
	ScorePrecision int    `mapstructure:"score_precision" yaml:"score_precision" json:"score_precision"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string  `mapstructure:"host" yaml:"host" json:"host"`
	Port            int     `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string  `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxBodyKB       int     `mapstructure:"max_body_kb" yaml:"max_body_kb" json:"max_body_kb"`
	TimeoutSec      int     `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int     `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	RateLimitRPS    float64 `mapstructure:"rate_limit_rps" yaml:"rate_limit_rps" json:"rate_limit_rps"`
	RateLimitBurst  int     `mapstructure:"rate_limit_burst" yaml:"rate_limit_burst" json:"rate_limit_burst"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers         int      `mapstructure:"workers" yaml:"workers" json:"workers"`
	Recursive       bool     `mapstructure:"recursive" yaml:"recursive" json:"recursive"`
	Include         []string `mapstructure:"include" yaml:"include" json:"include"`
	Exclude         []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
	ContinueOnError bool     `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
}

// DefaultConfig returns a configuration with sensible defaults. The detect
// section mirrors the engine's canonical constants so the two never drift.
func DefaultConfig() Config {
	engine := detect.DefaultConfig()
	return Config{
		DataDir:  "", // empty selects the embedded dataset
		FreqDir:  "",
		LogLevel: "info",
		Verbose:  false,
		Detect: DetectConfig{
			PriorWeight:   engine.PriorWeight,
			FreqWeight:    engine.FreqWeight,
			CharWeight:    engine.CharWeight,
			TopK:          engine.TopK,
			MaxCandidates: engine.MaxCandidates,
		},
		Output: OutputConfig{
			Format:         "text",
			ScorePrecision: 4,
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxBodyKB:       512,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
			RateLimitRPS:    10,
			RateLimitBurst:  20,
		},
		Batch: BatchConfig{
			Workers:         4,
			Recursive:       true,
			ContinueOnError: false,
		},
	}
}

// Validate checks the configuration and returns the first error found.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validFormats := []string{"text", "json", "csv"}
	if c.Output.Format != "" && !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)",
			c.Output.Format, strings.Join(validFormats, ", "))
	}
	if c.Output.ScorePrecision < 0 || c.Output.ScorePrecision > 10 {
		return fmt.Errorf("invalid score precision: %d (must be between 0 and 10)",
			c.Output.ScorePrecision)
	}

	if err := c.ToDetectConfig().Validate(); err != nil {
		return fmt.Errorf("invalid detect settings: %w", err)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxBodyKB <= 0 {
		return fmt.Errorf("invalid max body size: %d KB (must be positive)", c.Server.MaxBodyKB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid request timeout: %d (must be positive)", c.Server.TimeoutSec)
	}
	if c.Server.RateLimitRPS < 0 || c.Server.RateLimitBurst < 0 {
		return fmt.Errorf("invalid rate limit: %.1f rps burst %d (must be non-negative)",
			c.Server.RateLimitRPS, c.Server.RateLimitBurst)
	}

	if c.Batch.Workers <= 0 {
		return fmt.Errorf("invalid batch workers: %d (must be positive)", c.Batch.Workers)
	}

	return nil
}

// ToDetectConfig converts the detect section into the engine configuration.
func (c *Config) ToDetectConfig() detect.Config {
	return detect.Config{
		PriorWeight:   c.Detect.PriorWeight,
		FreqWeight:    c.Detect.FreqWeight,
		CharWeight:    c.Detect.CharWeight,
		TopK:          c.Detect.TopK,
		MaxCandidates: c.Detect.MaxCandidates,
	}
}

// ToDataConfig resolves the dataset locations, folding in the environment
// overrides the data package recognizes.
func (c *Config) ToDataConfig() data.Config {
	return data.ResolveConfig(c.DataDir, c.FreqDir)
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
