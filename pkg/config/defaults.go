package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/ccollicutt/chatstat/pkg/parser"
)

// Default values for configuration.
const (
	DefaultLogLevel = "warn"
	EnvPrefix       = "CHATSTAT"
)

// envOverrides lists the settings that can be overridden with CHATSTAT_* variables.
type envOverrides struct {
	TimestampLayout string `envconfig:"TIMESTAMP_LAYOUT"`
	ParsePolicy     string `envconfig:"PARSE_POLICY"`
	LogLevel        string `envconfig:"LOG_LEVEL"`
	Normalize       *bool  `envconfig:"NORMALIZE"`
}

// DefaultConfig returns a configuration for the "M/D/YY, H:MM:SS AM: Author: text" export format.
func DefaultConfig() *Config {
	return &Config{
		TimestampFormat: TimestampConfig{
			Pattern: parser.DefaultDatePattern,
			Layout:  parser.DefaultLayout,
		},
		Delimiter:   parser.DefaultDelimiter,
		ParsePolicy: string(parser.PolicyLenient),
		LogLevel:    DefaultLogLevel,
	}
}

// applyEnvironmentOverrides applies CHATSTAT_* environment variables to the config.
func (c *Config) applyEnvironmentOverrides() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	if env.TimestampLayout != "" {
		c.TimestampFormat.Layout = env.TimestampLayout
	}
	if env.ParsePolicy != "" {
		c.ParsePolicy = env.ParsePolicy
	}
	if env.LogLevel != "" {
		c.LogLevel = env.LogLevel
	}
	if env.Normalize != nil {
		c.Normalize = *env.Normalize
	}
	return nil
}
