// Package config provides configuration loading and validation for chatstat.
package config

import (
	"regexp"

	"github.com/ccollicutt/chatstat/pkg/analyzer"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	TimestampFormat TimestampConfig `yaml:"timestamp_format"`

	// Delimiter separates timestamp, author and text on a message line.
	Delimiter string `yaml:"delimiter" validate:"required"`

	// ParsePolicy decides what happens to lines whose timestamp does not parse.
	ParsePolicy string `yaml:"parse_policy" validate:"oneof=lenient strict"`

	// Normalize folds authors and texts to ASCII.
	Normalize bool `yaml:"normalize,omitempty"`

	// Frame restricts member counts. Nil means the whole chat.
	Frame *analyzer.Frame `yaml:"frame,omitempty" validate:"-"`

	// Keywords are tracked by the frequency command when no --keyword is given.
	Keywords []string `yaml:"keywords,omitempty" validate:"dive,required"`

	LogLevel string `yaml:"log_level" validate:"oneof=trace debug info warn warning error"`
}

// TimestampConfig defines how message lines are recognized and their timestamps parsed.
type TimestampConfig struct {
	// Pattern is a regex a message line must match at its start.
	Pattern string `yaml:"pattern"`

	// Layout is the Go time layout of the timestamp segment.
	// See https://pkg.go.dev/time#pkg-constants for format.
	Layout string `yaml:"layout"`

	// compiledPattern is the pre-compiled regex (populated during validation).
	compiledPattern *regexp.Regexp
}

// CompiledPattern returns the pre-compiled regex pattern.
func (t *TimestampConfig) CompiledPattern() *regexp.Regexp {
	return t.compiledPattern
}
