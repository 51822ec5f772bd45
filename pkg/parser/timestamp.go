package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// TimestampExtractor recognizes date-prefixed lines and parses their timestamp segment.
type TimestampExtractor struct {
	pattern *regexp.Regexp
	layout  string
}

// NewTimestampExtractor creates a new timestamp extractor.
// A nil pattern falls back to DefaultDatePattern, an empty layout to DefaultLayout.
func NewTimestampExtractor(pattern *regexp.Regexp, layout string) *TimestampExtractor {
	if pattern == nil {
		pattern = regexp.MustCompile(DefaultDatePattern)
	}
	if layout == "" {
		layout = DefaultLayout
	}
	return &TimestampExtractor{
		pattern: pattern,
		layout:  layout,
	}
}

// Match reports whether the line starts like a message line.
func (e *TimestampExtractor) Match(line string) bool {
	return e.pattern.MatchString(line)
}

// Parse parses the timestamp segment of a message line.
func (e *TimestampExtractor) Parse(segment string) (time.Time, error) {
	ts, err := time.Parse(e.layout, strings.TrimSpace(segment))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", segment, err)
	}
	return ts, nil
}

// Layout returns the time layout in use.
func (e *TimestampExtractor) Layout() string {
	return e.layout
}
