// Package detector guesses the timestamp layout of a chat export.
package detector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ccollicutt/chatstat/pkg/config"
	"github.com/ccollicutt/chatstat/pkg/parser"
)

const byteOrderMark = "\uFEFF"

// DetectionResult holds the result of analyzing a chat export.
type DetectionResult struct {
	Matches       []FormatMatch // Formats that matched, sorted by confidence descending
	SampledLines  int           // Number of lines sampled
	ParsedLines   int           // Number of lines parsed by the best match
	AmbiguityNote string        // Set when another format parses as many lines as the best one
}

// FormatMatch represents a format that matched with its confidence score.
type FormatMatch struct {
	Format     *TimestampFormat
	Confidence float64   // 0.0 to 1.0 (share of sampled lines parsed)
	MatchCount int       // Number of lines parsed
	SampleLine string    // Example line that parsed
	ParsedTime time.Time // Parsed timestamp from sample
}

// Config returns a configuration that reads exports in this format.
func (m *FormatMatch) Config() *config.Config {
	cfg := config.DefaultConfig()
	cfg.TimestampFormat.Pattern = parser.DefaultDatePattern
	cfg.TimestampFormat.Layout = m.Format.Layout
	return cfg
}

// Detector samples chat exports to identify their timestamp format.
type Detector struct {
	formats    []*TimestampFormat
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithFormats replaces the candidate formats.
func WithFormats(formats []*TimestampFormat) Option {
	return func(d *Detector) {
		if len(formats) > 0 {
			d.formats = formats
		}
	}
}

// New creates a new Detector with default formats.
func New(opts ...Option) *Detector {
	d := &Detector{
		formats:    DefaultFormats(),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile samples the export at path and returns detected formats.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines tests every line against every format.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{
		SampledLines: len(lines),
	}

	if len(lines) == 0 {
		return result
	}

	for _, format := range d.formats {
		match := FormatMatch{Format: format}
		for _, line := range lines {
			line = strings.TrimSpace(line)
			groups := format.Pattern.FindStringSubmatch(line)
			if len(groups) < 2 {
				continue
			}
			ts, err := time.Parse(format.Layout, groups[1])
			if err != nil {
				continue
			}
			if match.MatchCount == 0 {
				match.SampleLine = line
				match.ParsedTime = ts
			}
			match.MatchCount++
		}
		if match.MatchCount > 0 {
			match.Confidence = float64(match.MatchCount) / float64(len(lines))
			result.Matches = append(result.Matches, match)
		}
	}

	// Stable so the earlier format wins a tie.
	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].MatchCount > result.Matches[j].MatchCount
	})

	if len(result.Matches) == 0 {
		return result
	}

	best := result.Matches[0]
	result.ParsedLines = best.MatchCount

	if len(result.Matches) > 1 && result.Matches[1].MatchCount == best.MatchCount {
		result.AmbiguityNote = fmt.Sprintf(
			"%q and %q parse the same lines; the sample never shows a day above 12. "+
				"Check a message from late in a month and set timestamp_format.layout accordingly.",
			best.Format.Name, result.Matches[1].Format.Name)
	}

	return result
}

// sampleFile reads up to sampleSize non-empty lines from a file.
func (d *Detector) sampleFile(ctx context.Context, path string) ([]string, error) {
	file, err := os.Open(path) // #nosec G304 -- path is provided by user via CLI
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", parser.ErrFileUnreadable, path, err)
	}
	defer file.Close()

	var lines []string
	reader := parser.NewLineReader(file)

	first := true
	for len(lines) < d.sampleSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, tooLong, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %w", parser.ErrFileUnreadable, path, err)
		}
		if first {
			line = strings.TrimPrefix(line, byteOrderMark)
			first = false
		}
		if !tooLong && strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	return lines, nil
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *FormatMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one format matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
