// Package parser reads exported chat logs and turns them into messages.
package parser

import (
	"fmt"
	"time"
)

// Defaults for the export format "M/D/YY, H:MM:SS AM: Author: text".
const (
	DefaultDatePattern = `^\d+/\d+/\d+`
	DefaultLayout      = "1/2/06, 3:04:05 PM"
	DefaultDelimiter   = ": "
)

// Message is a single chat entry.
type Message struct {
	// Timestamp is the parsed send time.
	Timestamp time.Time

	// Author is the display name, used verbatim.
	Author string

	// Text is the message body with embedded delimiters restored.
	Text string

	// LineNum is the 1-based line number in the source file.
	LineNum int
}

// Policy decides what happens to date-prefixed lines whose timestamp does not parse.
type Policy string

const (
	// PolicyLenient drops the line and counts it as malformed.
	PolicyLenient Policy = "lenient"
	// PolicyStrict aborts parsing with a *LineError.
	PolicyStrict Policy = "strict"
)

// ParsePolicy converts a config string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyLenient, "":
		return PolicyLenient, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("invalid parse policy %q (must be lenient or strict)", s)
	}
}

// Stats counts what happened to each physical line.
type Stats struct {
	// Lines is the number of physical lines read.
	Lines int

	// Parsed is the number of lines that became messages.
	Parsed int

	// Skipped is the number of lines without a leading date (system lines, continuations).
	Skipped int

	// Malformed is the number of date-prefixed lines that were dropped.
	Malformed int
}

// Dropped returns the number of lines that did not become messages.
func (s Stats) Dropped() int {
	return s.Skipped + s.Malformed
}
