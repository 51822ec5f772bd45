package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrFileUnreadable is returned when the chat export cannot be opened or read.
	ErrFileUnreadable = errors.New("chat file unreadable")

	// ErrMalformedLine is returned under PolicyStrict for a date-prefixed line
	// whose timestamp cannot be parsed.
	ErrMalformedLine = errors.New("malformed message line")
)

// LineError reports a malformed line under PolicyStrict.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %v", e.Line, ErrMalformedLine, e.Err)
}

// Unwrap exposes both ErrMalformedLine and the underlying parse error.
func (e *LineError) Unwrap() []error {
	return []error{ErrMalformedLine, e.Err}
}
