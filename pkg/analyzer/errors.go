package analyzer

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyChat is returned by queries that need a first and last message.
	ErrEmptyChat = errors.New("chat has no messages")

	// ErrNoMembers is returned by Average on a chat without authors.
	ErrNoMembers = errors.New("chat has no members")

	// ErrInvalidQueryRange is returned when a requested year, month or day lies
	// outside the chat's observed span or the calendar table.
	ErrInvalidQueryRange = errors.New("invalid query range")

	// ErrEmptyKeyword is returned when a keyword query is given a blank keyword.
	ErrEmptyKeyword = errors.New("keyword must not be empty")
)

// RangeError describes a rejected query bound and the range that would be accepted.
type RangeError struct {
	Unit  Unit
	Value int
	Min   int
	Max   int

	// Scope names the enclosing period, e.g. "year 2016". Empty for top-level bounds.
	Scope string
}

func (e *RangeError) Error() string {
	msg := fmt.Sprintf("invalid %s %d: must be between %d and %d", e.Unit, e.Value, e.Min, e.Max)
	if e.Scope != "" {
		msg += " for " + e.Scope
	}
	return msg
}

// Is reports ErrInvalidQueryRange as the error kind.
func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidQueryRange
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidQueryRange
}
