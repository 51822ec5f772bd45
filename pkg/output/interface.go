package output

import (
	"context"
	"io"
)

// Formatter renders a report in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name.
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds parse accounting to the summary.
	Verbose bool

	// Quiet prints the one-line summary only.
	Quiet bool

	// NoColor disables ANSI colors.
	NoColor bool
}
