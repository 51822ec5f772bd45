package output

import (
	"context"
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

var (
	titleStyle = color.New(color.FgCyan, color.OpBold)
	noteStyle  = color.New(color.FgYellow)
	headStyle  = color.New(color.FgGreen, color.OpBold)
)

// TextFormatter formats reports as human-readable tables.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(ctx, report, w)
}

func (f *TextFormatter) paint(style color.Style, s string) string {
	if f.opts.NoColor {
		return s
	}
	return style.Render(s)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "chatstat: %s: %d messages from %d members\n",
		report.Source, report.Summary.Messages, report.Summary.Members)
	return err
}

func (f *TextFormatter) formatFull(ctx context.Context, report *Report, w io.Writer) error {
	if report.Source != "" {
		fmt.Fprintln(w, f.paint(headStyle, "=== "+report.Source+" ==="))
		fmt.Fprintln(w)
	}

	for _, table := range report.Tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		f.formatTable(table, w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d messages from %d members, %.2f per member\n",
		report.Summary.Messages, report.Summary.Members, report.Summary.Average)
	if f.opts.Verbose {
		fmt.Fprintf(w, "Lines dropped while parsing: %d\n", report.Summary.Dropped)
	}

	return nil
}

func (f *TextFormatter) formatTable(t *Table, w io.Writer) {
	if t.Title != "" {
		fmt.Fprintln(w, f.paint(titleStyle, t.Title))
	}

	if len(t.Rows) == 0 {
		fmt.Fprintln(w, "  (no data)")
	} else {
		tw := tablewriter.NewWriter(w)
		tw.SetHeader(t.Header)
		tw.SetAutoFormatHeaders(false)
		tw.SetAutoWrapText(false)
		tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		tw.SetAlignment(tablewriter.ALIGN_RIGHT)
		if len(t.Footer) > 0 {
			tw.SetFooter(t.Footer)
			tw.SetFooterAlignment(tablewriter.ALIGN_RIGHT)
		}
		tw.AppendBulk(t.Rows)
		tw.Render()
	}

	for _, note := range t.Notes {
		fmt.Fprintln(w, f.paint(noteStyle, "Note: "+note))
	}
	fmt.Fprintln(w)
}
