package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatstat/pkg/analyzer"
	"github.com/ccollicutt/chatstat/pkg/output"
)

// BreakdownOptions holds command-line options for the breakdown command.
type BreakdownOptions struct {
	Year   int
	Month  int
	Day    int
	Member string
}

// NewBreakdownCommand creates the breakdown command.
func NewBreakdownCommand(g *Globals) *cobra.Command {
	opts := &BreakdownOptions{}

	cmd := &cobra.Command{
		Use:   "breakdown <chat-file>",
		Short: "Break message counts down by calendar period",
		Long: `Break message counts per member down by calendar period.

The flags given select the granularity:
  (none)                     every month of every year
  --year Y                   the months of Y
  --year Y --month M         the days of M in Y
  --year Y --month M --day D the hours of that day

Periods outside the chat are rejected. A period in which the chat starts or
ends is marked incomplete.

Example:
  chatstat breakdown chat.txt
  chatstat breakdown --year 2016 --month 2 chat.txt
  chatstat breakdown --year 2016 --month 2 --day 24 --member Alice chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBreakdown(cmd, args[0], g, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Year, "year", 0, "Year to break down")
	cmd.Flags().IntVar(&opts.Month, "month", 0, "Month to break down (requires --year)")
	cmd.Flags().IntVar(&opts.Day, "day", 0, "Day to break down (requires --year and --month)")
	cmd.Flags().StringVar(&opts.Member, "member", "", "Only count this member")

	return cmd
}

func runBreakdown(cmd *cobra.Command, path string, g *Globals, opts *BreakdownOptions) error {
	hasYear := cmd.Flags().Changed("year")
	hasMonth := cmd.Flags().Changed("month")
	hasDay := cmd.Flags().Changed("day")
	if hasMonth && !hasYear {
		return errors.New("--month requires --year")
	}
	if hasDay && !hasMonth {
		return errors.New("--day requires --year and --month")
	}

	e, err := g.setup(cmd)
	if err != nil {
		return err
	}
	a, err := e.analyze(path)
	if err != nil {
		return err
	}

	table, err := breakdownTable(a, opts, hasYear, hasMonth, hasDay)
	if err != nil {
		return err
	}

	report := output.NewReport(a)
	report.Add(table)
	return g.print(cmd, e, report)
}

func breakdownTable(a *analyzer.Analyzer, opts *BreakdownOptions, hasYear, hasMonth, hasDay bool) (*output.Table, error) {
	who := "all members"
	if opts.Member != "" {
		who = opts.Member
	}

	switch {
	case hasDay:
		b, err := a.HourlyBreakdownForDay(opts.Year, opts.Month, opts.Day, opts.Member)
		if err != nil {
			return nil, err
		}
		return output.NewBreakdownTable(fmt.Sprintf("Messages per hour on %d-%02d-%02d (%s)", opts.Year, opts.Month, opts.Day, who), b), nil
	case hasMonth:
		b, err := a.DailyBreakdown(opts.Year, opts.Month, opts.Member)
		if err != nil {
			return nil, err
		}
		return output.NewBreakdownTable(fmt.Sprintf("Messages per day in %d-%02d (%s)", opts.Year, opts.Month, who), b), nil
	case hasYear:
		b, err := a.MonthlyBreakdown(opts.Year, opts.Member)
		if err != nil {
			return nil, err
		}
		return output.NewBreakdownTable(fmt.Sprintf("Messages per month in %d (%s)", opts.Year, who), b), nil
	default:
		data, err := a.YearlyMonthlyBreakdown(opts.Member)
		if err != nil {
			return nil, err
		}
		return output.NewYearlyTable(fmt.Sprintf("Messages per month (%s)", who), data), nil
	}
}
