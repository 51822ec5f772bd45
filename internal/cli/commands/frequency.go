package commands

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatstat/pkg/analyzer"
	"github.com/ccollicutt/chatstat/pkg/output"
)

// Frequency granularities accepted by --by.
const (
	ByDaily   = "daily"
	ByHourly  = "hourly"
	ByMonthly = "monthly"
)

// FrequencyOptions holds command-line options for the frequency command.
type FrequencyOptions struct {
	By       string
	Keywords []string
}

// NewFrequencyCommand creates the frequency command.
func NewFrequencyCommand(g *Globals) *cobra.Command {
	opts := &FrequencyOptions{}

	cmd := &cobra.Command{
		Use:   "frequency <chat-file>",
		Short: "Show message frequency per member over time",
		Long: `Show how often each member wrote, per calendar day, per hour of day or per month
of year.

Daily series run from the day of the first message to the day of the last one.
With --keyword only messages containing the keyword (case-insensitive) are
counted; one table is printed per keyword. Keywords listed in the config file
are used when no --keyword is given.

Example:
  chatstat frequency chat.txt
  chatstat frequency --by hourly chat.txt
  chatstat frequency -k lunch -k coffee chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrequency(cmd, args[0], g, opts)
		},
	}

	cmd.Flags().StringVar(&opts.By, "by", ByDaily, "Granularity (daily|hourly|monthly)")
	cmd.Flags().StringArrayVarP(&opts.Keywords, "keyword", "k", nil, "Count only messages containing this keyword (repeatable, daily only)")

	return cmd
}

func runFrequency(cmd *cobra.Command, path string, g *Globals, opts *FrequencyOptions) error {
	e, err := g.setup(cmd)
	if err != nil {
		return err
	}

	keywords := opts.Keywords
	if !cmd.Flags().Changed("keyword") {
		keywords = e.cfg.Keywords
	}
	if len(keywords) > 0 && opts.By != ByDaily && cmd.Flags().Changed("keyword") {
		return fmt.Errorf("--keyword only applies to --by %s", ByDaily)
	}

	a, err := e.analyze(path)
	if err != nil {
		return err
	}
	report := output.NewReport(a)

	switch opts.By {
	case ByDaily:
		tables, err := dailyTables(a, keywords)
		if err != nil {
			return err
		}
		report.Add(tables...)
	case ByHourly:
		report.Add(output.NewSeriesTable("Messages per hour of day", "hour", output.HourLabels(), a.HourlyFrequency()))
	case ByMonthly:
		report.Add(output.NewSeriesTable("Messages per month of year", "month", output.MonthLabels(), a.MonthlyFrequency()))
	default:
		return fmt.Errorf("invalid --by %q (use %s, %s or %s)", opts.By, ByDaily, ByHourly, ByMonthly)
	}

	return g.print(cmd, e, report)
}

func dailyTables(a *analyzer.Analyzer, keywords []string) ([]*output.Table, error) {
	first, ok := a.Chat().First()
	if !ok {
		return nil, analyzer.ErrEmptyChat
	}

	if len(keywords) == 0 {
		series, err := a.DailyFrequency("")
		if err != nil {
			return nil, err
		}
		labels := output.DayLabels(first.Timestamp, seriesLen(series))
		return []*output.Table{output.NewSeriesTable("Messages per day", "day", labels, series)}, nil
	}

	byKeyword, err := a.KeywordFrequency(keywords...)
	if err != nil {
		return nil, err
	}

	var tables []*output.Table
	for _, k := range lo.Uniq(lo.Map(keywords, func(k string, _ int) string { return strings.ToLower(k) })) {
		series := byKeyword[k]
		labels := output.DayLabels(first.Timestamp, seriesLen(series))
		tables = append(tables, output.NewSeriesTable(fmt.Sprintf("Messages per day containing %q", k), "day", labels, series))
	}
	return tables, nil
}

func seriesLen(series map[string][]int) int {
	return lo.Max(lo.Map(lo.Values(series), func(s []int, _ int) int { return len(s) }))
}
