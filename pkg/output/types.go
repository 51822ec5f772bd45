// Package output renders chat statistics as text tables.
package output

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/ccollicutt/chatstat/pkg/analyzer"
)

// Table is a titled grid of cells.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
	Footer []string

	// Notes are printed below the table.
	Notes []string
}

// Report is everything one command prints for one chat.
type Report struct {
	// Source is the chat file the report describes.
	Source string

	Tables []*Table

	Summary Summary
}

// Summary provides aggregate statistics.
type Summary struct {
	Messages int
	Members  int

	// Dropped is the number of physical lines that did not become messages.
	Dropped int

	// Average is messages per member, zero for an empty chat.
	Average float64
}

// NewReport creates a Report with the summary of the analyzed chat.
func NewReport(a *analyzer.Analyzer) *Report {
	avg, err := a.Average()
	if err != nil {
		avg = 0
	}
	return &Report{
		Source: a.Chat().Source(),
		Summary: Summary{
			Messages: a.Total(),
			Members:  len(a.Members()),
			Dropped:  a.Chat().ParseStats().Dropped(),
			Average:  avg,
		},
	}
}

// Add appends tables to the report.
func (r *Report) Add(tables ...*Table) {
	r.Tables = append(r.Tables, tables...)
}

// NewTallyTable lists members by message count with their share of the total.
func NewTallyTable(title string, tally analyzer.Tally) *Table {
	total := tally.Total()
	t := &Table{
		Title:  title,
		Header: []string{"Member", "Messages", "Share"},
		Footer: []string{"Total", strconv.Itoa(total), share(total, total)},
	}
	for _, e := range tally.Sorted() {
		t.Rows = append(t.Rows, []string{e.Member, strconv.Itoa(e.Count), share(e.Count, total)})
	}
	return t
}

// NewWordsTable summarizes each member's texts: messages, words and words per message.
// Members are listed by word count, most first.
func NewWordsTable(title string, texts map[string][]string) *Table {
	words := lo.MapValues(texts, func(msgs []string, _ string) int {
		return lo.SumBy(msgs, func(m string) int { return len(strings.Fields(m)) })
	})
	members := lo.Keys(texts)
	slices.SortFunc(members, func(a, b string) int {
		if words[a] != words[b] {
			return words[b] - words[a]
		}
		return strings.Compare(a, b)
	})

	t := &Table{
		Title:  title,
		Header: []string{"Member", "Messages", "Words", "Words/Message"},
	}
	for _, m := range members {
		n := len(texts[m])
		t.Rows = append(t.Rows, []string{
			m,
			strconv.Itoa(n),
			strconv.Itoa(words[m]),
			fmt.Sprintf("%.1f", float64(words[m])/float64(max(n, 1))),
		})
	}
	return t
}

func share(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}

// NewSeriesTable lays out per-member series with one row per unit label.
func NewSeriesTable(title, unit string, labels []string, series map[string][]int) *Table {
	members := lo.Keys(series)
	slices.Sort(members)

	t := &Table{
		Title:  title,
		Header: append([]string{unit}, members...),
	}
	totals := make([]int, len(members))
	for i, label := range labels {
		row := []string{label}
		for j, m := range members {
			v := 0
			if i < len(series[m]) {
				v = series[m][i]
			}
			totals[j] += v
			row = append(row, strconv.Itoa(v))
		}
		t.Rows = append(t.Rows, row)
	}
	t.Footer = append([]string{"Total"}, lo.Map(totals, func(v int, _ int) string {
		return strconv.Itoa(v)
	})...)
	return t
}

// NewBreakdownTable lays out a breakdown with one row per unit in range.
func NewBreakdownTable(title string, b *analyzer.Breakdown) *Table {
	members := lo.Keys(b.Counts)
	slices.Sort(members)

	t := &Table{
		Title:  title,
		Header: append([]string{string(b.Unit)}, members...),
		Notes:  b.Notes(),
	}
	totals := make([]int, len(members))
	for _, v := range b.Units() {
		row := []string{unitLabel(b.Unit, v)}
		for j, m := range members {
			totals[j] += b.Counts[m][v]
			row = append(row, strconv.Itoa(b.Counts[m][v]))
		}
		t.Rows = append(t.Rows, row)
	}
	t.Footer = append([]string{"Total"}, lo.Map(totals, func(v int, _ int) string {
		return strconv.Itoa(v)
	})...)
	return t
}

// NewYearlyTable lays out member -> year -> month counts with one row per year and month.
func NewYearlyTable(title string, data map[string]map[int]map[int]int) *Table {
	members := lo.Keys(data)
	slices.Sort(members)

	type period struct{ year, month int }
	var periods []period
	seen := make(map[period]bool)
	for _, years := range data {
		for y, months := range years {
			for m := range months {
				p := period{y, m}
				if !seen[p] {
					seen[p] = true
					periods = append(periods, p)
				}
			}
		}
	}
	slices.SortFunc(periods, func(a, b period) int {
		if a.year != b.year {
			return a.year - b.year
		}
		return a.month - b.month
	})

	t := &Table{
		Title:  title,
		Header: append([]string{"month"}, members...),
	}
	for _, p := range periods {
		row := []string{fmt.Sprintf("%d-%02d", p.year, p.month)}
		for _, m := range members {
			row = append(row, strconv.Itoa(data[m][p.year][p.month]))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// HourLabels returns "00:00" through "23:00".
func HourLabels() []string {
	return lo.Map(lo.Range(24), func(h int, _ int) string {
		return unitLabel(analyzer.UnitHour, h)
	})
}

// MonthLabels returns "Jan" through "Dec".
func MonthLabels() []string {
	return lo.Map(lo.RangeFrom(1, 12), func(m int, _ int) string {
		return unitLabel(analyzer.UnitMonth, m)
	})
}

// DayLabels returns n consecutive dates starting at start, formatted YYYY-MM-DD.
func DayLabels(start time.Time, n int) []string {
	y, m, d := start.Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return lo.Map(lo.Range(n), func(i int, _ int) string {
		return first.AddDate(0, 0, i).Format(time.DateOnly)
	})
}

func unitLabel(unit analyzer.Unit, v int) string {
	switch unit {
	case analyzer.UnitHour:
		return fmt.Sprintf("%02d:00", v)
	case analyzer.UnitMonth:
		if v >= 1 && v <= 12 {
			return time.Month(v).String()[:3]
		}
	}
	return strconv.Itoa(v)
}
