package output

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/chatstat/pkg/analyzer"
	"github.com/ccollicutt/chatstat/pkg/chat"
	"github.com/ccollicutt/chatstat/pkg/parser"
)

func sampleAnalyzer() *analyzer.Analyzer {
	at := func(day, hour int) time.Time {
		return time.Date(2016, time.February, day, hour, 0, 0, 0, time.UTC)
	}
	return analyzer.New(chat.New([]parser.Message{
		{Timestamp: at(24, 21), Author: "Alice", Text: "hello there"},
		{Timestamp: at(24, 21), Author: "Bob", Text: "hi Alice, how are you"},
		{Timestamp: at(25, 8), Author: "Alice", Text: "good morning"},
	}))
}

func render(t *testing.T, opts FormatOptions, report *Report) string {
	t.Helper()
	opts.NoColor = true
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(opts).Format(context.Background(), report, &buf))
	return buf.String()
}

func TestNewTextFormatter(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	require.NotNil(t, f)
	assert.Equal(t, "text", f.Name())
}

func TestNewReport(t *testing.T) {
	report := NewReport(sampleAnalyzer())

	assert.Equal(t, Summary{Messages: 3, Members: 2, Average: 1.5}, report.Summary)
	assert.Empty(t, report.Tables)
}

func TestNewReport_EmptyChat(t *testing.T) {
	report := NewReport(analyzer.New(chat.New(nil)))
	assert.Zero(t, report.Summary.Average)
}

func TestNewTallyTable(t *testing.T) {
	table := NewTallyTable("Messages per member", analyzer.Tally{"Alice": 2, "Bob": 1})

	assert.Equal(t, []string{"Member", "Messages", "Share"}, table.Header)
	assert.Equal(t, [][]string{
		{"Alice", "2", "66.7%"},
		{"Bob", "1", "33.3%"},
	}, table.Rows)
	assert.Equal(t, []string{"Total", "3", "100.0%"}, table.Footer)
}

func TestNewTallyTable_Empty(t *testing.T) {
	table := NewTallyTable("empty", analyzer.Tally{})
	assert.Empty(t, table.Rows)
	assert.Equal(t, []string{"Total", "0", "0.0%"}, table.Footer)
}

func TestNewWordsTable(t *testing.T) {
	table := NewWordsTable("Words", sampleAnalyzer().MessagesByMember())

	assert.Equal(t, []string{"Member", "Messages", "Words", "Words/Message"}, table.Header)
	assert.Equal(t, [][]string{
		{"Bob", "1", "5", "5.0"},
		{"Alice", "2", "4", "2.0"},
	}, table.Rows)
}

func TestNewWordsTable_Empty(t *testing.T) {
	assert.Empty(t, NewWordsTable("Words", nil).Rows)
}

func TestNewSeriesTable(t *testing.T) {
	series := map[string][]int{"Bob": {1, 0}, "Alice": {1, 1}}
	labels := DayLabels(time.Date(2016, 2, 24, 21, 5, 0, 0, time.UTC), 2)

	table := NewSeriesTable("Daily", "day", labels, series)
	assert.Equal(t, []string{"day", "Alice", "Bob"}, table.Header)
	assert.Equal(t, [][]string{
		{"2016-02-24", "1", "1"},
		{"2016-02-25", "1", "0"},
	}, table.Rows)
	assert.Equal(t, []string{"Total", "2", "1"}, table.Footer)
}

func TestNewBreakdownTable(t *testing.T) {
	b, err := sampleAnalyzer().DailyBreakdown(2016, 2, "")
	require.NoError(t, err)

	table := NewBreakdownTable("February 2016", b)
	assert.Equal(t, []string{"day", "Alice", "Bob"}, table.Header)
	assert.Equal(t, [][]string{{"24", "1", "1"}, {"25", "1", "0"}}, table.Rows)
	assert.Len(t, table.Notes, 2)
}

func TestNewBreakdownTable_HourLabels(t *testing.T) {
	b, err := sampleAnalyzer().HourlyBreakdownForDay(2016, 2, 24, "Alice")
	require.NoError(t, err)

	table := NewBreakdownTable("hours", b)
	assert.Equal(t, "21:00", table.Rows[0][0])
	assert.Equal(t, []string{"hour", "Alice"}, table.Header)
}

func TestNewYearlyTable(t *testing.T) {
	data := map[string]map[int]map[int]int{
		"Alice": {2015: {12: 1}, 2016: {1: 2}},
		"Bob":   {2015: {12: 0}, 2016: {1: 3}},
	}

	table := NewYearlyTable("By month", data)
	assert.Equal(t, []string{"month", "Alice", "Bob"}, table.Header)
	assert.Equal(t, [][]string{{"2015-12", "1", "0"}, {"2016-01", "2", "3"}}, table.Rows)
}

func TestLabels(t *testing.T) {
	hours := HourLabels()
	require.Len(t, hours, 24)
	assert.Equal(t, "00:00", hours[0])
	assert.Equal(t, "23:00", hours[23])

	months := MonthLabels()
	require.Len(t, months, 12)
	assert.Equal(t, "Jan", months[0])
	assert.Equal(t, "Dec", months[11])

	days := DayLabels(time.Date(2016, 2, 28, 23, 0, 0, 0, time.UTC), 3)
	assert.Equal(t, []string{"2016-02-28", "2016-02-29", "2016-03-01"}, days)
}

func TestTextFormatter_Format(t *testing.T) {
	a := sampleAnalyzer()
	report := NewReport(a)
	report.Source = "chat.txt"
	report.Add(NewTallyTable("Messages per member", a.CountByMember(a.DefaultFrame())))

	out := render(t, FormatOptions{}, report)
	assert.Contains(t, out, "=== chat.txt ===")
	assert.Contains(t, out, "Messages per member")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "Summary: 3 messages from 2 members, 1.50 per member")
	assert.NotContains(t, out, "Lines dropped")
	assert.NotContains(t, out, "\x1b[")
}

func TestTextFormatter_Format_Notes(t *testing.T) {
	b, err := sampleAnalyzer().DailyBreakdown(2016, 2, "")
	require.NoError(t, err)
	report := &Report{}
	report.Add(NewBreakdownTable("February 2016", b))

	out := render(t, FormatOptions{}, report)
	assert.Contains(t, out, "Note: day 24 is incomplete")
	assert.Contains(t, out, "Note: day 25 is incomplete")
}

func TestTextFormatter_Format_EmptyTable(t *testing.T) {
	report := &Report{}
	report.Add(&Table{Title: "Nothing"})

	out := render(t, FormatOptions{}, report)
	assert.Contains(t, out, "(no data)")
}

func TestTextFormatter_Format_Verbose(t *testing.T) {
	report := &Report{Summary: Summary{Dropped: 4}}

	out := render(t, FormatOptions{Verbose: true}, report)
	assert.Contains(t, out, "Lines dropped while parsing: 4")
}

func TestTextFormatter_Format_Quiet(t *testing.T) {
	report := &Report{Source: "chat.txt", Summary: Summary{Messages: 3, Members: 2}}
	report.Add(&Table{Title: "hidden"})

	out := render(t, FormatOptions{Quiet: true}, report)
	assert.Equal(t, "chatstat: chat.txt: 3 messages from 2 members\n", out)
}

func TestTextFormatter_Format_CancelledContext(t *testing.T) {
	report := &Report{}
	report.Add(&Table{Title: "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewTextFormatter(FormatOptions{NoColor: true}).Format(ctx, report, &buf)
	assert.ErrorIs(t, err, context.Canceled)
}
