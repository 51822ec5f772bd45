package analyzer

import (
	"slices"
	"strings"
	"time"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/ccollicutt/chatstat/pkg/parser"
)

// keywordMatcher finds case-insensitive keyword occurrences in message text.
type keywordMatcher struct {
	machine *goahocorasick.Machine
}

func newKeywordMatcher(keywords []string) (*keywordMatcher, error) {
	patterns := lo.Uniq(lo.Map(keywords, func(k string, _ int) string {
		return strings.ToLower(k)
	}))
	slices.Sort(patterns)

	m := new(goahocorasick.Machine)
	if err := m.Build(lo.Map(patterns, func(p string, _ int) []rune {
		return []rune(p)
	})); err != nil {
		return nil, err
	}
	return &keywordMatcher{machine: m}, nil
}

// Hits returns the lowercased keywords that occur in text, with occurrence counts.
func (k *keywordMatcher) Hits(text string) map[string]int {
	hits := make(map[string]int)
	if text == "" {
		return hits
	}
	for _, term := range k.machine.MultiPatternSearch([]rune(strings.ToLower(text)), false) {
		hits[string(term.Word)]++
	}
	return hits
}

// dayNumber returns the civil day index of t, ignoring the time of day.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// DailyFrequency returns, for every member, one count per calendar day from the
// first to the last message. With a keyword only messages containing it
// (case-insensitive) are counted; with "" every message counts.
func (a *Analyzer) DailyFrequency(keyword string) (map[string][]int, error) {
	if keyword == "" {
		first, last, err := a.bounds()
		if err != nil {
			return nil, err
		}
		series := a.emptySeries(first, last)
		a.fillDaily(series, first, func(parser.Message) bool { return true })
		return series, nil
	}

	byKeyword, err := a.KeywordFrequency(keyword)
	if err != nil {
		return nil, err
	}
	return byKeyword[strings.ToLower(keyword)], nil
}

// KeywordFrequency computes the daily series of several keywords in one pass.
// The result is keyed by lowercased keyword.
func (a *Analyzer) KeywordFrequency(keywords ...string) (map[string]map[string][]int, error) {
	if len(keywords) == 0 || lo.Contains(keywords, "") {
		return nil, ErrEmptyKeyword
	}
	first, last, err := a.bounds()
	if err != nil {
		return nil, err
	}

	matcher, err := newKeywordMatcher(keywords)
	if err != nil {
		return nil, err
	}

	result := make(map[string]map[string][]int)
	for _, k := range keywords {
		result[strings.ToLower(k)] = a.emptySeries(first, last)
	}

	start := dayNumber(first.Timestamp)
	for _, m := range a.chat.All() {
		for word := range matcher.Hits(m.Text) {
			series, ok := result[word]
			if !ok {
				continue
			}
			a.increment(series, m, dayNumber(m.Timestamp)-start)
		}
	}
	return result, nil
}

func (a *Analyzer) emptySeries(first, last parser.Message) map[string][]int {
	span := max(dayNumber(last.Timestamp)-dayNumber(first.Timestamp)+1, 1)
	series := make(map[string][]int)
	for _, member := range a.chat.Members() {
		series[member] = make([]int, span)
	}
	return series
}

func (a *Analyzer) fillDaily(series map[string][]int, first parser.Message, counts func(parser.Message) bool) {
	start := dayNumber(first.Timestamp)
	for _, m := range a.chat.All() {
		if counts(m) {
			a.increment(series, m, dayNumber(m.Timestamp)-start)
		}
	}
}

func (a *Analyzer) increment(series map[string][]int, m parser.Message, offset int) {
	slots := series[m.Author]
	if offset < 0 || offset >= len(slots) {
		a.log.WithFields(logrus.Fields{
			"line":   m.LineNum,
			"author": m.Author,
		}).Warn("message lies outside the first-to-last day span; not counted")
		return
	}
	slots[offset]++
}

// HourlyFrequency returns 24 counts per member, index 0 being midnight.
func (a *Analyzer) HourlyFrequency() map[string][]int {
	series := a.zeroSlots(24)
	for h := range 24 {
		for member, count := range a.CountByMember(a.frame.Hour(h)) {
			series[member][h] = count
		}
	}
	return series
}

// MonthlyFrequency returns 12 counts per member, index 0 being January.
func (a *Analyzer) MonthlyFrequency() map[string][]int {
	series := a.zeroSlots(12)
	for month := 1; month <= 12; month++ {
		for member, count := range a.CountByMember(a.frame.Month(month)) {
			series[member][month-1] = count
		}
	}
	return series
}

func (a *Analyzer) zeroSlots(n int) map[string][]int {
	series := make(map[string][]int)
	for _, member := range a.chat.Members() {
		series[member] = make([]int, n)
	}
	return series
}
