package analyzer

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ccollicutt/chatstat/pkg/parser"
)

// daysInMonth is a non-leap calendar; February 29 is never a valid query day.
var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func monthKey(year, month int) int {
	return year*12 + month
}

func dateKey(year, month, day int) int {
	return year*10000 + month*100 + day
}

func ymd(m parser.Message) (int, int, int) {
	y, mon, d := m.Timestamp.Date()
	return y, int(mon), d
}

func (a *Analyzer) checkYear(year int, first, last parser.Message) error {
	if year < first.Timestamp.Year() || year > last.Timestamp.Year() {
		return &RangeError{Unit: UnitYear, Value: year, Min: first.Timestamp.Year(), Max: last.Timestamp.Year()}
	}
	return nil
}

// checkMonthSpan rejects a (year, month) outside the chat's first and last month.
// year must already be within the chat.
func checkMonthSpan(year, month int, first, last parser.Message) error {
	fy, fm, _ := ymd(first)
	ly, lm, _ := ymd(last)
	key := monthKey(year, month)
	if key >= monthKey(fy, fm) && key <= monthKey(ly, lm) {
		return nil
	}
	lowM, highM := 1, 12
	if year == fy {
		lowM = fm
	}
	if year == ly {
		highM = lm
	}
	return &RangeError{Unit: UnitMonth, Value: month, Min: lowM, Max: highM, Scope: fmt.Sprintf("year %d", year)}
}

func checkMonth(month int) error {
	if month < 1 || month > 12 {
		return &RangeError{Unit: UnitMonth, Value: month, Min: 1, Max: 12}
	}
	return nil
}

// build fills a Breakdown by counting each unit in [from, until] with frameFor(unit).
func (a *Analyzer) build(unit Unit, from, until int, member string, frameFor func(int) Frame) *Breakdown {
	b := &Breakdown{
		Unit:   unit,
		Counts: make(map[string]map[int]int),
		From:   from,
		Until:  until,
	}
	for _, m := range a.targets(member) {
		b.Counts[m] = make(map[int]int)
		for v := from; v <= until; v++ {
			b.Counts[m][v] = 0
		}
	}
	for v := from; v <= until; v++ {
		for author, count := range a.CountByMember(frameFor(v)) {
			if counts, ok := b.Counts[author]; ok {
				counts[v] = count
			}
		}
	}
	return b
}

func (a *Analyzer) logNotes(b *Breakdown, scope string) {
	for _, note := range b.Notes() {
		a.log.WithField("scope", scope).Info(note)
	}
}

// DailyBreakdown counts messages per day of the given month. The range is clipped
// to the chat's first and last message when the month contains them.
func (a *Analyzer) DailyBreakdown(year, month int, member string) (*Breakdown, error) {
	first, last, err := a.bounds()
	if err != nil {
		return nil, err
	}
	if err := checkMonth(month); err != nil {
		return nil, err
	}
	if err := a.checkYear(year, first, last); err != nil {
		return nil, err
	}

	if err := checkMonthSpan(year, month, first, last); err != nil {
		return nil, err
	}

	fy, fm, fd := ymd(first)
	ly, lm, ld := ymd(last)
	key := monthKey(year, month)

	from, until := 1, daysInMonth[month]
	left, right := false, false
	if key == monthKey(fy, fm) {
		// A chat starting on Feb 29 starts inside the table's last day.
		from, left = min(fd, daysInMonth[month]), true
	}
	if key == monthKey(ly, lm) {
		until, right = min(ld, daysInMonth[month]), true
	}

	frame := a.frame.Year(year).Month(month)
	b := a.build(UnitDay, from, until, member, func(d int) Frame { return frame.Day(d) })
	b.LeftIncomplete, b.RightIncomplete = left, right
	a.logNotes(b, fmt.Sprintf("%d-%02d", year, month))
	return b, nil
}

// MonthlyBreakdown counts messages per month of the given year, clipped to the
// chat's first and last month.
func (a *Analyzer) MonthlyBreakdown(year int, member string) (*Breakdown, error) {
	first, last, err := a.bounds()
	if err != nil {
		return nil, err
	}
	if err := a.checkYear(year, first, last); err != nil {
		return nil, err
	}

	fy, fm, _ := ymd(first)
	ly, lm, _ := ymd(last)

	from, until := 1, 12
	left, right := false, false
	if year == fy {
		from, left = fm, true
	}
	if year == ly {
		until, right = lm, true
	}

	frame := a.frame.Year(year)
	b := a.build(UnitMonth, from, until, member, func(m int) Frame { return frame.Month(m) })
	b.LeftIncomplete, b.RightIncomplete = left, right
	a.logNotes(b, fmt.Sprintf("%d", year))
	return b, nil
}

// HourlyBreakdownForDay counts messages per hour of one day. The day must exist in
// the non-leap calendar and lie between the chat's first and last message.
func (a *Analyzer) HourlyBreakdownForDay(year, month, day int, member string) (*Breakdown, error) {
	first, last, err := a.bounds()
	if err != nil {
		return nil, err
	}
	if err := checkMonth(month); err != nil {
		return nil, err
	}
	if day < 1 || day > daysInMonth[month] {
		return nil, &RangeError{Unit: UnitDay, Value: day, Min: 1, Max: daysInMonth[month], Scope: fmt.Sprintf("month %d", month)}
	}
	if err := a.checkYear(year, first, last); err != nil {
		return nil, err
	}

	if err := checkMonthSpan(year, month, first, last); err != nil {
		return nil, err
	}

	fy, fm, fd := ymd(first)
	ly, lm, ld := ymd(last)
	key := dateKey(year, month, day)
	firstKey, lastKey := dateKey(fy, fm, fd), dateKey(ly, lm, ld)
	if key < firstKey || key > lastKey {
		lowD, highD := 1, daysInMonth[month]
		if monthKey(year, month) == monthKey(fy, fm) {
			lowD = fd
		}
		if monthKey(year, month) == monthKey(ly, lm) {
			highD = ld
		}
		return nil, &RangeError{Unit: UnitDay, Value: day, Min: lowD, Max: highD, Scope: fmt.Sprintf("%04d-%02d", year, month)}
	}

	from, until := 0, 23
	left, right := false, false
	if key == firstKey {
		from, left = first.Timestamp.Hour(), true
	}
	if key == lastKey {
		until, right = last.Timestamp.Hour(), true
	}

	frame := a.frame.Year(year).Month(month).Day(day)
	b := a.build(UnitHour, from, until, member, func(h int) Frame { return frame.Hour(h) })
	b.LeftIncomplete, b.RightIncomplete = left, right
	a.logNotes(b, fmt.Sprintf("%d-%02d-%02d", year, month, day))
	return b, nil
}

// YearlyMonthlyBreakdown returns member -> year -> month -> count for every year of
// the chat, each year clipped as in MonthlyBreakdown.
func (a *Analyzer) YearlyMonthlyBreakdown(member string) (map[string]map[int]map[int]int, error) {
	first, last, err := a.bounds()
	if err != nil {
		return nil, err
	}

	result := make(map[string]map[int]map[int]int)
	for _, m := range a.targets(member) {
		result[m] = make(map[int]map[int]int)
	}

	for year := first.Timestamp.Year(); year <= last.Timestamp.Year(); year++ {
		b, err := a.MonthlyBreakdown(year, member)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}
		for m, counts := range b.Counts {
			result[m][year] = counts
		}
	}

	a.log.WithFields(logrus.Fields{
		"from":  first.Timestamp.Year(),
		"until": last.Timestamp.Year(),
	}).Debug("built yearly breakdown")
	return result, nil
}
