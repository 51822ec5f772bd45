// Package analyzer answers time-windowed and keyword queries over a chat.
package analyzer

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

// Unit is the granularity of a breakdown.
type Unit string

const (
	UnitHour  Unit = "hour"
	UnitDay   Unit = "day"
	UnitMonth Unit = "month"
	UnitYear  Unit = "year"
)

// Default frame bounds.
const (
	MinFrameYear = 2009
	MaxFrameYear = 2020
)

// Frame is eight inclusive bounds, one closed interval per time component.
// Each component is tested on its own, so a frame is not a chronological range:
// days 1-31 with month 2 accepts day 31 of any month whose number is 2, and a frame
// from December to January is empty.
type Frame struct {
	FromHour   int `yaml:"from_hour" validate:"gte=0,lte=23,ltefield=UntilHour"`
	UntilHour  int `yaml:"until_hour" validate:"gte=0,lte=23"`
	FromDay    int `yaml:"from_day" validate:"gte=1,lte=31,ltefield=UntilDay"`
	UntilDay   int `yaml:"until_day" validate:"gte=1,lte=31"`
	FromMonth  int `yaml:"from_month" validate:"gte=1,lte=12,ltefield=UntilMonth"`
	UntilMonth int `yaml:"until_month" validate:"gte=1,lte=12"`
	FromYear   int `yaml:"from_year" validate:"gte=1,lte=9999,ltefield=UntilYear"`
	UntilYear  int `yaml:"until_year" validate:"gte=1,lte=9999"`
}

// FullFrame spans hours 0-23, days 1-31, months 1-12 and years 2009-2020.
func FullFrame() Frame {
	return Frame{
		FromHour: 0, UntilHour: 23,
		FromDay: 1, UntilDay: 31,
		FromMonth: 1, UntilMonth: 12,
		FromYear: MinFrameYear, UntilYear: MaxFrameYear,
	}
}

// Contains reports whether every component of t lies within its own bounds.
func (f Frame) Contains(t time.Time) bool {
	return between(t.Hour(), f.FromHour, f.UntilHour) &&
		between(t.Day(), f.FromDay, f.UntilDay) &&
		between(int(t.Month()), f.FromMonth, f.UntilMonth) &&
		between(t.Year(), f.FromYear, f.UntilYear)
}

func between(v, low, high int) bool {
	return v >= low && v <= high
}

// Hours returns a copy of f with the hour bounds replaced.
func (f Frame) Hours(from, until int) Frame {
	f.FromHour, f.UntilHour = from, until
	return f
}

// Days returns a copy of f with the day bounds replaced.
func (f Frame) Days(from, until int) Frame {
	f.FromDay, f.UntilDay = from, until
	return f
}

// Months returns a copy of f with the month bounds replaced.
func (f Frame) Months(from, until int) Frame {
	f.FromMonth, f.UntilMonth = from, until
	return f
}

// Years returns a copy of f with the year bounds replaced.
func (f Frame) Years(from, until int) Frame {
	f.FromYear, f.UntilYear = from, until
	return f
}

// Hour returns a copy of f restricted to the single hour h.
func (f Frame) Hour(h int) Frame { return f.Hours(h, h) }

// Day returns a copy of f restricted to day d of the month.
func (f Frame) Day(d int) Frame { return f.Days(d, d) }

// Month returns a copy of f restricted to month m.
func (f Frame) Month(m int) Frame { return f.Months(m, m) }

// Year returns a copy of f restricted to year y.
func (f Frame) Year(y int) Frame { return f.Years(y, y) }

// Validate checks that every bound is in its domain and no interval is inverted.
func (f Frame) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("invalid frame: %w", err)
	}
	return nil
}

// Tally maps an author to a message count.
type Tally map[string]int

// Entry is one row of a sorted tally.
type Entry struct {
	Member string
	Count  int
}

// Total returns the sum of all counts.
func (t Tally) Total() int {
	return lo.Sum(lo.Values(t))
}

// Sorted returns the entries by count descending, then member name ascending.
func (t Tally) Sorted() []Entry {
	entries := lo.MapToSlice(t, func(member string, count int) Entry {
		return Entry{Member: member, Count: count}
	})
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Member, b.Member)
	})
	return entries
}

// Breakdown holds per-member counts for each unit in [From, Until].
type Breakdown struct {
	Unit Unit

	// Counts maps member to unit value to count. Every unit in range is present.
	Counts map[string]map[int]int

	From  int
	Until int

	// LeftIncomplete is set when the range starts at the chat's first message,
	// so the first unit only covers part of its period.
	LeftIncomplete bool

	// RightIncomplete is set when the range ends at the chat's last message.
	RightIncomplete bool
}

// Notes returns human readable incompleteness notes.
func (b *Breakdown) Notes() []string {
	var notes []string
	if b.LeftIncomplete {
		notes = append(notes, fmt.Sprintf("%s %d is incomplete: the chat starts during it", b.Unit, b.From))
	}
	if b.RightIncomplete {
		notes = append(notes, fmt.Sprintf("%s %d is incomplete: the chat ends during it", b.Unit, b.Until))
	}
	return notes
}

// Units returns the unit values in range, ascending.
func (b *Breakdown) Units() []int {
	if b.Until < b.From {
		return nil
	}
	return lo.RangeFrom(b.From, b.Until-b.From+1)
}
