package analyzer

import (
	"io"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/ccollicutt/chatstat/pkg/chat"
	"github.com/ccollicutt/chatstat/pkg/parser"
)

// Analyzer answers queries over a chat. Every query rescans the messages and
// returns freshly allocated results.
type Analyzer struct {
	chat  *chat.Chat
	frame Frame
	log   logrus.FieldLogger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for order warnings and breakdown notes.
func WithLogger(log logrus.FieldLogger) Option {
	return func(a *Analyzer) {
		if log != nil {
			a.log = log
		}
	}
}

// New creates an Analyzer over c.
func New(c *chat.Chat, opts ...Option) *Analyzer {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	a := &Analyzer{
		chat: c,
		log:  discard,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.frame = FullFrame()
	if c.Len() > 0 {
		years := lo.Map(c.Messages(), func(m parser.Message, _ int) int {
			return m.Timestamp.Year()
		})
		a.frame.FromYear = min(a.frame.FromYear, lo.Min(years))
		a.frame.UntilYear = max(a.frame.UntilYear, lo.Max(years))
	}

	if idx := c.OutOfOrderAt(); idx >= 0 {
		msgs := c.Messages()
		a.log.WithFields(logrus.Fields{
			"source": c.Source(),
			"line":   msgs[idx].LineNum,
		}).Warn("messages are not in chronological order; span-based queries use first and last message in file order")
	}

	return a
}

// Chat returns the chat being analyzed.
func (a *Analyzer) Chat() *chat.Chat {
	return a.chat
}

// DefaultFrame returns the full frame with its year bounds widened to cover
// every message, so counting with it sees the whole chat.
func (a *Analyzer) DefaultFrame() Frame {
	return a.frame
}

// CountByMember counts messages per author whose timestamp lies in frame.
func (a *Analyzer) CountByMember(frame Frame) Tally {
	tally := make(Tally)
	for _, m := range a.chat.All() {
		if frame.Contains(m.Timestamp) {
			tally[m.Author]++
		}
	}
	return tally
}

// Members returns the chat's distinct authors, sorted.
func (a *Analyzer) Members() []string {
	return a.chat.Members()
}

// Total returns the number of messages.
func (a *Analyzer) Total() int {
	return a.chat.Len()
}

// Average returns the mean number of messages per member.
func (a *Analyzer) Average() (float64, error) {
	members := a.chat.Members()
	if len(members) == 0 {
		return 0, ErrNoMembers
	}
	return float64(a.chat.Len()) / float64(len(members)), nil
}

// MessagesByMember groups message texts by author, in file order.
func (a *Analyzer) MessagesByMember() map[string][]string {
	grouped := make(map[string][]string)
	for _, m := range a.chat.All() {
		grouped[m.Author] = append(grouped[m.Author], m.Text)
	}
	return grouped
}

// bounds returns the first and last message in file order.
func (a *Analyzer) bounds() (first, last parser.Message, err error) {
	first, ok := a.chat.First()
	if !ok {
		return parser.Message{}, parser.Message{}, ErrEmptyChat
	}
	last, _ = a.chat.Last()
	return first, last, nil
}

// targets returns the members a result must contain.
func (a *Analyzer) targets(member string) []string {
	if member != "" {
		return []string{member}
	}
	return a.chat.Members()
}
