// Package chat holds a parsed chat export as an immutable, file-ordered message sequence.
package chat

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/samber/lo"

	"github.com/ccollicutt/chatstat/pkg/parser"
)

// Chat owns the messages of one export in file order.
// It is never mutated after construction.
type Chat struct {
	source   string
	messages []parser.Message
	stats    parser.Stats
}

// New builds a Chat from already parsed messages. The slice is copied.
func New(messages []parser.Message) *Chat {
	return &Chat{
		messages: slices.Clone(messages),
		stats:    parser.Stats{Lines: len(messages), Parsed: len(messages)},
	}
}

// Load parses the export at path and builds a Chat from it.
func Load(ctx context.Context, path string, opts ...parser.Option) (*Chat, error) {
	result, err := parser.Parse(ctx, path, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading chat: %w", err)
	}
	return &Chat{
		source:   path,
		messages: result.Messages,
		stats:    result.Stats,
	}, nil
}

// Source returns the path the chat was loaded from, or "" for in-memory chats.
func (c *Chat) Source() string {
	return c.source
}

// ParseStats returns the line accounting of the parse that built this chat.
func (c *Chat) ParseStats() parser.Stats {
	return c.stats
}

// Len returns the number of messages.
func (c *Chat) Len() int {
	return len(c.messages)
}

// Messages returns a copy of the message sequence.
func (c *Chat) Messages() []parser.Message {
	return slices.Clone(c.messages)
}

// All iterates over the messages in file order.
func (c *Chat) All() iter.Seq2[int, parser.Message] {
	return func(yield func(int, parser.Message) bool) {
		for i, m := range c.messages {
			if !yield(i, m) {
				return
			}
		}
	}
}

// First returns the first message in file order.
func (c *Chat) First() (parser.Message, bool) {
	if len(c.messages) == 0 {
		return parser.Message{}, false
	}
	return c.messages[0], true
}

// Last returns the last message in file order.
func (c *Chat) Last() (parser.Message, bool) {
	if len(c.messages) == 0 {
		return parser.Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// Members returns the distinct authors, sorted.
func (c *Chat) Members() []string {
	members := lo.Uniq(lo.Map(c.messages, func(m parser.Message, _ int) string {
		return m.Author
	}))
	slices.Sort(members)
	return members
}

// OutOfOrderAt returns the index of the first message timestamped earlier than
// its predecessor, or -1 if the sequence is non-decreasing.
func (c *Chat) OutOfOrderAt() int {
	for i := 1; i < len(c.messages); i++ {
		if c.messages[i].Timestamp.Before(c.messages[i-1].Timestamp) {
			return i
		}
	}
	return -1
}
