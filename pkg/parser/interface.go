package parser

import "context"

// MessageSource provides an iterator over parsed chat messages.
// Implementations are meant for sequential access only.
type MessageSource interface {
	// Next returns the next message in file order.
	// Returns io.EOF when no more messages are available.
	// Lines that do not form a message are skipped according to the source's policy.
	Next(ctx context.Context) (*Message, error)

	// Stats reports line accounting so far.
	Stats() Stats

	// Close releases any resources held by the source.
	Close() error
}
