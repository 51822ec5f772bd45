package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

const byteOrderMark = "\uFEFF"

// Option configures a FileSource.
type Option func(*options)

type options struct {
	pattern   *regexp.Regexp
	layout    string
	delimiter string
	policy    Policy
	normalize bool
	log       logrus.FieldLogger
}

// WithPattern sets the date-prefix pattern a line must match to be considered a message.
func WithPattern(re *regexp.Regexp) Option {
	return func(o *options) {
		o.pattern = re
	}
}

// WithLayout sets the Go time layout of the timestamp segment.
func WithLayout(layout string) Option {
	return func(o *options) {
		o.layout = layout
	}
}

// WithDelimiter sets the separator between timestamp, author and text.
func WithDelimiter(delim string) Option {
	return func(o *options) {
		if delim != "" {
			o.delimiter = delim
		}
	}
}

// WithPolicy sets how unparsable timestamps are handled.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithNormalize folds author and text to ASCII.
func WithNormalize(v bool) Option {
	return func(o *options) {
		o.normalize = v
	}
}

// WithLogger sets the logger used for drop accounting.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func newOptions(opts []Option) *options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	o := &options{
		delimiter: DefaultDelimiter,
		policy:    PolicyLenient,
		log:       discard,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// FileSource implements MessageSource for a single chat export file.
type FileSource struct {
	path      string
	extractor *TimestampExtractor
	opts      *options

	file    *os.File
	lines   *LineReader
	lineNum int
	done    bool
	stats   Stats
}

var _ MessageSource = (*FileSource)(nil)

// NewFileSource creates a MessageSource that reads the export at path.
// The file is opened lazily on the first call to Next.
func NewFileSource(path string, opts ...Option) *FileSource {
	o := newOptions(opts)
	return &FileSource{
		path:      path,
		extractor: NewTimestampExtractor(o.pattern, o.layout),
		opts:      o,
	}
}

// Next returns the next message in file order.
// Returns io.EOF when the file has been exhausted.
func (s *FileSource) Next(ctx context.Context) (*Message, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.done {
			return nil, io.EOF
		}

		if s.lines == nil {
			if err := s.open(); err != nil {
				return nil, err
			}
		}

		raw, tooLong, err := s.lines.Next()
		if errors.Is(err, io.EOF) {
			s.done = true
			if err := s.Close(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %w", ErrFileUnreadable, s.path, err)
		}

		s.lineNum++
		if tooLong {
			s.stats.Lines++
			s.stats.Malformed++
			s.opts.log.WithFields(logrus.Fields{
				"file":  s.path,
				"line":  s.lineNum,
				"limit": MaxLineSize,
			}).Warn("dropping line longer than the size limit")
			continue
		}

		msg, ok, err := s.parseLine(raw)
		if err != nil {
			return nil, err
		}
		if ok {
			return msg, nil
		}
	}
}

// parseLine turns one physical line into a message.
// ok is false when the line was dropped.
func (s *FileSource) parseLine(raw string) (msg *Message, ok bool, err error) {
	s.stats.Lines++

	line := raw
	if s.lineNum == 1 {
		line = strings.TrimPrefix(line, byteOrderMark)
	}
	line = strings.TrimSpace(line)

	if !s.extractor.Match(line) {
		s.stats.Skipped++
		return nil, false, nil
	}

	parts := strings.Split(line, s.opts.delimiter)
	if len(parts) < 3 {
		s.stats.Malformed++
		s.opts.log.WithFields(logrus.Fields{
			"file": s.path,
			"line": s.lineNum,
		}).Debug("dropping line without author and text")
		return nil, false, nil
	}

	ts, err := s.extractor.Parse(parts[0])
	if err != nil {
		if s.opts.policy == PolicyStrict {
			return nil, false, &LineError{Line: s.lineNum, Text: raw, Err: err}
		}
		s.stats.Malformed++
		s.opts.log.WithFields(logrus.Fields{
			"file":  s.path,
			"line":  s.lineNum,
			"error": err,
		}).Debug("dropping line with unparsable timestamp")
		return nil, false, nil
	}

	author := parts[1]
	text := strings.Join(parts[2:], s.opts.delimiter)
	if s.opts.normalize {
		author = ToASCII(author)
		text = ToASCII(text)
	}

	s.stats.Parsed++
	return &Message{
		Timestamp: ts,
		Author:    author,
		Text:      text,
		LineNum:   s.lineNum,
	}, true, nil
}

// Stats reports line accounting so far.
func (s *FileSource) Stats() Stats {
	return s.stats
}

// Close releases resources.
func (s *FileSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.lines = nil
	return err
}

func (s *FileSource) open() error {
	f, err := os.Open(s.path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", ErrFileUnreadable, s.path, err)
	}
	s.file = f
	s.lines = NewLineReader(f)
	s.lineNum = 0
	return nil
}

// Result is the outcome of parsing a whole export.
type Result struct {
	Messages []Message
	Stats    Stats
}

// Parse reads the export at path and returns its messages in file order.
// It fails only if the file cannot be read, or on a malformed line under PolicyStrict.
func Parse(ctx context.Context, path string, opts ...Option) (*Result, error) {
	src := NewFileSource(path, opts...)
	defer src.Close()

	var messages []Message
	for {
		msg, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}

	stats := src.Stats()
	src.opts.log.WithFields(logrus.Fields{
		"file":      path,
		"lines":     stats.Lines,
		"messages":  stats.Parsed,
		"skipped":   stats.Skipped,
		"malformed": stats.Malformed,
	}).Info("parsed chat export")

	return &Result{Messages: messages, Stats: stats}, nil
}
