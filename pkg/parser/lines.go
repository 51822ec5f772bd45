package parser

import (
	"bufio"
	"io"
)

// MaxLineSize is the longest physical line kept. Longer lines are read to their
// end and reported as too long instead of failing the whole read.
const MaxLineSize = 1024 * 1024

// LineReader reads physical lines without a line length limit on the input.
type LineReader struct {
	r   *bufio.Reader
	max int
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReaderSize(r, 64*1024), max: MaxLineSize}
}

// Next returns the next line without its line ending. tooLong is set, and line
// is empty, when the line exceeded MaxLineSize. Returns io.EOF at end of input.
func (l *LineReader) Next() (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, isPrefix, err := l.r.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong {
			if len(buf)+len(chunk) > l.max {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}
