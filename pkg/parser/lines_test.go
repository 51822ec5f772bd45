package parser

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r *LineReader) (lines []string, long []int) {
	t.Helper()
	for i := 0; ; i++ {
		line, tooLong, err := r.Next()
		if errors.Is(err, io.EOF) {
			return lines, long
		}
		require.NoError(t, err)
		if tooLong {
			long = append(long, i)
		}
		lines = append(lines, line)
	}
}

func TestLineReader_LineEndings(t *testing.T) {
	lines, long := readAll(t, NewLineReader(strings.NewReader("one\r\ntwo\n\nlast")))
	assert.Equal(t, []string{"one", "two", "", "last"}, lines)
	assert.Empty(t, long)
}

func TestLineReader_LongLineKept(t *testing.T) {
	// Longer than the read buffer but within the limit.
	body := strings.Repeat("y", 200*1024)
	lines, long := readAll(t, NewLineReader(strings.NewReader("a\n"+body+"\nb\n")))
	require.Len(t, lines, 3)
	assert.Equal(t, body, lines[1])
	assert.Empty(t, long)
}

func TestLineReader_OverlongLine(t *testing.T) {
	body := strings.Repeat("z", MaxLineSize+1)
	lines, long := readAll(t, NewLineReader(strings.NewReader("a\n"+body+"\nb")))
	assert.Equal(t, []string{"a", "", "b"}, lines)
	assert.Equal(t, []int{1}, long)
}

func TestLineReader_Empty(t *testing.T) {
	_, _, err := NewLineReader(strings.NewReader("")).Next()
	assert.ErrorIs(t, err, io.EOF)
}
