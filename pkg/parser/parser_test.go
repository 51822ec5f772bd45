package parser

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChat = `2/24/16, 9:05:00 PM: Alice: hello there
2/24/16, 9:06:10 PM: Bob: hi Alice, how are you
garbage line with no timestamp
2/25/16, 8:00:00 AM: Alice: good morning
`

func writeChat(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParse_SampleChat(t *testing.T) {
	path := writeChat(t, sampleChat)

	result, err := Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, result.Messages, 3)

	first := result.Messages[0]
	assert.Equal(t, "Alice", first.Author)
	assert.Equal(t, "hello there", first.Text)
	assert.Equal(t, 1, first.LineNum)
	assert.True(t, first.Timestamp.Equal(time.Date(2016, 2, 24, 21, 5, 0, 0, time.UTC)))

	assert.Equal(t, "Bob", result.Messages[1].Author)
	assert.Equal(t, 4, result.Messages[2].LineNum)

	assert.Equal(t, Stats{Lines: 4, Parsed: 3, Skipped: 1}, result.Stats)
	assert.Equal(t, 1, result.Stats.Dropped())
}

func TestParse_PreservesFileOrder(t *testing.T) {
	content := "2/25/16, 8:00:00 AM: Alice: later\n2/24/16, 8:00:00 AM: Bob: earlier\n"
	path := writeChat(t, content)

	result, err := Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, result.Messages, 2)
	assert.Equal(t, "later", result.Messages[0].Text)
	assert.Equal(t, "earlier", result.Messages[1].Text)
}

func TestParse_EmbeddedDelimiterRestored(t *testing.T) {
	path := writeChat(t, "2/24/16, 9:05:00 PM: Alice: note: bring snacks: lots\n")

	result, err := Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "note: bring snacks: lots", result.Messages[0].Text)
}

func TestParse_ByteOrderMark(t *testing.T) {
	path := writeChat(t, "\uFEFF2/24/16, 9:05:00 PM: Alice: hello\n")

	result, err := Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Alice", result.Messages[0].Author)
}

func TestParse_MissingTextIsMalformed(t *testing.T) {
	path := writeChat(t, "2/24/16, 9:05:00 PM: Alice changed the group name\n")

	result, err := Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, result.Messages)
	assert.Equal(t, 1, result.Stats.Malformed)
}

func TestParse_LenientDropsBadTimestamp(t *testing.T) {
	content := "2/30/16, 9:05:00 PM: Alice: impossible date\n2/24/16, 9:05:00 PM: Bob: fine\n"
	path := writeChat(t, content)

	result, err := Parse(context.Background(), path, WithPolicy(PolicyLenient))
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Bob", result.Messages[0].Author)
	assert.Equal(t, 1, result.Stats.Malformed)
}

func TestParse_StrictReturnsLineError(t *testing.T) {
	content := "2/24/16, 9:05:00 PM: Bob: fine\n2/30/16, 9:05:00 PM: Alice: impossible date\n"
	path := writeChat(t, content)

	result, err := Parse(context.Background(), path, WithPolicy(PolicyStrict))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrMalformedLine)

	var lineErr *LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 2, lineErr.Line)
	assert.Contains(t, lineErr.Text, "impossible date")
}

func TestParse_StrictIgnoresUndatedLines(t *testing.T) {
	path := writeChat(t, sampleChat)

	result, err := Parse(context.Background(), path, WithPolicy(PolicyStrict))
	require.NoError(t, err)
	assert.Len(t, result.Messages, 3)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileUnreadable)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_OverlongLineIsMalformed(t *testing.T) {
	long := "2/24/16, 9:05:30 PM: Bob: " + strings.Repeat("x", MaxLineSize+100*1024)
	path := writeChat(t, "2/24/16, 9:05:00 PM: Alice: before\n"+long+"\n2/24/16, 9:06:10 PM: Alice: after\n")

	for _, policy := range []Policy{PolicyLenient, PolicyStrict} {
		result, err := Parse(context.Background(), path, WithPolicy(policy))
		require.NoError(t, err, policy)
		require.Len(t, result.Messages, 2)
		assert.Equal(t, "before", result.Messages[0].Text)
		assert.Equal(t, "after", result.Messages[1].Text)
		assert.Equal(t, 3, result.Messages[1].LineNum)
		assert.Equal(t, Stats{Lines: 3, Parsed: 2, Malformed: 1}, result.Stats)
	}
}

func TestParse_EmptyFile(t *testing.T) {
	path := writeChat(t, "")

	result, err := Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, result.Messages)
	assert.Equal(t, Stats{}, result.Stats)
}

func TestParse_Idempotent(t *testing.T) {
	path := writeChat(t, sampleChat)

	first, err := Parse(context.Background(), path)
	require.NoError(t, err)
	second, err := Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParse_Normalize(t *testing.T) {
	path := writeChat(t, "2/24/16, 9:05:00 PM: Zoë: café crème\n")

	result, err := Parse(context.Background(), path, WithNormalize(true))
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Zoe", result.Messages[0].Author)
	assert.Equal(t, "cafe creme", result.Messages[0].Text)
}

func TestParse_CustomFormat(t *testing.T) {
	path := writeChat(t, "24/02/2016, 21:05 - Alice - hello\n")

	result, err := Parse(context.Background(), path,
		WithLayout("02/01/2006, 15:04"),
		WithDelimiter(" - "),
	)
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Alice", result.Messages[0].Author)
	assert.Equal(t, "hello", result.Messages[0].Text)
	assert.Equal(t, time.February, result.Messages[0].Timestamp.Month())
}

func TestParse_CancelledContext(t *testing.T) {
	path := writeChat(t, sampleChat)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Parse(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileSource_NextAfterEOF(t *testing.T) {
	path := writeChat(t, sampleChat)
	var src MessageSource = NewFileSource(path)
	defer src.Close()

	count := 0
	for {
		_, err := src.Next(context.Background())
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 3, count)

	_, err := src.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 3, src.Stats().Parsed)
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicyLenient, false},
		{"lenient", PolicyLenient, false},
		{"strict", PolicyStrict, false},
		{"loose", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToASCII(t *testing.T) {
	assert.Equal(t, "naive resume", ToASCII("naïve résumé"))
	assert.Equal(t, "plain", ToASCII("plain"))
	assert.Equal(t, "ok ", ToASCII("ok 👍"))
}
