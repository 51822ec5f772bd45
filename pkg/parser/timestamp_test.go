package parser

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampExtractor_Match(t *testing.T) {
	extractor := NewTimestampExtractor(nil, "")

	tests := []struct {
		line string
		want bool
	}{
		{"2/24/16, 9:05:32 PM: Alice: hi", true},
		{"12/1/2016, 10:00: Bob: hi", true},
		{"Messages to this group are now secured", false},
		{"garbage line with no timestamp", false},
		{"", false},
		{" 2/24/16, 9:05:32 PM: Alice: hi", false},
		{"2/24: Alice: hi", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, extractor.Match(tt.line))
		})
	}
}

func TestTimestampExtractor_Parse(t *testing.T) {
	extractor := NewTimestampExtractor(nil, "")

	tests := []struct {
		name    string
		segment string
		want    time.Time
		wantErr bool
	}{
		{
			name:    "evening",
			segment: "2/24/16, 9:05:32 PM",
			want:    time.Date(2016, 2, 24, 21, 5, 32, 0, time.UTC),
		},
		{
			name:    "noon",
			segment: "12/31/15, 12:00:00 PM",
			want:    time.Date(2015, 12, 31, 12, 0, 0, 0, time.UTC),
		},
		{
			name:    "midnight",
			segment: "1/1/16, 12:00:01 AM",
			want:    time.Date(2016, 1, 1, 0, 0, 1, 0, time.UTC),
		},
		{
			name:    "missing seconds",
			segment: "2/24/16, 9:05 PM",
			wantErr: true,
		},
		{
			name:    "day first",
			segment: "24/2/16, 9:05:32 PM",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractor.Parse(tt.segment)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestTimestampExtractor_CustomLayout(t *testing.T) {
	extractor := NewTimestampExtractor(regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`), "02/01/2006, 15:04")

	assert.Equal(t, "02/01/2006, 15:04", extractor.Layout())
	assert.True(t, extractor.Match("24/02/2016, 21:05: Alice: hi"))

	got, err := extractor.Parse("24/02/2016, 21:05")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2016, 2, 24, 21, 5, 0, 0, time.UTC)))
}

func TestNewTimestampExtractor_Defaults(t *testing.T) {
	extractor := NewTimestampExtractor(nil, "")
	require.NotNil(t, extractor)
	assert.Equal(t, DefaultLayout, extractor.Layout())
}
