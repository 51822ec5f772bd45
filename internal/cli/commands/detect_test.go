package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/chatstat/pkg/config"
	"github.com/ccollicutt/chatstat/pkg/detector"
)

func TestDetect_DefaultExport(t *testing.T) {
	path := writeFile(t, "chat.txt", sampleChat)

	out, err := execute(t, NewDetectCommand(), path)
	require.NoError(t, err)

	assert.Contains(t, out, "Detected Format:")
	assert.Contains(t, out, "Lines sampled: 4")
	assert.Contains(t, out, "timestamp_format:")
	assert.Contains(t, out, "layout:")
	assert.Contains(t, out, "1/2/06, 3:04:05 PM")
}

func TestDetect_NoMatch(t *testing.T) {
	path := writeFile(t, "chat.txt", "just some text\nwithout any dates\n")

	out, err := execute(t, NewDetectCommand(), path)
	require.NoError(t, err)
	assert.Contains(t, out, "No timestamp format detected.")
}

func TestDetect_MissingFile(t *testing.T) {
	_, err := execute(t, NewDetectCommand(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat file not found")
}

func TestDetect_AllShowsAlternatives(t *testing.T) {
	// Day and month both <= 12, so month-first and day-first layouts tie
	path := writeFile(t, "chat.txt", "2/3/16, 9:05:32 PM: Alice: hi\n3/4/16, 10:00:00 AM: Bob: hey\n")

	out, err := execute(t, NewDetectCommand(), "--all", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ambiguity")
	assert.Contains(t, out, "--- Alternative formats detected ---")
}

func TestDetect_WriteConfig(t *testing.T) {
	path := writeFile(t, "chat.txt", sampleChat)
	cfgPath := filepath.Join(t.TempDir(), "chatstat.yaml")

	out, err := execute(t, NewDetectCommand(), "-w", cfgPath, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote starter config to: "+cfgPath)

	cfg, err := config.Load(context.Background(), cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "1/2/06, 3:04:05 PM", cfg.TimestampFormat.Layout)
}

func TestWriteStarterConfig_NoOverwrite(t *testing.T) {
	cfgPath := writeFile(t, "chatstat.yaml", "existing: content\n")
	result := detector.New().DetectFromLines([]string{"2/24/16, 9:05:32 PM: Alice: hi"})

	var buf bytes.Buffer
	err := writeStarterConfig(&buf, result, cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "will not overwrite")

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "existing: content\n", string(content))
}

func TestWriteStarterConfig_NoMatch(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "chatstat.yaml")
	result := &detector.DetectionResult{SampledLines: 10}

	var buf bytes.Buffer
	err := writeStarterConfig(&buf, result, cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no timestamp format detected")
	assert.NoFileExists(t, cfgPath)
}
