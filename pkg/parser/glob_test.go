package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("chat"), 0644))
	}
}

func TestExpandGlobs_SingleFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "chat.txt")
	file := filepath.Join(dir, "chat.txt")

	result, err := ExpandGlobs([]string{file})
	require.NoError(t, err)
	assert.Equal(t, []string{file}, result)
}

func TestExpandGlobs_GlobPattern(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt", "b.txt", "c.log")

	result, err := ExpandGlobs([]string{filepath.Join(dir, "*.txt")})
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestExpandGlobs_NoMatchKeptLiteral(t *testing.T) {
	pattern := filepath.Join(t.TempDir(), "*.missing")

	result, err := ExpandGlobs([]string{pattern})
	require.NoError(t, err)
	assert.Equal(t, []string{pattern}, result)
}

func TestExpandGlobs_Deduplicates(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "chat.txt")
	file := filepath.Join(dir, "chat.txt")

	result, err := ExpandGlobs([]string{file, filepath.Join(dir, "*.txt")})
	require.NoError(t, err)
	assert.Equal(t, []string{file}, result)
}

func TestExpandGlobs_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.txt"), 0755))
	writeFiles(t, dir, "chat.txt")

	result, err := ExpandGlobs([]string{filepath.Join(dir, "*.txt")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "chat.txt")}, result)
}

func TestExpandGlobs_Sorted(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "c.txt", "a.txt", "b.txt")

	result, err := ExpandGlobs([]string{filepath.Join(dir, "*.txt")})
	require.NoError(t, err)
	assert.IsNonDecreasing(t, result)
}

func TestExpandGlobs_InvalidPattern(t *testing.T) {
	_, err := ExpandGlobs([]string{"[invalid"})
	require.Error(t, err)
}

func TestExpandGlobs_EmptyInput(t *testing.T) {
	result, err := ExpandGlobs(nil)
	require.NoError(t, err)
	assert.Empty(t, result)
}
