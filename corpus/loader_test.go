package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoaderLineMode(t *testing.T) {
	path := writeTempFile(t, "a.txt", "first line\n  second line  \n\nthird\n")

	var lines []string
	loader := &Loader{Mode: ModeLine}
	require.NoError(t, loader.Load(path, func(text string) error {
		lines = append(lines, text)
		return nil
	}))
	assert.Equal(t, []string{"first line", "second line", "", "third"}, lines)
}

func TestLoaderDefaultsToLineMode(t *testing.T) {
	path := writeTempFile(t, "a.txt", "only\n")

	var lines []string
	loader := &Loader{}
	require.NoError(t, loader.Load(path, func(text string) error {
		lines = append(lines, text)
		return nil
	}))
	assert.Equal(t, []string{"only"}, lines)
}

func TestLoaderChunkMode(t *testing.T) {
	content := strings.Repeat("abcd", 10)
	path := writeTempFile(t, "a.txt", content)

	var got strings.Builder
	var chunks int
	loader := &Loader{Mode: ModeChunk, ChunkSize: 16}
	require.NoError(t, loader.Load(path, func(text string) error {
		got.WriteString(text)
		chunks++
		return nil
	}))
	assert.Equal(t, content, got.String())
	assert.Equal(t, 3, chunks)
}

func TestLoaderMmapMode(t *testing.T) {
	content := strings.Repeat("xyz ", 100)
	path := writeTempFile(t, "a.txt", content)

	var got strings.Builder
	loader := &Loader{Mode: ModeMmap, ChunkSize: 64}
	require.NoError(t, loader.Load(path, func(text string) error {
		got.WriteString(text)
		return nil
	}))
	assert.Equal(t, content, got.String())
}

func TestLoaderUnsupportedMode(t *testing.T) {
	path := writeTempFile(t, "a.txt", "data\n")

	loader := &Loader{Mode: "carrier-pigeon"}
	err := loader.Load(path, func(string) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedMode)
}

func TestLoaderMissingFile(t *testing.T) {
	loader := &Loader{Mode: ModeLine}
	err := loader.Load(filepath.Join(t.TempDir(), "nope.txt"), func(string) error { return nil })
	assert.Error(t, err)
}

func TestLoaderCallbackErrorAborts(t *testing.T) {
	path := writeTempFile(t, "a.txt", "one\ntwo\nthree\n")

	wantErr := assert.AnError
	var calls int
	loader := &Loader{Mode: ModeLine}
	err := loader.Load(path, func(string) error {
		calls++
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}
