package repl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_AddDeduplicates(t *testing.T) {
	h := NewHistory("")

	for _, line := range []string{"ls", "cd user", "ls", "ls", "  ", "cat"} {
		require.NoError(t, h.Add(line))
	}

	assert.Equal(t, []string{"cd user", "ls", "cat"}, h.Entries())
	assert.Equal(t, 3, h.Len())
}

func TestHistory_Get(t *testing.T) {
	h := NewHistory("")
	require.NoError(t, h.Add("a"))
	require.NoError(t, h.Add("b"))

	got, err := h.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "b", got)

	_, err = h.Get(2)
	require.ErrorIs(t, err, ErrOutOfBounds)

	_, err = h.Get(-1)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestHistory_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	require.NoError(t, h.Load(), "missing file is empty history")
	assert.Zero(t, h.Len())

	for _, line := range []string{"ls", "cd user", "cat", "ls"} {
		require.NoError(t, h.Add(line))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cd user\ncat\nls\n", string(data))

	reloaded := NewHistory(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, h.Entries(), reloaded.Entries())
}

func TestHistory_LoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	require.NoError(t, os.WriteFile(path, []byte("ls\n\n  \ncat\n"), 0o600))

	h := NewHistory(path)
	require.NoError(t, h.Load())
	assert.Equal(t, []string{"ls", "cat"}, h.Entries())
}
