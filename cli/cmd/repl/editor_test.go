package repl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/modulista/lang"
	"github.com/ardnew/modulista/store"
)

// fakeEditor installs a shell script as $EDITOR. The script receives the
// file to edit as $1.
func fakeEditor(t *testing.T, script string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("editor scripts require a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "editor.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o700))

	t.Setenv("EDITOR", path)
}

func newEditCommand(t *testing.T, text, stdin string) (*editCommand, *bytes.Buffer) {
	t.Helper()

	s := store.NewMemory()

	obj, err := lang.Parse(text)
	require.NoError(t, err)

	_, err = store.Sync(t.Context(), s, lang.RootPath, obj)
	require.NoError(t, err)

	var out bytes.Buffer

	cmd := &editCommand{
		store:   s,
		path:    lang.RootPath,
		ctxFunc: func() context.Context { return t.Context() },
	}
	cmd.SetStdin(strings.NewReader(stdin))
	cmd.SetStdout(&out)
	cmd.SetStderr(&out)

	return cmd, &out
}

func TestEdit_Unchanged(t *testing.T) {
	fakeEditor(t, "exit 0")

	cmd, _ := newEditCommand(t, `{ a: 1 b: { c: "x" } }`, "")
	require.NoError(t, cmd.Run())

	assert.True(t, cmd.done)
	assert.False(t, cmd.stats.Changed())
	assert.Equal(t, 3, cmd.stats.Unchanged)
}

func TestEdit_Changed(t *testing.T) {
	fakeEditor(t, `printf '{ a: 2 b: { c: "x" } d: @1 }' > "$1"`)

	cmd, _ := newEditCommand(t, `{ a: 1 b: { c: "x" } }`, "")
	require.NoError(t, cmd.Run())

	assert.True(t, cmd.done)
	assert.Equal(t, store.Stats{Added: 1, Updated: 1, Unchanged: 2}, cmd.stats)

	got, err := store.Render(t.Context(), cmd.store, lang.RootPath)
	require.NoError(t, err)
	assert.Equal(t, "{\n  a: 2\n  b: {\n    c: \"x\"\n  }\n  d: @1\n}", got)
}

func TestEdit_Cleared(t *testing.T) {
	fakeEditor(t, `: > "$1"`)

	cmd, _ := newEditCommand(t, `{ a: 1 }`, "")
	require.NoError(t, cmd.Run())

	assert.False(t, cmd.done, "an emptied file cancels the edit")

	got, err := store.Render(t.Context(), cmd.store, lang.RootPath)
	require.NoError(t, err)
	assert.Equal(t, "{\n  a: 1\n}", got)
}

func TestEdit_Declined(t *testing.T) {
	fakeEditor(t, `printf '{ a: ' > "$1"`)

	cmd, out := newEditCommand(t, `{ a: 1 }`, "n\n")
	require.ErrorIs(t, cmd.Run(), ErrEditDeclined)

	assert.False(t, cmd.done)
	assert.Contains(t, out.String(), "Parse error")
	assert.Contains(t, out.String(), "Re-edit? [Y/n]")
}

func TestEdit_Retry(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "edited")

	// The first session leaves a syntax error, the second fixes it.
	fakeEditor(t, `if [ -e "`+marker+`" ]; then
  printf '{ a: 3 }' > "$1"
else
  : > "`+marker+`"
  printf '{ a: }' > "$1"
fi`)

	cmd, out := newEditCommand(t, `{ a: 1 }`, "\n")
	require.NoError(t, cmd.Run())

	assert.True(t, cmd.done)
	assert.Equal(t, store.Stats{Updated: 1}, cmd.stats)
	assert.Contains(t, out.String(), "Parse error")
}

func TestEditorArgs(t *testing.T) {
	tests := map[string][]string{
		"":               {defaultEditor},
		"   ":            {defaultEditor},
		"\t\n":           {defaultEditor},
		"nano":           {"nano"},
		"code --wait":    {"code", "--wait"},
		"  emacs  -nw  ": {"emacs", "-nw"},
	}

	for env, want := range tests {
		t.Setenv("EDITOR", env)
		assert.Equal(t, want, editorArgs(), "EDITOR=%q", env)
	}
}
