package repl

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/modulista/lang"
	"github.com/ardnew/modulista/log"
	"github.com/ardnew/modulista/store"
)

// seededSession returns a session over a memory store holding:
//
//	{
//	  user: {
//	    name: "Ana"
//	    age: 30
//	    address: {
//	      city: "Lisbon"
//	    }
//	  }
//	  total: 10 + 5
//	  greeting: "hello"
//	}
func seededSession(t *testing.T) *session {
	t.Helper()

	s := store.NewMemory()
	ctx := t.Context()

	for _, it := range []lang.Item{
		{Path: "/", Name: "user", Type: lang.TypeList},
		{Path: "/user/", Name: "name", Type: lang.TypeText, Value: "Ana"},
		{Path: "/user/", Name: "age", Type: lang.TypeNumber, Value: 30.0},
		{Path: "/user/", Name: "address", Type: lang.TypeList},
		{Path: "/user/address/", Name: "city", Type: lang.TypeText, Value: "Lisbon"},
		{Path: "/", Name: "total", Type: lang.TypeSum},
		{Path: "/total/", Name: "a", Type: lang.TypeNumber, Value: 10.0},
		{Path: "/total/", Name: "b", Type: lang.TypeNumber, Value: 5.0},
		{Path: "/", Name: "greeting", Type: lang.TypeText, Value: "hello"},
	} {
		_, err := s.Add(ctx, it)
		require.NoError(t, err)
	}

	return newSession(s, log.Logger{})
}

func run(t *testing.T, s *session, line string) string {
	t.Helper()

	out, act, err := s.exec(t.Context(), line)
	require.NoError(t, err, line)
	assert.Equal(t, actionNone, act, line)

	return out
}

func TestExec_Actions(t *testing.T) {
	s := seededSession(t)

	tests := []struct {
		line string
		want action
	}{
		{"quit", actionQuit},
		{"q", actionQuit},
		{"exit", actionQuit},
		{"clear", actionClear},
		{"edit", actionEdit},
		{"", actionNone},
		{"   ", actionNone},
	}

	for _, tt := range tests {
		_, act, err := s.exec(t.Context(), tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, act, tt.line)
	}
}

func TestExec_Help(t *testing.T) {
	out := run(t, seededSession(t), "help")

	for _, c := range commands {
		assert.Contains(t, out, c.name)
		assert.Contains(t, out, c.help)
	}
}

func TestExec_UnknownCommand(t *testing.T) {
	_, _, err := seededSession(t).exec(t.Context(), "frobnicate")
	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestExec_List(t *testing.T) {
	s := seededSession(t)

	out := run(t, s, "ls")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "user")
	assert.Contains(t, lines[0], "{ 3 items }")
	assert.Contains(t, lines[1], "total")
	assert.Contains(t, lines[1], "sum")
	assert.Contains(t, lines[2], `"hello"`)

	out = run(t, s, "ls user/address")
	assert.Contains(t, out, "city")
	assert.Contains(t, out, `"Lisbon"`)

	out = run(t, s, "ls greeting")
	assert.Contains(t, out, `"hello"`, "a scalar lists itself")
}

// Previews are cut on rune boundaries.
func TestExec_ListPreviewMultiByte(t *testing.T) {
	s := store.NewMemory()

	_, err := s.Add(t.Context(), lang.Item{
		Path: "/", Name: "note", Type: lang.TypeComment, Value: strings.Repeat("ñ", 60),
	})
	require.NoError(t, err)

	out := run(t, newSession(s, log.Logger{}), "ls")

	assert.True(t, utf8.ValidString(out), "preview split a rune: %q", out)
	assert.Contains(t, out, "// "+strings.Repeat("ñ", previewWidth-6)+"...")
	assert.NotContains(t, out, strings.Repeat("ñ", previewWidth-5))
}

func TestExec_ListEmpty(t *testing.T) {
	s := newSession(store.NewMemory(), log.Logger{})
	assert.Contains(t, run(t, s, "ls"), "(empty)")
}

func TestExec_ChangeDirectory(t *testing.T) {
	s := seededSession(t)

	run(t, s, "cd user")
	assert.Equal(t, "/user/", s.cwd)

	run(t, s, "cd address")
	assert.Equal(t, "/user/address/", s.cwd)

	run(t, s, "cd ..")
	assert.Equal(t, "/user/", s.cwd)

	run(t, s, "cd /user/address")
	assert.Equal(t, "/user/address/", s.cwd)

	run(t, s, "cd /")
	assert.Equal(t, lang.RootPath, s.cwd)

	run(t, s, "cd ..")
	assert.Equal(t, lang.RootPath, s.cwd, "root is its own parent")

	_, _, err := s.exec(t.Context(), "cd greeting")
	require.ErrorIs(t, err, ErrNotList)

	_, _, err = s.exec(t.Context(), "cd nope")
	require.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, lang.RootPath, s.cwd)
}

func TestExec_Cat(t *testing.T) {
	s := seededSession(t)

	want := "{\n" +
		"  user: {\n" +
		"    name: \"Ana\"\n" +
		"    age: 30\n" +
		"    address: {\n" +
		"      city: \"Lisbon\"\n" +
		"    }\n" +
		"  }\n" +
		"  total: 10 + 5\n" +
		"  greeting: \"hello\"\n" +
		"}"
	assert.Equal(t, want, run(t, s, "cat"))

	assert.Equal(t, "{\n  total: 10 + 5\n}", run(t, s, "cat total"))

	run(t, s, "cd user/address")
	assert.Equal(t, "{\n  city: \"Lisbon\"\n}", run(t, s, "cat"))
}

func TestExec_Fold(t *testing.T) {
	s := seededSession(t)

	assert.Equal(t, "15", run(t, s, "fold total"))

	_, _, err := s.exec(t.Context(), "fold greeting")
	require.ErrorIs(t, err, lang.ErrNotExpression)

	_, _, err = s.exec(t.Context(), "fold")
	require.ErrorIs(t, err, ErrUsage)
}

func TestExec_Rename(t *testing.T) {
	s := seededSession(t)
	ctx := t.Context()

	run(t, s, "mv greeting salutation")

	it, err := s.store.Lookup(ctx, lang.RootPath, "salutation")
	require.NoError(t, err)
	assert.Equal(t, "hello", it.Value)

	_, _, err = s.exec(ctx, "mv user/name age")
	require.ErrorIs(t, err, store.ErrDuplicateName)

	_, _, err = s.exec(ctx, "mv user people")
	require.ErrorIs(t, err, ErrRenameList)

	_, _, err = s.exec(ctx, "mv salutation 9lives")
	require.ErrorIs(t, err, lang.ErrInvalidName)

	_, _, err = s.exec(ctx, "mv salutation")
	require.ErrorIs(t, err, ErrUsage)
}

func TestExec_Remove(t *testing.T) {
	s := seededSession(t)
	ctx := t.Context()

	assert.Equal(t, "removed user (4 nested)", run(t, s, "rm user"))

	for _, path := range []string{"/user/", "/user/address/"} {
		items, err := s.store.Children(ctx, path)
		require.NoError(t, err)
		assert.Empty(t, items)
	}

	assert.Equal(t, "removed greeting (0 nested)", run(t, s, "rm /greeting"))
	assert.Equal(t, "{\n  total: 10 + 5\n}", run(t, s, "cat"))

	_, _, err := s.exec(ctx, "rm greeting")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestParentPath(t *testing.T) {
	tests := map[string]string{
		"/":       "/",
		"/a/":     "/",
		"/a/b/":   "/a/",
		"/a/b/c/": "/a/b/",
	}

	for in, want := range tests {
		assert.Equal(t, want, parentPath(in), in)
	}
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"a", "user_name", "x1", "_"} {
		assert.True(t, validName(name), name)
	}

	for _, name := range []string{"", "9lives", "a b", "a:b", "{"} {
		assert.False(t, validName(name), name)
	}
}
