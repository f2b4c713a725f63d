package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/modulista/lang"
	"github.com/ardnew/modulista/store"
)

const sampleText = "{\n" +
	"  user: {\n" +
	"    name: \"Ana\"\n" +
	"    age: 30\n" +
	"  }\n" +
	"  greeting: \"hello\"\n" +
	"}"

// withDatabase returns a context naming a new database in a temp directory,
// populated by importing sampleText.
func withDatabase(t *testing.T) context.Context {
	t.Helper()

	dir := t.TempDir()
	ctx := WithDatabase(context.Background(), filepath.Join(dir, "items.db"))

	file := writeSource(t, dir, "sample.txt", sampleText)

	got := captureStdout(t, func() error {
		return (&Import{Path: "/", Source: []string{file}}).Run(ctx)
	})

	if want := "4 added, 0 updated, 0 replaced, 0 deleted, 0 unchanged\n"; got != want {
		t.Fatalf("Import output = %q, want %q", got, want)
	}

	return ctx
}

func TestImportRender(t *testing.T) {
	ctx := withDatabase(t)

	got := captureStdout(t, func() error {
		return (&Render{Path: "/"}).Run(ctx)
	})

	if got != sampleText+"\n" {
		t.Errorf("Render output = %q, want %q", got, sampleText+"\n")
	}

	got = captureStdout(t, func() error {
		return (&Render{Path: "user"}).Run(ctx)
	})

	if want := "{\n  name: \"Ana\"\n  age: 30\n}\n"; got != want {
		t.Errorf("Render user = %q, want %q", got, want)
	}
}

func TestImportSubtree(t *testing.T) {
	ctx := withDatabase(t)

	file := writeSource(t, t.TempDir(), "user.txt", `{ name: "Bea" age: 30 city: "Porto" }`)

	got := captureStdout(t, func() error {
		return (&Import{Path: "/user/", Source: []string{file}}).Run(ctx)
	})

	if want := "1 added, 1 updated, 0 replaced, 0 deleted, 1 unchanged\n"; got != want {
		t.Errorf("Import output = %q, want %q", got, want)
	}
}

func TestRenderOutputDir(t *testing.T) {
	ctx := withDatabase(t)
	dir := t.TempDir()

	captureStdout(t, func() error {
		return (&Render{Path: "/", OutputDir: dir}).Run(ctx)
	})

	data, err := os.ReadFile(filepath.Join(dir, "modulista_root.txt"))
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != sampleText+"\n" {
		t.Errorf("rendered file = %q, want %q", data, sampleText+"\n")
	}
}

func TestDownloadName(t *testing.T) {
	tests := map[string]string{
		"/":       "modulista_root.txt",
		"/a/":     "a.txt",
		"/a/b/":   "a_b.txt",
		"/a/b/c/": "a_b_c.txt",
	}

	for in, want := range tests {
		if got := DownloadName(in); got != want {
			t.Errorf("DownloadName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLs(t *testing.T) {
	ctx := withDatabase(t)

	got := captureStdout(t, func() error {
		return (&Ls{Path: "/"}).Run(ctx)
	})

	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 2 {
		t.Fatalf("ls printed %d lines, want 2:\n%s", len(lines), got)
	}

	for i, want := range [][]string{{"user", "list"}, {"greeting", "text"}} {
		fields := strings.Fields(lines[i])
		if len(fields) != 3 || fields[0] != want[0] || fields[1] != want[1] {
			t.Errorf("line %d = %q, want name %q and type %q", i, lines[i], want[0], want[1])
		}
	}

	got = captureStdout(t, func() error {
		return (&Ls{Path: "/", Recursive: true}).Run(ctx)
	})

	var names []string
	for _, line := range strings.Split(strings.TrimSpace(got), "\n") {
		names = append(names, strings.Fields(line)[0])
	}

	if want := "user,user/name,user/age,greeting"; strings.Join(names, ",") != want {
		t.Errorf("ls -r names = %q, want %q", strings.Join(names, ","), want)
	}
}

func TestLsJSON(t *testing.T) {
	ctx := withDatabase(t)

	got := captureStdout(t, func() error {
		return (&Ls{Path: "/user/", JSON: true}).Run(ctx)
	})

	var items []lang.Item
	if err := json.Unmarshal([]byte(got), &items); err != nil {
		t.Fatalf("output is not a JSON item array: %v\n%s", err, got)
	}

	if len(items) != 2 || items[0].Name != "name" || items[1].Type != lang.TypeNumber {
		t.Errorf("items = %+v", items)
	}

	got = captureStdout(t, func() error {
		return (&Ls{Path: "/missing/", JSON: true}).Run(ctx)
	})

	if strings.TrimSpace(got) != "[]" {
		t.Errorf("empty list JSON = %q, want []", got)
	}
}

func TestFold(t *testing.T) {
	ctx := withDatabase(t)

	dsn, _ := ctx.Value(databaseKey{}).(string)

	s, err := store.Open(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}

	for _, it := range []lang.Item{
		{Path: "/", Name: "net", Type: lang.TypeDifference},
		{Path: "/net/", Name: "a", Type: lang.TypeNumber, Value: 10.0},
		{Path: "/net/", Name: "b", Type: lang.TypeNumber, Value: 2.5},
	} {
		if _, err := s.Add(ctx, it); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	got := captureStdout(t, func() error {
		return (&Fold{Path: "/", Name: "net"}).Run(ctx)
	})

	if got != "7.5\n" {
		t.Errorf("Fold output = %q, want %q", got, "7.5\n")
	}

	if err := (&Fold{Path: "/", Name: "greeting"}).Run(ctx); err == nil {
		t.Error("folding a text item should fail")
	}
}
