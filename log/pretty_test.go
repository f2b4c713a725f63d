package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPrettyText_Attributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"), WithFormat(FormatText)).
		With(slog.String("db", "items.db"))

	logger.Logger = slog.New(logger.Handler().WithGroup("sync"))
	logger.Info("reconcile", slog.Int("added", 3), slog.Bool("dry", false))

	want := "level=INFO msg=reconcile db=items.db sync.added=3 sync.dry=false\n"
	if buf.String() != want {
		t.Errorf("got  %q\nwant %q", buf.String(), want)
	}
}

func TestPrettyJSON_Layout(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout(""), WithFormat(FormatJSON))
	logger.Warn("slow", slog.Group("fetch", slog.String("path", "/a/")))

	want := "{\n  level: WARN,\n  msg: slow,\n  fetch.path: /a/\n}\n"
	if buf.String() != want {
		t.Errorf("got  %q\nwant %q", buf.String(), want)
	}
}

func TestPrettyText_NoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf).Error("plain")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("unexpected escape sequences in non-terminal output: %q", buf.String())
	}
}
