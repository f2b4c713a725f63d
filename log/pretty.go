package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handlers. Styles come from a
// renderer bound to the handler's writer, so non-terminal writers receive
// plain text.
type palette struct {
	key   lipgloss.Style
	text  lipgloss.Style
	num   lipgloss.Style
	yes   lipgloss.Style
	no    lipgloss.Style
	dur   lipgloss.Style
	stamp lipgloss.Style
	null  lipgloss.Style
	trace lipgloss.Style
	debug lipgloss.Style
	info  lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:   fg("8"),
		text:  fg("6"),
		num:   fg("3"),
		yes:   fg("2"),
		no:    fg("1"),
		dur:   fg("5"),
		stamp: fg("4"),
		null:  fg("8"),
		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3").Bold(true),
		fail:  fg("1").Bold(true),
	}
}

func (p *palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.fail

	case l >= slog.LevelWarn:
		return p.warn

	case l >= slog.LevelInfo:
		return p.info

	case l >= slog.LevelDebug:
		return p.debug

	default:
		return p.trace
	}
}

// value renders an attribute value. Strings are unquoted.
func (p *palette) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return p.text.Render(v.String())

	case slog.KindInt64:
		return p.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return p.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return p.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return p.yes.Render("true")
		}

		return p.no.Render("false")

	case slog.KindDuration:
		return p.dur.Render(v.Duration().String())

	case slog.KindTime:
		return p.stamp.Render(v.Time().String())

	case slog.KindAny:
		if v.Any() == nil {
			return p.null.Render("null")
		}

		if l, ok := v.Any().(slog.Level); ok {
			return p.level(l).Render(l.String())
		}

		return p.text.Render(fmt.Sprint(v.Any()))

	default:
		return p.text.Render(v.String())
	}
}

// prettyHandler holds the state shared by both pretty handlers: options,
// the output lock, and attributes collected by WithAttrs and WithGroup.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	pal    *palette
	prefix string      // dotted group prefix for new attributes
	attrs  []slog.Attr // keys already qualified with their group prefix
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) prettyHandler {
	return prettyHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
		pal:  newPalette(w),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h prettyHandler) withAttrs(attrs []slog.Attr) prettyHandler {
	h.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], h.qualify(attrs)...)

	return h
}

func (h prettyHandler) withGroup(name string) prettyHandler {
	if name != "" {
		h.prefix += name + "."
	}

	return h
}

// qualify resolves values, flattens groups, and prefixes keys with the
// current group.
func (h *prettyHandler) qualify(attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))

	var walk func(prefix string, attrs []slog.Attr)

	walk = func(prefix string, attrs []slog.Attr) {
		for _, a := range attrs {
			a.Value = a.Value.Resolve()

			if a.Value.Kind() == slog.KindGroup {
				sub := prefix
				if a.Key != "" {
					sub += a.Key + "."
				}

				walk(sub, a.Value.Group())

				continue
			}

			if a.Equal(slog.Attr{}) {
				continue
			}

			a.Key = prefix + a.Key
			out = append(out, a)
		}
	}

	walk(h.prefix, attrs)

	return out
}

// builtin returns the time, level, source, and message attributes of r
// after ReplaceAttr, omitting any it drops.
func (h *prettyHandler) builtin(r slog.Record) []slog.Attr {
	attrs := make([]slog.Attr, 0, 4)

	if !r.Time.IsZero() {
		attrs = append(attrs, slog.Time(slog.TimeKey, r.Time))
	}

	attrs = append(attrs, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			attrs = append(attrs,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	attrs = append(attrs, slog.String(slog.MessageKey, r.Message))

	out := attrs[:0]

	for _, a := range attrs {
		if h.opts.ReplaceAttr != nil {
			a = h.opts.ReplaceAttr(nil, a)
		}

		if a.Key != "" {
			out = append(out, a)
		}
	}

	return out
}

// fields returns every attribute to render for r, in output order.
func (h *prettyHandler) fields(r slog.Record) []slog.Attr {
	fields := h.builtin(r)
	fields = append(fields, h.attrs...)

	recs := make([]slog.Attr, 0, r.NumAttrs())

	r.Attrs(func(a slog.Attr) bool {
		recs = append(recs, a)

		return true
	})

	return append(fields, h.qualify(recs)...)
}

func (h *prettyHandler) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// prettyTextHandler writes one colorized key=value line per record.
type prettyTextHandler struct {
	prettyHandler
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyTextHandler {
	return &prettyTextHandler{newPrettyHandler(w, opts)}
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	for i, a := range h.fields(r) {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.pal.key.Render(a.Key))
		buf.WriteByte('=')

		if a.Key == slog.LevelKey {
			buf.WriteString(h.pal.level(r.Level).Render(a.Value.String()))

			continue
		}

		buf.WriteString(h.pal.value(a.Value))
	}

	return h.write(&buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

// prettyJSONHandler writes one indented, colorized object per record.
// Output is meant for reading, not for JSON decoders.
type prettyJSONHandler struct {
	prettyHandler
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyJSONHandler {
	return &prettyJSONHandler{newPrettyHandler(w, opts)}
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	fields := h.fields(r)
	lines := make([]string, len(fields))

	for i, a := range fields {
		val := h.pal.value(a.Value)
		if a.Key == slog.LevelKey {
			val = h.pal.level(r.Level).Render(a.Value.String())
		}

		lines[i] = "  " + h.pal.key.Render(a.Key) + ": " + val
	}

	var buf bytes.Buffer

	buf.WriteString("{\n")
	buf.WriteString(strings.Join(lines, ",\n"))
	buf.WriteString("\n}")

	return h.write(&buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}
