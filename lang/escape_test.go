package lang

import (
	"math"
	"testing"
)

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"", ""},
		{"São", `S\xe3o`},
		{`say "hi"`, `say \x22hi\x22`},
		{`a\b`, `a\x5cb`},
		{"tab\tnew\nline", `tab\x09new\x0aline`},
		{"\x7f", `\x7f`},
		{"中", `\x4e2d`},
		{"😀", `\xd83d\xde00`},
	}

	for _, tt := range tests {
		if got := EscapeText(tt.in); got != tt.want {
			t.Errorf("EscapeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeText_RoundTrip(t *testing.T) {
	inputs := []string{
		"hello",
		"São Paulo",
		`quote " and backslash \`,
		"line\nbreak\r\n",
		"\x00\x01\u00ff",
		"~!@#$%^&*()_+{}|:<>?",
	}

	for _, s := range inputs {
		obj, err := Parse(`{ v: "` + EscapeText(s) + `" }`)
		if err != nil {
			t.Fatalf("Parse(EscapeText(%q)): %v", s, err)
		}

		v, _ := obj.Get("v")
		if v.Text != s {
			t.Errorf("round trip of %q produced %q", s, v.Text)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{30, "30"},
		{-5, "-5"},
		{3.14, "3.14"},
		{0.000001, "0.000001"},
		{1e21, "1000000000000000000000"},
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{math.NaN(), "0"},
		{math.Inf(1), "0"},
		{math.Inf(-1), "0"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
