package lang

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_Values(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Object
	}{
		{
			name:  "empty list",
			input: `{}`,
			want:  NewObject(),
		},
		{
			name:  "surrounding whitespace",
			input: "\n\t {  }\r\n",
			want:  NewObject(),
		},
		{
			name:  "scalars",
			input: `{ name: "John" age: 30 active: @1 retired: @0 }`,
			want: NewObject().
				Set("name", Text("John")).
				Set("age", Number(30)).
				Set("active", Boolean(true)).
				Set("retired", Boolean(false)),
		},
		{
			name:  "negative and fractional numbers",
			input: `{ a: -5 b: 3.14 c: -0.5 }`,
			want: NewObject().
				Set("a", Number(-5)).
				Set("b", Number(3.14)).
				Set("c", Number(-0.5)),
		},
		{
			name:  "hex escapes",
			input: `{ city: "S\xe3o Paulo" quote: "\x22hi\x22" upper: "\x4A\x4b" }`,
			want: NewObject().
				Set("city", Text("São Paulo")).
				Set("quote", Text(`"hi"`)).
				Set("upper", Text("JK")),
		},
		{
			name:  "nested lists",
			input: "{\n  user: {\n    name: \"Ana\"\n    address: { city: \"X\" }\n  }\n}",
			want: NewObject().Set("user", ObjectValue(NewObject().
				Set("name", Text("Ana")).
				Set("address", ObjectValue(NewObject().Set("city", Text("X")))))),
		},
		{
			name:  "empty nested list",
			input: `{ a: {} b: 1 }`,
			want: NewObject().
				Set("a", ObjectValue(NewObject())).
				Set("b", Number(1)),
		},
		{
			name:  "references",
			input: `{ a: 1 b: a c: b }`,
			want: NewObject().
				Set("a", Number(1)).
				Set("b", Reference("a")).
				Set("c", Reference("b")),
		},
		{
			name:  "reference before closing brace of nested list",
			input: `{ outer: { inner: 1 ref: inner } }`,
			want: NewObject().Set("outer", ObjectValue(NewObject().
				Set("inner", Number(1)).
				Set("ref", Reference("inner")))),
		},
		{
			name:  "function",
			input: `{ double: x => x * 2 }`,
			want:  NewObject().Set("double", Func("x", "x * 2")),
		},
		{
			name:  "function followed by item",
			input: `{ f: n => n + 1 g: 2 }`,
			want: NewObject().
				Set("f", Func("n", "n + 1")).
				Set("g", Number(2)),
		},
		{
			name:  "conditional",
			input: `{ grade: score > 90 ? high : low }`,
			want:  NewObject().Set("grade", RawConditional("score > 90 ? high : low")),
		},
		{
			name:  "conditional across lines",
			input: "{\n  grade: score > 90 ? high : low\n  next: 1\n}",
			want: NewObject().
				Set("grade", RawConditional("score > 90 ? high : low")).
				Set("next", Number(1)),
		},
		{
			name:  "comment above number",
			input: "{\n  note: // A number above\n  n: 5\n}",
			want: NewObject().
				Set("note", Comment("A number above")).
				Set("n", Number(5)),
		},
		{
			name:  "comment keeps leading name colon",
			input: "{ todo: // TODO: Fix this bug @urgent!\n}",
			want:  NewObject().Set("todo", Comment("TODO: Fix this bug @urgent!")),
		},
		{
			name:  "empty comment",
			input: "{\n  c: //\n  d: 1\n}",
			want: NewObject().
				Set("c", Comment("")).
				Set("d", Number(1)),
		},
		{
			name:  "comment with inner spacing",
			input: "{ c: //    lots   of   spaces    \n}",
			want:  NewObject().Set("c", Comment("lots   of   spaces")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParse_PreservesOrder(t *testing.T) {
	obj, err := Parse(`{ zeta: 1 alpha: 2 mid: 3 }`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	want := []string{"zeta", "alpha", "mid"}
	if diff := cmp.Diff(want, obj.Keys()); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Positions(t *testing.T) {
	obj, err := Parse("{\n  a: 1\n  b: \"x\"\n}")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	b, ok := obj.Get("b")
	if !ok {
		t.Fatal("missing b")
	}

	if b.Pos.Line != 3 || b.Pos.Column != 6 {
		t.Errorf("b.Pos = %s, want 3:6", b.Pos)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    *Error
		message string
	}{
		{
			name:    "unterminated list",
			input:   `{`,
			kind:    ErrUnexpectedEndOfInput,
			message: "Unexpected end of input at line 1, col 2",
		},
		{
			name:    "missing value",
			input:   `{ name: }`,
			kind:    ErrInvalidValue,
			message: "Invalid value at line 1, col 9",
		},
		{
			name:    "missing colon",
			input:   `{ a 1 }`,
			kind:    ErrExpectedCharacter,
			message: "Expected ':' at line 1, col 5",
		},
		{
			name:    "not a list",
			input:   `a: 1`,
			kind:    ErrExpectedCharacter,
			message: "Expected '{' at line 1, col 1",
		},
		{
			name:    "invalid name",
			input:   `{ 1a: 1 }`,
			kind:    ErrInvalidName,
			message: "Invalid name at line 1, col 3",
		},
		{
			name:    "trailing input",
			input:   `{ a: 1 } x`,
			kind:    ErrUnexpectedToken,
			message: "Unexpected token at line 1, col 10",
		},
		{
			name:    "duplicate key",
			input:   `{ a: 1 a: 2 }`,
			kind:    ErrDuplicateKey,
			message: "Duplicate key 'a' at line 1, col 8",
		},
		{
			name:    "invalid boolean",
			input:   "{\n  a: 1\n  b: @2\n}",
			kind:    ErrInvalidBoolean,
			message: "Invalid boolean at line 3, col 7",
		},
		{
			name:  "invalid escape",
			input: `{ a: "\n" }`,
			kind:  ErrInvalidEscapeSequence,
		},
		{
			name:  "invalid hex escape",
			input: `{ a: "\x4g" }`,
			kind:  ErrInvalidHexEscape,
		},
		{
			name:  "truncated hex escape",
			input: `{ a: "\x4`,
			kind:  ErrInvalidHexEscape,
		},
		{
			name:  "unterminated text",
			input: `{ a: "abc`,
			kind:  ErrUnexpectedEndOfInput,
		},
		{
			name:  "number followed by letters",
			input: `{ a: 1invalid }`,
			kind:  ErrInvalidNumber,
		},
		{
			name:  "number followed by name",
			input: `{ a: 2name }`,
			kind:  ErrInvalidNumber,
		},
		{
			name:  "trailing dot",
			input: `{ a: 1. }`,
			kind:  ErrInvalidNumber,
		},
		{
			name:  "lone minus",
			input: `{ a: - }`,
			kind:  ErrInvalidNumber,
		},
		{
			name:  "multiple operands",
			input: `{ a: 10 + 5 + 3 }`,
			kind:  ErrInvalidName,
		},
		{
			name:  "conditional missing branches",
			input: `{ c: condition ? }`,
			kind:  ErrInvalidConditionalExpression,
		},
		{
			name:  "conditional missing condition",
			input: `{ c: ? value : other }`,
			kind:  ErrInvalidValue,
		},
		{
			name:  "colon without question mark",
			input: `{ c: condition : value }`,
			kind:  ErrInvalidReference,
		},
		{
			name:  "comparison without question mark",
			input: `{ c: x > x * 2 }`,
			kind:  ErrInvalidReference,
		},
		{
			name:  "function missing parameter",
			input: `{ f: => x * 2 }`,
			kind:  ErrInvalidValue,
		},
		{
			name:  "function missing expression",
			input: `{ f: x => }`,
			kind:  ErrInvalidFunctionSyntax,
		},
		{
			name:  "function parameter not a name",
			input: `{ f: x y => x }`,
			kind:  ErrInvalidFunctionSyntax,
		},
		{
			name:  "invalid value",
			input: `{ a: # }`,
			kind:  ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("expected error, got %v", obj.Keys())
			}

			if obj != nil {
				t.Errorf("expected nil object on error")
			}

			if !errors.Is(err, tt.kind) {
				t.Errorf("error %q is not %q", err, tt.kind)
			}

			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SyntaxError, got %T", err)
			}

			if tt.message != "" && err.Error() != tt.message {
				t.Errorf("message = %q, want %q", err.Error(), tt.message)
			}
		})
	}
}

func TestParse_MaxDepth(t *testing.T) {
	input := `{ a: { b: { c: 1 } } }`

	if _, err := ParseString(t.Context(), input, WithMaxDepth(3)); err != nil {
		t.Fatalf("depth 3: unexpected error: %v", err)
	}

	_, err := ParseString(t.Context(), input, WithMaxDepth(2))
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("depth 2: expected ErrMaxDepthExceeded, got %v", err)
	}

	if !strings.Contains(err.Error(), "Maximum nesting depth 2 exceeded") {
		t.Errorf("unexpected message: %v", err)
	}

	deep := strings.Repeat("{ a: ", 200) + "1" + strings.Repeat(" }", 200)

	if _, err := ParseString(t.Context(), deep); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("default depth: expected ErrMaxDepthExceeded, got %v", err)
	}

	if _, err := ParseString(t.Context(), deep, WithMaxDepth(0)); err != nil {
		t.Errorf("unlimited depth: unexpected error: %v", err)
	}
}

func TestParseReader(t *testing.T) {
	obj, err := ParseReader(t.Context(), strings.NewReader(`{ a: "b" }`))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	want := NewObject().Set("a", Text("b"))
	if diff := cmp.Diff(want, obj); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConditional(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Conditional
		wantErr *Error
	}{
		{
			name:  "raw",
			input: "  a > 1 ? x : y ",
			want:  Conditional{Raw: "a > 1 ? x : y"},
		},
		{
			name:  "structured",
			input: `{ condition: "a > 1" trueValue: "x" falseValue: "y" }`,
			want: Conditional{
				Condition:  "a > 1",
				TrueValue:  "x",
				FalseValue: "y",
				Structured: true,
			},
		},
		{
			name:  "structured with mixed fields",
			input: `{ condition: ok trueValue: 5 falseValue: @0 extra: "z" }`,
			want: Conditional{
				Condition:  "ok",
				TrueValue:  "5",
				FalseValue: "@0",
				Structured: true,
			},
		},
		{
			name:  "structured with missing fields",
			input: `{ condition: "c" }`,
			want:  Conditional{Condition: "c", Structured: true},
		},
		{
			name:    "raw without question mark",
			input:   "a : b",
			wantErr: ErrInvalidConditionalExpression,
		},
		{
			name:    "structured duplicate field",
			input:   `{ condition: "a" condition: "b" }`,
			wantErr: ErrDuplicateKey,
		},
		{
			name:    "structured trailing input",
			input:   `{ condition: "a" } x`,
			wantErr: ErrUnexpectedToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConditional(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSyntaxError_Snippet(t *testing.T) {
	src := "{\n  a: @2\n}"

	_, err := Parse(src)

	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}

	want := "  2 |   a: @2\n" + strings.Repeat(" ", 6+6) + "^\n"
	if got := se.Snippet(src); got != want {
		t.Errorf("Snippet:\n%q\nwant:\n%q", got, want)
	}
}
