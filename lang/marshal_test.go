package lang

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestObject_MarshalJSON(t *testing.T) {
	obj, err := Parse(`{
  z: "last first"
  n: 1.5
  on: @1
  ref: z
  f: x => x + 1
  c: a ? b : d
  note: // hi
  nested: { inner: 2 }
}`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	want := `{"z":"last first","n":1.5,"on":true,` +
		`"ref":{"type":"reference","name":"z"},` +
		`"f":{"type":"function","value":{"param":"x","expression":"x + 1"}},` +
		`"c":{"type":"conditional","value":"a ? b : d"},` +
		`"note":{"type":"comment","value":"hi"},` +
		`"nested":{"inner":2}}`

	if string(data) != want {
		t.Errorf("got:\n%s\nwant:\n%s", data, want)
	}
}

func TestObject_FormatJSON(t *testing.T) {
	obj := NewObject().Set("a", Number(1)).Set("b", Text("x"))

	var compact bytes.Buffer
	if err := obj.FormatJSON(t.Context(), &compact, 0); err != nil {
		t.Fatalf("format error: %v", err)
	}

	if compact.String() != "{\"a\":1,\"b\":\"x\"}\n" {
		t.Errorf("compact = %q", compact.String())
	}

	var indented bytes.Buffer
	if err := obj.FormatJSON(t.Context(), &indented, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	want := "{\n  \"a\": 1,\n  \"b\": \"x\"\n}\n"
	if indented.String() != want {
		t.Errorf("indented = %q, want %q", indented.String(), want)
	}
}

func TestValue_ToNative_StructuredConditional(t *testing.T) {
	v := StructuredConditional("a", "b", "c")

	data, err := json.Marshal(v.ToNative())
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	want := `{"type":"conditional","value":{"condition":"a","trueValue":"b","falseValue":"c"}}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
