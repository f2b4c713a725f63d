package lang

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlatten(t *testing.T) {
	obj, err := Parse(`{ a: 1 user: { name: "x" tags: {} } ok: @0 }`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	got := Flatten(obj, RootPath)

	want := Tree{
		"/": {
			{Path: "/", Name: "a", Type: TypeNumber, Value: 1.0, Order: 0},
			{Path: "/", Name: "user", Type: TypeList, Order: 1},
			{Path: "/", Name: "ok", Type: TypeBoolean, Value: false, Order: 2},
		},
		"/user/": {
			{Path: "/user/", Name: "name", Type: TypeText, Value: "x", Order: 0},
			{Path: "/user/", Name: "tags", Type: TypeList, Order: 1},
		},
		"/user/tags/": {},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestTree_FetchChildren(t *testing.T) {
	tree := Tree{"/": {{Path: "/", Name: "a", Type: TypeText, Value: "b"}}}

	items, err := tree.FetchChildren(t.Context(), "/missing/")
	if err != nil || len(items) != 0 {
		t.Errorf("unknown path: got %v, %v", items, err)
	}

	items, _ = tree.FetchChildren(t.Context(), "/")
	items[0].Name = "changed"

	if tree["/"][0].Name != "a" {
		t.Errorf("FetchChildren returned shared storage")
	}
}

func TestItem_ToValue(t *testing.T) {
	values := []*Value{
		Text("t"),
		Number(2.5),
		Boolean(true),
		Reference("r"),
		RawConditional("a ? b : c"),
		StructuredConditional("a", "b", "c"),
		Func("x", "x"),
		Comment("c"),
	}

	for _, v := range values {
		got, ok := ItemOf("/", "k", v).ToValue()
		if !ok {
			t.Errorf("%s: ToValue reported false", v.Kind)

			continue
		}

		if !got.Equal(v) {
			t.Errorf("%s: got %s, want %s", v.Kind, got, v)
		}
	}

	if _, ok := ItemOf("/", "k", ObjectValue(NewObject())).ToValue(); ok {
		t.Errorf("list item converted to a scalar value")
	}
}
