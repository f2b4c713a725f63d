package lang

import (
	"context"
	"slices"
)

// RootPath is the path of the top-level container.
const RootPath = "/"

// Tree is an in-memory [Fetcher] mapping container paths to their ordered
// items.
type Tree map[string][]Item

// FetchChildren returns the items stored at path. Unknown paths have no
// children.
func (t Tree) FetchChildren(_ context.Context, path string) ([]Item, error) {
	return slices.Clone(t[path]), nil
}

// Flatten converts obj into the item taxonomy, keyed by container path,
// rooted at path. Nested objects become list items with their contents
// stored at the item's child path.
func Flatten(obj *Object, path string) Tree {
	t := make(Tree)

	t.flatten(obj, path)

	return t
}

func (t Tree) flatten(obj *Object, path string) {
	items := make([]Item, 0, obj.Len())

	for name, v := range obj.All() {
		it := ItemOf(path, name, v)
		it.Order = len(items)
		items = append(items, it)

		if v.Kind == KindObject {
			t.flatten(v.Object, it.ChildPath())
		}
	}

	t[path] = items
}

// ItemOf converts a parsed value into an item named name at path. Object
// values become list items carrying no value of their own.
func ItemOf(path, name string, v *Value) Item {
	it := Item{Path: path, Name: name}

	switch v.Kind {
	case KindText:
		it.Type, it.Value = TypeText, v.Text

	case KindNumber:
		it.Type, it.Value = TypeNumber, v.Number

	case KindBoolean:
		it.Type, it.Value = TypeBoolean, v.Boolean

	case KindObject:
		it.Type = TypeList

	case KindReference:
		it.Type, it.Value = TypeReference, v.Name

	case KindConditional:
		it.Type, it.Value = TypeConditional, v.Conditional

	case KindFunction:
		it.Type, it.Value = TypeFunction, v.Function

	case KindComment:
		it.Type, it.Value = TypeComment, v.Text
	}

	return it
}

// ToValue converts a scalar item back into a value. Containers and items of
// unknown type report false.
func (it Item) ToValue() (*Value, bool) {
	switch it.Type {
	case TypeText:
		return Text(it.StringValue()), true

	case TypeNumber:
		f, _ := it.NumberValue()

		return Number(f), true

	case TypeBoolean:
		return Boolean(truthy(it.Value)), true

	case TypeReference:
		return Reference(it.StringValue()), true

	case TypeConditional:
		if c, ok := it.ConditionalValue(); ok {
			return StructuredConditional(c.Condition, c.TrueValue, c.FalseValue), true
		}

		return RawConditional(it.StringValue()), true

	case TypeFunction:
		fn, _ := it.FunctionValue()

		return Func(fn.Param, fn.Expression), true

	case TypeComment:
		return Comment(it.StringValue()), true

	default:
		return nil, false
	}
}
