package lang

import (
	"encoding/json"

	"github.com/goccy/go-yaml"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Native is the plain-data rendering of an object: names in source order
// mapped to strings, float64s, bools, nested *Native, or tagged maps for
// references, functions, conditionals, and comments.
type Native = orderedmap.OrderedMap[string, any]

// MarshalJSON implements json.Marshaler for Object.
func (o *Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.ToNative())
}

// MarshalYAML implements yaml.InterfaceMarshaler for Object.
func (o *Object) MarshalYAML() (any, error) {
	return toMapSlice(o.ToNative()), nil
}

// ToNative converts the object to ordered plain data.
func (o *Object) ToNative() *Native {
	out := orderedmap.New[string, any]()

	for name, v := range o.All() {
		out.Set(name, v.ToNative())
	}

	return out
}

// ToNative converts a value to plain data.
func (v *Value) ToNative() any {
	switch v.Kind {
	case KindText:
		return v.Text

	case KindNumber:
		return v.Number

	case KindBoolean:
		return v.Boolean

	case KindObject:
		return v.Object.ToNative()

	case KindReference:
		return tagged("reference", "name", v.Name)

	case KindFunction:
		fn := orderedmap.New[string, any]()
		fn.Set("param", v.Function.Param)
		fn.Set("expression", v.Function.Expression)

		return tagged("function", "value", fn)

	case KindConditional:
		if !v.Conditional.Structured {
			return tagged("conditional", "value", v.Conditional.Raw)
		}

		c := orderedmap.New[string, any]()
		c.Set("condition", v.Conditional.Condition)
		c.Set("trueValue", v.Conditional.TrueValue)
		c.Set("falseValue", v.Conditional.FalseValue)

		return tagged("conditional", "value", c)

	case KindComment:
		return tagged("comment", "value", v.Text)

	default:
		return nil
	}
}

func tagged(kind, key string, val any) *Native {
	m := orderedmap.New[string, any]()
	m.Set("type", kind)
	m.Set(key, val)

	return m
}

// toMapSlice rewrites ordered maps into the YAML encoder's ordered form.
func toMapSlice(v any) any {
	m, ok := v.(*Native)
	if !ok {
		return v
	}

	out := make(yaml.MapSlice, 0, m.Len())

	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, yaml.MapItem{Key: pair.Key, Value: toMapSlice(pair.Value)})
	}

	return out
}
