package lang

import (
	"iter"
	"math"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind indicates which field of a [Value] is populated.
type Kind int

const (
	// KindText is a quoted text literal.
	KindText Kind = iota

	// KindNumber is a numeric literal.
	KindNumber

	// KindBoolean is @1 or @0.
	KindBoolean

	// KindObject is a nested { name: value ... } list.
	KindObject

	// KindReference is a bare identifier naming a sibling value.
	KindReference

	// KindConditional is a ternary-like "cond ? a : b" expression.
	KindConditional

	// KindFunction is a single-parameter function literal "x => expr".
	KindFunction

	// KindComment is a "// ..." line comment.
	KindComment
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"

	case KindNumber:
		return "number"

	case KindBoolean:
		return "boolean"

	case KindObject:
		return "list"

	case KindReference:
		return "reference"

	case KindConditional:
		return "conditional"

	case KindFunction:
		return "function"

	case KindComment:
		return "comment"

	default:
		return "unknown"
	}
}

// Value is one node of a parsed tree. Exactly one payload field is
// meaningful, selected by Kind.
type Value struct {
	Kind Kind

	Text        string // KindText, KindComment
	Number      float64
	Boolean     bool
	Object      *Object
	Name        string // KindReference
	Conditional Conditional
	Function    Function

	Pos Position
}

// Conditional is either the raw "cond ? a : b" text, or the structured form
// with separate fields.
type Conditional struct {
	Raw        string `json:"raw,omitempty"        yaml:"raw,omitempty"`
	Condition  string `json:"condition,omitempty"  yaml:"condition,omitempty"`
	TrueValue  string `json:"trueValue,omitempty"  yaml:"trueValue,omitempty"`
	FalseValue string `json:"falseValue,omitempty" yaml:"falseValue,omitempty"`
	Structured bool   `json:"-"                    yaml:"-"`
}

// String renders the conditional in its raw form.
func (c Conditional) String() string {
	if !c.Structured {
		return c.Raw
	}

	return c.Condition + " ? " + c.TrueValue + " : " + c.FalseValue
}

// Function is a single-parameter function literal.
type Function struct {
	Param      string `json:"param"      yaml:"param"`
	Expression string `json:"expression" yaml:"expression"`
}

// String renders the function as "param => expression".
func (f Function) String() string {
	return f.Param + " => " + f.Expression
}

// Text returns a text value.
func Text(s string) *Value { return &Value{Kind: KindText, Text: s} }

// Number returns a number value. Non-finite input is stored as 0.
func Number(f float64) *Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}

	return &Value{Kind: KindNumber, Number: f}
}

// Boolean returns a boolean value.
func Boolean(b bool) *Value { return &Value{Kind: KindBoolean, Boolean: b} }

// Reference returns a reference to the sibling named name.
func Reference(name string) *Value {
	return &Value{Kind: KindReference, Name: name}
}

// Func returns a function value.
func Func(param, expression string) *Value {
	return &Value{
		Kind:     KindFunction,
		Function: Function{Param: param, Expression: expression},
	}
}

// Comment returns a comment value.
func Comment(s string) *Value { return &Value{Kind: KindComment, Text: s} }

// RawConditional returns a conditional holding its expression text verbatim.
func RawConditional(raw string) *Value {
	return &Value{Kind: KindConditional, Conditional: Conditional{Raw: raw}}
}

// StructuredConditional returns a conditional with separate fields.
func StructuredConditional(condition, trueValue, falseValue string) *Value {
	return &Value{
		Kind: KindConditional,
		Conditional: Conditional{
			Condition:  condition,
			TrueValue:  trueValue,
			FalseValue: falseValue,
			Structured: true,
		},
	}
}

// ObjectValue wraps o as a value.
func ObjectValue(o *Object) *Value { return &Value{Kind: KindObject, Object: o} }

// Equal reports whether v and w hold the same kind and payload.
// Positions are ignored, and objects compare without regard to key order.
func (v *Value) Equal(w *Value) bool {
	if v == nil || w == nil {
		return v == w
	}

	if v.Kind != w.Kind {
		return false
	}

	switch v.Kind {
	case KindText, KindComment:
		return v.Text == w.Text

	case KindNumber:
		return v.Number == w.Number

	case KindBoolean:
		return v.Boolean == w.Boolean

	case KindObject:
		return v.Object.Equal(w.Object)

	case KindReference:
		return v.Name == w.Name

	case KindConditional:
		return v.Conditional == w.Conditional

	case KindFunction:
		return v.Function == w.Function

	default:
		return false
	}
}

// String returns a short human-readable rendering of the value.
func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}

	switch v.Kind {
	case KindText:
		return strconv.Quote(v.Text)

	case KindNumber:
		return FormatNumber(v.Number)

	case KindBoolean:
		return formatBoolean(v.Boolean)

	case KindObject:
		return "{ " + strconv.Itoa(v.Object.Len()) + " items }"

	case KindReference:
		return v.Name

	case KindConditional:
		return v.Conditional.String()

	case KindFunction:
		return v.Function.String()

	case KindComment:
		return "// " + v.Text

	default:
		return "<unknown>"
	}
}

// Object is an ordered mapping of unique names to values.
type Object struct {
	entries *orderedmap.OrderedMap[string, *Value]
	Pos     Position
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{entries: orderedmap.New[string, *Value]()}
}

func (o *Object) init() {
	if o.entries == nil {
		o.entries = orderedmap.New[string, *Value]()
	}
}

// Len returns the number of entries.
func (o *Object) Len() int {
	if o == nil || o.entries == nil {
		return 0
	}

	return o.entries.Len()
}

// Get returns the value stored under name.
func (o *Object) Get(name string) (*Value, bool) {
	if o == nil || o.entries == nil {
		return nil, false
	}

	return o.entries.Get(name)
}

// Set stores v under name, keeping the original position of an existing
// entry. It returns the receiver for chaining.
func (o *Object) Set(name string, v *Value) *Object {
	o.init()
	o.entries.Set(name, v)

	return o
}

// Add stores v under name and reports false, without modifying o, if name is
// already present.
func (o *Object) Add(name string, v *Value) bool {
	o.init()

	if _, exists := o.entries.Get(name); exists {
		return false
	}

	o.entries.Set(name, v)

	return true
}

// Keys returns the entry names in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for k := range o.All() {
		keys = append(keys, k)
	}

	return keys
}

// All returns an iterator over entries in insertion order.
func (o *Object) All() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		if o == nil || o.entries == nil {
			return
		}

		for pair := o.entries.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Equal reports whether o and p have the same names bound to equal values,
// regardless of order.
func (o *Object) Equal(p *Object) bool {
	if o.Len() != p.Len() {
		return false
	}

	for k, v := range o.All() {
		w, ok := p.Get(k)
		if !ok || !v.Equal(w) {
			return false
		}
	}

	return true
}
