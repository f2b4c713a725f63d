package lang

import (
	"encoding/json"
	"strings"
)

// ItemType is the type tag of a stored [Item].
type ItemType int

const (
	TypeUnknown     ItemType = iota // unknown
	TypeList                        // list
	TypeText                        // text
	TypeNumber                      // number
	TypeBoolean                     // boolean
	TypeReference                   // reference
	TypeConditional                 // conditional
	TypeFunction                    // function
	TypeComment                     // comment
	TypeSum                         // sum
	TypeDifference                  // difference

	// TypeExpression is an expression-like container with no operator of its
	// own. Its children render as a nested list.
	TypeExpression // expression
)

// OperandsSegment is the conventional child container segment holding the
// operands of sum and difference items. It is not enforced here.
const OperandsSegment = "operandos/"

var itemTypeName = [...]string{
	TypeUnknown:     "unknown",
	TypeList:        "list",
	TypeText:        "text",
	TypeNumber:      "number",
	TypeBoolean:     "boolean",
	TypeReference:   "reference",
	TypeConditional: "conditional",
	TypeFunction:    "function",
	TypeComment:     "comment",
	TypeSum:         "sum",
	TypeDifference:  "difference",
	TypeExpression:  "expression",
}

// itemTypeAlias maps accepted spellings, including legacy ones, to types.
var itemTypeAlias = map[string]ItemType{
	"list":        TypeList,
	"lista":       TypeList,
	"text":        TypeText,
	"texto":       TypeText,
	"number":      TypeNumber,
	"numero":      TypeNumber,
	"número":      TypeNumber,
	"boolean":     TypeBoolean,
	"booleano":    TypeBoolean,
	"logico":      TypeBoolean,
	"reference":   TypeReference,
	"referencia":  TypeReference,
	"conditional": TypeConditional,
	"condicional": TypeConditional,
	"function":    TypeFunction,
	"funcao":      TypeFunction,
	"comment":     TypeComment,
	"comentario":  TypeComment,
	"sum":         TypeSum,
	"soma":        TypeSum,
	"difference":  TypeDifference,
	"subtracao":   TypeDifference,
	"expression":  TypeExpression,
	"expressao":   TypeExpression,
}

// String returns the canonical lowercase name of the type.
func (t ItemType) String() string {
	if t < 0 || int(t) >= len(itemTypeName) {
		return itemTypeName[TypeUnknown]
	}

	return itemTypeName[t]
}

// ParseItemType returns the type named s, case-insensitively.
// Unrecognized names yield TypeUnknown.
func ParseItemType(s string) ItemType {
	if t, ok := itemTypeAlias[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t
	}

	return TypeUnknown
}

// ItemTypes returns the canonical names of all known types.
func ItemTypes() []string {
	return append([]string(nil), itemTypeName[TypeList:]...)
}

// IsContainer reports whether items of this type own a child collection.
func (t ItemType) IsContainer() bool {
	return t == TypeList || t.IsExpression()
}

// IsExpression reports whether the item's text is derived from its children.
func (t ItemType) IsExpression() bool {
	return t == TypeSum || t == TypeDifference || t == TypeExpression
}

// Operator returns the infix operator of a sum or difference.
func (t ItemType) Operator() (string, bool) {
	switch t {
	case TypeSum:
		return "+", true

	case TypeDifference:
		return "-", true

	default:
		return "", false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t ItemType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ItemType) UnmarshalText(text []byte) error {
	*t = ParseItemType(string(text))

	return nil
}

// Item is a stored, named, typed value living in the container at Path.
type Item struct {
	ID    string   `json:"id"`
	Path  string   `json:"path"`
	Name  string   `json:"name"`
	Type  ItemType `json:"type"`
	Value any      `json:"value,omitempty"`
	Order int      `json:"order"`
}

// ChildPath returns the path of the container owned by the item.
func (it Item) ChildPath() string {
	return ChildPath(it.Path, it.Name)
}

// ChildPath returns path + name + "/".
func ChildPath(path, name string) string {
	return path + name + "/"
}

// NumberValue returns the item's value as a finite number, or false.
func (it Item) NumberValue() (float64, bool) {
	return toNumber(it.Value)
}

// FunctionValue returns the item's value as a function literal if it holds
// both a parameter and an expression.
func (it Item) FunctionValue() (Function, bool) {
	switch v := it.Value.(type) {
	case Function:
		return v, v.Param != "" && v.Expression != ""

	case *Function:
		if v == nil {
			return Function{}, false
		}

		return *v, v.Param != "" && v.Expression != ""

	case map[string]any:
		param, _ := v["param"].(string)
		expression, _ := v["expression"].(string)

		return Function{Param: param, Expression: expression},
			param != "" && expression != ""

	default:
		return Function{}, false
	}
}

// ConditionalValue returns the item's value as a structured conditional if
// it holds one.
func (it Item) ConditionalValue() (Conditional, bool) {
	switch v := it.Value.(type) {
	case Conditional:
		return v, v.Structured

	case *Conditional:
		if v == nil {
			return Conditional{}, false
		}

		return *v, v.Structured

	case map[string]any:
		_, hasCond := v["condition"]
		_, hasTrue := v["trueValue"]
		_, hasFalse := v["falseValue"]

		if !hasCond && !hasTrue && !hasFalse {
			return Conditional{}, false
		}

		return Conditional{
			Condition:  stringOf(v["condition"]),
			TrueValue:  stringOf(v["trueValue"]),
			FalseValue: stringOf(v["falseValue"]),
			Structured: true,
		}, true

	default:
		return Conditional{}, false
	}
}

// StringValue returns the item's value as a string, or "" if it holds
// nothing printable.
func (it Item) StringValue() string {
	return stringOf(it.Value)
}

func stringOf(v any) string {
	switch s := v.(type) {
	case nil:
		return ""

	case string:
		return s

	case bool:
		return formatBoolean(s)

	case Conditional:
		return s.String()

	case Function:
		return s.String()

	case json.Number:
		return s.String()

	default:
		if f, ok := toNumber(v); ok {
			return FormatNumber(f)
		}

		return ""
	}
}
