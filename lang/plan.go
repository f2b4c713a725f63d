package lang

import (
	"fmt"
	"strings"
)

// EmptyPlan is the rendering of a container with no items.
const EmptyPlan = "{}"

// Plan is the I/O-free rendering of one container: literal fragments
// interleaved with placeholders that an executor resolves later.
//
// The zero Plan renders as [EmptyPlan].
type Plan struct {
	Prefix string
	Suffix string
	Parts  []Part
}

// Empty reports whether p is the plan of an empty container.
func (p Plan) Empty() bool {
	return p.Prefix == "" && p.Suffix == "" && len(p.Parts) == 0
}

// String returns a debug rendering of the plan with placeholders shown in
// angle brackets.
func (p Plan) String() string {
	if p.Empty() {
		return EmptyPlan
	}

	var b strings.Builder

	b.WriteString(p.Prefix)

	for _, part := range p.Parts {
		b.WriteString(fmt.Sprint(part))
	}

	b.WriteString(p.Suffix)

	return b.String()
}

// Part is one element of a [Plan]: a [Literal], a [NumberPart], a
// [ListPlaceholder], or an [ExpressionPlaceholder].
type Part interface {
	part()
}

// Literal is text copied verbatim to the output.
type Literal string

// NumberPart is a number rendered with [FormatNumber].
type NumberPart float64

// ListPlaceholder stands for the nested container at Path, rendered at
// IndentLevel.
type ListPlaceholder struct {
	Path        string
	IndentLevel int
}

// ExpressionPlaceholder stands for the numeric children at Path joined by
// Operator.
type ExpressionPlaceholder struct {
	Operator string
	Path     string
}

func (Literal) part()               {}
func (NumberPart) part()            {}
func (ListPlaceholder) part()       {}
func (ExpressionPlaceholder) part() {}

func (n NumberPart) String() string { return FormatNumber(float64(n)) }

func (l ListPlaceholder) String() string {
	return fmt.Sprintf("<LIST %s %d>", l.Path, l.IndentLevel)
}

func (e ExpressionPlaceholder) String() string {
	return fmt.Sprintf("<EXPRESSION %s %s>", e.Operator, e.Path)
}

// IndentString returns n levels of two-space indentation.
func IndentString(n int) string {
	if n <= 0 {
		return ""
	}

	return strings.Repeat("  ", n)
}

// Stringify plans the rendering of items, the ordered contents of the
// container at path. Items are rendered in the order given.
//
// Nested lists and sum/difference values are not rendered here; they become
// placeholders naming the child container path. An indentLevel below 1 is
// treated as 1.
func Stringify(items []Item, path string, indentLevel int) Plan {
	if len(items) == 0 {
		return Plan{}
	}

	if indentLevel < 1 {
		indentLevel = 1
	}

	indent := IndentString(indentLevel)
	parts := make([]Part, 0, 3*len(items))

	for i, it := range items {
		parts = append(parts,
			Literal(indent+it.Name+": "),
			stringifyValue(it, path, indentLevel),
		)

		if i < len(items)-1 {
			parts = append(parts, Literal("\n"))
		}
	}

	return Plan{
		Prefix: "{\n",
		Suffix: "\n" + IndentString(indentLevel-1) + "}",
		Parts:  parts,
	}
}

// stringifyValue renders one item's value, or a placeholder for it.
func stringifyValue(it Item, path string, indentLevel int) Part {
	switch it.Type {
	case TypeText:
		s, ok := it.Value.(string)
		if !ok {
			s = stringOf(it.Value)
		}

		return Literal(`"` + EscapeText(s) + `"`)

	case TypeNumber:
		f, _ := it.NumberValue()

		return NumberPart(f)

	case TypeBoolean:
		return Literal(formatBoolean(truthy(it.Value)))

	case TypeReference:
		return Literal(it.StringValue())

	case TypeFunction:
		if fn, ok := it.FunctionValue(); ok {
			return Literal(fn.String())
		}

		s, _ := it.Value.(string)

		return Literal(s)

	case TypeComment:
		return Literal("// " + it.StringValue())

	case TypeConditional:
		if c, ok := it.ConditionalValue(); ok {
			return Literal(fmt.Sprintf(
				`{ condition: "%s" trueValue: "%s" falseValue: "%s" }`,
				EscapeText(c.Condition),
				EscapeText(c.TrueValue),
				EscapeText(c.FalseValue),
			))
		}

		return Literal(it.StringValue())

	case TypeList, TypeExpression:
		return ListPlaceholder{
			Path:        ChildPath(path, it.Name),
			IndentLevel: indentLevel + 1,
		}

	case TypeSum, TypeDifference:
		op, _ := it.Type.Operator()

		return ExpressionPlaceholder{
			Operator: op,
			Path:     ChildPath(path, it.Name),
		}

	case TypeUnknown:
		return Literal("")

	default:
		return Literal("")
	}
}

// truthy reports whether a stored boolean value is set.
func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false

	case bool:
		return b

	case string:
		return b != ""

	default:
		f, ok := toNumber(v)

		return ok && f != 0
	}
}
