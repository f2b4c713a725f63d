package lang

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Fetcher looks up the ordered children of a container.
//
// Implementations return items in display order; the executor does not
// sort them.
type Fetcher interface {
	FetchChildren(ctx context.Context, path string) ([]Item, error)
}

// FetchFunc adapts a function to the [Fetcher] interface.
type FetchFunc func(ctx context.Context, path string) ([]Item, error)

// FetchChildren calls f.
func (f FetchFunc) FetchChildren(ctx context.Context, path string) ([]Item, error) {
	return f(ctx, path)
}

// Execute renders plan, resolving each placeholder with exactly one call to
// f.FetchChildren. Nested lists are planned and executed recursively, depth
// first and in item order, with one lookup outstanding at a time.
//
// The first error from f aborts the walk and is returned as is; no partial
// output is returned. ctx is checked before every lookup.
func Execute(ctx context.Context, plan Plan, f Fetcher, opts ...Option) (string, error) {
	e := executor{fetcher: f, opts: makeOptions(opts...)}

	var b strings.Builder

	if err := e.execute(ctx, &b, plan); err != nil {
		return "", err
	}

	e.opts.logger.TraceContext(ctx, "execute complete",
		slog.Int("fetches", e.fetches),
		slog.Int("bytes", b.Len()))

	return b.String(), nil
}

type executor struct {
	fetcher Fetcher
	opts    options
	fetches int
}

func (e *executor) execute(ctx context.Context, b *strings.Builder, plan Plan) error {
	if plan.Empty() {
		b.WriteString(EmptyPlan)

		return nil
	}

	b.WriteString(plan.Prefix)

	for _, part := range plan.Parts {
		switch p := part.(type) {
		case Literal:
			b.WriteString(string(p))

		case NumberPart:
			b.WriteString(FormatNumber(float64(p)))

		case ListPlaceholder:
			items, err := e.fetch(ctx, p.Path)
			if err != nil {
				return err
			}

			err = e.execute(ctx, b, Stringify(items, p.Path, p.IndentLevel))
			if err != nil {
				return err
			}

		case ExpressionPlaceholder:
			items, err := e.fetch(ctx, p.Path)
			if err != nil {
				return err
			}

			b.WriteString(JoinOperands(Operands(items), p.Operator))

		default:
			fmt.Fprint(b, part)
		}
	}

	b.WriteString(plan.Suffix)

	return nil
}

func (e *executor) fetch(ctx context.Context, path string) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.fetches++

	e.opts.logger.TraceContext(ctx, "fetch children", slog.String("path", path))

	return e.fetcher.FetchChildren(ctx, path)
}

// Operands returns the values of the number-typed items, in order.
// A number item holding no finite value contributes 0.
func Operands(items []Item) []float64 {
	var nums []float64

	for _, it := range items {
		if it.Type != TypeNumber {
			continue
		}

		f, _ := it.NumberValue()
		nums = append(nums, f)
	}

	return nums
}

// JoinOperands renders nums joined by " op ". No operands render as the
// empty string and a single operand as the bare number.
func JoinOperands(nums []float64, op string) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = FormatNumber(n)
	}

	return strings.Join(parts, " "+op+" ")
}
