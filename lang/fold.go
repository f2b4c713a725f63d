package lang

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
)

// Fold evaluates a sum or difference item over its direct numeric children,
// left to right. Children that are not numbers are ignored, including nested
// expressions. An item with no numeric children folds to 0.
//
// The children are fetched once from f at the item's child path.
func Fold(ctx context.Context, it Item, f Fetcher, opts ...Option) (float64, error) {
	o := makeOptions(opts...)

	op, ok := it.Type.Operator()
	if !ok {
		return 0, ErrNotExpression.With(
			slog.String("name", it.Name),
			slog.String("type", it.Type.String()),
		)
	}

	items, err := f.FetchChildren(ctx, it.ChildPath())
	if err != nil {
		return 0, err
	}

	nums := Operands(items)
	if len(nums) == 0 {
		return 0, nil
	}

	src, env := operandProgram(nums, op)

	program, err := expr.Compile(src, expr.Env(env), expr.AsFloat64())
	if err != nil {
		return 0, ErrExprCompile.With(slog.String("source", src)).Wrap(err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return 0, ErrExprEvaluate.With(slog.String("source", src)).Wrap(err)
	}

	result, _ := out.(float64)

	o.logger.TraceContext(ctx, "fold complete",
		slog.String("path", it.ChildPath()),
		slog.String("source", src),
		slog.Float64("result", result))

	return result, nil
}

// operandProgram binds each operand to a float64 variable so that expr never
// treats whole numbers as int literals.
func operandProgram(nums []float64, op string) (string, map[string]any) {
	env := make(map[string]any, len(nums))
	names := make([]string, len(nums))

	for i, n := range nums {
		names[i] = "a" + strconv.Itoa(i)
		env[names[i]] = n
	}

	return strings.Join(names, " "+op+" "), env
}
