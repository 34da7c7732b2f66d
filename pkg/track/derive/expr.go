package derive

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	starlarkmath "go.starlark.net/lib/math"
	"go.starlark.net/starlark"
)

// ErrExpression is returned when a custom field expression does not compile.
var ErrExpression = errors.New("invalid field expression")

// Expression compiles a Starlark expression over the required columns into a Field.
// The expression sees one float per required column, by name, and the math module.
// Rows where evaluation fails or does not produce a number are NaN.
func Expression(name string, requires []string, expr string) (Field, error) {
	if name == "" {
		return Field{}, errors.Wrap(ErrExpression, "missing field name")
	}

	if strings.TrimSpace(expr) == "" {
		return Field{}, errors.Wrapf(ErrExpression, "field %s has an empty expression", name)
	}

	predeclared := starlark.StringDict{"math": starlarkmath.Module}

	src := "lambda " + strings.Join(requires, ", ") + ": " + expr
	if len(requires) == 0 {
		src = "lambda: " + expr
	}

	value, err := starlark.Eval(newThread(name), name, src, predeclared) //nolint:staticcheck // SA1019: will migrate to EvalOptions later
	if err != nil {
		return Field{}, errors.Wrapf(ErrExpression, "field %s: %v", name, err)
	}

	fn, ok := value.(starlark.Callable)
	if !ok {
		return Field{}, errors.Wrapf(ErrExpression, "field %s is not callable", name)
	}

	return Field{
		Name:     name,
		Requires: append([]string(nil), requires...),
		Doc:      expr,
		Compute: func(in Inputs, rows int) ([]float64, error) {
			thread := newThread(name)
			res := make([]float64, rows)
			args := make(starlark.Tuple, len(requires))
			for i := range rows {
				for j, req := range requires {
					args[j] = starlark.Float(in[req][i])
				}

				res[i] = callFloat(thread, fn, args)
			}

			return res, nil
		},
	}, nil
}

func newThread(name string) *starlark.Thread {
	return &starlark.Thread{
		Name:  name,
		Print: func(_ *starlark.Thread, _ string) {},
	}
}

func callFloat(thread *starlark.Thread, fn starlark.Callable, args starlark.Tuple) float64 {
	out, err := starlark.Call(thread, fn, args, nil)
	if err != nil {
		return math.NaN()
	}

	if b, ok := out.(starlark.Bool); ok {
		if b {
			return 1
		}

		return 0
	}

	f, ok := starlark.AsFloat(out)
	if !ok {
		return math.NaN()
	}

	return f
}
