package sqlfrag

import (
	"fmt"

	"github.com/zoobzio/sqlfrag/internal/types"
)

// TryFn creates a function call operand, returning an error if the name
// is not a plain identifier or an argument cannot be converted.
// Arguments that are not operands are bound as values.
func TryFn(name string, args ...any) (types.Function, error) {
	if !types.IsIdentifier(name) {
		return types.Function{}, fmt.Errorf("invalid function name %q", name)
	}
	ops, err := toOperands(args)
	if err != nil {
		return types.Function{}, fmt.Errorf("function %s: %w", name, err)
	}
	return types.Function{Name: name, Args: ops}, nil
}

// Fn creates a function call operand.
func Fn(name string, args ...any) types.Function {
	f, err := TryFn(name, args...)
	if err != nil {
		panic(err)
	}
	return f
}

// Count returns count(*).
func Count() types.Function {
	return types.Function{Name: "count", Args: []types.Operand{Star()}}
}

// Sub wraps a query as an operand.
func Sub(q *types.Query) types.Subquery {
	return types.Subquery{Query: q}
}

// TryL creates a parenthesized operand list.
func TryL(items ...any) (types.List, error) {
	ops, err := toOperands(items)
	if err != nil {
		return types.List{}, err
	}
	return types.List{Items: ops}, nil
}

// L creates a parenthesized operand list.
func L(items ...any) types.List {
	l, err := TryL(items...)
	if err != nil {
		panic(err)
	}
	return l
}

// toOperand keeps operands as they are and binds everything else.
func toOperand(v any) (types.Operand, error) {
	if o, ok := v.(types.Operand); ok {
		return o, nil
	}
	if q, ok := v.(*types.Query); ok {
		return types.Subquery{Query: q}, nil
	}
	return types.ToValue(v)
}

func toOperands(vs []any) ([]types.Operand, error) {
	ops := make([]types.Operand, len(vs))
	for i, v := range vs {
		o, err := toOperand(v)
		if err != nil {
			return nil, err
		}
		ops[i] = o
	}
	return ops, nil
}
