package sqlfrag

import (
	"fmt"

	"github.com/zoobzio/sqlfrag/internal/types"
)

// TryC creates a condition, returning an error if invalid.
// A right side that is not an operand is bound as a value.
func TryC(left types.Operand, op types.EqualityOp, right any) (types.Condition, error) {
	if left == nil {
		return types.Condition{}, types.ErrNilOperand
	}
	if !op.Valid() {
		return types.Condition{}, fmt.Errorf("%w: %q", types.ErrInvalidOperator, op)
	}
	if op.Unary() {
		return types.Condition{Left: left, Op: op, Right: types.List{}}, nil
	}
	r, err := toOperand(right)
	if err != nil {
		return types.Condition{}, err
	}
	return types.Condition{Left: left, Op: op, Right: r}, nil
}

// C creates a condition.
func C(left types.Operand, op types.EqualityOp, right any) types.Condition {
	c, err := TryC(left, op, right)
	if err != nil {
		panic(err)
	}
	return c
}

// Null creates an IS NULL condition.
func Null(o types.Operand) types.Condition {
	return C(o, types.IsNull, nil)
}

// NotNull creates an IS NOT NULL condition.
func NotNull(o types.Operand) types.Condition {
	return C(o, types.IsNotNull, nil)
}

// W wraps a condition as a filter. Chain And/Or to add subfilters.
func W(c types.Condition) types.Filter {
	return types.Filter{Condition: c}
}
