package types

import "errors"

var (
	ErrMissingTarget        = errors.New("query has no target table")
	ErrPageWithoutSize      = errors.New("page requires page size")
	ErrInvalidPagination    = errors.New("page and page size must not be negative")
	ErrJoinColumnMismatch   = errors.New("join column lists differ in length")
	ErrJoinOnClause         = errors.New("invalid join condition")
	ErrEmptyValues          = errors.New("statement requires at least one value")
	ErrValueCountMismatch   = errors.New("value count does not match column count")
	ErrNilOperand           = errors.New("nil operand")
	ErrDepthExceeded        = errors.New("maximum nesting depth exceeded")
	ErrUnsupportedStatement = errors.New("unsupported statement")
	ErrInvalidOperator      = errors.New("invalid operator")
	ErrInvalidValue         = errors.New("invalid value")
	ErrInvalidJoin          = errors.New("invalid join")
	ErrInvalidDirection     = errors.New("invalid sort direction")
	ErrInvalidIdentifier    = errors.New("invalid identifier")
)
