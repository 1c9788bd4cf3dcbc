package types

// EqualityOp represents a comparison operator inside a condition.
type EqualityOp string

const (
	EQ        EqualityOp = "="
	NE        EqualityOp = "!="
	LT        EqualityOp = "<"
	LTE       EqualityOp = "<="
	GT        EqualityOp = ">"
	GTE       EqualityOp = ">="
	IN        EqualityOp = "IN"
	NotIn     EqualityOp = "NOT IN"
	LIKE      EqualityOp = "LIKE"
	IsNull    EqualityOp = "IS NULL"
	IsNotNull EqualityOp = "IS NOT NULL"
)

// Unary reports whether the operator ignores its right operand.
func (op EqualityOp) Unary() bool {
	return op == IsNull || op == IsNotNull
}

// Valid reports whether op is one of the known operators.
func (op EqualityOp) Valid() bool {
	switch op {
	case EQ, NE, LT, LTE, GT, GTE, IN, NotIn, LIKE, IsNull, IsNotNull:
		return true
	}
	return false
}
