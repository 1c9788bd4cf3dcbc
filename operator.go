package sqlfrag

import "github.com/zoobzio/sqlfrag/internal/types"

// EqualityOp represents a comparison operator inside a condition.
type EqualityOp = types.EqualityOp

// Re-export operator constants for public API.
const (
	EQ        = types.EQ
	NE        = types.NE
	LT        = types.LT
	LTE       = types.LTE
	GT        = types.GT
	GTE       = types.GTE
	IN        = types.IN
	NotIn     = types.NotIn
	LIKE      = types.LIKE
	IsNull    = types.IsNull
	IsNotNull = types.IsNotNull
)

// ParseOperator maps an operator spelling to its EqualityOp.
// Both SQL ("<=", "NOT IN") and word forms ("lte", "not_in") are accepted.
func ParseOperator(s string) (EqualityOp, bool) {
	op, ok := operatorNames[s]
	if ok {
		return op, true
	}
	if candidate := EqualityOp(s); candidate.Valid() {
		return candidate, true
	}
	return "", false
}

var operatorNames = map[string]EqualityOp{
	"eq":          EQ,
	"ne":          NE,
	"lt":          LT,
	"lte":         LTE,
	"gt":          GT,
	"gte":         GTE,
	"in":          IN,
	"not_in":      NotIn,
	"like":        LIKE,
	"is_null":     IsNull,
	"is_not_null": IsNotNull,
}
