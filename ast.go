package sqlfrag

import "github.com/zoobzio/sqlfrag/internal/types"

// Direction represents sort direction.
type Direction = types.Direction

// Re-export direction constants for public API.
const (
	ASC  = types.ASC
	DESC = types.DESC
)

// JoinModifier qualifies an outer join.
type JoinModifier = types.JoinModifier

// JoinType represents the kind of join.
type JoinType = types.JoinType

// Re-export join constants for public API.
const (
	NoModifier = types.NoModifier
	Left       = types.Left
	Right      = types.Right
	Full       = types.Full

	CrossJoin = types.CrossJoin
	InnerJoin = types.InnerJoin
	OuterJoin = types.OuterJoin
)
