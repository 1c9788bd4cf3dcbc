package sqlfrag

import "github.com/zoobzio/sqlfrag/internal/types"

// Statement represents the kind of query.
type Statement = types.Statement

// Re-export statement constants for public API.
const (
	StmtSelect = types.StmtSelect
	StmtInsert = types.StmtInsert
	StmtUpdate = types.StmtUpdate
	StmtDelete = types.StmtDelete
)
