// Package sqlite provides the SQLite dialect renderer for sqlfrag.
//
// Schema names are dropped from table references and RETURNING
// clauses are omitted.
package sqlite

import (
	"github.com/zoobzio/sqlfrag/internal/compile"
	"github.com/zoobzio/sqlfrag/internal/render"
	"github.com/zoobzio/sqlfrag/internal/types"
)

// Dialect is the name SQLite reports in errors and capability listings.
const Dialect = "sqlite"

var capabilities = render.NewCapabilities(Dialect,
	render.QuestionMarkPlaceholders,
	render.CommonTableExpressions,
)

// Renderer implements the SQLite dialect renderer.
type Renderer struct{}

// New creates a new SQLite renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render converts a query to SQLite SQL with ? placeholders.
func (r *Renderer) Render(q *types.Query) (*types.QueryResult, error) {
	return compile.Compile(q, r.Capabilities())
}

// Capabilities returns the SQL features supported by SQLite.
func (r *Renderer) Capabilities() render.Capabilities {
	return capabilities
}
