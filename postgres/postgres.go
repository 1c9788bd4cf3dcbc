// Package postgres provides the PostgreSQL dialect renderer for sqlfrag.
package postgres

import (
	"github.com/zoobzio/sqlfrag/internal/compile"
	"github.com/zoobzio/sqlfrag/internal/render"
	"github.com/zoobzio/sqlfrag/internal/types"
)

// Dialect is the name PostgreSQL reports in errors and capability listings.
const Dialect = "postgres"

var capabilities = render.NewCapabilities(Dialect,
	render.NumberedPlaceholders,
	render.Returning,
	render.CommonTableExpressions,
	render.Inheritance,
	render.SchemaQualification,
	render.ResultMetadata,
)

// Renderer implements the PostgreSQL dialect renderer.
type Renderer struct{}

// New creates a new PostgreSQL renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render converts a query to PostgreSQL SQL with $n placeholders.
func (r *Renderer) Render(q *types.Query) (*types.QueryResult, error) {
	return compile.Compile(q, r.Capabilities())
}

// Capabilities returns the SQL features supported by PostgreSQL.
func (r *Renderer) Capabilities() render.Capabilities {
	return capabilities
}
