// Package mysql provides the MySQL and MariaDB dialect renderer for sqlfrag.
package mysql

import (
	"github.com/zoobzio/sqlfrag/internal/compile"
	"github.com/zoobzio/sqlfrag/internal/render"
	"github.com/zoobzio/sqlfrag/internal/types"
)

// Dialect is the name MySQL reports in errors and capability listings.
const Dialect = "mysql"

var capabilities = render.NewCapabilities(Dialect,
	render.QuestionMarkPlaceholders,
	render.ResultMetadata,
)

// Renderer implements the MySQL dialect renderer.
type Renderer struct{}

// New creates a new MySQL renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render converts a query to MySQL SQL with ? placeholders.
func (r *Renderer) Render(q *types.Query) (*types.QueryResult, error) {
	return compile.Compile(q, r.Capabilities())
}

// Capabilities returns the SQL features supported by MySQL.
func (r *Renderer) Capabilities() render.Capabilities {
	return capabilities
}
