package sqlfrag

import (
	"github.com/zoobzio/sqlfrag/internal/render"
	"github.com/zoobzio/sqlfrag/internal/types"
)

// Renderer defines the interface for SQL dialect-specific rendering.
// Implementations compile a query against one fixed capability profile.
type Renderer interface {
	// Render converts a query to dialect-specific SQL and parameters.
	Render(q *types.Query) (*types.QueryResult, error)

	// Capabilities returns the dialect's capability profile.
	Capabilities() Capabilities
}

// AllCapabilities lists every capability flag in declaration order.
func AllCapabilities() []Capability {
	return render.AllCapabilities()
}
