// Package sqlfrag provides a dialect-agnostic SQL query AST and compiler.
//
// A query is built as a tree of operands, filters, joins and fields, then
// compiled against a dialect's capability profile into SQL text plus an
// ordered list of bound parameters. Literal values are never inlined.
//
// # Basic Usage
//
//	import "github.com/zoobzio/sqlfrag/postgres"
//
//	result, err := sqlfrag.Select("users").
//		Columns("id", "name").
//		Where("active", sqlfrag.EQ, true).
//		Asc("name").
//		PageSize(10).
//		Render(postgres.New())
//	// result.SQL:
//	//	SELECT id, name
//	//	 FROM users
//	//	    WHERE active = $1
//	//	    ORDER BY name ASC
//	//	    LIMIT 10
//	// result.Params: [true]
//
// # Dialects
//
// Each dialect package supplies one fixed capability profile:
// postgres ($n placeholders, RETURNING, schema names), sqlite and mysql
// (? placeholders). Features a dialect lacks degrade silently: a RETURNING
// clause is omitted and schema names are dropped.
//
// # Schema-Validated Usage
//
// An Instance built from a DBML project checks table and column names:
//
//	instance, err := sqlfrag.NewFromDBML(project)
//	users := instance.T("users")   // panics if unknown
//	email := instance.Col("users.email")
//
// # Parameters
//
// Placeholder numbering is shared by a statement and all of its nested
// subqueries, so Params always lines up with the placeholders in SQL.
package sqlfrag

import (
	"github.com/zoobzio/sqlfrag/internal/render"
	"github.com/zoobzio/sqlfrag/internal/types"
)

// Query is the root of the AST.
type Query = types.Query

// QueryResult contains the rendered SQL and its positional parameters.
type QueryResult = types.QueryResult

// Operand is any expression: column, table, function, subquery, value or list.
type Operand = types.Operand

// Re-exported AST node types.
type (
	ColumnRef = types.ColumnRef
	TableRef  = types.TableRef
	Function  = types.Function
	Subquery  = types.Subquery
	List      = types.List
	Value     = types.Value
	ValueKind = types.ValueKind
	Field     = types.Field
	Condition = types.Condition
	Filter    = types.Filter
	SubFilter = types.SubFilter
	Connector = types.Connector
	Join      = types.Join
	Order     = types.Order
)

// Re-export connector constants for public API.
const (
	AND = types.AND
	OR  = types.OR
)

// Capabilities describes the SQL features supported by a dialect.
type Capabilities = render.Capabilities

// Capability is a single dialect feature flag.
type Capability = render.Capability

// Re-export capability flags for public API.
const (
	NumberedPlaceholders     = render.NumberedPlaceholders
	QuestionMarkPlaceholders = render.QuestionMarkPlaceholders
	Returning                = render.Returning
	CommonTableExpressions   = render.CommonTableExpressions
	Inheritance              = render.Inheritance
	SchemaQualification      = render.SchemaQualification
	ResultMetadata           = render.ResultMetadata
)

// UnsupportedFeatureError indicates a feature not supported by the dialect.
type UnsupportedFeatureError = render.UnsupportedFeatureError

// NewUnsupportedFeatureError builds an UnsupportedFeatureError.
func NewUnsupportedFeatureError(dialect, feature string, hint ...string) error {
	return render.NewUnsupportedFeatureError(dialect, feature, hint...)
}

// Re-export sentinel errors for public API.
var (
	ErrMissingTarget        = types.ErrMissingTarget
	ErrPageWithoutSize      = types.ErrPageWithoutSize
	ErrInvalidPagination    = types.ErrInvalidPagination
	ErrJoinColumnMismatch   = types.ErrJoinColumnMismatch
	ErrJoinOnClause         = types.ErrJoinOnClause
	ErrEmptyValues          = types.ErrEmptyValues
	ErrValueCountMismatch   = types.ErrValueCountMismatch
	ErrNilOperand           = types.ErrNilOperand
	ErrDepthExceeded        = types.ErrDepthExceeded
	ErrUnsupportedStatement = types.ErrUnsupportedStatement
	ErrInvalidOperator      = types.ErrInvalidOperator
	ErrInvalidValue         = types.ErrInvalidValue
	ErrInvalidJoin          = types.ErrInvalidJoin
	ErrInvalidDirection     = types.ErrInvalidDirection
	ErrInvalidIdentifier    = types.ErrInvalidIdentifier
	ErrUnsupportedFeature   = render.ErrUnsupportedFeature
)

// Re-export nesting limits for public API.
const (
	MaxFilterDepth   = types.MaxFilterDepth
	MaxOperandDepth  = types.MaxOperandDepth
	MaxSubqueryDepth = types.MaxSubqueryDepth
)
