package sqlfrag

import (
	"fmt"

	"github.com/zoobzio/sqlfrag/internal/types"
)

// Builder provides a fluent API for constructing queries.
// The first error encountered sticks and is returned by Build or Render.
type Builder struct {
	q     *types.Query
	err   error
	named []int // indexes of fields added by Columns
}

func newBuilder(stmt types.Statement, table string) *Builder {
	b := &Builder{q: &types.Query{Statement: stmt}}
	t, err := TryT(table)
	if err != nil {
		b.err = err
		return b
	}
	b.q.From = &types.Field{Operand: t}
	return b
}

// Select creates a new SELECT query builder.
func Select(table string) *Builder {
	return newBuilder(types.StmtSelect, table)
}

// SelectFrom creates a SELECT over an arbitrary source such as an aliased subquery.
func SelectFrom(source types.Field) *Builder {
	return &Builder{q: &types.Query{Statement: types.StmtSelect, From: &source}}
}

// Insert creates a new INSERT query builder.
func Insert(table string) *Builder {
	return newBuilder(types.StmtInsert, table)
}

// Update creates a new UPDATE query builder.
func Update(table string) *Builder {
	return newBuilder(types.StmtUpdate, table)
}

// Delete creates a new DELETE query builder.
func Delete(table string) *Builder {
	return newBuilder(types.StmtDelete, table)
}

// Query returns the query under construction.
func (b *Builder) Query() *types.Query {
	return b.q
}

// Err returns the first error recorded by the builder.
func (b *Builder) Err() error {
	return b.err
}

// Fields appends fields to the statement's field list.
func (b *Builder) Fields(fields ...types.Field) *Builder {
	if b.err != nil {
		return b
	}
	if b.q.Statement == types.StmtDelete {
		b.err = fmt.Errorf("Fields() cannot be used with DELETE queries")
		return b
	}
	b.q.Fields = append(b.q.Fields, fields...)
	return b
}

// Columns appends named columns. In a SELECT, when two selected columns
// share a bare name, each qualified one added here is aliased table_column
// and the rename is recorded so result rows can be mapped back. Collisions
// are resolved by Build, so call order does not matter.
func (b *Builder) Columns(names ...string) *Builder {
	if b.err != nil {
		return b
	}
	for _, name := range names {
		if _, err := TryCol(name); err != nil {
			b.err = err
			return b
		}
	}
	for _, name := range names {
		b.named = append(b.named, len(b.q.Fields))
		b.q.Fields = append(b.q.Fields, types.Field{Operand: types.ParseColumn(name)})
	}
	return b
}

// aliasCollisions renames qualified Columns fields whose bare name is
// selected more than once.
func (b *Builder) aliasCollisions() {
	if b.q.Statement != types.StmtSelect {
		return
	}
	seen := make(map[string]int)
	for _, f := range b.q.Fields {
		seen[f.Name()]++
	}
	for _, i := range b.named {
		f := &b.q.Fields[i]
		c, _ := f.Column()
		if f.Alias != "" || c.Table == "" || c.Column == "*" || seen[c.Column] < 2 {
			continue
		}
		f.Alias = c.Table + "_" + c.Column
		if b.q.Aliases == nil {
			b.q.Aliases = make(map[string]string)
		}
		b.q.Aliases[f.Alias] = c.Qualified()
	}
}

// From replaces the statement's source.
func (b *Builder) From(source types.Field) *Builder {
	if b.err != nil {
		return b
	}
	b.q.From = &source
	return b
}

func (b *Builder) join(mod types.JoinModifier, typ types.JoinType, table, left, right string) *Builder {
	if b.err != nil {
		return b
	}
	t, err := TryT(table)
	if err != nil {
		b.err = err
		return b
	}
	j := types.Join{Modifier: mod, Type: typ, Table: t}
	if typ != types.CrossJoin {
		for _, name := range []string{left, right} {
			if _, err := TryCol(name); err != nil {
				b.err = err
				return b
			}
		}
		j.LeftColumns = []string{left}
		j.RightColumns = []string{right}
	}
	b.q.Joins = append(b.q.Joins, j)
	return b
}

// Join adds an INNER JOIN on left = right.
func (b *Builder) Join(table, left, right string) *Builder {
	return b.join(types.NoModifier, types.InnerJoin, table, left, right)
}

// LeftJoin adds a LEFT OUTER JOIN on left = right.
func (b *Builder) LeftJoin(table, left, right string) *Builder {
	return b.join(types.Left, types.OuterJoin, table, left, right)
}

// RightJoin adds a RIGHT OUTER JOIN on left = right.
func (b *Builder) RightJoin(table, left, right string) *Builder {
	return b.join(types.Right, types.OuterJoin, table, left, right)
}

// FullJoin adds a FULL OUTER JOIN on left = right.
func (b *Builder) FullJoin(table, left, right string) *Builder {
	return b.join(types.Full, types.OuterJoin, table, left, right)
}

// CrossJoin adds a CROSS JOIN.
func (b *Builder) CrossJoin(table string) *Builder {
	return b.join(types.NoModifier, types.CrossJoin, table, "", "")
}

// JoinOn adds a fully specified join, for multi-column keys.
func (b *Builder) JoinOn(j types.Join) *Builder {
	if b.err != nil {
		return b
	}
	if len(j.LeftColumns) != len(j.RightColumns) {
		b.err = fmt.Errorf("%w: %d left, %d right", types.ErrJoinColumnMismatch, len(j.LeftColumns), len(j.RightColumns))
		return b
	}
	for _, cols := range [][]string{j.LeftColumns, j.RightColumns} {
		for _, name := range cols {
			if !types.IsColumnPath(name) {
				b.err = fmt.Errorf("%w: join column %q", types.ErrInvalidIdentifier, name)
				return b
			}
		}
	}
	b.q.Joins = append(b.q.Joins, j)
	return b
}

// Filter adds a top-level filter. Top-level filters are joined by AND.
func (b *Builder) Filter(filters ...types.Filter) *Builder {
	if b.err != nil {
		return b
	}
	b.q.Filters = append(b.q.Filters, filters...)
	return b
}

// Where is a convenience method for a single column condition.
func (b *Builder) Where(column string, op types.EqualityOp, value any) *Builder {
	if b.err != nil {
		return b
	}
	col, err := TryCol(column)
	if err != nil {
		b.err = err
		return b
	}
	c, err := TryC(col, op, value)
	if err != nil {
		b.err = err
		return b
	}
	return b.Filter(types.Filter{Condition: c})
}

// GroupBy adds GROUP BY columns.
func (b *Builder) GroupBy(columns ...string) *Builder {
	if b.err != nil {
		return b
	}
	for _, name := range columns {
		c, err := TryCol(name)
		if err != nil {
			b.err = err
			return b
		}
		b.q.GroupBy = append(b.q.GroupBy, c)
	}
	return b
}

// Having adds HAVING conditions.
func (b *Builder) Having(conditions ...types.Condition) *Builder {
	if b.err != nil {
		return b
	}
	b.q.Having = append(b.q.Having, conditions...)
	return b
}

// OrderBy adds an ORDER BY entry for any operand. The direction must be
// ASC, DESC or empty.
func (b *Builder) OrderBy(o types.Operand, d types.Direction) *Builder {
	if b.err != nil {
		return b
	}
	b.q.OrderBy = append(b.q.OrderBy, types.Order{Operand: o, Direction: d})
	return b
}

func (b *Builder) orderColumns(d types.Direction, columns []string) *Builder {
	for _, name := range columns {
		if b.err != nil {
			return b
		}
		c, err := TryCol(name)
		if err != nil {
			b.err = err
			return b
		}
		b.OrderBy(c, d)
	}
	return b
}

// Asc orders by columns ascending.
func (b *Builder) Asc(columns ...string) *Builder {
	return b.orderColumns(types.ASC, columns)
}

// Desc orders by columns descending.
func (b *Builder) Desc(columns ...string) *Builder {
	return b.orderColumns(types.DESC, columns)
}

// Page sets the zero-based page number. Requires PageSize.
func (b *Builder) Page(n int) *Builder {
	if b.err != nil {
		return b
	}
	b.q.Page = &n
	return b
}

// PageSize sets the number of rows per page.
func (b *Builder) PageSize(n int) *Builder {
	if b.err != nil {
		return b
	}
	b.q.PageSize = &n
	return b
}

// Values appends INSERT values. Non-operands are bound as parameters.
func (b *Builder) Values(values ...any) *Builder {
	if b.err != nil {
		return b
	}
	if b.q.Statement != types.StmtInsert {
		b.err = fmt.Errorf("Values() can only be used with INSERT queries")
		return b
	}
	ops, err := toOperands(values)
	if err != nil {
		b.err = err
		return b
	}
	b.q.Values = append(b.q.Values, ops...)
	return b
}

// Set adds a column assignment for UPDATE queries.
func (b *Builder) Set(column string, value any) *Builder {
	if b.err != nil {
		return b
	}
	if b.q.Statement != types.StmtUpdate {
		b.err = fmt.Errorf("Set() can only be used with UPDATE queries")
		return b
	}
	c, err := TryCol(column)
	if err != nil {
		b.err = err
		return b
	}
	v, err := toOperand(value)
	if err != nil {
		b.err = err
		return b
	}
	b.q.Fields = append(b.q.Fields, types.Field{Operand: c})
	b.q.Values = append(b.q.Values, v)
	return b
}

// Returning requests columns back from INSERT, UPDATE or DELETE.
// Dialects without RETURNING support omit the clause.
func (b *Builder) Returning(columns ...string) *Builder {
	if b.err != nil {
		return b
	}
	if b.q.Statement == types.StmtSelect {
		b.err = fmt.Errorf("Returning() cannot be used with SELECT queries")
		return b
	}
	for _, name := range columns {
		c, err := TryCol(name)
		if err != nil {
			b.err = err
			return b
		}
		b.q.Returns = append(b.q.Returns, types.Field{Operand: c})
	}
	return b
}

// Build validates and returns the query.
func (b *Builder) Build() (*types.Query, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.aliasCollisions()
	if err := b.q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	return b.q, nil
}

// MustBuild returns the query or panics.
func (b *Builder) MustBuild() *types.Query {
	q, err := b.Build()
	if err != nil {
		panic(err)
	}
	return q
}

// Render builds the query and renders it with the given renderer.
func (b *Builder) Render(r Renderer) (*types.QueryResult, error) {
	q, err := b.Build()
	if err != nil {
		return nil, err
	}
	return r.Render(q)
}

// MustRender renders the query or panics.
func (b *Builder) MustRender(r Renderer) *types.QueryResult {
	result, err := b.Render(r)
	if err != nil {
		panic(err)
	}
	return result
}
