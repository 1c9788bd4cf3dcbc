// Package compile turns a validated query AST into SQL text and parameters.
package compile

import (
	"fmt"
	"strconv"

	"github.com/zoobzio/sqlfrag/internal/render"
	"github.com/zoobzio/sqlfrag/internal/types"
)

// fieldsPerLine is how many select fields are written before wrapping.
const fieldsPerLine = 4

// Compile validates q and renders it for the dialect described by caps.
// All placeholders, nested subqueries included, share a single counter.
func Compile(q *types.Query, caps render.Capabilities) (*types.QueryResult, error) {
	if q == nil {
		return nil, fmt.Errorf("invalid query: %w", types.ErrMissingTarget)
	}
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	c := &compiler{caps: caps, w: render.NewFragment(caps)}
	if err := c.query(q); err != nil {
		return nil, err
	}

	return &types.QueryResult{
		SQL:     c.w.SQL(),
		Params:  c.w.Params(),
		Aliases: copyAliases(q.Aliases),
	}, nil
}

// compiler holds the state of one compilation.
type compiler struct {
	w     *render.Fragment
	caps  render.Capabilities
	depth int
}

func (c *compiler) query(q *types.Query) error {
	switch q.Statement {
	case types.StmtSelect:
		return c.selectStmt(q)
	case types.StmtInsert:
		return c.insertStmt(q)
	case types.StmtUpdate:
		return c.updateStmt(q)
	case types.StmtDelete:
		return c.deleteStmt(q)
	default:
		return fmt.Errorf("%w: %q", types.ErrUnsupportedStatement, q.Statement)
	}
}

func (c *compiler) selectStmt(q *types.Query) error {
	c.w.Append("SELECT ")
	if len(q.Fields) == 0 {
		c.w.Append("*")
	}
	for i, f := range q.Fields {
		if i > 0 {
			if (i+1)%fieldsPerLine == 0 {
				c.w.Comma().LnTab()
			} else {
				c.w.CommaSpace()
			}
		}
		if err := c.field(q, f); err != nil {
			return err
		}
	}

	c.w.Ln().Append(" FROM ")
	if err := c.field(q, *q.From); err != nil {
		return err
	}

	for _, j := range q.Joins {
		c.join(j)
	}

	if err := c.where(q); err != nil {
		return err
	}

	if len(q.GroupBy) > 0 {
		c.w.LnTab().Append("GROUP BY ")
		for i, o := range q.GroupBy {
			if i > 0 {
				c.w.CommaSpace()
			}
			if err := c.operand(q, o); err != nil {
				return err
			}
		}
	}

	if len(q.Having) > 0 {
		c.w.LnTab().Append("HAVING ")
		for i, cond := range q.Having {
			if i > 0 {
				c.w.CommaSpace()
			}
			if err := c.condition(q, cond); err != nil {
				return err
			}
		}
	}

	if len(q.OrderBy) > 0 {
		c.w.LnTab().Append("ORDER BY ")
		for i, o := range q.OrderBy {
			if i > 0 {
				c.w.CommaSpace()
			}
			if err := c.operand(q, o.Operand); err != nil {
				return err
			}
			dir := o.Direction
			if dir == "" {
				dir = types.ASC
			}
			c.w.Space().Append(string(dir))
		}
	}

	if q.PageSize != nil {
		c.w.LnTab().Append("LIMIT ").Append(strconv.Itoa(*q.PageSize))
		if q.Page != nil {
			c.w.LnTab().Append("OFFSET ").Append(strconv.Itoa(*q.Page * *q.PageSize))
		}
	}
	return nil
}

func (c *compiler) insertStmt(q *types.Query) error {
	target, _ := q.Target()
	c.w.Append("INSERT INTO ").Append(c.tableName(target))

	if cols := q.SettableColumns(); len(cols) > 0 {
		c.w.Append(" (")
		for i, col := range cols {
			if i > 0 {
				c.w.CommaSpace()
			}
			c.w.Append(col.Column)
		}
		c.w.Append(")")
	}

	c.w.Ln().Append(" VALUES (")
	for i, v := range q.Values {
		if i > 0 {
			c.w.CommaSpace()
		}
		if err := c.operand(q, v); err != nil {
			return err
		}
	}
	c.w.Append(")")

	return c.returning(q)
}

func (c *compiler) updateStmt(q *types.Query) error {
	target, _ := q.Target()
	c.w.Append("UPDATE ").Append(c.tableName(target))

	c.w.Ln().Append(" SET ")
	for i, col := range q.SettableColumns() {
		if i > 0 {
			c.w.CommaSpace()
		}
		c.w.Append(col.Column).Append(" = ")
		if err := c.operand(q, q.Values[i]); err != nil {
			return err
		}
	}

	if err := c.where(q); err != nil {
		return err
	}
	return c.returning(q)
}

func (c *compiler) deleteStmt(q *types.Query) error {
	target, _ := q.Target()
	c.w.Append("DELETE FROM ").Append(c.tableName(target))

	if err := c.where(q); err != nil {
		return err
	}
	return c.returning(q)
}

// returning writes the RETURNING clause when requested and supported.
// Dialects without the capability silently get no clause.
func (c *compiler) returning(q *types.Query) error {
	if len(q.Returns) == 0 || !c.caps.Has(render.Returning) {
		return nil
	}
	c.w.Ln().Append(" RETURNING ")
	for i, f := range q.Returns {
		if i > 0 {
			c.w.CommaSpace()
		}
		if err := c.field(q, f); err != nil {
			return err
		}
	}
	return nil
}

// where writes the top level filters, always joined by AND.
func (c *compiler) where(q *types.Query) error {
	for i, f := range q.Filters {
		if i == 0 {
			c.w.LnTab().Append("WHERE ")
		} else {
			c.w.LnTabs(2).Append("AND ")
		}
		if err := c.filter(q, f); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) join(j types.Join) {
	c.w.LnTab()
	if j.Modifier != types.NoModifier {
		c.w.Append(string(j.Modifier)).Space()
	}
	c.w.Append(string(j.Type)).Append(" JOIN ").Append(c.tableName(j.Table))
	for i := range j.LeftColumns {
		c.w.LnTabs(2)
		if i == 0 {
			c.w.Append("ON ")
		} else {
			c.w.Append("AND ")
		}
		c.w.Append(j.LeftColumns[i]).Append(" = ").Append(j.RightColumns[i])
	}
}

// filter writes a filter node, parenthesized only when it has subfilters.
func (c *compiler) filter(q *types.Query, f types.Filter) error {
	grouped := len(f.Subfilters) > 0
	if grouped {
		c.w.Append("(")
	}
	if err := c.condition(q, f.Condition); err != nil {
		return err
	}
	for _, sub := range f.Subfilters {
		c.w.Space().Append(string(sub.Connector)).Space()
		if err := c.filter(q, sub.Filter); err != nil {
			return err
		}
	}
	if grouped {
		c.w.Append(")")
	}
	return nil
}

func (c *compiler) condition(q *types.Query, cond types.Condition) error {
	if err := c.operand(q, cond.Left); err != nil {
		return err
	}
	c.w.Space().Append(string(cond.Op))
	if cond.Op.Unary() {
		return nil
	}
	c.w.Space()
	return c.operand(q, cond.Right)
}

func (c *compiler) field(q *types.Query, f types.Field) error {
	if err := c.operand(q, f.Operand); err != nil {
		return err
	}
	if f.Alias != "" {
		c.w.Append(" AS ").Append(f.Alias)
	}
	return nil
}

// operand writes a single expression. Columns are qualified only when the
// enclosing query has joins.
func (c *compiler) operand(q *types.Query, o types.Operand) error {
	switch x := o.(type) {
	case types.ColumnRef:
		if len(q.Joins) == 0 {
			c.w.Append(x.Column)
		} else {
			c.w.Append(x.Qualified())
		}
	case types.TableRef:
		c.w.Append(c.tableName(x))
	case types.Function:
		c.w.Append(x.Name).Append("(")
		for i, arg := range x.Args {
			if i > 0 {
				c.w.CommaSpace()
			}
			if err := c.operand(q, arg); err != nil {
				return err
			}
		}
		c.w.Append(")")
	case types.Subquery:
		return c.subquery(x.Query)
	case types.Value:
		c.w.Bind(x)
	case types.List:
		if len(x.Items) == 0 {
			return nil
		}
		c.w.Append("(")
		for i, item := range x.Items {
			if i > 0 {
				c.w.CommaSpace()
			}
			if err := c.operand(q, item); err != nil {
				return err
			}
		}
		c.w.Append(")")
	default:
		return fmt.Errorf("%w: %T", types.ErrNilOperand, o)
	}
	return nil
}

// subquery compiles a nested query into the same fragment.
func (c *compiler) subquery(q *types.Query) error {
	if c.depth >= types.MaxSubqueryDepth {
		return fmt.Errorf("%w: maximum subquery depth (%d) exceeded", types.ErrDepthExceeded, types.MaxSubqueryDepth)
	}
	c.depth++
	defer func() { c.depth-- }()

	c.w.Append("(")
	if err := c.query(q); err != nil {
		return err
	}
	c.w.Append(")")
	return nil
}

// tableName applies the dialect's schema qualification rule.
func (c *compiler) tableName(t types.TableRef) string {
	if c.caps.Has(render.SchemaQualification) {
		return t.String()
	}
	return t.Name
}

func copyAliases(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
