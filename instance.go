package sqlfrag

import (
	"fmt"

	"github.com/zoobzio/dbml"

	"github.com/zoobzio/sqlfrag/internal/types"
)

// Instance checks table and column names against a DBML schema.
type Instance struct {
	project *dbml.Project
	// table -> column -> definition
	tables map[string]map[string]*dbml.Column
}

// NewFromDBML creates a new Instance from a DBML project.
func NewFromDBML(project *dbml.Project) (*Instance, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	inst := &Instance{
		project: project,
		tables:  make(map[string]map[string]*dbml.Column),
	}
	for _, table := range project.Tables {
		cols := make(map[string]*dbml.Column, len(table.Columns))
		for _, col := range table.Columns {
			cols[col.Name] = col
		}
		inst.tables[table.Name] = cols
	}
	return inst, nil
}

// Project returns the underlying DBML project.
func (a *Instance) Project() *dbml.Project {
	return a.project
}

// TryT creates a table reference, returning an error if the table is unknown.
func (a *Instance) TryT(name string) (types.TableRef, error) {
	t, err := TryT(name)
	if err != nil {
		return types.TableRef{}, err
	}
	if err := a.validateTable(t.Name); err != nil {
		return types.TableRef{}, err
	}
	return t, nil
}

// T creates a table reference, panicking if the table is unknown.
func (a *Instance) T(name string) types.TableRef {
	t, err := a.TryT(name)
	if err != nil {
		panic(err)
	}
	return t
}

// TryCol creates a column reference, returning an error if it is unknown.
// An unqualified column must exist in at least one table.
func (a *Instance) TryCol(name string) (types.ColumnRef, error) {
	c, err := TryCol(name)
	if err != nil {
		return types.ColumnRef{}, err
	}
	if err := a.validateColumn(c); err != nil {
		return types.ColumnRef{}, err
	}
	return c, nil
}

// Col creates a column reference, panicking if it is unknown.
func (a *Instance) Col(name string) types.ColumnRef {
	c, err := a.TryCol(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks every table and column the query references,
// subqueries and joins included.
func (a *Instance) Validate(q *types.Query) error {
	if q == nil {
		return types.ErrMissingTarget
	}
	if q.From != nil {
		if err := a.validateOperand(q.From.Operand); err != nil {
			return err
		}
	}
	for _, j := range q.Joins {
		if err := a.validateTable(j.Table.Name); err != nil {
			return err
		}
		for _, name := range append(append([]string(nil), j.LeftColumns...), j.RightColumns...) {
			if err := a.validateColumn(types.ParseColumn(name)); err != nil {
				return err
			}
		}
	}

	var ops []types.Operand
	for _, f := range q.Fields {
		ops = append(ops, f.Operand)
	}
	for _, f := range q.Returns {
		ops = append(ops, f.Operand)
	}
	for _, o := range q.OrderBy {
		ops = append(ops, o.Operand)
	}
	ops = append(ops, q.GroupBy...)
	ops = append(ops, q.Values...)
	for _, c := range q.Having {
		ops = append(ops, c.Left, c.Right)
	}
	for _, f := range q.Filters {
		ops = appendFilterOperands(ops, f)
	}

	for _, o := range ops {
		if err := a.validateOperand(o); err != nil {
			return err
		}
	}
	return nil
}

func appendFilterOperands(ops []types.Operand, f types.Filter) []types.Operand {
	ops = append(ops, f.Condition.Left, f.Condition.Right)
	for _, sub := range f.Subfilters {
		ops = appendFilterOperands(ops, sub.Filter)
	}
	return ops
}

func (a *Instance) validateOperand(o types.Operand) error {
	switch x := o.(type) {
	case types.TableRef:
		return a.validateTable(x.Name)
	case types.ColumnRef:
		return a.validateColumn(x)
	case types.Function:
		for _, arg := range x.Args {
			if err := a.validateOperand(arg); err != nil {
				return err
			}
		}
	case types.List:
		for _, item := range x.Items {
			if err := a.validateOperand(item); err != nil {
				return err
			}
		}
	case types.Subquery:
		return a.Validate(x.Query)
	}
	return nil
}

// validateTable checks if a table exists in the schema.
func (a *Instance) validateTable(name string) error {
	if _, ok := a.tables[name]; !ok {
		return fmt.Errorf("table '%s' not found in schema", name)
	}
	return nil
}

// validateColumn checks a column against its table, or any table when unqualified.
// Aliases from the select list are not known to the schema, so a
// qualified column whose table is unknown is reported as such.
func (a *Instance) validateColumn(c types.ColumnRef) error {
	if c.Column == "*" {
		if c.Table == "" {
			return nil
		}
		return a.validateTable(c.Table)
	}
	if c.Table != "" {
		cols, ok := a.tables[c.Table]
		if !ok {
			return fmt.Errorf("table '%s' not found in schema", c.Table)
		}
		if _, ok := cols[c.Column]; !ok {
			return fmt.Errorf("column '%s' not found in table '%s'", c.Column, c.Table)
		}
		return nil
	}
	for _, cols := range a.tables {
		if _, ok := cols[c.Column]; ok {
			return nil
		}
	}
	return fmt.Errorf("column '%s' not found in schema", c.Column)
}
