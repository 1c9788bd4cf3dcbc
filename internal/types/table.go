package types

import "strings"

// TableRef names a table, optionally inside a schema.
type TableRef struct {
	Schema string
	Name   string
}

// ParseTable splits "schema.table" into a TableRef.
func ParseTable(name string) TableRef {
	if i := strings.LastIndexByte(name, '.'); i != -1 {
		return TableRef{Schema: name[:i], Name: name[i+1:]}
	}
	return TableRef{Name: name}
}

// String returns the fully qualified table name.
func (t TableRef) String() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// ColumnRef names a column, optionally qualified by table and schema.
type ColumnRef struct {
	Schema string
	Table  string
	Column string
}

// ParseColumn splits "schema.table.column" or "table.column" into a ColumnRef.
func ParseColumn(name string) ColumnRef {
	parts := strings.Split(name, ".")
	switch len(parts) {
	case 1:
		return ColumnRef{Column: parts[0]}
	case 2:
		return ColumnRef{Table: parts[0], Column: parts[1]}
	default:
		n := len(parts)
		return ColumnRef{
			Schema: strings.Join(parts[:n-2], "."),
			Table:  parts[n-2],
			Column: parts[n-1],
		}
	}
}

// Qualified returns "table.column", or the bare column when no table is set.
func (c ColumnRef) Qualified() string {
	if c.Table == "" {
		return c.Column
	}
	return c.Table + "." + c.Column
}

// String returns the column name with every known qualifier.
func (c ColumnRef) String() string {
	if c.Schema == "" {
		return c.Qualified()
	}
	return c.Schema + "." + c.Qualified()
}

func (TableRef) isOperand()  {}
func (ColumnRef) isOperand() {}
