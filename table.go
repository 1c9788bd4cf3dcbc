package sqlfrag

import (
	"fmt"
	"strings"

	"github.com/zoobzio/sqlfrag/internal/types"
)

// TryT creates a table reference from "table" or "schema.table",
// returning an error if a name part is not a plain identifier.
func TryT(name string) (types.TableRef, error) {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return types.TableRef{}, fmt.Errorf("invalid table %q: at most schema.table", name)
	}
	for _, p := range parts {
		if !types.IsIdentifier(p) {
			return types.TableRef{}, fmt.Errorf("invalid table %q: %q is not an identifier", name, p)
		}
	}
	return types.ParseTable(name), nil
}

// T creates a table reference.
func T(name string) types.TableRef {
	t, err := TryT(name)
	if err != nil {
		panic(err)
	}
	return t
}

// TryCol creates a column reference from "column", "table.column" or
// "schema.table.column". The column part may be "*".
func TryCol(name string) (types.ColumnRef, error) {
	parts := strings.Split(name, ".")
	if len(parts) > 3 {
		return types.ColumnRef{}, fmt.Errorf("invalid column %q: at most schema.table.column", name)
	}
	for i, p := range parts {
		if i == len(parts)-1 && p == "*" {
			continue
		}
		if !types.IsIdentifier(p) {
			return types.ColumnRef{}, fmt.Errorf("invalid column %q: %q is not an identifier", name, p)
		}
	}
	return types.ParseColumn(name), nil
}

// Col creates a column reference.
func Col(name string) types.ColumnRef {
	c, err := TryCol(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Star returns the "*" column.
func Star() types.ColumnRef {
	return types.ColumnRef{Column: "*"}
}
