package driver

import "github.com/zoobzio/sqlfrag"

// Record is one result row keyed by column name.
type Record map[string]any

// Unrender renames aliased keys back to the columns they were selected from.
func (r Record) Unrender(aliases map[string]string) Record {
	return sqlfrag.Unrender(r, aliases)
}
