package sqlfrag

// Unrender renames aliased keys in a result row back to the qualified
// column they were selected from, using the aliases a query recorded.
// Keys without an alias are left untouched. The row is modified in place.
func Unrender(row map[string]any, aliases map[string]string) map[string]any {
	for alias, original := range aliases {
		if v, ok := row[alias]; ok {
			delete(row, alias)
			row[original] = v
		}
	}
	return row
}
