package types

import "strings"

// IsIdentifier reports whether s is a plain SQL identifier:
// a letter or underscore followed by letters, digits or underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch == '_':
		case ch >= '0' && ch <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// IsColumnPath reports whether s is "column", "table.column" or
// "schema.table.column" with every part a plain identifier.
func IsColumnPath(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return false
	}
	for _, p := range parts {
		if !IsIdentifier(p) {
			return false
		}
	}
	return true
}
