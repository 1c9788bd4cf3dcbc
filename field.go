package sqlfrag

import (
	"fmt"

	"github.com/zoobzio/sqlfrag/internal/types"
)

// F creates a field from an operand.
func F(o types.Operand) types.Field {
	return types.Field{Operand: o}
}

// TryAs creates an aliased field, returning an error if the alias is
// not a plain identifier.
func TryAs(o types.Operand, alias string) (types.Field, error) {
	if !types.IsIdentifier(alias) {
		return types.Field{}, fmt.Errorf("invalid alias %q", alias)
	}
	return types.Field{Operand: o, Alias: alias}, nil
}

// As creates an aliased field.
func As(o types.Operand, alias string) types.Field {
	f, err := TryAs(o, alias)
	if err != nil {
		panic(err)
	}
	return f
}

// Fs turns operands into unaliased fields.
func Fs(ops ...types.Operand) []types.Field {
	fields := make([]types.Field, len(ops))
	for i, o := range ops {
		fields[i] = types.Field{Operand: o}
	}
	return fields
}
