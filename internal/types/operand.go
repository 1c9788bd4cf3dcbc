package types

// Operand is anything that can appear as an expression in a query.
// The set of implementations is closed: ColumnRef, TableRef, Function,
// Subquery, Value and List.
type Operand interface {
	isOperand()
}

// Function is a named SQL function applied to operands.
type Function struct {
	Name string
	Args []Operand
}

// Subquery embeds a complete query as an operand.
type Subquery struct {
	Query *Query
}

// List is a parenthesized, comma separated operand list.
// An empty list renders nothing.
type List struct {
	Items []Operand
}

func (Function) isOperand() {}
func (Subquery) isOperand() {}
func (List) isOperand()     {}

// Field is an operand with an optional alias.
type Field struct {
	Operand Operand
	Alias   string
}

// Column returns the field's column reference, if the operand is one.
func (f Field) Column() (ColumnRef, bool) {
	c, ok := f.Operand.(ColumnRef)
	return c, ok
}

// Name returns the key a result row uses for this field.
func (f Field) Name() string {
	if f.Alias != "" {
		return f.Alias
	}
	switch o := f.Operand.(type) {
	case ColumnRef:
		return o.Column
	case Function:
		return o.Name
	}
	return ""
}
