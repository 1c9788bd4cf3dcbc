package types

// Condition compares two operands.
// For IS NULL and IS NOT NULL the right operand is not rendered,
// but it must still be set.
type Condition struct {
	Left  Operand
	Op    EqualityOp
	Right Operand
}

// Connector joins a subfilter to its parent.
type Connector string

const (
	AND Connector = "AND"
	OR  Connector = "OR"
)

// Filter is a condition with optional connected subfilters.
// A filter with subfilters renders wrapped in parentheses.
type Filter struct {
	Condition  Condition
	Subfilters []SubFilter
}

// SubFilter attaches a filter with a connector.
type SubFilter struct {
	Connector Connector
	Filter    Filter
}

// And returns a copy of f with g attached by AND.
func (f Filter) And(g Filter) Filter {
	return f.with(AND, g)
}

// Or returns a copy of f with g attached by OR.
func (f Filter) Or(g Filter) Filter {
	return f.with(OR, g)
}

func (f Filter) with(conn Connector, g Filter) Filter {
	subs := make([]SubFilter, len(f.Subfilters), len(f.Subfilters)+1)
	copy(subs, f.Subfilters)
	f.Subfilters = append(subs, SubFilter{Connector: conn, Filter: g})
	return f
}
