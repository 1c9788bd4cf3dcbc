package types

// QueryResult contains the rendered SQL and its positional parameters.
type QueryResult struct {
	SQL     string
	Params  []Value
	Aliases map[string]string
}

// Args returns the parameters as driver arguments.
func (r *QueryResult) Args() []any {
	args := make([]any, len(r.Params))
	for i, p := range r.Params {
		args[i] = p.Any()
	}
	return args
}
