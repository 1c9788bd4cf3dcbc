package types

import "fmt"

// Statement represents the kind of query.
type Statement string

const (
	StmtSelect Statement = "SELECT"
	StmtInsert Statement = "INSERT"
	StmtUpdate Statement = "UPDATE"
	StmtDelete Statement = "DELETE"
)

// Direction represents sort direction.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// Order is a single ORDER BY entry.
type Order struct {
	Operand   Operand
	Direction Direction
}

// JoinModifier qualifies an outer join.
type JoinModifier string

const (
	NoModifier JoinModifier = ""
	Left       JoinModifier = "LEFT"
	Right      JoinModifier = "RIGHT"
	Full       JoinModifier = "FULL"
)

// JoinType represents the kind of join.
type JoinType string

const (
	CrossJoin JoinType = "CROSS"
	InnerJoin JoinType = "INNER"
	OuterJoin JoinType = "OUTER"
)

// Join joins a table on pairwise equal columns.
// LeftColumns[i] = RightColumns[i] for every i, combined with AND.
type Join struct {
	Modifier     JoinModifier
	Type         JoinType
	Table        TableRef
	LeftColumns  []string
	RightColumns []string
}

// Nesting limits.
const (
	MaxFilterDepth   = 32
	MaxOperandDepth  = 32
	MaxSubqueryDepth = 8
)

// Query is the root of the AST.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type Query struct {
	Statement Statement
	Fields    []Field
	From      *Field
	Joins     []Join
	Filters   []Filter
	GroupBy   []Operand
	Having    []Condition
	OrderBy   []Order
	Page      *int
	PageSize  *int
	Values    []Operand         // INSERT values, UPDATE assignments
	Returns   []Field           // RETURNING columns
	Aliases   map[string]string // alias -> original qualified column
}

// SettableColumns returns the fields whose operand is a column, in order.
func (q *Query) SettableColumns() []ColumnRef {
	var cols []ColumnRef
	for _, f := range q.Fields {
		if c, ok := f.Column(); ok {
			cols = append(cols, c)
		}
	}
	return cols
}

// Target returns the table the statement writes to.
func (q *Query) Target() (TableRef, bool) {
	if q.From == nil {
		return TableRef{}, false
	}
	t, ok := q.From.Operand.(TableRef)
	return t, ok
}

// Validate checks the query before compilation.
// No SQL is produced for a query that fails validation.
func (q *Query) Validate() error {
	return q.validate(0)
}

func (q *Query) validate(depth int) error {
	if depth > MaxSubqueryDepth {
		return fmt.Errorf("%w: subqueries nested deeper than %d", ErrDepthExceeded, MaxSubqueryDepth)
	}
	if q.From == nil {
		return ErrMissingTarget
	}
	v := validator{depth: depth}

	switch q.Statement {
	case StmtSelect:
		if err := v.operand(q.From.Operand, 0); err != nil {
			return err
		}
	case StmtInsert, StmtUpdate, StmtDelete:
		if _, ok := q.Target(); !ok {
			return fmt.Errorf("%w: %s target must be a table", ErrMissingTarget, q.Statement)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedStatement, q.Statement)
	}

	if q.Page != nil && q.PageSize == nil {
		return ErrPageWithoutSize
	}
	if (q.Page != nil && *q.Page < 0) || (q.PageSize != nil && *q.PageSize < 0) {
		return ErrInvalidPagination
	}

	for i, j := range q.Joins {
		if len(j.LeftColumns) != len(j.RightColumns) {
			return fmt.Errorf("%w: join %d on %s has %d left and %d right columns",
				ErrJoinColumnMismatch, i, j.Table, len(j.LeftColumns), len(j.RightColumns))
		}
		if err := checkJoinKind(j); err != nil {
			return err
		}
		if !IsIdentifier(j.Table.Name) || (j.Table.Schema != "" && !IsIdentifier(j.Table.Schema)) {
			return fmt.Errorf("%w: join table %q", ErrInvalidIdentifier, j.Table)
		}
		for k := range j.LeftColumns {
			for _, c := range []string{j.LeftColumns[k], j.RightColumns[k]} {
				if !IsColumnPath(c) {
					return fmt.Errorf("%w: join column %q", ErrInvalidIdentifier, c)
				}
			}
		}
		if j.Type == CrossJoin && len(j.LeftColumns) > 0 {
			return fmt.Errorf("%w: CROSS JOIN %s cannot have ON columns", ErrJoinOnClause, j.Table)
		}
		if j.Type != CrossJoin && len(j.LeftColumns) == 0 {
			return fmt.Errorf("%w: %s JOIN %s requires ON columns", ErrJoinOnClause, j.Type, j.Table)
		}
	}

	settable := len(q.SettableColumns())
	switch q.Statement {
	case StmtInsert:
		if len(q.Values) == 0 {
			return fmt.Errorf("%w: INSERT", ErrEmptyValues)
		}
		if settable > 0 && settable != len(q.Values) {
			return fmt.Errorf("%w: %d columns, %d values", ErrValueCountMismatch, settable, len(q.Values))
		}
	case StmtUpdate:
		if settable == 0 {
			return fmt.Errorf("%w: UPDATE", ErrEmptyValues)
		}
		if settable != len(q.Values) {
			return fmt.Errorf("%w: %d columns, %d values", ErrValueCountMismatch, settable, len(q.Values))
		}
	}

	for _, f := range q.Fields {
		if err := v.operand(f.Operand, 0); err != nil {
			return err
		}
	}
	for _, f := range q.Filters {
		if err := v.filter(f, 0); err != nil {
			return err
		}
	}
	for _, o := range q.GroupBy {
		if err := v.operand(o, 0); err != nil {
			return err
		}
	}
	for _, c := range q.Having {
		if err := v.condition(c, 0); err != nil {
			return err
		}
	}
	for _, o := range q.OrderBy {
		switch o.Direction {
		case "", ASC, DESC:
		default:
			return fmt.Errorf("%w: %q", ErrInvalidDirection, o.Direction)
		}
		if err := v.operand(o.Operand, 0); err != nil {
			return err
		}
	}
	for _, o := range q.Values {
		if err := v.operand(o, 0); err != nil {
			return err
		}
	}
	for _, f := range q.Returns {
		if err := v.operand(f.Operand, 0); err != nil {
			return err
		}
	}
	return nil
}

// checkJoinKind accepts INNER and CROSS without a modifier and OUTER with
// LEFT, RIGHT or FULL.
func checkJoinKind(j Join) error {
	switch j.Type {
	case InnerJoin, CrossJoin:
		if j.Modifier == NoModifier {
			return nil
		}
	case OuterJoin:
		switch j.Modifier {
		case Left, Right, Full:
			return nil
		}
	}
	return fmt.Errorf("%w: %q %q JOIN %s", ErrInvalidJoin, j.Modifier, j.Type, j.Table)
}

// validator walks operands and filters, enforcing the nesting limits.
type validator struct {
	depth int // subquery depth of the query being validated
}

func (v validator) filter(f Filter, depth int) error {
	if depth >= MaxFilterDepth {
		return fmt.Errorf("%w: filters nested deeper than %d", ErrDepthExceeded, MaxFilterDepth)
	}
	if err := v.condition(f.Condition, depth); err != nil {
		return err
	}
	for _, sub := range f.Subfilters {
		if sub.Connector != AND && sub.Connector != OR {
			return fmt.Errorf("%w: connector %q", ErrInvalidOperator, sub.Connector)
		}
		if err := v.filter(sub.Filter, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (v validator) condition(c Condition, depth int) error {
	if !c.Op.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOperator, c.Op)
	}
	if c.Left == nil || c.Right == nil {
		return fmt.Errorf("%w: condition %s", ErrNilOperand, c.Op)
	}
	if err := v.operand(c.Left, depth); err != nil {
		return err
	}
	return v.operand(c.Right, depth)
}

func (v validator) operand(o Operand, depth int) error {
	if depth >= MaxOperandDepth {
		return fmt.Errorf("%w: operands nested deeper than %d", ErrDepthExceeded, MaxOperandDepth)
	}
	switch x := o.(type) {
	case nil:
		return ErrNilOperand
	case ColumnRef, TableRef, Value:
		return nil
	case Function:
		for _, a := range x.Args {
			if err := v.operand(a, depth+1); err != nil {
				return err
			}
		}
	case List:
		for _, a := range x.Items {
			if err := v.operand(a, depth+1); err != nil {
				return err
			}
		}
	case Subquery:
		if x.Query == nil {
			return fmt.Errorf("%w: empty subquery", ErrNilOperand)
		}
		return x.Query.validate(v.depth + 1)
	}
	return nil
}
