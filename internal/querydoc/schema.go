// Package querydoc decodes declarative YAML or JSON query documents
// into sqlfrag queries.
package querydoc

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zoobzio/sqlfrag"
)

// QuerySchema is a query in declarative form.
//
//nolint:govet // fieldalignment: clause order is preferred for readability
type QuerySchema struct {
	Operation string            `json:"operation" yaml:"operation"`
	Table     string            `json:"table,omitempty" yaml:"table,omitempty"`
	From      *FieldSchema      `json:"from,omitempty" yaml:"from,omitempty"`
	Columns   []string          `json:"columns,omitempty" yaml:"columns,omitempty"`
	Fields    []FieldSchema     `json:"fields,omitempty" yaml:"fields,omitempty"`
	Joins     []JoinSchema      `json:"joins,omitempty" yaml:"joins,omitempty"`
	Where     []FilterSchema    `json:"where,omitempty" yaml:"where,omitempty"`
	GroupBy   []string          `json:"group_by,omitempty" yaml:"group_by,omitempty"`
	Having    []ConditionSchema `json:"having,omitempty" yaml:"having,omitempty"`
	OrderBy   []OrderSchema     `json:"order_by,omitempty" yaml:"order_by,omitempty"`
	Page      *int              `json:"page,omitempty" yaml:"page,omitempty"`
	PageSize  *int              `json:"page_size,omitempty" yaml:"page_size,omitempty"`
	Values    []OperandSchema   `json:"values,omitempty" yaml:"values,omitempty"`
	Set       []SetSchema       `json:"set,omitempty" yaml:"set,omitempty"`
	Returning []string          `json:"returning,omitempty" yaml:"returning,omitempty"`
}

// OperandSchema is one expression. Exactly one of its kinds must be set.
type OperandSchema struct {
	Column string          `json:"column,omitempty" yaml:"column,omitempty"`
	Table  string          `json:"table,omitempty" yaml:"table,omitempty"`
	Fn     string          `json:"fn,omitempty" yaml:"fn,omitempty"`
	Args   []OperandSchema `json:"args,omitempty" yaml:"args,omitempty"`
	Query  *QuerySchema    `json:"query,omitempty" yaml:"query,omitempty"`
	Value  any             `json:"value,omitempty" yaml:"value,omitempty"`
	Type   string          `json:"type,omitempty" yaml:"type,omitempty"` // uuid, timestamp or bytes
	List   []OperandSchema `json:"list,omitempty" yaml:"list,omitempty"`
	Null   bool            `json:"null,omitempty" yaml:"null,omitempty"`
}

// FieldSchema is an operand with an optional alias.
type FieldSchema struct {
	OperandSchema `json:",inline" yaml:",inline"`
	As            string `json:"as,omitempty" yaml:"as,omitempty"`
}

// ConditionSchema is a binary comparison. Right is omitted for is_null and is_not_null.
type ConditionSchema struct {
	Left  OperandSchema  `json:"left" yaml:"left"`
	Op    string         `json:"op" yaml:"op"`
	Right *OperandSchema `json:"right,omitempty" yaml:"right,omitempty"`
}

// FilterSchema is a condition with chained subfilters.
type FilterSchema struct {
	ConditionSchema `json:",inline" yaml:",inline"`
	Sub             []SubFilterSchema `json:"sub,omitempty" yaml:"sub,omitempty"`
}

// SubFilterSchema holds exactly one of And or Or.
type SubFilterSchema struct {
	And *FilterSchema `json:"and,omitempty" yaml:"and,omitempty"`
	Or  *FilterSchema `json:"or,omitempty" yaml:"or,omitempty"`
}

// JoinSchema represents a JOIN clause.
type JoinSchema struct {
	Type  string     `json:"type" yaml:"type"` // inner, left, right, full or cross
	Table string     `json:"table" yaml:"table"`
	On    []OnSchema `json:"on,omitempty" yaml:"on,omitempty"`
}

// OnSchema is one column equality of a join key.
type OnSchema struct {
	Left  string `json:"left" yaml:"left"`
	Right string `json:"right" yaml:"right"`
}

// OrderSchema represents ordering in declarative form.
type OrderSchema struct {
	Field     string `json:"field" yaml:"field"`
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty"` // defaults to ASC
}

// SetSchema is one UPDATE assignment.
type SetSchema struct {
	Column string        `json:"column" yaml:"column"`
	Value  OperandSchema `json:"value" yaml:"value"`
}

// BuildFromSchema converts a QuerySchema to a validated query.
func BuildFromSchema(schema *QuerySchema) (*sqlfrag.Query, error) {
	if schema == nil {
		return nil, fmt.Errorf("schema is required")
	}
	if schema.Operation == "" {
		return nil, fmt.Errorf("operation is required")
	}
	if schema.Table == "" && schema.From == nil {
		return nil, fmt.Errorf("table is required")
	}

	var builder *sqlfrag.Builder
	switch strings.ToLower(schema.Operation) {
	case "select":
		if schema.From != nil {
			from, err := buildField(*schema.From)
			if err != nil {
				return nil, fmt.Errorf("invalid from: %w", err)
			}
			builder = sqlfrag.SelectFrom(from)
		} else {
			builder = sqlfrag.Select(schema.Table)
		}
	case "insert":
		builder = sqlfrag.Insert(schema.Table)
	case "update":
		builder = sqlfrag.Update(schema.Table)
	case "delete":
		builder = sqlfrag.Delete(schema.Table)
	default:
		return nil, fmt.Errorf("unsupported operation: %s", schema.Operation)
	}

	if len(schema.Columns) > 0 {
		builder = builder.Columns(schema.Columns...)
	}
	for i, f := range schema.Fields {
		field, err := buildField(f)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		builder = builder.Fields(field)
	}

	for _, j := range schema.Joins {
		join, err := buildJoin(j)
		if err != nil {
			return nil, err
		}
		builder = builder.JoinOn(join)
	}

	for i := range schema.Where {
		filter, err := buildFilter(&schema.Where[i])
		if err != nil {
			return nil, fmt.Errorf("invalid where clause: %w", err)
		}
		builder = builder.Filter(filter)
	}

	if len(schema.GroupBy) > 0 {
		builder = builder.GroupBy(schema.GroupBy...)
	}
	for i := range schema.Having {
		cond, err := buildCondition(&schema.Having[i])
		if err != nil {
			return nil, fmt.Errorf("invalid having condition: %w", err)
		}
		builder = builder.Having(cond)
	}

	for _, order := range schema.OrderBy {
		switch strings.ToLower(order.Direction) {
		case "", "asc":
			builder = builder.Asc(order.Field)
		case "desc":
			builder = builder.Desc(order.Field)
		default:
			return nil, fmt.Errorf("invalid order direction: %s", order.Direction)
		}
	}

	if schema.PageSize != nil {
		builder = builder.PageSize(*schema.PageSize)
	}
	if schema.Page != nil {
		builder = builder.Page(*schema.Page)
	}

	if len(schema.Values) > 0 {
		values := make([]any, len(schema.Values))
		for i, v := range schema.Values {
			op, err := buildOperand(v)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
			values[i] = op
		}
		builder = builder.Values(values...)
	}
	for _, s := range schema.Set {
		op, err := buildOperand(s.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid set value for '%s': %w", s.Column, err)
		}
		builder = builder.Set(s.Column, op)
	}

	if len(schema.Returning) > 0 {
		builder = builder.Returning(schema.Returning...)
	}

	return builder.Build()
}

func buildJoin(j JoinSchema) (sqlfrag.Join, error) {
	table, err := sqlfrag.TryT(j.Table)
	if err != nil {
		return sqlfrag.Join{}, fmt.Errorf("invalid join table '%s': %w", j.Table, err)
	}
	join := sqlfrag.Join{Table: table}

	switch strings.ToLower(j.Type) {
	case "", "inner":
		join.Type = sqlfrag.InnerJoin
	case "left":
		join.Modifier, join.Type = sqlfrag.Left, sqlfrag.OuterJoin
	case "right":
		join.Modifier, join.Type = sqlfrag.Right, sqlfrag.OuterJoin
	case "full":
		join.Modifier, join.Type = sqlfrag.Full, sqlfrag.OuterJoin
	case "cross":
		join.Type = sqlfrag.CrossJoin
	default:
		return sqlfrag.Join{}, fmt.Errorf("unsupported join type: %s", j.Type)
	}

	for _, on := range j.On {
		for _, name := range []string{on.Left, on.Right} {
			if _, err := sqlfrag.TryCol(name); err != nil {
				return sqlfrag.Join{}, fmt.Errorf("invalid join column: %w", err)
			}
		}
		join.LeftColumns = append(join.LeftColumns, on.Left)
		join.RightColumns = append(join.RightColumns, on.Right)
	}
	return join, nil
}

// buildFilter converts a FilterSchema and its subfilters.
func buildFilter(schema *FilterSchema) (sqlfrag.Filter, error) {
	cond, err := buildCondition(&schema.ConditionSchema)
	if err != nil {
		return sqlfrag.Filter{}, err
	}
	filter := sqlfrag.W(cond)

	for i, sub := range schema.Sub {
		switch {
		case sub.And != nil && sub.Or == nil:
			f, err := buildFilter(sub.And)
			if err != nil {
				return sqlfrag.Filter{}, fmt.Errorf("subfilter %d: %w", i, err)
			}
			filter = filter.And(f)
		case sub.Or != nil && sub.And == nil:
			f, err := buildFilter(sub.Or)
			if err != nil {
				return sqlfrag.Filter{}, fmt.Errorf("subfilter %d: %w", i, err)
			}
			filter = filter.Or(f)
		default:
			return sqlfrag.Filter{}, fmt.Errorf("subfilter %d: exactly one of and/or is required", i)
		}
	}
	return filter, nil
}

func buildCondition(schema *ConditionSchema) (sqlfrag.Condition, error) {
	if schema.Op == "" {
		return sqlfrag.Condition{}, fmt.Errorf("operator is required for condition")
	}
	op, ok := sqlfrag.ParseOperator(schema.Op)
	if !ok {
		return sqlfrag.Condition{}, fmt.Errorf("%w: %s", sqlfrag.ErrInvalidOperator, schema.Op)
	}

	left, err := buildOperand(schema.Left)
	if err != nil {
		return sqlfrag.Condition{}, fmt.Errorf("left: %w", err)
	}

	var right any
	if !op.Unary() {
		if schema.Right == nil {
			return sqlfrag.Condition{}, fmt.Errorf("operator %s requires a right operand", op)
		}
		if right, err = buildOperand(*schema.Right); err != nil {
			return sqlfrag.Condition{}, fmt.Errorf("right: %w", err)
		}
	}
	return sqlfrag.TryC(left, op, right)
}

func buildField(schema FieldSchema) (sqlfrag.Field, error) {
	op, err := buildOperand(schema.OperandSchema)
	if err != nil {
		return sqlfrag.Field{}, err
	}
	if schema.As == "" {
		return sqlfrag.F(op), nil
	}
	return sqlfrag.TryAs(op, schema.As)
}

func buildOperand(schema OperandSchema) (sqlfrag.Operand, error) {
	if n := schema.kinds(); n != 1 {
		return nil, fmt.Errorf("operand must set exactly one of column, table, fn, query, value, list, null (got %d)", n)
	}

	switch {
	case schema.Column != "":
		return sqlfrag.TryCol(schema.Column)
	case schema.Table != "":
		return sqlfrag.TryT(schema.Table)
	case schema.Fn != "":
		args := make([]any, len(schema.Args))
		for i, a := range schema.Args {
			op, err := buildOperand(a)
			if err != nil {
				return nil, fmt.Errorf("%s argument %d: %w", schema.Fn, i, err)
			}
			args[i] = op
		}
		return sqlfrag.TryFn(schema.Fn, args...)
	case schema.Query != nil:
		q, err := BuildFromSchema(schema.Query)
		if err != nil {
			return nil, fmt.Errorf("invalid subquery: %w", err)
		}
		return sqlfrag.Sub(q), nil
	case schema.List != nil:
		items := make([]any, len(schema.List))
		for i, item := range schema.List {
			op, err := buildOperand(item)
			if err != nil {
				return nil, fmt.Errorf("list item %d: %w", i, err)
			}
			items[i] = op
		}
		return sqlfrag.TryL(items...)
	case schema.Null:
		return sqlfrag.NullValue(), nil
	default:
		return buildValue(schema.Value, schema.Type)
	}
}

func (s OperandSchema) kinds() int {
	n := 0
	for _, set := range []bool{
		s.Column != "", s.Table != "", s.Fn != "", s.Query != nil,
		s.Value != nil, s.List != nil, s.Null,
	} {
		if set {
			n++
		}
	}
	return n
}

// buildValue converts a decoded scalar, honouring an explicit type hint.
func buildValue(raw any, typ string) (sqlfrag.Value, error) {
	if typ == "" {
		if n, ok := raw.(uint64); ok {
			raw = int64(n)
		}
		return sqlfrag.TryV(raw)
	}

	s, ok := raw.(string)
	if !ok {
		if t, isTime := raw.(time.Time); isTime && typ == "timestamp" {
			return sqlfrag.Timestamp(t), nil
		}
		return sqlfrag.Value{}, fmt.Errorf("%w: %s value must be a string", sqlfrag.ErrInvalidValue, typ)
	}

	switch typ {
	case "uuid":
		u, err := uuid.Parse(s)
		if err != nil {
			return sqlfrag.Value{}, fmt.Errorf("%w: %v", sqlfrag.ErrInvalidValue, err)
		}
		return sqlfrag.UUID(u), nil
	case "timestamp":
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return sqlfrag.Value{}, fmt.Errorf("%w: %v", sqlfrag.ErrInvalidValue, err)
		}
		return sqlfrag.Timestamp(t), nil
	case "bytes":
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return sqlfrag.Value{}, fmt.Errorf("%w: %v", sqlfrag.ErrInvalidValue, err)
		}
		return sqlfrag.Bytes(b), nil
	default:
		return sqlfrag.Value{}, fmt.Errorf("unknown value type: %s", typ)
	}
}
