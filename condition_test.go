package sqlfrag_test

import (
	"errors"
	"testing"

	"github.com/zoobzio/sqlfrag"
	sqltest "github.com/zoobzio/sqlfrag/testing"
)

func TestC(t *testing.T) {
	c := sqlfrag.C(sqlfrag.Col("age"), sqlfrag.GT, 18)
	if c.Op != sqlfrag.GT {
		t.Errorf("Op = %q, want %q", c.Op, sqlfrag.GT)
	}
	v, ok := c.Right.(sqlfrag.Value)
	if !ok || v.Any() != int64(18) {
		t.Errorf("Right = %#v, want bound 18", c.Right)
	}
}

func TestC_OperandRight(t *testing.T) {
	c := sqlfrag.C(sqlfrag.Col("a.x"), sqlfrag.EQ, sqlfrag.Col("b.x"))
	if _, ok := c.Right.(sqlfrag.ColumnRef); !ok {
		t.Errorf("Right = %#v, want ColumnRef", c.Right)
	}
}

func TestC_QueryRightBecomesSubquery(t *testing.T) {
	inner := sqlfrag.Select("orders").Columns("user_id").MustBuild()
	c := sqlfrag.C(sqlfrag.Col("id"), sqlfrag.IN, inner)
	sub, ok := c.Right.(sqlfrag.Subquery)
	if !ok || sub.Query != inner {
		t.Errorf("Right = %#v, want Subquery", c.Right)
	}
}

func TestTryC_Errors(t *testing.T) {
	_, err := sqlfrag.TryC(nil, sqlfrag.EQ, 1)
	if !errors.Is(err, sqlfrag.ErrNilOperand) {
		t.Errorf("nil left: %v", err)
	}
	_, err = sqlfrag.TryC(sqlfrag.Col("a"), "~~", 1)
	if !errors.Is(err, sqlfrag.ErrInvalidOperator) {
		t.Errorf("bad operator: %v", err)
	}
	_, err = sqlfrag.TryC(sqlfrag.Col("a"), sqlfrag.EQ, make(chan int))
	if !errors.Is(err, sqlfrag.ErrInvalidValue) {
		t.Errorf("bad value: %v", err)
	}
}

func TestNullConditions(t *testing.T) {
	for _, c := range []sqlfrag.Condition{sqlfrag.Null(sqlfrag.Col("a")), sqlfrag.NotNull(sqlfrag.Col("a"))} {
		l, ok := c.Right.(sqlfrag.List)
		if !ok || len(l.Items) != 0 {
			t.Errorf("%s right = %#v, want empty list", c.Op, c.Right)
		}
	}
	if sqlfrag.Null(sqlfrag.Col("a")).Op != sqlfrag.IsNull {
		t.Error("Null() op mismatch")
	}
	if sqlfrag.NotNull(sqlfrag.Col("a")).Op != sqlfrag.IsNotNull {
		t.Error("NotNull() op mismatch")
	}
}

func TestC_UnaryIgnoresRight(t *testing.T) {
	c := sqlfrag.C(sqlfrag.Col("a"), sqlfrag.IsNull, struct{}{})
	if _, ok := c.Right.(sqlfrag.List); !ok {
		t.Errorf("Right = %#v, want placeholder list", c.Right)
	}
}

func TestC_PanicsOnInvalid(t *testing.T) {
	sqltest.AssertPanics(t, func() { sqlfrag.C(sqlfrag.Col("a"), "NOPE", 1) })
}

func TestW_AndOr(t *testing.T) {
	f := sqlfrag.W(sqlfrag.C(sqlfrag.Col("a"), sqlfrag.EQ, 1)).
		And(sqlfrag.W(sqlfrag.C(sqlfrag.Col("b"), sqlfrag.EQ, 2))).
		Or(sqlfrag.W(sqlfrag.C(sqlfrag.Col("c"), sqlfrag.EQ, 3)))

	if len(f.Subfilters) != 2 {
		t.Fatalf("Subfilters = %d, want 2", len(f.Subfilters))
	}
	if f.Subfilters[0].Connector != sqlfrag.AND || f.Subfilters[1].Connector != sqlfrag.OR {
		t.Errorf("connectors = %q, %q", f.Subfilters[0].Connector, f.Subfilters[1].Connector)
	}
}
