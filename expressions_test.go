package sqlfrag_test

import (
	"testing"

	"github.com/zoobzio/sqlfrag"
	"github.com/zoobzio/sqlfrag/postgres"
	sqltest "github.com/zoobzio/sqlfrag/testing"
)

func TestFn(t *testing.T) {
	f := sqlfrag.Fn("coalesce", sqlfrag.Col("nick"), "anon")
	if f.Name != "coalesce" || len(f.Args) != 2 {
		t.Fatalf("Fn() = %+v", f)
	}
	if _, ok := f.Args[0].(sqlfrag.ColumnRef); !ok {
		t.Errorf("arg 0 = %#v, want column", f.Args[0])
	}
	if v, ok := f.Args[1].(sqlfrag.Value); !ok || v.Any() != "anon" {
		t.Errorf("arg 1 = %#v, want bound text", f.Args[1])
	}
}

func TestTryFn_Errors(t *testing.T) {
	_, err := sqlfrag.TryFn("count(*)")
	sqltest.AssertErrorContains(t, err, "invalid function name")

	_, err = sqlfrag.TryFn("f", func() {})
	sqltest.AssertErrorContains(t, err, "function f")
}

func TestCount(t *testing.T) {
	result, err := sqlfrag.Select("users").
		Fields(sqlfrag.As(sqlfrag.Count(), "n")).
		Render(postgres.New())
	sqltest.AssertNoError(t, err)
	sqltest.AssertSQL(t, "SELECT count(*) AS n\n FROM users", result.SQL)
}

func TestL(t *testing.T) {
	result, err := sqlfrag.Select("users").
		Filter(sqlfrag.W(sqlfrag.C(sqlfrag.Col("id"), sqlfrag.IN, sqlfrag.L(1, 2, 3)))).
		Render(postgres.New())
	sqltest.AssertNoError(t, err)
	sqltest.AssertSQL(t, "SELECT *\n FROM users\n    WHERE id IN ($1, $2, $3)", result.SQL)
	sqltest.AssertParams(t, []any{1, 2, 3}, result.Params)
}

func TestL_Empty(t *testing.T) {
	if l := sqlfrag.L(); len(l.Items) != 0 {
		t.Errorf("L() = %+v", l)
	}
	sqltest.AssertPanics(t, func() { sqlfrag.L(struct{}{}) })
}

func TestFieldHelpers(t *testing.T) {
	fs := sqlfrag.Fs(sqlfrag.Col("a"), sqlfrag.Col("b"))
	if len(fs) != 2 || fs[0].Alias != "" || fs[1].Name() != "b" {
		t.Errorf("Fs() = %+v", fs)
	}
	if f := sqlfrag.F(sqlfrag.Col("a")); f.Name() != "a" {
		t.Errorf("F().Name() = %q", f.Name())
	}
}
