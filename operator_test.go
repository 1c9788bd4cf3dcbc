package sqlfrag_test

import (
	"testing"

	"github.com/zoobzio/sqlfrag"
)

func TestParseOperator(t *testing.T) {
	tests := []struct {
		in   string
		want sqlfrag.EqualityOp
	}{
		{"eq", sqlfrag.EQ},
		{"=", sqlfrag.EQ},
		{"ne", sqlfrag.NE},
		{"!=", sqlfrag.NE},
		{"lte", sqlfrag.LTE},
		{"not_in", sqlfrag.NotIn},
		{"NOT IN", sqlfrag.NotIn},
		{"like", sqlfrag.LIKE},
		{"is_null", sqlfrag.IsNull},
		{"IS NOT NULL", sqlfrag.IsNotNull},
	}
	for _, tt := range tests {
		got, ok := sqlfrag.ParseOperator(tt.in)
		if !ok || got != tt.want {
			t.Errorf("ParseOperator(%q) = %q, %v; want %q", tt.in, got, ok, tt.want)
		}
	}
}

func TestParseOperator_Unknown(t *testing.T) {
	for _, in := range []string{"", "~", "between", "ILIKE"} {
		if _, ok := sqlfrag.ParseOperator(in); ok {
			t.Errorf("ParseOperator(%q) accepted", in)
		}
	}
}
