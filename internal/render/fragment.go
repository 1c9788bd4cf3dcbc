package render

import (
	"strconv"
	"strings"

	"github.com/zoobzio/sqlfrag/internal/types"
)

const tab = "    "

// Fragment accumulates SQL text and the parameters bound into it.
// One Fragment is used for a whole statement, nested subqueries included,
// so placeholder numbers never restart.
type Fragment struct {
	sql      strings.Builder
	params   []types.Value
	numbered bool
}

// NewFragment creates an empty fragment using the placeholder style of caps.
func NewFragment(caps Capabilities) *Fragment {
	return &Fragment{numbered: caps.Has(NumberedPlaceholders)}
}

// Append writes raw SQL text.
func (f *Fragment) Append(s string) *Fragment {
	f.sql.WriteString(s)
	return f
}

// Bind writes a placeholder and records v as its parameter.
func (f *Fragment) Bind(v types.Value) *Fragment {
	f.params = append(f.params, v)
	if f.numbered {
		f.sql.WriteByte('$')
		f.sql.WriteString(strconv.Itoa(len(f.params)))
	} else {
		f.sql.WriteByte('?')
	}
	return f
}

func (f *Fragment) Comma() *Fragment      { return f.Append(",") }
func (f *Fragment) CommaSpace() *Fragment { return f.Append(", ") }
func (f *Fragment) Space() *Fragment      { return f.Append(" ") }
func (f *Fragment) Ln() *Fragment         { return f.Append("\n") }
func (f *Fragment) LnTab() *Fragment      { return f.LnTabs(1) }

// LnTabs writes a newline followed by n indentation levels.
func (f *Fragment) LnTabs(n int) *Fragment {
	f.sql.WriteByte('\n')
	for i := 0; i < n; i++ {
		f.sql.WriteString(tab)
	}
	return f
}

// SQL returns the text written so far.
func (f *Fragment) SQL() string {
	return f.sql.String()
}

// Params returns the bound parameters in placeholder order.
func (f *Fragment) Params() []types.Value {
	return f.params
}

// Len returns the number of bytes written.
func (f *Fragment) Len() int {
	return f.sql.Len()
}
