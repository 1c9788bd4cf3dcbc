package querydoc_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/sqlfrag"
	"github.com/zoobzio/sqlfrag/internal/querydoc"
	"github.com/zoobzio/sqlfrag/postgres"
	"github.com/zoobzio/sqlfrag/sqlite"
)

func render(t *testing.T, doc string, r sqlfrag.Renderer) *sqlfrag.QueryResult {
	t.Helper()
	q, err := querydoc.Parse([]byte(doc))
	require.NoError(t, err)
	result, err := r.Render(q)
	require.NoError(t, err)
	return result
}

func TestParse_Select(t *testing.T) {
	doc := `
operation: select
table: t
columns: [name]
where:
  - left: {column: name}
    op: eq
    right: {value: foo}
  - left: {column: active}
    op: "="
    right: {value: true}
group_by: [name]
having:
  - left: {fn: count, args: [{column: "*"}]}
    op: gt
    right: {value: 1}
order_by:
  - field: name
    direction: desc
page: 2
page_size: 10
`
	result := render(t, doc, postgres.New())
	assert.Equal(t, "SELECT name\n FROM t\n    WHERE name = $1\n        AND active = $2"+
		"\n    GROUP BY name\n    HAVING count(*) > $3\n    ORDER BY name DESC\n    LIMIT 10\n    OFFSET 20", result.SQL)
	assert.Equal(t, []any{"foo", true, int64(1)}, result.Args())
}

func TestParse_SubfiltersAndLists(t *testing.T) {
	doc := `
operation: select
table: users
where:
  - left: {column: age}
    op: gte
    right: {value: 18}
    sub:
      - or:
          left: {column: role}
          op: in
          right: {list: [{value: admin}, {value: staff}]}
  - left: {column: email}
    op: is_not_null
`
	result := render(t, doc, sqlite.New())
	assert.Equal(t, "SELECT *\n FROM users\n    WHERE (age >= ? OR role IN (?, ?))\n        AND email IS NOT NULL", result.SQL)
	assert.Len(t, result.Params, 3)
}

func TestParse_JoinsAndFields(t *testing.T) {
	doc := `
operation: select
table: users
fields:
  - column: users.id
  - fn: sum
    args: [{column: orders.total}]
    as: spent
joins:
  - type: left
    table: orders
    on:
      - {left: users.id, right: orders.user_id}
      - {left: users.region, right: orders.region}
group_by: [users.id]
`
	result := render(t, doc, postgres.New())
	assert.Equal(t, "SELECT users.id, sum(orders.total) AS spent\n FROM users"+
		"\n    LEFT OUTER JOIN orders\n        ON users.id = orders.user_id\n        AND users.region = orders.region"+
		"\n    GROUP BY users.id", result.SQL)
}

func TestParse_SubqueryOperand(t *testing.T) {
	doc := `
operation: delete
table: users
where:
  - left: {column: id}
    op: not_in
    right:
      query:
        operation: select
        table: orders
        columns: [user_id]
        where:
          - {left: {column: status}, op: eq, right: {value: open}}
returning: [id]
`
	result := render(t, doc, postgres.New())
	assert.Equal(t, "DELETE FROM users\n    WHERE id NOT IN (SELECT user_id\n FROM orders\n    WHERE status = $1)\n RETURNING id", result.SQL)
}

func TestParse_InsertTypedValues(t *testing.T) {
	id := uuid.New()
	doc := `
operation: insert
table: events
columns: [id, at, payload, note, score]
values:
  - {value: "` + id.String() + `", type: uuid}
  - {value: "2024-05-01T12:00:00Z", type: timestamp}
  - {value: "aGk=", type: bytes}
  - {null: true}
  - {value: 2.5}
`
	result := render(t, doc, postgres.New())
	assert.Equal(t, "INSERT INTO events (id, at, payload, note, score)\n VALUES ($1, $2, $3, $4, $5)", result.SQL)

	args := result.Args()
	assert.Equal(t, id, args[0])
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), args[1])
	assert.Equal(t, []byte("hi"), args[2])
	assert.Nil(t, args[3])
	assert.Equal(t, 2.5, args[4])
}

func TestParse_UpdateSet(t *testing.T) {
	doc := `
operation: update
table: users
set:
  - column: email
    value: {value: a@example.com}
  - column: updated_at
    value: {fn: now}
where:
  - {left: {column: id}, op: eq, right: {value: 7}}
`
	result := render(t, doc, postgres.New())
	assert.Equal(t, "UPDATE users\n SET email = $1, updated_at = now()\n    WHERE id = $2", result.SQL)
}

func TestParse_SubqueryFrom(t *testing.T) {
	doc := `{
  "operation": "select",
  "from": {"query": {"operation": "select", "table": "orders", "columns": ["user_id"]}, "as": "o"},
  "columns": ["user_id"]
}`
	result := render(t, doc, postgres.New())
	assert.Equal(t, "SELECT user_id\n FROM (SELECT user_id\n FROM orders) AS o", result.SQL)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"empty", ``, "empty query document"},
		{"unknown key", "operation: select\ntable: t\nlimit: 5\n", "field limit not found"},
		{"no operation", "table: t\n", "operation is required"},
		{"no table", "operation: select\n", "table is required"},
		{"bad operation", "operation: merge\ntable: t\n", "unsupported operation"},
		{"bad operator", "operation: select\ntable: t\nwhere:\n  - {left: {column: a}, op: between, right: {value: 1}}\n", "invalid operator"},
		{"missing right", "operation: select\ntable: t\nwhere:\n  - {left: {column: a}, op: eq}\n", "requires a right operand"},
		{"two kinds", "operation: select\ntable: t\nfields:\n  - {column: a, value: 1}\n", "exactly one"},
		{"bad uuid", "operation: insert\ntable: t\ncolumns: [a]\nvalues:\n  - {value: nope, type: uuid}\n", "invalid value"},
		{"bad join", "operation: select\ntable: t\njoins:\n  - {type: sideways, table: u}\n", "unsupported join type"},
		{"bad direction", "operation: select\ntable: t\norder_by:\n  - {field: a, direction: up}\n", "invalid order direction"},
		{"both and and or", "operation: select\ntable: t\nwhere:\n  - left: {column: a}\n    op: is_null\n    sub:\n      - and: {left: {column: b}, op: is_null}\n        or: {left: {column: c}, op: is_null}\n", "exactly one of and/or"},
		{"bad alias", "operation: select\ntable: t\nfields:\n  - {column: a, as: \"x; drop\"}\n", "invalid alias"},
		{"page without size", "operation: select\ntable: t\npage: 1\n", "invalid query"},
		{"insert without values", "operation: insert\ntable: t\ncolumns: [a]\n", "invalid query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := querydoc.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/queries/active.yaml", []byte("operation: select\ntable: users\ncolumns: [id]\n"), 0o644))

	q, err := querydoc.Load(fs, "/queries/active.yaml")
	require.NoError(t, err)
	assert.Equal(t, sqlfrag.StmtSelect, q.Statement)

	_, err = querydoc.Load(fs, "/queries/missing.yaml")
	assert.ErrorContains(t, err, "open query document")

	require.NoError(t, afero.WriteFile(fs, "/queries/bad.yaml", []byte("operation: [\n"), 0o644))
	_, err = querydoc.Load(fs, "/queries/bad.yaml")
	assert.True(t, strings.HasPrefix(err.Error(), "/queries/bad.yaml: "), err.Error())
}
