package cli

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/zoobzio/sqlfrag"
	"github.com/zoobzio/sqlfrag/driver"
	"github.com/zoobzio/sqlfrag/internal/compile"
	"github.com/zoobzio/sqlfrag/internal/render"
	"github.com/zoobzio/sqlfrag/sqlite"
)

const selectDoc = `
operation: select
table: users
columns: [id, username]
where:
  - {left: {column: active}, op: eq, right: {value: true}}
order_by:
  - {field: username}
page_size: 5
`

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SQLFRAG_DIALECT", "SQLFRAG_LOG_LEVEL", "SQLFRAG_DATABASE_URL", "DATABASE_URL"} {
		t.Setenv(k, "")
	}
}

func run(t *testing.T, fs afero.Fs, stdin string, args ...string) (string, string, error) {
	t.Helper()
	clearEnv(t)

	cmd := NewRootCommand(fs)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand(afero.NewMemMapFs())
	require.NotNil(t, cmd)
	assert.Equal(t, "sqlfrag", cmd.Use)

	for _, name := range []string{"compile", "dialects", "exec"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"config", "log-level", "format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestCompile_File(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "q.yaml", []byte(selectDoc), 0o644))

	out, _, err := run(t, fs, "", "compile", "q.yaml")
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, username\n FROM users\n    WHERE active = $1\n    ORDER BY username ASC\n    LIMIT 5\n"+
		"\n-- params\n-- 1: true\n", out)
}

func TestCompile_StdinAndDialect(t *testing.T) {
	out, _, err := run(t, afero.NewMemMapFs(), selectDoc, "compile", "--dialect", "mysql")
	require.NoError(t, err)
	assert.Contains(t, out, "WHERE active = ?")
}

func TestCompile_DialectFromConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg.yaml", []byte("dialect: sqlite\n"), 0o644))

	out, _, err := run(t, fs, selectDoc, "--config", "/cfg.yaml", "compile")
	require.NoError(t, err)
	assert.Contains(t, out, "WHERE active = ?")
}

func TestCompile_JSON(t *testing.T) {
	out, _, err := run(t, afero.NewMemMapFs(), selectDoc, "compile", "--format", "json")
	require.NoError(t, err)

	var got compiled
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "postgres", got.Dialect)
	assert.Equal(t, []any{true}, got.Params)
	assert.True(t, strings.HasPrefix(got.SQL, "SELECT id, username"))
}

func TestCompile_Errors(t *testing.T) {
	_, _, err := run(t, afero.NewMemMapFs(), selectDoc, "compile", "--dialect", "oracle")
	assert.ErrorContains(t, err, "unknown database dialect")

	_, _, err = run(t, afero.NewMemMapFs(), "", "compile", "missing.yaml")
	assert.ErrorContains(t, err, "open query document")

	_, _, err = run(t, afero.NewMemMapFs(), "operation: select\n", "compile")
	assert.ErrorContains(t, err, "table is required")

	_, _, err = run(t, afero.NewMemMapFs(), selectDoc, "compile", "--format", "xml")
	assert.ErrorContains(t, err, "invalid format")

	_, _, err = run(t, afero.NewMemMapFs(), selectDoc, "compile", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestCompile_DebugLogging(t *testing.T) {
	_, errOut, err := run(t, afero.NewMemMapFs(), selectDoc, "compile", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, errOut, `"msg":"compiled query"`)
}

func TestDialects(t *testing.T) {
	out, _, err := run(t, afero.NewMemMapFs(), "", "dialects")
	require.NoError(t, err)
	assert.Contains(t, out, "postgres\n")
	assert.Contains(t, out, "  + returning")
	assert.Contains(t, out, "  - numbered-placeholders")
	assert.Contains(t, out, "default: postgres")
}

func TestDialects_JSON(t *testing.T) {
	out, _, err := run(t, afero.NewMemMapFs(), "", "dialects", "--format", "json")
	require.NoError(t, err)

	var got map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got["postgres"], "returning")
	assert.NotContains(t, got["sqlite"], "returning")
	assert.Equal(t, []string{"question-mark-placeholders", "result-metadata"}, got["mysql"])
}

func TestExec_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, username TEXT, active BOOLEAN)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users (username, active) VALUES ('ada', 1), ('bob', 0), ('cy', 1)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	url := "sqlite://" + path
	fs := afero.NewMemMapFs()

	out, _, err := run(t, fs, selectDoc, "exec", "--url", url)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "ada", records[0]["username"])
	assert.Equal(t, "cy", records[1]["username"])

	update := "operation: update\ntable: users\nset:\n  - {column: active, value: {value: false}}\nwhere:\n  - {left: {column: username}, op: eq, right: {value: ada}}\n"
	out, _, err = run(t, fs, update, "exec", "--url", url)
	require.NoError(t, err)
	assert.Equal(t, "1 rows affected\n", out)
}

func TestExec_NoURL(t *testing.T) {
	_, _, err := run(t, afero.NewMemMapFs(), selectDoc, "exec")
	assert.ErrorContains(t, err, "no database URL")
}

// returningSQLite renders like sqlite but advertises RETURNING.
type returningSQLite struct{}

func (returningSQLite) Capabilities() sqlfrag.Capabilities {
	return render.NewCapabilities(sqlite.Dialect, render.QuestionMarkPlaceholders, render.Returning)
}

func (r returningSQLite) Render(q *sqlfrag.Query) (*sqlfrag.QueryResult, error) {
	return compile.Compile(q, r.Capabilities())
}

func TestExecute_DeleteReturning(t *testing.T) {
	tests := []struct {
		name     string
		renderer sqlfrag.Renderer
		check    func(t *testing.T, out string)
	}{
		{
			name:     "returning dialect prints rows",
			renderer: returningSQLite{},
			check: func(t *testing.T, out string) {
				var records []map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &records))
				require.Len(t, records, 1)
				assert.Equal(t, "bob", records[0]["username"])
			},
		},
		{
			name:     "plain sqlite prints count",
			renderer: sqlite.New(),
			check: func(t *testing.T, out string) {
				assert.Equal(t, "1 rows affected\n", out)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sqlDB, err := sql.Open("sqlite", ":memory:")
			require.NoError(t, err)
			sqlDB.SetMaxOpenConns(1)
			t.Cleanup(func() { _ = sqlDB.Close() })
			_, err = sqlDB.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, username TEXT)`)
			require.NoError(t, err)
			_, err = sqlDB.Exec(`INSERT INTO users (username) VALUES ('ada'), ('bob')`)
			require.NoError(t, err)

			q := sqlfrag.Delete("users").Where("username", sqlfrag.EQ, "bob").Returning("id", "username").MustBuild()
			var out bytes.Buffer
			require.NoError(t, execute(context.Background(), &out, driver.New(sqlDB, tt.renderer), q))
			tt.check(t, out.String())

			var left int
			require.NoError(t, sqlDB.QueryRow(`SELECT count(*) FROM users`).Scan(&left))
			assert.Equal(t, 1, left)
		})
	}
}
