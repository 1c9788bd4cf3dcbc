// Package driver executes compiled sqlfrag queries through database/sql.
//
// The core package only produces SQL text and parameters. This package
// owns the connection, runs the statement and maps rows to records.
package driver

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "modernc.org/sqlite"             // registers "sqlite"

	"github.com/zoobzio/sqlfrag"
	"github.com/zoobzio/sqlfrag/mysql"
	"github.com/zoobzio/sqlfrag/postgres"
	"github.com/zoobzio/sqlfrag/sqlite"
)

// DB runs sqlfrag queries against one database using one dialect.
type DB struct {
	db       *sql.DB
	renderer sqlfrag.Renderer
	logger   *slog.Logger
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger used for statement tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(d *DB) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New wraps an open database handle.
func New(db *sql.DB, r sqlfrag.Renderer, opts ...Option) *DB {
	d := &DB{
		db:       db,
		renderer: r,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open connects to the database named by url and picks the matching renderer.
func Open(ctx context.Context, url string, opts ...Option) (*DB, error) {
	driverName, dsn, err := dataSource(url)
	if err != nil {
		return nil, err
	}
	r, err := RendererFor(driverDialect(driverName))
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driverName, err)
	}
	return New(db, r, opts...), nil
}

// RendererFor returns the renderer for a dialect name.
func RendererFor(dialect string) (sqlfrag.Renderer, error) {
	switch dialect {
	case DialectPostgres:
		return postgres.New(), nil
	case DialectMySQL:
		return mysql.New(), nil
	case DialectSQLite:
		return sqlite.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}
}

func driverDialect(driverName string) string {
	if driverName == "pgx" {
		return DialectPostgres
	}
	return driverName
}

// SQL returns the underlying database handle.
func (d *DB) SQL() *sql.DB {
	return d.db
}

// Renderer returns the dialect renderer in use.
func (d *DB) Renderer() sqlfrag.Renderer {
	return d.renderer
}

// Close closes the underlying database handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// Select runs a query and returns every row.
func (d *DB) Select(ctx context.Context, q *sqlfrag.Query) ([]Record, error) {
	result, err := d.render(ctx, q)
	if err != nil {
		return nil, err
	}

	rows, err := d.db.QueryContext(ctx, result.SQL, result.Args()...)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer rows.Close()

	return d.scan(rows, q.Fields)
}

// Insert runs an INSERT with RETURNING and returns the inserted row.
func (d *DB) Insert(ctx context.Context, q *sqlfrag.Query) (Record, error) {
	records, err := d.returning(ctx, q, sqlfrag.StmtInsert)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, sql.ErrNoRows
	}
	return records[0], nil
}

// Update runs an UPDATE with RETURNING and returns the changed rows.
func (d *DB) Update(ctx context.Context, q *sqlfrag.Query) ([]Record, error) {
	return d.returning(ctx, q, sqlfrag.StmtUpdate)
}

// Delete runs a DELETE with RETURNING and returns the removed rows.
func (d *DB) Delete(ctx context.Context, q *sqlfrag.Query) ([]Record, error) {
	return d.returning(ctx, q, sqlfrag.StmtDelete)
}

// Exec runs any statement and returns the number of affected rows.
func (d *DB) Exec(ctx context.Context, q *sqlfrag.Query) (int64, error) {
	result, err := d.render(ctx, q)
	if err != nil {
		return 0, err
	}

	res, err := d.db.ExecContext(ctx, result.SQL, result.Args()...)
	if err != nil {
		return 0, fmt.Errorf("exec: %w", err)
	}
	return res.RowsAffected()
}

func (d *DB) returning(ctx context.Context, q *sqlfrag.Query, stmt sqlfrag.Statement) ([]Record, error) {
	if q == nil || q.Statement != stmt {
		return nil, fmt.Errorf("expected %s query", stmt)
	}
	caps := d.renderer.Capabilities()
	if len(q.Returns) == 0 {
		return nil, fmt.Errorf("%s query has no returning columns", stmt)
	}
	if err := caps.Require(sqlfrag.Returning, "RETURNING", "use Exec and select the rows separately"); err != nil {
		return nil, err
	}

	result, err := d.render(ctx, q)
	if err != nil {
		return nil, err
	}
	rows, err := d.db.QueryContext(ctx, result.SQL, result.Args()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stmt, err)
	}
	defer rows.Close()

	return d.scan(rows, q.Returns)
}

func (d *DB) render(ctx context.Context, q *sqlfrag.Query) (*sqlfrag.QueryResult, error) {
	result, err := d.renderer.Render(q)
	if err != nil {
		return nil, err
	}
	d.logger.DebugContext(ctx, "executing statement",
		slog.String("dialect", d.renderer.Capabilities().Dialect),
		slog.String("sql", result.SQL),
		slog.Int("params", len(result.Params)),
	)
	return result, nil
}

// scan reads all rows. Keys come from the driver when the dialect reports
// result metadata, otherwise from the query's fields.
func (d *DB) scan(rows *sql.Rows, fields []sqlfrag.Field) ([]Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	keys := columns
	if !d.renderer.Capabilities().Has(sqlfrag.ResultMetadata) {
		keys = fieldKeys(fields, columns)
	}

	var records []Record
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := make(Record, len(keys))
		for i, key := range keys {
			if b, ok := values[i].([]byte); ok {
				values[i] = string(b)
			}
			rec[key] = values[i]
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// fieldKeys names result columns after the query's fields, falling back
// to the driver's names when they cannot be lined up.
func fieldKeys(fields []sqlfrag.Field, columns []string) []string {
	if len(fields) != len(columns) {
		return columns
	}
	keys := make([]string, len(fields))
	for i, f := range fields {
		name := f.Name()
		if name == "" || name == "*" {
			return columns
		}
		keys[i] = name
	}
	return keys
}
