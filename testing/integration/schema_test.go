package integration

import (
	"context"
	"testing"

	"github.com/zoobzio/dbml"

	"github.com/zoobzio/sqlfrag"
)

// createTestInstance creates an instance matching the test database schema.
func createTestInstance(t *testing.T) *sqlfrag.Instance {
	t.Helper()

	project := dbml.NewProject("test")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	users.AddColumn(dbml.NewColumn("email", "varchar"))
	users.AddColumn(dbml.NewColumn("age", "int"))
	users.AddColumn(dbml.NewColumn("active", "boolean"))
	project.AddTable(users)

	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "bigint"))
	orders.AddColumn(dbml.NewColumn("user_id", "bigint"))
	orders.AddColumn(dbml.NewColumn("total", "numeric"))
	orders.AddColumn(dbml.NewColumn("status", "varchar"))
	project.AddTable(orders)

	instance, err := sqlfrag.NewFromDBML(project)
	if err != nil {
		t.Fatalf("Failed to create instance: %v", err)
	}
	return instance
}

// schemaDDL is the per-dialect DDL for the users and orders tables.
var schemaDDL = map[string][]string{
	"postgres": {
		`DROP TABLE IF EXISTS orders`,
		`DROP TABLE IF EXISTS users`,
		`CREATE TABLE users (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			age INT,
			active BOOLEAN DEFAULT true
		)`,
		`CREATE TABLE orders (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT REFERENCES users(id) ON DELETE CASCADE,
			total NUMERIC(10,2) NOT NULL,
			status VARCHAR(50) DEFAULT 'pending'
		)`,
	},
	"mysql": {
		`DROP TABLE IF EXISTS orders`,
		`DROP TABLE IF EXISTS users`,
		`CREATE TABLE users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			age INT,
			active BOOLEAN DEFAULT true
		)`,
		`CREATE TABLE orders (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT,
			total DECIMAL(10,2) NOT NULL,
			status VARCHAR(50) DEFAULT 'pending'
		)`,
	},
	"sqlite": {
		`DROP TABLE IF EXISTS orders`,
		`DROP TABLE IF EXISTS users`,
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			age INTEGER,
			active INTEGER DEFAULT 1
		)`,
		`CREATE TABLE orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			total REAL NOT NULL,
			status TEXT DEFAULT 'pending'
		)`,
	},
}

// resetData recreates the schema and seeds it through sqlfrag INSERTs.
func resetData(ctx context.Context, t *testing.T, c *Container) {
	t.Helper()

	dialect := c.db.Renderer().Capabilities().Dialect
	for _, stmt := range schemaDDL[dialect] {
		if _, err := c.db.SQL().ExecContext(ctx, stmt); err != nil {
			t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, stmt)
		}
	}

	users := []struct {
		name   string
		age    int
		active bool
	}{
		{"alice", 30, true},
		{"bob", 25, true},
		{"charlie", 35, false},
		{"diana", 28, true},
	}
	for _, u := range users {
		q := sqlfrag.Insert("users").
			Columns("username", "email", "age", "active").
			Values(u.name, u.name+"@example.com", u.age, u.active).
			MustBuild()
		if _, err := c.db.Exec(ctx, q); err != nil {
			t.Fatalf("Failed to seed users: %v", err)
		}
	}

	orders := []struct {
		user   int
		total  float64
		status string
	}{
		{1, 99.99, "completed"},
		{1, 149.99, "completed"},
		{2, 49.99, "pending"},
		{4, 199.99, "completed"},
	}
	for _, o := range orders {
		q := sqlfrag.Insert("orders").
			Columns("user_id", "total", "status").
			Values(o.user, o.total, o.status).
			MustBuild()
		if _, err := c.db.Exec(ctx, q); err != nil {
			t.Fatalf("Failed to seed orders: %v", err)
		}
	}
}
