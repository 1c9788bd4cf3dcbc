// Package testing provides test utilities for sqlfrag.
package testing

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/zoobzio/dbml"

	"github.com/zoobzio/sqlfrag"
)

// Schema returns the bazaar schema used across tests:
// users, orders, product, category, product_category and photo.
func Schema() *dbml.Project {
	project := dbml.NewProject("bazaar")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	users.AddColumn(dbml.NewColumn("email", "varchar"))
	users.AddColumn(dbml.NewColumn("age", "int"))
	users.AddColumn(dbml.NewColumn("active", "boolean"))
	users.AddColumn(dbml.NewColumn("created_at", "timestamp"))
	project.AddTable(users)

	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "bigint"))
	orders.AddColumn(dbml.NewColumn("user_id", "bigint"))
	orders.AddColumn(dbml.NewColumn("total", "numeric"))
	orders.AddColumn(dbml.NewColumn("status", "varchar"))
	orders.AddColumn(dbml.NewColumn("created_at", "timestamp"))
	project.AddTable(orders)

	product := dbml.NewTable("product")
	product.AddColumn(dbml.NewColumn("product_id", "uuid"))
	product.AddColumn(dbml.NewColumn("name", "varchar"))
	product.AddColumn(dbml.NewColumn("price", "numeric"))
	product.AddColumn(dbml.NewColumn("created", "timestamp"))
	project.AddTable(product)

	category := dbml.NewTable("category")
	category.AddColumn(dbml.NewColumn("category_id", "uuid"))
	category.AddColumn(dbml.NewColumn("product_id", "uuid"))
	category.AddColumn(dbml.NewColumn("name", "varchar"))
	project.AddTable(category)

	productCategory := dbml.NewTable("product_category")
	productCategory.AddColumn(dbml.NewColumn("product_id", "uuid"))
	productCategory.AddColumn(dbml.NewColumn("category_id", "uuid"))
	project.AddTable(productCategory)

	photo := dbml.NewTable("photo")
	photo.AddColumn(dbml.NewColumn("photo_id", "uuid"))
	photo.AddColumn(dbml.NewColumn("product_id", "uuid"))
	photo.AddColumn(dbml.NewColumn("url", "varchar"))
	project.AddTable(photo)

	return project
}

// TestInstance creates a schema-validated instance over Schema.
func TestInstance(t *testing.T) *sqlfrag.Instance {
	t.Helper()

	instance, err := sqlfrag.NewFromDBML(Schema())
	if err != nil {
		t.Fatalf("Failed to create test instance: %v", err)
	}
	return instance
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected: %q\nActual:   %q", expected, actual)
	}
}

// AssertParams checks that bound parameters match the expected Go values, in order.
func AssertParams(t *testing.T, expected []any, actual []sqlfrag.Value) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Errorf("Param count mismatch: expected %d, got %d\nExpected: %v\nActual: %v",
			len(expected), len(actual), expected, actual)
		return
	}
	for i := range expected {
		want, err := sqlfrag.TryV(expected[i])
		if err != nil {
			t.Errorf("Param %d: cannot convert expected value %v: %v", i, expected[i], err)
			continue
		}
		if !reflect.DeepEqual(want, actual[i]) {
			t.Errorf("Param %d mismatch: expected %v, got %v", i, want, actual[i])
		}
	}
}

// AssertPlaceholders checks that the SQL has one placeholder per parameter.
func AssertPlaceholders(t *testing.T, result *sqlfrag.QueryResult, numbered bool) {
	t.Helper()
	n := len(result.Params)
	if numbered {
		for i := 1; i <= n; i++ {
			if !strings.Contains(result.SQL, "$"+strconv.Itoa(i)) {
				t.Errorf("Placeholder $%d missing from %q", i, result.SQL)
			}
		}
		if strings.Contains(result.SQL, "$"+strconv.Itoa(n+1)) {
			t.Errorf("Unexpected placeholder $%d in %q", n+1, result.SQL)
		}
		return
	}
	if got := strings.Count(result.SQL, "?"); got != n {
		t.Errorf("Placeholder count mismatch: %d ? for %d params in %q", got, n, result.SQL)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertPanics verifies that a function panics.
func AssertPanics(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic but function completed normally")
		}
	}()
	fn()
}

// AssertPanicsWithMessage verifies that a function panics with a specific message.
func AssertPanicsWithMessage(t *testing.T, fn func(), substr string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("Expected panic containing %q but function completed normally", substr)
			return
		}
		var msg string
		switch v := r.(type) {
		case error:
			msg = v.Error()
		case string:
			msg = v
		default:
			t.Errorf("Panic value is not string or error: %T", r)
			return
		}
		if !strings.Contains(msg, substr) {
			t.Errorf("Expected panic containing %q, got: %s", substr, msg)
		}
	}()
	fn()
}
