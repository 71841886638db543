package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/studiodesk/internal/db"
)

// setupTestDB creates an in-memory database from the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})
	return testDB
}

// seedSubmission inserts a test submission and returns its ID.
func seedSubmission(t *testing.T, testDB *sql.DB, id string) string {
	t.Helper()
	if id == "" {
		id = "SUB-001"
	}
	_, err := testDB.Exec(
		"INSERT INTO submissions (id, owner_type, owner_id, item_name, status) VALUES (?, 'client', 'CL-001', 'Test Dish', 'awaiting-processing')",
		id,
	)
	if err != nil {
		t.Fatalf("failed to seed submission: %v", err)
	}
	return id
}
