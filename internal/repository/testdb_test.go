package repository_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/orgdrive/orgdrive/internal/db"
)

// newTestDB opens an in-memory store with the real migrations applied and
// foreign keys enforced, same as the default DSN. The pool is pinned to a
// single connection so the in-memory database is shared across all
// statements.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	database.SetMaxOpenConns(1)

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { _ = database.Close() })
	return database
}
