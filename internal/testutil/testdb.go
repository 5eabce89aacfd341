package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/xpledger/internal/db"
	"github.com/alexanderramin/xpledger/internal/repository"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestStore returns a SQLite-backed UserStore over a fresh database.
func NewTestStore(t *testing.T) *repository.SQLUserStore {
	t.Helper()
	return repository.NewSQLUserStore(NewTestDB(t), db.SQLite)
}
