package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// ExecSQLite runs statements against the SQLite database file at path,
// creating it if needed.
func ExecSQLite(t testing.TB, path string, statements ...string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite %s: %v", path, err)
	}
	defer func() { _ = db.Close() }()

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}
