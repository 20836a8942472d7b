package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

// OpenTestSQLite gives a test its own migrated database under t.TempDir()
// and returns the write/read pool pair. Closing is handled via t.Cleanup.
// The read pool is kept small; most tests only touch writeDB.
func OpenTestSQLite(t *testing.T) (writeDB, readDB *sql.DB) {
	t.Helper()

	writeDB, readDB, err := OpenSQLitePair(filepath.Join(t.TempDir(), "proxymint_test.sqlite"), 2)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = writeDB.Close()
		_ = readDB.Close()
	})

	if err := RunMigrations(writeDB); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return writeDB, readDB
}
