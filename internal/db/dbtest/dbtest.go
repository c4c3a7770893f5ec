// Package dbtest provides a migrated throwaway database for tests.
package dbtest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/unitytennis/tennis-backend/internal/db"
)

// New creates a sqlite database in the test's temp dir and applies the migrations.
// A file rather than :memory: keeps every pooled connection on the same database.
func New(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "tennis_test.db") + "?_busy_timeout=5000"
	database, err := db.Open(dsn, 5*time.Second)
	require.NoError(t, err, "Failed to connect to test DB")

	require.NoError(t, db.RunMigrations(database), "Failed to apply migrations")

	t.Cleanup(func() { database.Close() })
	return database
}

func Count(t *testing.T, database *sqlx.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, database.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}
