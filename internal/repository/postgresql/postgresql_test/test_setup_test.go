package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/worktide/timetrack-backend-go/internal/pkg/database"
)

var (
	testDB     *database.DB
	setupOnce  sync.Once
	setupError error
)

// newTestDB connects to the database named by TEST_DATABASE_URL and applies
// the schema. Tests are skipped when the variable is unset so the suite
// stays runnable without a database.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	setupOnce.Do(func() {
		testDB, setupError = database.NewPostgreSQLDB(dsn, database.PoolSettings{MaxConns: 5, MinConns: 1})
		if setupError != nil {
			return
		}

		schema, err := os.ReadFile("../../../../migrations/001_init.sql")
		if err != nil {
			setupError = err
			return
		}
		_, setupError = testDB.Exec(context.Background(), string(schema))
	})
	require.NoError(t, setupError, "failed to set up test database")

	return testDB
}

// resetTables clears all data between tests.
func resetTables(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	for _, table := range []string{"audit_logs", "time_entries", "leave_requests", "users"} {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}

// seedUser inserts a roster user and returns its ID.
func seedUser(t *testing.T, db *database.DB, id, email string, isAdmin, isActive bool) string {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO users (id, email, full_name, is_admin, is_active)
		VALUES ($1, $2, $3, $4, $5)
	`, id, email, "Test User "+id, isAdmin, isActive)
	require.NoError(t, err)
	return id
}
