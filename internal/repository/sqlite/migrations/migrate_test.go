package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrations_CreatesSettingsTable(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, RunMigrations(ctx, db))

	_, err := db.Exec(`INSERT INTO settings (key, value, updated_at) VALUES ('authToken', 't', '2025-10-01T00:00:00Z')`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, len(Registered()), count)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, len(Registered()), count)
}

func TestRegistered_SortedByVersion(t *testing.T) {
	migrations := Registered()
	require.NotEmpty(t, migrations)
	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}
	assert.Equal(t, "create_settings", migrations[0].Name)
}
