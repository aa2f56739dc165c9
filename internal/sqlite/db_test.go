package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a migrated in-memory database that is closed with the test.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")
	require.NoError(t, db.RunMigrations(), "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	for _, name := range []string{"panel_records", "activity_log", "idx_panel_position", "idx_created_at"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name = ?", name).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count, "%s not found", name)
	}
	require.NoError(t, db.RunMigrations())
}

func TestFileDatabaseKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panels.db")

	db, err := New(path)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	_, err = db.Exec(`INSERT INTO panel_records (panel, id, position, payload) VALUES ('contacts', '1', 1, '{}')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.RunMigrations())

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM panel_records`).Scan(&count))
	require.Equal(t, 1, count)
}

func TestIsUniqueViolation(t *testing.T) {
	db := NewTestDB(t)

	insert := `INSERT INTO panel_records (panel, id, position, payload) VALUES ('rides', 'a', 1, '{}')`
	_, err := db.Exec(insert)
	require.NoError(t, err)

	_, err = db.Exec(insert)
	require.Error(t, err)
	require.True(t, isUniqueViolation(err))

	_, err = db.Exec(`INSERT INTO missing_table VALUES (1)`)
	require.Error(t, err)
	require.False(t, isUniqueViolation(err))
	require.False(t, isUniqueViolation(errors.New("UNIQUE constraint failed")))
	require.False(t, isUniqueViolation(nil))
}
