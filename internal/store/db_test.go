package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDBAppliesPragmas(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	var fk int64
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.EqualValues(t, 1, fk, "foreign keys should be enforced")

	var journalMode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	// testDB already migrated once; a second run is a no-op
	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "posts", "sessions"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}
