package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRunsMigrations(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "console.db"))
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'sessions'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "sessions", name)

	// scripts are idempotent
	assert.NoError(t, RunMigrations(db))
}

func TestInitAndClose(t *testing.T) {
	require.NoError(t, Init(filepath.Join(t.TempDir(), "console.db")))
	assert.NotNil(t, DB)
	assert.NoError(t, Close())
}

func TestOpenMemoryIsPrivate(t *testing.T) {
	first, err := Open(":memory:")
	require.NoError(t, err)
	defer first.Close()

	second, err := Open(":memory:")
	require.NoError(t, err)
	defer second.Close()

	_, err = first.Exec(`INSERT INTO sessions (id, token, created_at, updated_at) VALUES ('a', 'tok', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	var count int
	require.NoError(t, first.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count))
	assert.Equal(t, 1, count)
	require.NoError(t, second.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count))
	assert.Equal(t, 0, count)
}
