package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(t.TempDir(), DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestOpen_CreatesSchema(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	for _, table := range []string{"documents", "kv_store"} {
		var name string
		err := database.Conn().QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	assert.Equal(t, FileName, filepath.Base(database.Path()))
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()

	first, err := Open(dir, OpenOptions{})
	require.NoError(t, err)
	_, err = first.Conn().Exec(
		"INSERT INTO kv_store (key, value, created_at, updated_at) VALUES ('k', 'v', 1, 1)",
	)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(dir, OpenOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	var value string
	require.NoError(t, second.Conn().QueryRow("SELECT value FROM kv_store WHERE key='k'").Scan(&value))
	assert.Equal(t, "v", value)
}

func TestOpenOptions_WithDefaults(t *testing.T) {
	got := OpenOptions{MaxOpenConns: 3}.withDefaults()
	assert.Equal(t, 3, got.MaxOpenConns)
	assert.Equal(t, DefaultOpenOptions().MaxIdleConns, got.MaxIdleConns)
	assert.Equal(t, DefaultOpenOptions().BusyTimeout, got.BusyTimeout)
}
