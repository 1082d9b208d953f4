package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/kanban/internal/data/db"
)

func TestRecoverFromCorruption_MovesFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, db.FileName)

	require.NoError(t, os.WriteFile(dbPath, []byte("corrupted data"), 0o644))
	require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("wal"), 0o644))
	require.NoError(t, os.WriteFile(dbPath+"-shm", []byte("shm"), 0o644))

	backup, err := RecoverFromCorruption(dir)
	require.NoError(t, err)

	for _, suffix := range []string{"", "-wal", "-shm"} {
		_, err := os.Stat(dbPath + suffix)
		assert.True(t, os.IsNotExist(err), "original %q should be gone", suffix)

		_, err = os.Stat(backup + suffix)
		assert.NoError(t, err, "backup %q should exist", suffix)
	}
}

func TestRecoverFromCorruption_MissingFile(t *testing.T) {
	_, err := RecoverFromCorruption(t.TempDir())
	assert.NoError(t, err)
}

func TestRecoverFromCorruption_ReopenAfterwards(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, db.FileName), []byte("not sqlite"), 0o644))

	_, err := RecoverFromCorruption(dir)
	require.NoError(t, err)

	database, err := db.Open(dir, db.DefaultOpenOptions())
	require.NoError(t, err)
	_ = database.Close()
}

func TestIsCorruptionError_Message(t *testing.T) {
	assert.True(t, IsCorruptionError(errors.New("file is not a database")))
	assert.False(t, IsCorruptionError(errors.New("disk full")))
	assert.False(t, IsCorruptionError(nil))
}

func TestIsBusyError(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "busy.db")

	holder, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	conn, err := holder.Conn(ctx)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, "CREATE TABLE t (x INTEGER)")
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, "BEGIN IMMEDIATE")
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = conn.ExecContext(ctx, "ROLLBACK")
		_ = conn.Close()
		_ = holder.Close()
	})

	other, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(0)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = other.Close() })

	_, err = other.ExecContext(ctx, "INSERT INTO t (x) VALUES (1)")
	require.Error(t, err)

	assert.True(t, IsBusyError(err))
	assert.True(t, IsBusyError(fmt.Errorf("update document %q: %w", "1", err)))
	assert.False(t, IsBusyError(errors.New("database is locked")))
	assert.False(t, IsBusyError(nil))
}
