package client

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/stretchr/testify/require"
)

func TestNewDBClientInMemory(t *testing.T) {
	t.Parallel()

	db, err := NewDBClient("")
	require.NoError(t, err)
	defer db.Close()

	require.True(t, db.InMemory())
	require.Empty(t, db.Path())

	var one int
	require.NoError(t, db.QueryRow(context.Background(), "SELECT 1").Scan(&one))
	require.Equal(t, 1, one)
}

func TestNewDBClientFileBacked(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "test.db")
	db, err := NewDBClient(path)
	require.NoError(t, err)
	defer db.Close()

	require.False(t, db.InMemory())
	require.Equal(t, path, db.Path())

	_, err = db.Exec(context.Background(), "CREATE TABLE t (id INTEGER)")
	require.NoError(t, err)
}

func TestNewDBClientFallsBackToMemory(t *testing.T) {
	t.Parallel()

	// A path whose parent is a regular file cannot be created.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	db, err := NewDBClient(filepath.Join(blocker, "test.db"))
	require.NoError(t, err)
	defer db.Close()

	require.True(t, db.InMemory())

	var one int
	require.NoError(t, db.QueryRow(context.Background(), "SELECT 1").Scan(&one))
	require.Equal(t, 1, one)
}
