package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverName(t *testing.T) {
	for in, want := range map[string]string{"": "postgres", "PostgreSQL": "postgres", "sqlite3": "sqlite"} {
		got, err := driverName(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := driverName("mssql")
	assert.Error(t, err)
}

func TestOpenSQLite(t *testing.T) {
	conn, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(`CREATE TABLE t (x TEXT)`)
	assert.NoError(t, err)
}
