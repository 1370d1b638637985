package app

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo/internal/catalog"
	"catalogo/internal/config"
	"catalogo/internal/source"
)

func TestNewWithoutSource(t *testing.T) {
	a, err := New(context.Background(), &config.Config{}, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Catalog.Loader)
	assert.Nil(t, a.Catalog.Store)
	assert.Nil(t, a.Scraper.Enricher)
	_, err = a.Catalog.Products(context.Background())
	assert.ErrorIs(t, err, source.ErrNotConfigured)
}

func TestNewWithSQLiteAndRedis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = conn.Exec(`CREATE TABLE items (name TEXT, code TEXT, category TEXT)`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO items VALUES ('Wall Faucet', 'WF-100', 'Faucets')`)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	mr := miniredis.RunT(t)
	cfg := &config.Config{
		DatabaseURL:    path,
		DatabaseDriver: "sqlite",
		SourceTable:    "items",
		RedisURL:       mr.Addr(),
		CacheTTL:       time.Minute,
		OpenAIKey:      "sk-test",
	}
	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	require.IsType(t, &catalog.SourceLoader{}, a.Catalog.Loader)
	require.NotNil(t, a.Catalog.Store)
	assert.NotNil(t, a.Scraper.Enricher)

	products, err := a.Catalog.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "WF-100", products[0].Code)
	assert.True(t, mr.Exists("catalogo:products"))
}

func TestNewRejectsBadAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colour: [cor]\n"), 0o644))

	_, err := New(context.Background(), &config.Config{HeaderAliasesFile: path}, nil)
	assert.Error(t, err)
}

func TestRedisClientAddr(t *testing.T) {
	c, err := redisClient("redis://localhost:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6380", c.Options().Addr)
	assert.Equal(t, 2, c.Options().DB)

	c, err = redisClient("cache:6379")
	require.NoError(t, err)
	assert.Equal(t, "cache:6379", c.Options().Addr)
}
