package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "EXPORT_CONCURRENCY", "PROXY_TIMEOUT", "CACHE_TTL", "SHEET_ID", "WORKBOOK_PATH", "DATABASE_URL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 1, cfg.ExportConcurrency)
	assert.Equal(t, time.Duration(0), cfg.ProxyTimeout)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, SourceNone, cfg.SourceKind())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EXPORT_CONCURRENCY", "4")
	t.Setenv("PROXY_TIMEOUT", "15s")
	t.Setenv("CACHE_TTL", "not-a-duration")
	t.Setenv("SHEET_ID", "")
	t.Setenv("WORKBOOK_PATH", "catalog.xlsx")
	t.Setenv("DATABASE_URL", "postgres://x")

	cfg := Load()
	assert.Equal(t, 4, cfg.ExportConcurrency)
	assert.Equal(t, 15*time.Second, cfg.ProxyTimeout)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, SourceWorkbook, cfg.SourceKind())

	cfg.SheetID = "abc"
	assert.Equal(t, SourceSheets, cfg.SourceKind())
}
