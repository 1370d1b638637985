package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string
	MetricsPort string
	LogLevel    string
	LogFormat   string

	RedisURL       string
	DatabaseURL    string
	DatabaseDriver string
	SourceTable    string
	SheetID        string
	SheetRange     string
	SheetsAPIKey   string
	WorkbookPath   string

	ProxyURL      string
	ProxyTimeout  time.Duration
	ProxyMaxBytes int64

	OpenAIKey   string
	OpenAIModel string

	CacheTTL          time.Duration
	ExportConcurrency int
	MaxImageWidth     int
	MaxThumbWidth     int
	HeaderAliasesFile string
	BrandName         string
}

// Origens de linhas de produto.
const (
	SourceSheets   = "sheets"
	SourceWorkbook = "workbook"
	SourceSQL      = "sql"
	SourceNone     = ""
)

func Load() *Config {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()
	return &Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),

		RedisURL:       os.Getenv("REDIS_URL"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "postgres"),
		SourceTable:    getEnv("SOURCE_TABLE", "products"),
		SheetID:        os.Getenv("SHEET_ID"),
		SheetRange:     getEnv("SHEET_RANGE", "Products!A1:Z"),
		SheetsAPIKey:   os.Getenv("SHEETS_API_KEY"),
		WorkbookPath:   os.Getenv("WORKBOOK_PATH"),

		ProxyURL:      os.Getenv("PROXY_URL"),
		ProxyTimeout:  getDuration("PROXY_TIMEOUT", 0),
		ProxyMaxBytes: int64(getInt("PROXY_MAX_BYTES", 20<<20)),

		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel: getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		CacheTTL:          getDuration("CACHE_TTL", 10*time.Minute),
		ExportConcurrency: getInt("EXPORT_CONCURRENCY", 1),
		MaxImageWidth:     getInt("MAX_IMAGE_WIDTH", 1600),
		MaxThumbWidth:     getInt("MAX_THUMB_WIDTH", 800),
		HeaderAliasesFile: os.Getenv("HEADER_ALIASES_FILE"),
		BrandName:         getEnv("BRAND_NAME", "Catalog"),
	}
}

// SourceKind picks sheets, then workbook, then sql, by which settings are present.
func (c *Config) SourceKind() string {
	switch {
	case c.SheetID != "":
		return SourceSheets
	case c.WorkbookPath != "":
		return SourceWorkbook
	case c.DatabaseURL != "":
		return SourceSQL
	}
	return SourceNone
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getInt(k string, d int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return d
	}
	return n
}

func getDuration(k string, d time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return d
	}
	return v
}
