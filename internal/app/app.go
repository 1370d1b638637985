// Package app wires configuration into the components shared by the HTTP
// server and the CLI.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"catalogo/internal/assets"
	"catalogo/internal/catalog"
	"catalogo/internal/config"
	"catalogo/internal/db"
	"catalogo/internal/deck"
	"catalogo/internal/normalizer"
	"catalogo/internal/observability"
	"catalogo/internal/proxy"
	"catalogo/internal/scraper"
	"catalogo/internal/source"
)

// App holds the long-lived clients. Close releases them.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Catalog  *catalog.Cache
	Fetcher  *proxy.Fetcher
	Exporter *deck.Exporter
	Scraper  *scraper.Scraper

	closers []func() error
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	log = observability.OrNop(log)
	a := &App{Config: cfg, Logger: log}

	norm := normalizer.Default
	if cfg.HeaderAliasesFile != "" {
		extra, err := normalizer.LoadAliases(cfg.HeaderAliasesFile)
		if err != nil {
			return nil, err
		}
		norm = normalizer.New(extra)
	}

	src, err := a.source(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Catalog = &catalog.Cache{TTL: cfg.CacheTTL, Logger: log}
	if src != nil {
		a.Catalog.Loader = &catalog.SourceLoader{Source: src, Normalizer: norm}
		log.Info("[app] origem de produtos", zap.String("source", src.Name()))
	} else {
		log.Warn("[app] nenhuma origem de produtos configurada")
	}

	if cfg.RedisURL != "" {
		rdb, err := redisClient(cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		a.Catalog.Store = &catalog.RedisStore{Client: rdb}
	}

	a.Fetcher = proxy.NewFetcher(cfg.ProxyTimeout, cfg.ProxyMaxBytes)
	var fetcher assets.Fetcher = a.Fetcher
	if cfg.ProxyURL != "" {
		fetcher = proxy.NewClient(cfg.ProxyURL, cfg.ProxyTimeout)
	}
	pages := &assets.PDFium{Workers: cfg.ExportConcurrency}
	a.closers = append(a.closers, pages.Close)
	resolver := &assets.Resolver{
		Fetcher:       fetcher,
		Logger:        log,
		MaxWidth:      cfg.MaxImageWidth,
		MaxThumbWidth: cfg.MaxThumbWidth,
		Pages:         pages,
	}
	a.Exporter = &deck.Exporter{
		Images: resolver,
		Logger: log,
		Options: deck.Options{
			MaxConcurrency: cfg.ExportConcurrency,
			Brand:          cfg.BrandName,
		},
	}

	a.Scraper = &scraper.Scraper{Logger: log}
	if cfg.OpenAIKey != "" {
		a.Scraper.Enricher = scraper.NewOpenAIEnricher(cfg.OpenAIKey, cfg.OpenAIModel)
	}
	return a, nil
}

func (a *App) source(ctx context.Context) (source.Source, error) {
	cfg := a.Config
	switch cfg.SourceKind() {
	case config.SourceSheets:
		return &source.Sheets{SpreadsheetID: cfg.SheetID, Range: cfg.SheetRange, APIKey: cfg.SheetsAPIKey}, nil
	case config.SourceWorkbook:
		return &source.Workbook{Path: cfg.WorkbookPath}, nil
	case config.SourceSQL:
		conn, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, conn.Close)
		return &source.SQL{DB: conn, Table: cfg.SourceTable}, nil
	}
	return nil, nil
}

// redisClient accepts a redis:// URL or a bare host:port.
func redisClient(addr string) (*redis.Client, error) {
	if strings.Contains(addr, "://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("REDIS_URL inválida: %w", err)
		}
		return redis.NewClient(opts), nil
	}
	return redis.NewClient(&redis.Options{Addr: addr}), nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Logger.Warn("[app] erro ao fechar recurso", zap.Error(err))
		}
	}
	a.closers = nil
}
