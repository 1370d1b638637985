package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"catalogo/internal/app"
	"catalogo/internal/config"
	"catalogo/internal/observability"
	"catalogo/internal/proxy"
	"catalogo/internal/scraper"
	"catalogo/internal/server"
)

func main() {
	cfg := config.Load()

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Erro ao configurar logs: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Erro ao iniciar", zap.Error(err))
	}
	defer a.Close()

	observability.Start(cfg.MetricsPort)

	s := &server.Server{
		Catalog:  a.Catalog,
		Exporter: a.Exporter,
		Proxy:    proxy.Handler(a.Fetcher, logger),
		Scraper:  scraper.Handler(a.Scraper),
		Logger:   logger,
	}
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	logger.Info("Catálogo rodando", zap.String("addr", cfg.HTTPAddr), zap.String("metrics", cfg.MetricsPort))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Erro no servidor HTTP", zap.Error(err))
	}
}
