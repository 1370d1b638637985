package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"catalogo/internal/deck"
	"catalogo/internal/model"
	"catalogo/internal/observability"
)

// Catalog is satisfied by *catalog.Cache.
type Catalog interface {
	Products(ctx context.Context) ([]model.Product, error)
	Refresh(ctx context.Context) ([]model.Product, error)
	Lookup(ctx context.Context, ids []string) ([]model.Product, []string, error)
}

// Exporter is satisfied by *deck.Exporter.
type Exporter interface {
	Export(ctx context.Context, req deck.Request) (*deck.File, error)
}

type Server struct {
	Catalog  Catalog
	Exporter Exporter
	Proxy    http.Handler
	Scraper  http.Handler
	Logger   *zap.Logger
}

// Router mounts the JSON API. Proxy and Scraper are optional.
func (s *Server) Router() http.Handler {
	log := observability.OrNop(s.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", ProductsHandler(s.Catalog, log))
		r.Get("/categories", CategoriesHandler(s.Catalog, log))
		r.Post("/export", ExportHandler(s.Catalog, s.Exporter, log))
		if s.Proxy != nil {
			r.Handle("/proxy", s.Proxy)
		}
		if s.Scraper != nil {
			r.Get("/scrape", s.Scraper.ServeHTTP)
		}
	})
	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("[http] requisição",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("took", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}
