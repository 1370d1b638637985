package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"catalogo/internal/assets"
	"catalogo/internal/model"
	"catalogo/internal/observability"
)

var (
	ErrInvalidURL = errors.New("scraper: url inválida")
	ErrFetch      = errors.New("scraper: falha ao baixar a página")
)

// Scraper turns a product page into a model.Product.
type Scraper struct {
	Client   *http.Client
	Enricher Enricher
	Logger   *zap.Logger
}

func (s *Scraper) Scrape(ctx context.Context, rawURL string) (model.Product, error) {
	log := observability.OrNop(s.Logger)

	pageURL, ok := assets.ResolveURL(rawURL, "")
	if !ok {
		return model.Product{}, ErrInvalidURL
	}

	html, err := fetchPage(ctx, s.Client, pageURL)
	if err != nil {
		observability.ScrapesTotal.WithLabelValues("fetch_error").Inc()
		return model.Product{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	p, err := ParseProduct(html, pageURL)
	if err != nil {
		observability.ScrapesTotal.WithLabelValues("parse_error").Inc()
		return model.Product{}, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	if len(p.Features) == 0 && s.Enricher != nil {
		features, err := s.Enricher.Features(ctx, p)
		if err != nil {
			log.Warn("[scrape] enriquecimento falhou", zap.String("url", pageURL), zap.Error(err))
		} else {
			p.Features = features
		}
	}

	observability.ScrapesTotal.WithLabelValues("ok").Inc()
	log.Info("[scrape] produto extraído", zap.String("url", pageURL), zap.String("id", p.ID),
		zap.Int("specs", len(p.Specs)), zap.Int("features", len(p.Features)))
	return p, nil
}
