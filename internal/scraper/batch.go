package scraper

import (
	"context"

	"go.uber.org/zap"

	"catalogo/internal/model"
	"catalogo/internal/observability"
)

// ScrapeBatch scrapes urls in order. A page that fails is logged and skipped.
func (s *Scraper) ScrapeBatch(ctx context.Context, urls []string, handler func(model.Product)) int {
	log := observability.OrNop(s.Logger)
	done := 0
	for _, u := range urls {
		if ctx.Err() != nil {
			break
		}
		p, err := s.Scrape(ctx, u)
		if err != nil {
			log.Warn("[scrape] erro na página", zap.String("url", u), zap.Error(err))
			continue
		}
		handler(p)
		done++
	}
	return done
}
