package deck

import (
	"context"

	"golang.org/x/sync/errgroup"

	"catalogo/internal/assets"
	"catalogo/internal/model"
)

// prefetch resolves one image per item. Results are stored by index, so the
// order never depends on which download finishes first.
func (e *Exporter) prefetch(ctx context.Context, items []item) []*assets.Image {
	out := make([]*assets.Image, len(items))
	if e.Images == nil {
		return out
	}
	limit := e.Options.MaxConcurrency
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, it := range items {
		g.Go(func() error {
			out[i] = e.productImage(gctx, it.Product)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// productImage tries the main image, then the gallery, then the first page
// of the spec sheet.
func (e *Exporter) productImage(ctx context.Context, p model.Product) *assets.Image {
	candidates := append([]string{p.Image}, p.Gallery...)
	for _, u := range candidates {
		if u == "" {
			continue
		}
		if img := e.Images.Resolve(ctx, u, p.SourceURL); img != nil {
			return img
		}
	}
	if p.PDFURL != "" {
		return e.Images.Thumbnail(ctx, p.PDFURL, p.SourceURL)
	}
	return nil
}
