package assets

import (
	"context"
	"fmt"
	"image"
	"strings"

	"go.uber.org/zap"

	"catalogo/internal/observability"
)

// Fetcher downloads a remote asset. Implementations go through the fetch
// proxy or straight to the origin.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (contentType string, data []byte, err error)
}

type FetcherFunc func(ctx context.Context, url string) (string, []byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) (string, []byte, error) {
	return f(ctx, url)
}

const (
	DefaultMaxWidth      = 1600
	DefaultMaxThumbWidth = 800
)

// Resolver turns a raw image reference into PNG bytes. It never fails
// loudly: nil means the asset is unavailable and the caller shows a
// placeholder.
type Resolver struct {
	Fetcher       Fetcher
	Logger        *zap.Logger
	MaxWidth      int
	MaxThumbWidth int
	// Pages renders spec sheet thumbnails; nil uses a shared PDFium.
	Pages PageRenderer
}

func (r *Resolver) maxWidth() int {
	if r.MaxWidth > 0 {
		return r.MaxWidth
	}
	return DefaultMaxWidth
}

func (r *Resolver) maxThumbWidth() int {
	if r.MaxThumbWidth > 0 {
		return r.MaxThumbWidth
	}
	return DefaultMaxThumbWidth
}

// Resolve fetches rawURL (relative to baseURL when given) and coerces it to
// PNG. PDF payloads are reduced to a thumbnail of their first page.
func (r *Resolver) Resolve(ctx context.Context, rawURL, baseURL string) *Image {
	return r.resolve(ctx, "image", rawURL, baseURL)
}

// Thumbnail is Resolve for spec sheet documents.
func (r *Resolver) Thumbnail(ctx context.Context, rawURL, baseURL string) *Image {
	return r.resolve(ctx, "pdf", rawURL, baseURL)
}

func (r *Resolver) resolve(ctx context.Context, kind, rawURL, baseURL string) (out *Image) {
	log := observability.OrNop(r.Logger)
	defer func() {
		if rec := recover(); rec != nil {
			log.Warn("[assets] pânico ao resolver imagem", zap.String("url", rawURL), zap.Any("panic", rec))
			out = nil
		}
		result := "ok"
		if out == nil {
			result = "unavailable"
		}
		observability.AssetsTotal.WithLabelValues(kind, result).Inc()
	}()

	if strings.TrimSpace(rawURL) == "" {
		return nil
	}
	contentType, data, err := r.load(ctx, rawURL, baseURL)
	if err != nil {
		log.Debug("[assets] imagem indisponível", zap.String("url", rawURL), zap.Error(err))
		return nil
	}

	img, err := r.coerce(contentType, data)
	if err != nil {
		log.Debug("[assets] imagem inválida", zap.String("url", rawURL), zap.Error(err))
		return nil
	}
	return img
}

func (r *Resolver) load(ctx context.Context, rawURL, baseURL string) (string, []byte, error) {
	if s := NormalizeURL(rawURL); strings.HasPrefix(s, "data:") {
		ct, data, ok := parseDataURL(s)
		if !ok {
			return "", nil, fmt.Errorf("data url inválida")
		}
		return ct, data, nil
	}

	u, ok := ResolveURL(rawURL, baseURL)
	if !ok {
		return "", nil, fmt.Errorf("url inválida: %q", rawURL)
	}
	if r.Fetcher == nil {
		return "", nil, fmt.Errorf("sem fetcher configurado")
	}
	ct, data, err := r.Fetcher.Fetch(ctx, u)
	if err != nil {
		return "", nil, err
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("resposta vazia de %s", u)
	}
	return ct, data, nil
}

func (r *Resolver) coerce(contentType string, data []byte) (*Image, error) {
	var (
		img   image.Image
		err   error
		width = r.maxWidth()
	)
	if isPDF(contentType, data) {
		width = r.maxThumbWidth()
		pages := r.Pages
		if pages == nil {
			pages = defaultPages
		}
		img, err = firstPage(pages, data, width)
	} else {
		img, err = decodeImage(contentType, data, width)
	}
	if err != nil {
		return nil, err
	}
	return toPNG(img, width)
}
