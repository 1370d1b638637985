package deck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"catalogo/internal/assets"
	"catalogo/internal/layout"
	"catalogo/internal/model"
	"catalogo/internal/normalizer"
	"catalogo/internal/observability"
)

var ErrNoProducts = errors.New("deck: nenhum produto selecionado")

// ErrImage is wrapped by backends when a slide picture cannot be embedded.
var ErrImage = errors.New("imagem recusada")

type Format string

const (
	FormatPPTX Format = "pptx"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts the file extension, with or without the dot. Empty means pptx.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")); f {
	case "":
		return FormatPPTX, nil
	case FormatPPTX, FormatPDF, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("deck: formato desconhecido %q", s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	}
}

// Backend draws planned slides into one output document.
type Backend interface {
	Canvas() layout.Canvas
	AddSlide(layout.Slide) error
	Write(io.Writer) error
}

// ImageSource is satisfied by *assets.Resolver.
type ImageSource interface {
	Resolve(ctx context.Context, rawURL, baseURL string) *assets.Image
	Thumbnail(ctx context.Context, rawURL, baseURL string) *assets.Image
}

type Request struct {
	Format   Format
	Client   model.ClientInfo
	Products []model.Product
	Sections []model.Section
}

// item is one product slide with the section it came from.
type item struct {
	Product model.Product
	Section string
}

// items flattens loose products first, then sections in order.
func (r Request) items() []item {
	var out []item
	for _, p := range r.Products {
		out = append(out, item{Product: p})
	}
	for _, s := range r.Sections {
		for _, p := range s.Items() {
			out = append(out, item{Product: p, Section: s.Title})
		}
	}
	return out
}

type File struct {
	Name        string
	ContentType string
	Data        []byte
}

const DefaultMaxDescriptionChars = 600

type Options struct {
	// MaxConcurrency limita o prefetch de imagens. 0 ou 1 é sequencial.
	MaxConcurrency      int
	MaxDescriptionChars int
	Brand               string
	Theme               *layout.Theme
}

type Exporter struct {
	Images  ImageSource
	Logger  *zap.Logger
	Options Options
}

func (e *Exporter) theme() layout.Theme {
	if e.Options.Theme != nil {
		return *e.Options.Theme
	}
	return layout.DefaultTheme
}

func (e *Exporter) brand() string {
	if e.Options.Brand != "" {
		return e.Options.Brand
	}
	return "Catalog"
}

func (e *Exporter) maxDescription() int {
	if e.Options.MaxDescriptionChars > 0 {
		return e.Options.MaxDescriptionChars
	}
	return DefaultMaxDescriptionChars
}

func newBackend(f Format) Backend {
	if f == FormatPDF {
		return newPDFBackend(layout.PageA4Landscape)
	}
	return newPPTXBackend(layout.Slide16x9)
}

// Plan lays out the whole deck for canvas c without rendering it: the cover,
// one slide per product that could be planned, and the closing slide.
func (e *Exporter) Plan(ctx context.Context, req Request, c layout.Canvas) ([]layout.Slide, error) {
	items := req.items()
	if len(items) == 0 {
		return nil, ErrNoProducts
	}
	ps := e.plan(ctx, req, items, c)
	slides := make([]layout.Slide, len(ps))
	for i, p := range ps {
		slides[i] = p.Slide
	}
	return slides, nil
}

// planned keeps the product behind a slide so it can be laid out again
// without its picture.
type planned struct {
	layout.Slide
	item *item
}

func (e *Exporter) plan(ctx context.Context, req Request, items []item, c layout.Canvas) []planned {
	log := observability.OrNop(e.Logger)
	images := e.prefetch(ctx, items)

	slides := make([]planned, 0, len(items)+2)
	slides = append(slides, planned{Slide: e.coverSlide(c, req.Client)})
	for i := range items {
		s, err := e.safeProductSlide(c, items[i], images[i])
		if err != nil {
			log.Warn("[export] produto ignorado",
				zap.String("product", items[i].Product.ID),
				zap.Error(err))
			continue
		}
		slides = append(slides, planned{Slide: s, item: &items[i]})
	}
	return append(slides, planned{Slide: e.closingSlide(c, req.Client)})
}

func (e *Exporter) safeProductSlide(c layout.Canvas, it item, img *assets.Image) (s layout.Slide, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("deck: falha ao montar slide: %v", rec)
		}
	}()
	return e.productSlide(c, it, img), nil
}

// Export renders the request into a single file. A picture the backend
// refuses falls back to the placeholder; other per-product failures are
// logged and the product skipped. Only an empty request, a broken cover or
// closing slide, or a failure to serialize is returned as an error.
func (e *Exporter) Export(ctx context.Context, req Request) (*File, error) {
	log := observability.OrNop(e.Logger)
	start := time.Now()
	jobID := uuid.New().String()

	items := req.items()
	if len(items) == 0 {
		return nil, ErrNoProducts
	}
	format := req.Format
	if format == "" {
		format = FormatPPTX
	}
	log.Info("[export] iniciando",
		zap.String("job", jobID),
		zap.String("format", string(format)),
		zap.Int("products", len(items)))

	var buf bytes.Buffer
	switch format {
	case FormatXLSX:
		if err := e.writeSheet(ctx, &buf, req, items); err != nil {
			return nil, fmt.Errorf("deck: erro ao gerar planilha: %w", err)
		}
	case FormatPPTX, FormatPDF:
		b := newBackend(format)
		for _, p := range e.plan(ctx, req, items, b.Canvas()) {
			s, err := e.addSlide(b, p)
			if err != nil {
				if p.Kind != layout.KindProduct {
					return nil, fmt.Errorf("deck: erro no slide %s: %w", p.Kind, err)
				}
				log.Warn("[export] slide ignorado",
					zap.String("product", p.ProductID),
					zap.Error(err))
				continue
			}
			observability.SlidesTotal.WithLabelValues(string(format), string(s.Kind)).Inc()
		}
		if err := b.Write(&buf); err != nil {
			return nil, fmt.Errorf("deck: erro ao serializar %s: %w", format, err)
		}
	default:
		return nil, fmt.Errorf("deck: formato desconhecido %q", format)
	}

	observability.ExportSeconds.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())
	log.Info("[export] concluído",
		zap.String("job", jobID),
		zap.Int("bytes", buf.Len()),
		zap.Duration("took", time.Since(start)))

	return &File{
		Name:        FileBase(req.Client.ProjectName) + "." + string(format),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// addSlide adds p to b. A product slide whose picture the backend refuses
// is laid out again with the placeholder instead.
func (e *Exporter) addSlide(b Backend, p planned) (layout.Slide, error) {
	err := b.AddSlide(p.Slide)
	if err == nil || p.item == nil || !errors.Is(err, ErrImage) {
		return p.Slide, err
	}
	observability.OrNop(e.Logger).Warn("[export] imagem recusada, usando placeholder",
		zap.String("product", p.ProductID),
		zap.Error(err))
	s, perr := e.safeProductSlide(b.Canvas(), *p.item, nil)
	if perr != nil {
		return s, perr
	}
	return s, b.AddSlide(s)
}

// FileBase derives a download file name from the project name:
// "Smith & Co. (2024)" -> "smith-co-2024". Empty input gives "catalog".
func FileBase(project string) string {
	var b strings.Builder
	dash := false
	for _, r := range normalizer.Fold(project) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "catalog"
	}
	return b.String()
}
