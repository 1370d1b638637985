package assets

import (
	"bytes"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/image/draw"
)

func init() {
	// pdfcpu não deve criar diretório de configuração no servidor
	api.DisableConfigDir()
}

// PageRenderer rasterizes page 1 of a PDF into a width x height box.
type PageRenderer interface {
	RenderFirstPage(data []byte, width, height int) (image.Image, error)
}

// PDFium renders pages with PDFium compiled to WebAssembly. The runtime is
// started on first use and shared until Close.
type PDFium struct {
	Workers int
	Timeout time.Duration

	once sync.Once
	pool pdfium.Pool
	err  error
}

var defaultPages = &PDFium{}

func (p *PDFium) start() error {
	p.once.Do(func() {
		workers := max(p.Workers, 1)
		p.pool, p.err = webassembly.Init(webassembly.Config{
			MinIdle:  1,
			MaxIdle:  workers,
			MaxTotal: workers,
		})
		if p.err != nil {
			p.err = fmt.Errorf("pdfium: %w", p.err)
		}
	})
	return p.err
}

func (p *PDFium) RenderFirstPage(data []byte, width, height int) (image.Image, error) {
	if err := p.start(); err != nil {
		return nil, err
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	inst, err := p.pool.GetInstance(timeout)
	if err != nil {
		return nil, fmt.Errorf("pdfium: %w", err)
	}
	defer inst.Close()

	doc, err := inst.OpenDocument(&requests.OpenDocument{File: &data})
	if err != nil {
		return nil, fmt.Errorf("pdfium abrir: %w", err)
	}
	defer inst.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: doc.Document})

	res, err := inst.RenderPageInPixels(&requests.RenderPageInPixels{
		Page: requests.Page{
			ByIndex: &requests.PageByIndex{Document: doc.Document, Index: 0},
		},
		Width:  width,
		Height: height,
	})
	if err != nil {
		return nil, fmt.Errorf("pdfium render: %w", err)
	}
	defer res.Cleanup()

	// o bitmap vive na memória do pdfium até o Cleanup; copia sobre branco
	src := res.Result.Image
	out := image.NewNRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Over)
	return out, nil
}

// Close stops the runtime. A closed renderer is not restarted.
func (p *PDFium) Close() error {
	if p.pool == nil {
		return nil
	}
	return p.pool.Close()
}

// firstPage renders page 1 of a PDF at width pixels, height following the
// page's aspect ratio. pdfcpu reads the page box so broken files are
// rejected before the renderer starts.
func firstPage(pages PageRenderer, data []byte, width int) (image.Image, error) {
	dims, err := api.PageDims(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	if len(dims) == 0 || dims[0].Width <= 0 || dims[0].Height <= 0 {
		return nil, fmt.Errorf("pdf sem páginas")
	}
	height := max(int(float64(width)*dims[0].Height/dims[0].Width+0.5), 1)
	return pages.RenderFirstPage(data, width, height)
}
