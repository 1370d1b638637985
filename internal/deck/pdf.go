package deck

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"catalogo/internal/layout"
)

var pdfPNG = gofpdf.ImageOptions{ImageType: "PNG"}

type pdfBackend struct {
	canvas layout.Canvas
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	images int
}

func newPDFBackend(c layout.Canvas) *pdfBackend {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           gofpdf.SizeType{Wd: c.W, Ht: c.H},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetCreator("catalogo", true)
	return &pdfBackend{
		canvas: c,
		pdf:    pdf,
		// fontes padrão são cp1252
		tr: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (b *pdfBackend) Canvas() layout.Canvas { return b.canvas }

func (b *pdfBackend) AddSlide(s layout.Slide) error {
	// o gofpdf guarda o primeiro erro e para de desenhar: as imagens são
	// registradas antes da página e o erro é limpo para não contaminar o
	// resto do documento
	names := make(map[int]string)
	for i, el := range s.Elements {
		pic, ok := el.(layout.Picture)
		if !ok {
			continue
		}
		b.images++
		name := fmt.Sprintf("img%d", b.images)
		b.pdf.RegisterImageOptionsReader(name, pdfPNG, bytes.NewReader(pic.PNG))
		if err := b.pdf.Error(); err != nil {
			b.pdf.ClearError()
			return fmt.Errorf("pdf: %w: %v", ErrImage, err)
		}
		names[i] = name
	}

	b.pdf.AddPage()
	for i, el := range s.Elements {
		switch el := el.(type) {
		case layout.Shape:
			b.pdf.SetFillColor(int(el.Fill.R), int(el.Fill.G), int(el.Fill.B))
			b.pdf.Rect(el.Box.X, el.Box.Y, el.Box.W, el.Box.H, "F")
		case layout.Text:
			b.text(el)
		case layout.Picture:
			b.pdf.ImageOptions(names[i], el.Box.X, el.Box.Y, el.Box.W, el.Box.H, false, pdfPNG, 0, "")
		}
	}
	return b.pdf.Error()
}

func (b *pdfBackend) text(t layout.Text) {
	style := ""
	if t.Bold {
		style = "B"
	}
	b.pdf.SetFont(layout.FontFamily, style, t.SizePt)
	b.pdf.SetTextColor(int(t.Color.R), int(t.Color.G), int(t.Color.B))
	lh := layout.LineHeight(t.SizePt)
	for i, line := range t.Lines {
		b.pdf.SetXY(t.Box.X, t.Box.Y+float64(i)*lh)
		b.pdf.CellFormat(t.Box.W, lh, b.tr(line), "", 0, pdfAlign(t.Align), false, 0, "")
	}
}

func (b *pdfBackend) Write(w io.Writer) error {
	return b.pdf.Output(w)
}

func pdfAlign(a layout.Align) string {
	switch a {
	case layout.AlignCenter:
		return "CM"
	case layout.AlignRight:
		return "RM"
	default:
		return "LM"
	}
}
