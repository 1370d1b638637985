package layout

import (
	"sync"

	"github.com/jung-kurt/gofpdf"
)

// FontFamily is the core PDF font all text is set in. The PPTX backend uses
// FontFamilyOffice, which shares its advance widths.
const (
	FontFamily       = "Helvetica"
	FontFamilyOffice = "Arial"
)

// Measure returns the width in inches of s set at sizePt.
type Measure func(s string, sizePt float64) float64

// Regular and Bold measure with the Helvetica core font metrics bundled in
// gofpdf, so nothing is read from disk.
var (
	Regular Measure = coreWidth("")
	Bold    Measure = coreWidth("B")
)

// Font picks the measure matching a Text element's weight.
func Font(bold bool) Measure {
	if bold {
		return Bold
	}
	return Regular
}

var metrics struct {
	once sync.Once
	mu   sync.Mutex
	pdf  *gofpdf.Fpdf
	tr   func(string) string
}

func coreWidth(style string) Measure {
	return func(s string, sizePt float64) float64 {
		if s == "" {
			return 0
		}
		metrics.once.Do(func() {
			metrics.pdf = gofpdf.New("P", "in", "A4", "")
			// fontes padrão são cp1252
			metrics.tr = metrics.pdf.UnicodeTranslatorFromDescriptor("")
		})
		metrics.mu.Lock()
		defer metrics.mu.Unlock()
		metrics.pdf.SetFont(FontFamily, style, sizePt)
		return metrics.pdf.GetStringWidth(metrics.tr(s))
	}
}
