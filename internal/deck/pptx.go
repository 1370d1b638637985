package deck

import (
	"fmt"
	"io"

	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/common"
	"github.com/unidoc/unioffice/drawing"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/presentation"
	"github.com/unidoc/unioffice/schema/soo/dml"
	"github.com/unidoc/unioffice/schema/soo/pml"

	"catalogo/internal/layout"
)

const emuPerInch = 914400

type pptxBackend struct {
	canvas layout.Canvas
	ppt    *presentation.Presentation
}

func newPPTXBackend(c layout.Canvas) *pptxBackend {
	ppt := presentation.New()
	sz := pml.NewCT_SlideSize()
	sz.CxAttr = int32(c.W * emuPerInch)
	sz.CyAttr = int32(c.H * emuPerInch)
	ppt.X().SldSz = sz
	return &pptxBackend{canvas: c, ppt: ppt}
}

func (b *pptxBackend) Canvas() layout.Canvas { return b.canvas }

func (b *pptxBackend) AddSlide(s layout.Slide) error {
	// imagens antes do slide, para não deixar slide pela metade
	refs := make(map[int]common.ImageRef)
	for i, el := range s.Elements {
		pic, ok := el.(layout.Picture)
		if !ok {
			continue
		}
		img, err := common.ImageFromBytes(pic.PNG)
		if err != nil {
			return fmt.Errorf("pptx: %w: %v", ErrImage, err)
		}
		ref, err := b.ppt.AddImage(img)
		if err != nil {
			return fmt.Errorf("pptx: %w: %v", ErrImage, err)
		}
		refs[i] = ref
	}

	slide := b.ppt.AddSlide()
	for i, el := range s.Elements {
		switch el := el.(type) {
		case layout.Shape:
			tb := slide.AddTextBox()
			place(tb.Properties(), el.Box)
			tb.Properties().SetGeometry(dml.ST_ShapeTypeRect)
			tb.Properties().SetSolidFill(rgb(el.Fill))
			tb.AddParagraph()
		case layout.Text:
			tb := slide.AddTextBox()
			place(tb.Properties(), el.Box)
			fixedBody(slide)
			for _, line := range el.Lines {
				p := tb.AddParagraph()
				p.Properties().SetAlign(pptxAlign(el.Align))
				r := p.AddRun()
				r.SetText(line)
				r.Properties().SetFont(layout.FontFamilyOffice)
				r.Properties().SetSize(measurement.Distance(el.SizePt) * measurement.Point)
				r.Properties().SetBold(el.Bold)
				r.Properties().SetSolidFill(rgb(el.Color))
			}
		case layout.Picture:
			im := slide.AddImage(refs[i])
			place(im.Properties(), el.Box)
		}
	}
	return nil
}

func (b *pptxBackend) Write(w io.Writer) error {
	return b.ppt.Save(w)
}

// fixedBody tira as margens internas e o auto-ajuste da última caixa de
// texto: as linhas já chegam quebradas para a largura da caixa.
func fixedBody(slide presentation.Slide) {
	choices := slide.X().CSld.SpTree.Choice
	body := choices[len(choices)-1].Sp[0].TxBody.BodyPr
	zero := func() *dml.ST_Coordinate32 {
		return &dml.ST_Coordinate32{ST_Coordinate32Unqualified: unioffice.Int32(0)}
	}
	body.LInsAttr, body.TInsAttr, body.RInsAttr, body.BInsAttr = zero(), zero(), zero(), zero()
	body.SpAutoFit = nil
	body.NoAutofit = dml.NewCT_TextNoAutofit()
}

func place(sp drawing.ShapeProperties, r layout.Rect) {
	sp.SetPosition(inches(r.X), inches(r.Y))
	sp.SetWidth(inches(r.W))
	sp.SetHeight(inches(r.H))
}

func inches(v float64) measurement.Distance { return measurement.Distance(v) * measurement.Inch }

func rgb(c layout.Color) color.Color { return color.RGB(c.R, c.G, c.B) }

func pptxAlign(a layout.Align) dml.ST_TextAlignType {
	switch a {
	case layout.AlignCenter:
		return dml.ST_TextAlignTypeCtr
	case layout.AlignRight:
		return dml.ST_TextAlignTypeR
	default:
		return dml.ST_TextAlignTypeL
	}
}
