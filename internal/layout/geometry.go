package layout

import "math"

// Rect is a box in inches, origin at the top-left corner of the canvas.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Within reports whether r lies entirely inside o.
func (r Rect) Within(o Rect) bool {
	const eps = 1e-9
	return r.X >= o.X-eps && r.Y >= o.Y-eps && r.Right() <= o.Right()+eps && r.Bottom() <= o.Bottom()+eps
}

// Overlaps reports whether r and o share any area. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	const eps = 1e-9
	return r.X < o.Right()-eps && o.X < r.Right()-eps && r.Y < o.Bottom()-eps && o.Y < r.Bottom()-eps
}

// Canvas is a page or slide size in inches.
type Canvas struct {
	W, H float64
}

var (
	Slide16x9       = Canvas{W: 10, H: 5.625}
	PageA4Landscape = Canvas{W: 11.69, H: 8.27}
)

func (c Canvas) Bounds() Rect { return Rect{W: c.W, H: c.H} }

// Regiões são definidas sobre o slide 16:9 de referência e escaladas.
func (c Canvas) scale(x, y, w, h float64) Rect {
	sx, sy := c.W/Slide16x9.W, c.H/Slide16x9.H
	return Rect{X: x * sx, Y: y * sy, W: w * sx, H: h * sy}
}

// Font sizes in points.
const (
	TitleMaxPt       = 28
	TitleMinPt       = 14
	BulletPt         = 12
	DescriptionMaxPt = 12
	DescriptionMinPt = 8
	FooterPt         = 10
	CoverTitleMaxPt  = 40
	CoverTitleMinPt  = 20
	CoverSubtitlePt  = 20
	CoverDetailPt    = 14
)

// ProductGeometry holds the named regions of a product slide.
type ProductGeometry struct {
	Title       Rect
	Image       Rect
	Bullets     Rect
	Description Rect
	FooterBar   Rect
	FooterLabel Rect
	FooterCode  Rect
}

func ProductRegions(c Canvas) ProductGeometry {
	return ProductGeometry{
		Title:       c.scale(0.4, 0.25, 9.2, 0.7),
		Image:       c.scale(0.4, 1.05, 4.6, 3.2),
		Bullets:     c.scale(5.2, 1.05, 4.4, 3.2),
		Description: c.scale(0.4, 4.35, 9.2, 0.85),
		FooterBar:   c.scale(0, 5.325, 10, 0.3),
		FooterLabel: c.scale(0.4, 5.325, 5.0, 0.3),
		FooterCode:  c.scale(5.6, 5.325, 4.0, 0.3),
	}
}

// Content lists the regions that must never overlap each other.
func (g ProductGeometry) Content() []Rect {
	return []Rect{g.Title, g.Image, g.Bullets, g.Description, g.FooterBar}
}

// CoverGeometry is shared by the cover and the closing slide.
type CoverGeometry struct {
	Accent    Rect
	Title     Rect
	Subtitle  Rect
	Details   Rect
	FooterBar Rect
}

func CoverRegions(c Canvas) CoverGeometry {
	return CoverGeometry{
		Accent:    c.scale(0, 0, 0.25, 5.325),
		Title:     c.scale(0.8, 1.3, 8.6, 1.2),
		Subtitle:  c.scale(0.8, 2.6, 8.6, 0.6),
		Details:   c.scale(0.8, 3.3, 8.6, 1.8),
		FooterBar: c.scale(0, 5.325, 10, 0.3),
	}
}

func ClosingRegions(c Canvas) CoverGeometry {
	return CoverGeometry{
		Accent:    c.scale(0, 0, 0.25, 5.325),
		Title:     c.scale(0.8, 1.6, 8.6, 1.2),
		Subtitle:  c.scale(0.8, 2.9, 8.6, 0.5),
		Details:   c.scale(0.8, 3.5, 8.6, 1.6),
		FooterBar: c.scale(0, 5.325, 10, 0.3),
	}
}

func (g CoverGeometry) Content() []Rect {
	return []Rect{g.Accent, g.Title, g.Subtitle, g.Details, g.FooterBar}
}

// Contain scales a w x h image into box keeping its aspect ratio, centered.
// A degenerate size returns the box unchanged.
func Contain(box Rect, w, h int) Rect {
	if w <= 0 || h <= 0 {
		return box
	}
	ratio := math.Min(box.W/float64(w), box.H/float64(h))
	dw, dh := float64(w)*ratio, float64(h)*ratio
	return Rect{
		X: box.X + (box.W-dw)/2,
		Y: box.Y + (box.H-dh)/2,
		W: dw,
		H: dh,
	}
}
