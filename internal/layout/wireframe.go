package layout

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// WriteWireframe draws the product slide regions of c as SVG, dpi pixels per inch.
func WriteWireframe(w io.Writer, c Canvas, dpi int) {
	if dpi <= 0 {
		dpi = 96
	}
	px := func(v float64) int { return int(math.Round(v * float64(dpi))) }

	g := ProductRegions(c)
	regions := []struct {
		name string
		r    Rect
		fill string
	}{
		{"title", g.Title, "#dbe7f3"},
		{"image", g.Image, "#e3e3e3"},
		{"bullets", g.Bullets, "#eef5e6"},
		{"description", g.Description, "#f7f0de"},
		{"footer", g.FooterBar, "#" + DefaultTheme.Accent.Hex()},
		{"label", g.FooterLabel, "none"},
		{"code", g.FooterCode, "none"},
	}

	canvas := svg.New(w)
	canvas.Start(px(c.W), px(c.H))
	canvas.Title(fmt.Sprintf("product slide %.2fx%.2f in", c.W, c.H))
	canvas.Rect(0, 0, px(c.W), px(c.H), "fill:white;stroke:#999")
	for _, reg := range regions {
		r := reg.r
		canvas.Rect(px(r.X), px(r.Y), px(r.W), px(r.H),
			fmt.Sprintf("fill:%s;stroke:#555;stroke-dasharray:4,3", reg.fill))
		canvas.Text(px(r.X)+4, px(r.Y)+14, reg.name, "font-family:sans-serif;font-size:11px;fill:#333")
	}
	canvas.End()
}
