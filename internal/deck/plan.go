package deck

import (
	"strings"
	"time"

	"catalogo/internal/assets"
	"catalogo/internal/bullets"
	"catalogo/internal/layout"
	"catalogo/internal/model"
)

// Papéis dos elementos, usados pelos backends e pelos testes.
const (
	RoleAccent           = "accent"
	RoleTitle            = "title"
	RoleSubtitle         = "subtitle"
	RoleDetails          = "details"
	RoleImage            = "image"
	RolePlaceholder      = "placeholder"
	RolePlaceholderLabel = "placeholder-label"
	RoleBullets          = "bullets"
	RoleDescription      = "description"
	RoleFooter           = "footer"
	RoleFooterLabel      = "footer-label"
	RoleCode             = "code"
)

const (
	PlaceholderLabel = "Image unavailable"
	placeholderPt    = 14
	closingTitle     = "Thank you"
)

func (e *Exporter) productSlide(c layout.Canvas, it item, img *assets.Image) layout.Slide {
	th := e.theme()
	p := it.Product
	g := layout.ProductRegions(c)
	s := layout.Slide{Kind: layout.KindProduct, ProductID: p.ID}

	name := p.Name
	if strings.TrimSpace(name) == "" {
		name = model.PlaceholderName
	}
	title := layout.FitText(name, g.Title, layout.TitleMaxPt, layout.TitleMinPt, layout.Bold)
	s.Add(layout.Text{
		Name: RoleTitle, Box: g.Title, Lines: title.Lines,
		SizePt: title.SizePt, Bold: true, Color: th.Ink,
	})

	if img != nil && len(img.Data) > 0 {
		s.Add(layout.Picture{
			Name:  RoleImage,
			Box:   layout.Contain(g.Image, img.Width, img.Height),
			PNG:   img.Data,
			Width: img.Width, Height: img.Height,
		})
	} else {
		lh := layout.LineHeight(placeholderPt)
		s.Add(
			layout.Shape{Name: RolePlaceholder, Box: g.Image, Fill: th.Placeholder},
			layout.Text{
				Name:   RolePlaceholderLabel,
				Box:    layout.Rect{X: g.Image.X, Y: g.Image.Y + (g.Image.H-lh)/2, W: g.Image.W, H: lh},
				Lines:  []string{PlaceholderLabel},
				SizePt: placeholderPt, Color: th.Muted, Align: layout.AlignCenter,
			},
		)
	}

	points := bullets.Extract(p)
	if len(points) == 0 {
		points = bullets.Features(p)
	}
	if list := layout.FitList(points, g.Bullets, layout.BulletPt, layout.Regular); len(list.Items) > 0 {
		s.Add(layout.Text{
			Name: RoleBullets, Box: g.Bullets, Lines: list.Lines(),
			SizePt: list.SizePt, Color: th.Ink,
		})
	}

	desc := layout.Truncate(strings.Join(strings.Fields(p.Description), " "), e.maxDescription())
	if d := layout.FitText(desc, g.Description, layout.DescriptionMaxPt, layout.DescriptionMinPt, layout.Regular); len(d.Lines) > 0 {
		s.Add(layout.Text{
			Name: RoleDescription, Box: g.Description, Lines: d.Lines,
			SizePt: d.SizePt, Color: th.Muted,
		})
	}

	s.Add(layout.Shape{Name: RoleFooter, Box: g.FooterBar, Fill: th.Accent})
	label := it.Section
	if label == "" {
		label = e.brand()
	}
	s.Add(footerText(RoleFooterLabel, label, g.FooterLabel, false, layout.AlignLeft, th))
	if code := p.Label(); code != "" {
		s.Add(footerText(RoleCode, code, g.FooterCode, true, layout.AlignRight, th))
	}
	return s
}

func footerText(role, text string, box layout.Rect, bold bool, align layout.Align, th layout.Theme) layout.Text {
	f := layout.FitText(text, box, layout.FooterPt, layout.FooterPt, layout.Font(bold))
	return layout.Text{
		Name: role, Box: box, Lines: f.Lines, SizePt: f.SizePt,
		Bold: bold, Color: th.OnAccent, Align: align,
	}
}

func (e *Exporter) coverSlide(c layout.Canvas, client model.ClientInfo) layout.Slide {
	g := layout.CoverRegions(c)
	title := client.ProjectName
	if title == "" {
		title = e.brand()
	}
	var subtitle string
	if client.ClientName != "" {
		subtitle = "Prepared for " + client.ClientName
	}
	var details []string
	if d := displayDate(client.DateISO); d != "" {
		details = append(details, d)
	}
	details = append(details, client.ContactLines()...)
	return e.titleSlide(layout.KindCover, g, title, subtitle, details)
}

func (e *Exporter) closingSlide(c layout.Canvas, client model.ClientInfo) layout.Slide {
	g := layout.ClosingRegions(c)
	subtitle := client.ClientName
	if subtitle == "" {
		subtitle = e.brand()
	}
	return e.titleSlide(layout.KindClosing, g, closingTitle, subtitle, client.ContactLines())
}

func (e *Exporter) titleSlide(kind layout.Kind, g layout.CoverGeometry, title, subtitle string, details []string) layout.Slide {
	th := e.theme()
	s := layout.Slide{Kind: kind}
	s.Add(layout.Shape{Name: RoleAccent, Box: g.Accent, Fill: th.Accent})

	t := layout.FitText(title, g.Title, layout.CoverTitleMaxPt, layout.CoverTitleMinPt, layout.Bold)
	s.Add(layout.Text{Name: RoleTitle, Box: g.Title, Lines: t.Lines, SizePt: t.SizePt, Bold: true, Color: th.Ink})

	if subtitle != "" {
		st := layout.FitText(subtitle, g.Subtitle, layout.CoverSubtitlePt, layout.CoverDetailPt, layout.Regular)
		s.Add(layout.Text{Name: RoleSubtitle, Box: g.Subtitle, Lines: st.Lines, SizePt: st.SizePt, Color: th.Accent})
	}

	var lines []string
	maxLines := int(g.Details.H / layout.LineHeight(layout.CoverDetailPt))
	for _, d := range details {
		if len(lines) == maxLines {
			break
		}
		f := layout.FitText(d, layout.Rect{W: g.Details.W, H: layout.LineHeight(layout.CoverDetailPt)},
			layout.CoverDetailPt, layout.CoverDetailPt, layout.Regular)
		lines = append(lines, f.Lines...)
	}
	if len(lines) > 0 {
		s.Add(layout.Text{Name: RoleDetails, Box: g.Details, Lines: lines, SizePt: layout.CoverDetailPt, Color: th.Muted})
	}

	s.Add(layout.Shape{Name: RoleFooter, Box: g.FooterBar, Fill: th.Accent})
	return s
}

// displayDate turns "2024-05-01" into "May 1, 2024"; anything else is shown as given.
func displayDate(iso string) string {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return ""
	}
	for _, layoutStr := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layoutStr, iso); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return iso
}
