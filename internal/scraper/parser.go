package scraper

import (
	"encoding/json"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"

	"catalogo/internal/assets"
	"catalogo/internal/model"
	"catalogo/internal/normalizer"
)

var (
	featureHeadingRe = regexp.MustCompile(`(?i)feature|highlight|benefit|caracter[ií]stica|diferencia|destaque`)
	modelRe          = regexp.MustCompile(`(?i)\b(?:model|modelo|item|sku)\s*(?:#|no\.?|number|n[ºo°])?\s*[:#]\s*([A-Z0-9][A-Z0-9._/-]{2,})`)
)

// Selos reconhecidos no texto da página.
var complianceMarks = []struct {
	label string
	re    *regexp.Regexp
}{
	{"ADA Compliant", regexp.MustCompile(`(?i)\bADA\b`)},
	{"WaterSense", regexp.MustCompile(`(?i)\bwater\s?sense\b`)},
	{"cUPC", regexp.MustCompile(`(?i)\bc?UPC\b`)},
	{"CSA", regexp.MustCompile(`\bCSA\b`)},
	{"NSF", regexp.MustCompile(`\bNSF\b`)},
	{"CALGreen", regexp.MustCompile(`(?i)\bcal\s?green\b`)},
	{"Lead Free", regexp.MustCompile(`(?i)\blead[\s-]free\b`)},
	{"INMETRO", regexp.MustCompile(`(?i)\binmetro\b`)},
}

// ParseProduct extracts a best-effort product from a product page. Relative
// links are resolved against pageURL.
func ParseProduct(html, pageURL string) (model.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return model.Product{}, err
	}

	p := model.Product{SourceURL: pageURL}
	ld := jsonLDProduct(doc)
	abs := func(raw string) string {
		u, _ := assets.ResolveURL(raw, pageURL)
		return u
	}

	p.Name = firstNonEmpty(ld.Name, meta(doc, "og:title"), text(doc.Find("h1").First()), text(doc.Find("title").First()))
	p.Description = normalizer.SanitizeDescription(firstNonEmpty(ld.Description, meta(doc, "og:description"), meta(doc, "description")))
	p.SKU = firstNonEmpty(ld.SKU, doc.Find(`[itemprop="sku"]`).First().AttrOr("content", ""), text(doc.Find(`[itemprop="sku"]`).First()))
	p.Code = firstNonEmpty(ld.MPN, modelNumber(doc))
	p.Category = firstNonEmpty(ld.Category, meta(doc, "product:category"), breadcrumbCategory(doc))
	p.Price = normalizer.ParsePrice(firstNonEmpty(meta(doc, "product:price:amount"), doc.Find(`[itemprop="price"]`).First().AttrOr("content", ""), ld.price()))

	var images []string
	images = append(images, ld.Image...)
	doc.Find(`meta[property="og:image"]`).Each(func(_ int, s *goquery.Selection) {
		images = append(images, s.AttrOr("content", ""))
	})
	images = lo.Uniq(lo.FilterMap(images, func(s string, _ int) (string, bool) {
		u := abs(s)
		return u, u != ""
	}))
	if len(images) > 0 {
		p.Image, p.Gallery = images[0], images[1:]
	}

	p.Features = features(doc)
	p.Specs = specs(doc)
	p.Compliance = compliance(doc.Find("body").Text())

	doc.Find(`a[href]`).Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if !strings.HasSuffix(strings.ToLower(strings.SplitN(href, "?", 2)[0]), ".pdf") {
			return
		}
		u := abs(href)
		if u == "" || lo.ContainsBy(p.Assets, func(a model.Asset) bool { return a.URL == u }) {
			return
		}
		label := firstNonEmpty(text(s), s.AttrOr("title", ""), path.Base(u))
		p.Assets = append(p.Assets, model.Asset{Label: label, URL: u})
	})
	if spec, ok := lo.Find(p.Assets, func(a model.Asset) bool {
		return strings.Contains(strings.ToLower(a.Label+" "+a.URL), "spec")
	}); ok {
		p.PDFURL = spec.URL
	} else if len(p.Assets) > 0 {
		p.PDFURL = p.Assets[0].URL
	}

	p.ID = firstNonEmpty(p.Code, p.SKU, p.SourceURL)
	if p.Name == "" {
		p.Name = model.PlaceholderName
	}
	return p, nil
}

func text(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

func meta(doc *goquery.Document, name string) string {
	sel := doc.Find(`meta[property="` + name + `"], meta[name="` + name + `"]`).First()
	return strings.TrimSpace(sel.AttrOr("content", ""))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func modelNumber(doc *goquery.Document) string {
	if m := modelRe.FindStringSubmatch(doc.Find("body").Text()); m != nil {
		return m[1]
	}
	return ""
}

func breadcrumbCategory(doc *goquery.Document) string {
	items := doc.Find(`nav[aria-label="breadcrumb"] li, .breadcrumb li, .breadcrumbs li`)
	if items.Length() < 2 {
		return ""
	}
	return text(items.Eq(items.Length() - 2))
}

// features: a lista logo abaixo de um título de "features", senão classes comuns.
func features(doc *goquery.Document) []string {
	var out []string
	doc.Find("h2, h3, h4, strong").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !featureHeadingRe.MatchString(h.Text()) {
			return true
		}
		list := h.NextAllFiltered("ul, ol").First()
		if list.Length() == 0 {
			list = h.Parent().Find("ul, ol").First()
		}
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			out = append(out, text(li))
		})
		return len(out) == 0
	})
	if len(out) == 0 {
		doc.Find(".features li, #features li, .product-features li").Each(func(_ int, li *goquery.Selection) {
			out = append(out, text(li))
		})
	}
	return lo.Uniq(lo.Compact(out))
}

func specs(doc *goquery.Document) []model.Spec {
	var out []model.Spec
	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("th, td")
		if cells.Length() != 2 {
			return
		}
		out = append(out, model.Spec{Label: text(cells.Eq(0)), Value: text(cells.Eq(1))})
	})
	doc.Find("dl dt").Each(func(_ int, dt *goquery.Selection) {
		dd := dt.NextFiltered("dd")
		if dd.Length() == 0 {
			return
		}
		out = append(out, model.Spec{Label: text(dt), Value: text(dd)})
	})
	return lo.Filter(out, func(s model.Spec, _ int) bool {
		return s.Label != "" && s.Value != ""
	})
}

func compliance(body string) []string {
	var out []string
	for _, m := range complianceMarks {
		if m.re.MatchString(body) {
			out = append(out, m.label)
		}
	}
	return out
}

// ldProduct is the subset of a schema.org Product we read from JSON-LD.
type ldProduct struct {
	Type        any       `json:"@type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SKU         string    `json:"sku"`
	MPN         string    `json:"mpn"`
	Category    string    `json:"category"`
	Image       ldStrings `json:"image"`
	Offers      any       `json:"offers"`
}

func (p ldProduct) price() string {
	switch o := p.Offers.(type) {
	case map[string]any:
		return normalizer.CellString(o["price"])
	case []any:
		if len(o) > 0 {
			if m, ok := o[0].(map[string]any); ok {
				return normalizer.CellString(m["price"])
			}
		}
	}
	return ""
}

func (p ldProduct) isProduct() bool {
	switch t := p.Type.(type) {
	case string:
		return t == "Product"
	case []any:
		return lo.Contains(t, any("Product"))
	}
	return false
}

// ldStrings aceita "x", ["x","y"] ou [{"url":"x"}].
type ldStrings []string

func (s *ldStrings) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var walk func(v any)
	walk = func(v any) {
		switch t := v.(type) {
		case string:
			*s = append(*s, t)
		case []any:
			for _, it := range t {
				walk(it)
			}
		case map[string]any:
			if u, ok := t["url"].(string); ok {
				*s = append(*s, u)
			}
		}
	}
	walk(raw)
	return nil
}

func jsonLDProduct(doc *goquery.Document) ldProduct {
	var found ldProduct
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var single ldProduct
		if json.Unmarshal([]byte(s.Text()), &single) == nil && single.isProduct() {
			found = single
			return false
		}
		var many []ldProduct
		if json.Unmarshal([]byte(s.Text()), &many) == nil {
			if p, ok := lo.Find(many, ldProduct.isProduct); ok {
				found = p
				return false
			}
		}
		return true
	})
	return found
}
