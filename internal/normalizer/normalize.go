package normalizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"catalogo/internal/model"
)

// Normalizer maps raw sheet rows onto model.Product using a header alias
// table. The zero value is not usable; build one with New.
type Normalizer struct {
	aliases map[string]Field
}

// Default uses only the built-in alias table.
var Default = New(nil)

func New(extra map[Field][]string) *Normalizer {
	return &Normalizer{aliases: buildAliasIndex(extra)}
}

// Field reports the canonical field a header maps to.
func (n *Normalizer) Field(header string) (Field, bool) {
	f, ok := n.aliases[FoldKey(header)]
	return f, ok
}

func Normalize(row map[string]any, rowIndex int) model.Product {
	return Default.Normalize(row, rowIndex)
}

// Normalize is the map form of NormalizeRow. Map iteration order is not
// stable, so headers are visited in sorted order.
func (n *Normalizer) Normalize(row map[string]any, rowIndex int) model.Product {
	headers := lo.Keys(row)
	sort.Strings(headers)
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = row[h]
	}
	return n.NormalizeRow(headers, cells, rowIndex)
}

// NormalizeRow never fails: a cell that cannot be read leaves its field empty.
// Unknown headers do not map to any field but are still listed in Attributes.
func (n *Normalizer) NormalizeRow(headers []string, cells []any, rowIndex int) (p model.Product) {
	var explicitID string
	defer func() {
		if r := recover(); r != nil {
			p.Attributes = nil
		}
		p.ID = productID(p, explicitID, rowIndex)
		if p.Name == "" {
			p.Name = model.PlaceholderName
		}
	}()

	for i, header := range headers {
		if i >= len(cells) || isEmpty(cells[i]) {
			continue
		}
		v := cells[i]
		field, ok := n.Field(header)
		if isScalar(v) {
			p.Attributes = append(p.Attributes, model.Attribute{
				Key:   strings.TrimSpace(header),
				Value: CellString(v),
				Field: string(field),
			})
		}
		if !ok {
			continue
		}
		if field == FieldID {
			explicitID = lo.Ternary(explicitID == "", CellString(v), explicitID)
			continue
		}
		apply(&p, field, v)
	}
	return p
}

func apply(p *model.Product, field Field, v any) {
	switch field {
	case FieldName:
		setOnce(&p.Name, strings.Join(strings.Fields(CellString(v)), " "))
	case FieldCode:
		setOnce(&p.Code, CellString(v))
	case FieldSKU:
		setOnce(&p.SKU, CellString(v))
	case FieldCategory:
		setOnce(&p.Category, CellString(v))
	case FieldImage:
		urls := urlList(v)
		if len(urls) == 0 {
			return
		}
		if p.Image == "" {
			p.Image, urls = urls[0], urls[1:]
		}
		p.Gallery = append(p.Gallery, urls...)
	case FieldGallery:
		p.Gallery = append(p.Gallery, urlList(v)...)
	case FieldDescription:
		text := CellString(v)
		if !isScalar(v) {
			text = strings.Join(toStrings(v), " ")
		}
		setOnce(&p.Description, SanitizeDescription(text))
	case FieldFeatures:
		p.Features = append(p.Features, toStrings(v)...)
	case FieldCompliance:
		p.Compliance = append(p.Compliance, toStrings(v)...)
	case FieldSpecs:
		if isScalar(v) {
			setOnce(&p.SpecText, strings.TrimSpace(CellString(v)))
			return
		}
		p.Specs = append(p.Specs, NormalizeSpecs(v)...)
	case FieldPDF:
		setOnce(&p.PDFURL, CellURL(v))
	case FieldPrice:
		if p.Price == nil {
			p.Price = ParsePrice(v)
		}
	case FieldAssets:
		p.Assets = append(p.Assets, NormalizeAssets(v)...)
	case FieldSourceURL:
		setOnce(&p.SourceURL, CellString(v))
	}
}

// urlList aceita lista ou texto separado por linha, vírgula ou "|".
func urlList(v any) []string {
	var raw []string
	if list, ok := v.([]any); ok {
		for _, item := range list {
			raw = append(raw, CellURL(item))
		}
	} else if list, ok := v.([]string); ok {
		raw = list
	} else {
		s := CellString(v)
		if u, ok := ImageFormulaURL(s); ok {
			raw = []string{u}
		} else {
			raw = strings.FieldsFunc(s, func(r rune) bool {
				return r == '\n' || r == '\r' || r == ',' || r == '|'
			})
		}
	}
	return lo.Uniq(cleanParts(raw))
}

func setOnce(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// productID: code, sku, url, name, then an explicit id column, then the sheet
// row number (1-indexed with a header row).
func productID(p model.Product, explicitID string, rowIndex int) string {
	for _, c := range []string{p.Code, p.SKU, p.SourceURL, p.Name, explicitID} {
		if c != "" {
			return c
		}
	}
	return fmt.Sprintf("row-%d", rowIndex+2)
}

// NormalizeGrid treats row 0 as headers and skips blank rows. The row index
// passed on is the data row position, so ids fall back to the sheet row.
func (n *Normalizer) NormalizeGrid(grid [][]any) []model.Product {
	if len(grid) < 2 {
		return nil
	}
	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		headers[i] = CellString(h)
	}

	products := make([]model.Product, 0, len(grid)-1)
	for i, row := range grid[1:] {
		if lo.EveryBy(row, isEmpty) {
			continue
		}
		products = append(products, n.NormalizeRow(headers, row, i))
	}
	return products
}

func NormalizeGrid(grid [][]any) []model.Product {
	return Default.NormalizeGrid(grid)
}
