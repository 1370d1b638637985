package bullets

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"catalogo/internal/model"
	"catalogo/internal/normalizer"
)

// MaxBullets is what fits in the right-hand column of a product slide.
const MaxBullets = 12

// MaxFallbackValue keeps large blobs out of the fallback bullets.
const MaxFallbackValue = 120

// Campos de identidade/mídia nunca viram bullet no fallback.
var blocked = map[normalizer.Field]bool{
	normalizer.FieldID:          true,
	normalizer.FieldName:        true,
	normalizer.FieldCode:        true,
	normalizer.FieldSKU:         true,
	normalizer.FieldImage:       true,
	normalizer.FieldGallery:     true,
	normalizer.FieldSourceURL:   true,
	normalizer.FieldPDF:         true,
	normalizer.FieldDescription: true,
	normalizer.FieldFeatures:    true,
	normalizer.FieldSpecs:       true,
	normalizer.FieldCompliance:  true,
	normalizer.FieldAssets:      true,
}

// Extract derives the bullet list for a product slide. The first source
// that yields a bullet wins: structured specs, then the free-text spec
// block, then the remaining short attributes of the source row.
func Extract(p model.Product) []string {
	out := fromSpecs(p.Specs)
	if len(out) == 0 && strings.TrimSpace(p.SpecText) != "" {
		out = normalizer.SplitSpecText(p.SpecText)
	}
	if len(out) == 0 {
		out = fromAttributes(p.Attributes)
	}
	return capped(out)
}

// Features returns the product's feature list with the same cap.
func Features(p model.Product) []string {
	return capped(p.Features)
}

func fromSpecs(specs []model.Spec) []string {
	return lo.FilterMap(specs, func(s model.Spec, _ int) (string, bool) {
		label, value := strings.TrimSpace(s.Label), strings.TrimSpace(s.Value)
		switch {
		case label == "":
			return "", false
		case value == "":
			return label, true
		}
		return label + ": " + value, true
	})
}

func fromAttributes(attrs []model.Attribute) []string {
	var out []string
	for _, a := range attrs {
		if blocked[attributeField(a)] {
			continue
		}
		key, value := strings.TrimSpace(a.Key), strings.TrimSpace(a.Value)
		if key == "" || value == "" || utf8.RuneCountInString(value) > MaxFallbackValue {
			continue
		}
		out = append(out, key+": "+value)
	}
	return out
}

// attributeField is the field the row's normalizer mapped the header to.
// Attributes built without one are looked up in the built-in alias table.
func attributeField(a model.Attribute) normalizer.Field {
	if a.Field != "" {
		return normalizer.Field(a.Field)
	}
	f, _ := normalizer.Default.Field(a.Key)
	return f
}

func capped(lines []string) []string {
	if len(lines) > MaxBullets {
		return lines[:MaxBullets]
	}
	return lines
}
