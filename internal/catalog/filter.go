package catalog

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"catalogo/internal/model"
	"catalogo/internal/normalizer"
)

// Query filters the product list. Empty fields match everything.
type Query struct {
	Text     string
	Category string
}

// Search keeps products whose text fields contain every term of q.Text,
// ignoring case and accents. The input order is kept.
func Search(products []model.Product, q Query) []model.Product {
	terms := strings.Fields(normalizer.Fold(q.Text))
	category := normalizer.FoldKey(q.Category)

	return lo.Filter(products, func(p model.Product, _ int) bool {
		if category != "" && normalizer.FoldKey(p.Category) != category {
			return false
		}
		if len(terms) == 0 {
			return true
		}
		haystack := normalizer.Fold(strings.Join([]string{p.Name, p.Code, p.SKU, p.Category, p.Description}, " "))
		return lo.EveryBy(terms, func(t string) bool { return strings.Contains(haystack, t) })
	})
}

// Categories lists distinct categories sorted, keeping the first spelling
// seen for each.
func Categories(products []model.Product) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range products {
		name := strings.TrimSpace(p.Category)
		key := normalizer.FoldKey(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool {
		return normalizer.Fold(out[i]) < normalizer.Fold(out[j])
	})
	return out
}
