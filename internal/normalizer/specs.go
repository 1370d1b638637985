package normalizer

import (
	"path"
	"sort"
	"strings"

	"github.com/samber/lo"

	"catalogo/internal/model"
)

var (
	specLabelKeys = []string{"label", "name", "key", "title", "property", "attribute"}
	specValueKeys = []string{"value", "val", "text", "content", "description"}
	assetURLKeys  = []string{"url", "href", "link", "src"}
)

// NormalizeSpecs resolves the polymorphic specs value into one ordered list of
// label/value pairs. Accepted shapes: []model.Spec, lists of {label, value}
// objects, lists of "Label: Value" strings, [label, value] tuples, mappings
// (sorted by key) and multi-line text.
func NormalizeSpecs(v any) []model.Spec {
	var out []model.Spec
	switch t := v.(type) {
	case nil:
		return nil
	case []model.Spec:
		out = append(out, t...)
	case model.Spec:
		out = append(out, t)
	case []string:
		for _, s := range t {
			out = append(out, parseSpecLine(s))
		}
	case []any:
		for _, item := range t {
			if s, ok := specFromItem(item); ok {
				out = append(out, s)
			}
		}
	case map[string]any:
		keys := lo.Keys(t)
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, model.Spec{Label: strings.TrimSpace(k), Value: CellString(t[k])})
		}
	case map[string]string:
		keys := lo.Keys(t)
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, model.Spec{Label: strings.TrimSpace(k), Value: strings.TrimSpace(t[k])})
		}
	default:
		for _, line := range SplitSpecText(CellString(v)) {
			out = append(out, parseSpecLine(line))
		}
	}
	return lo.Filter(out, func(s model.Spec, _ int) bool {
		return s.Label != "" || s.Value != ""
	})
}

func specFromItem(item any) (model.Spec, bool) {
	switch t := item.(type) {
	case model.Spec:
		return t, true
	case string:
		return parseSpecLine(t), true
	case map[string]any:
		label := firstByKeys(t, specLabelKeys)
		value := firstByKeys(t, specValueKeys)
		return model.Spec{Label: label, Value: value}, label != "" || value != ""
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[k] = v
		}
		return specFromItem(m)
	case []any:
		if len(t) == 2 {
			return model.Spec{Label: CellString(t[0]), Value: CellString(t[1])}, true
		}
	}
	if s := CellString(item); s != "" {
		return parseSpecLine(s), true
	}
	return model.Spec{}, false
}

// parseSpecLine splits "Material: Brass" on the first colon. Lines without a
// colon keep an empty label.
func parseSpecLine(s string) model.Spec {
	s = strings.TrimSpace(s)
	label, value, ok := strings.Cut(s, ":")
	if !ok || strings.HasPrefix(value, "//") {
		return model.Spec{Value: s}
	}
	return model.Spec{Label: strings.TrimSpace(label), Value: strings.TrimSpace(value)}
}

func firstByKeys(m map[string]any, keys []string) string {
	folded := make(map[string]any, len(m))
	for k, v := range m {
		folded[FoldKey(k)] = v
	}
	for _, k := range keys {
		if s := CellString(folded[k]); s != "" {
			return s
		}
	}
	return ""
}

// NormalizeAssets accepts {label, url} objects or text lines shaped as
// "Label | https://..." (label optional).
func NormalizeAssets(v any) []model.Asset {
	var out []model.Asset
	add := func(label, u string) {
		u = CellURL(u)
		if u == "" {
			return
		}
		if label == "" {
			label = path.Base(strings.SplitN(u, "?", 2)[0])
		}
		out = append(out, model.Asset{Label: label, URL: u})
	}

	switch t := v.(type) {
	case []model.Asset:
		for _, a := range t {
			add(a.Label, a.URL)
		}
	case []any:
		for _, item := range t {
			switch it := item.(type) {
			case map[string]any:
				add(firstByKeys(it, specLabelKeys), firstByKeys(it, assetURLKeys))
			default:
				add("", CellString(it))
			}
		}
	default:
		for _, line := range cleanParts(strings.Split(CellString(v), "\n")) {
			if label, u, ok := strings.Cut(line, "|"); ok {
				add(strings.TrimSpace(label), strings.TrimSpace(u))
				continue
			}
			add("", line)
		}
	}
	return out
}
