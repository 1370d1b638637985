package normalizer

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var (
	imageFormulaRe = regexp.MustCompile(`(?is)^\s*=?\s*IMAGE\s*\(\s*"([^"]*)"\s*(?:[,;].*)?\)\s*$`)
	lineSplitRe    = regexp.MustCompile(`\r?\n|\r|•|–|-\s+`)
	specSplitRe    = regexp.MustCompile(`\r?\n|\r|\||•`)
	currencyPrefix = []string{"US$", "R$", "$", "€", "£"}
)

// ImageFormulaURL extracts <url> from a spreadsheet cell like
// =IMAGE("<url>", 4, 100, 100). The leading "=" and the trailing arguments are
// optional and the function name is matched case-insensitively.
func ImageFormulaURL(s string) (string, bool) {
	m := imageFormulaRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// CellURL returns the URL held by a cell: the image formula target when the
// cell is one, the trimmed text otherwise.
func CellURL(v any) string {
	s := CellString(v)
	if u, ok := ImageFormulaURL(s); ok {
		return strings.TrimSpace(u)
	}
	return s
}

// CellString converts a raw cell into trimmed text. Non-scalar values (lists,
// maps) yield "".
func CellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []byte:
		return strings.TrimSpace(string(t))
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return strings.TrimSpace(t.String())
	default:
		return ""
	}
}

// ParsePrice returns nil when v cannot be read as a number.
func ParsePrice(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	default:
		s := CellString(v)
		for _, p := range currencyPrefix {
			s = strings.TrimPrefix(s, p)
		}
		s = strings.NewReplacer(",", "", " ", "", " ", "").Replace(s)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// SplitLines breaks a spec-like cell into trimmed, non-empty lines. Separators
// are newlines, "•", "–" and a hyphen followed by whitespace.
func SplitLines(s string) []string {
	return cleanParts(lineSplitRe.Split(s, -1))
}

// SplitSpecText is the separator set used for free-text specification blocks.
func SplitSpecText(s string) []string {
	return cleanParts(specSplitRe.Split(s, -1))
}

func cleanParts(parts []string) []string {
	return lo.FilterMap(parts, func(p string, _ int) (string, bool) {
		p = strings.TrimSpace(p)
		return p, p != ""
	})
}

// toStrings accepts a list value or a spec-like string cell.
func toStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return cleanParts(t)
	case []any:
		var out []string
		for _, item := range t {
			if s := CellString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return SplitLines(CellString(v))
	}
}

func isScalar(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct, reflect.Pointer:
		if _, ok := v.([]byte); !ok {
			return false
		}
	}
	return CellString(v) != ""
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		if _, ok := v.([]byte); !ok {
			return rv.Len() == 0
		}
	case reflect.Struct, reflect.Pointer:
		return rv.IsZero()
	}
	return CellString(v) == ""
}
