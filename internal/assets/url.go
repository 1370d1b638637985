package assets

import (
	"net/url"
	"strings"

	"catalogo/internal/normalizer"
)

// NormalizeURL cleans a URL copied out of a sheet cell: wrapping quotes,
// =IMAGE() formulas, protocol-relative "//host" and embedded whitespace.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	for len(s) >= 2 && strings.ContainsRune("\"'`", rune(s[0])) && s[len(s)-1] == s[0] {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if u, ok := normalizer.ImageFormulaURL(s); ok {
		s = strings.TrimSpace(u)
	}
	if strings.HasPrefix(s, "//") {
		s = "https:" + s
	}
	return escapeSpaces(s)
}

func escapeSpaces(s string) string {
	if !strings.ContainsAny(s, " \t\r\n") {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ':
			b.WriteString("%20")
		case '\t':
			b.WriteString("%09")
		case '\r', '\n':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ResolveURL returns an absolute http(s) URL for raw, resolving relative
// references against base. ok is false when no fetchable URL comes out.
func ResolveURL(raw, base string) (string, bool) {
	s := NormalizeURL(raw)
	if s == "" {
		return "", false
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}
	if !u.IsAbs() {
		if base == "" {
			return "", false
		}
		b, err := url.Parse(NormalizeURL(base))
		if err != nil || !b.IsAbs() {
			return "", false
		}
		u = b.ResolveReference(u)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	return u.String(), true
}
