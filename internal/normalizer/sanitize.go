package normalizer

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fim de bloco vira espaço, senão "<li>A</li><li>B</li>" gruda em "AB"
var blockEndRe = regexp.MustCompile(`(?i)<\s*(br|/p|/li|/div|/h[1-6]|/tr|/td|/dd|/dt)\b[^>]*>`)

// SanitizeDescription returns plain text: markup and script/style blocks are
// dropped, entities decoded and whitespace collapsed.
func SanitizeDescription(s string) string {
	if strings.ContainsAny(s, "<&") {
		s = stripMarkup(s)
	}
	return strings.Join(strings.Fields(s), " ")
}

func stripMarkup(s string) string {
	s = blockEndRe.ReplaceAllString(s, " $0")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return html.UnescapeString(s)
	}
	doc.Find("script, style, noscript, template").Remove()
	return doc.Text()
}
