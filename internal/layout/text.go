package layout

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// entrelinha, em em
	leading  = 1.2
	ellipsis = "…"
	// espaço entre itens de lista, em linhas
	itemGap = 0.3
	marker  = "• "
	indent  = "  "
)

// LineHeight returns the height of one text line in inches.
func LineHeight(sizePt float64) float64 { return leading * sizePt / 72 }

const widthSlack = 1e-9

// Fitted is text wrapped for a box at a given size.
type Fitted struct {
	Lines     []string
	SizePt    float64
	Truncated bool
}

func (f Fitted) Height() float64 { return float64(len(f.Lines)) * LineHeight(f.SizePt) }

// FitText shrinks text 1pt at a time from maxPt until its wrapped lines fit
// box, measuring with m. At minPt whatever does not fit is cut and the last
// kept line ends with an ellipsis.
func FitText(text string, box Rect, maxPt, minPt float64, m Measure) Fitted {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return Fitted{SizePt: maxPt}
	}
	if minPt > maxPt {
		minPt = maxPt
	}
	for size := maxPt; size > minPt; size-- {
		lines := Wrap(text, box.W, size, m)
		if float64(len(lines))*LineHeight(size) <= box.H {
			return Fitted{Lines: lines, SizePt: size}
		}
	}

	lines := Wrap(text, box.W, minPt, m)
	maxLines := int(math.Floor(box.H/LineHeight(minPt) + 1e-9))
	if len(lines) <= maxLines {
		return Fitted{Lines: lines, SizePt: minPt}
	}
	if maxLines <= 0 {
		return Fitted{SizePt: minPt, Truncated: true}
	}
	kept := append([]string(nil), lines[:maxLines]...)
	kept[maxLines-1] = ellipsize(kept[maxLines-1], box.W, minPt, m)
	return Fitted{Lines: kept, SizePt: minPt, Truncated: true}
}

// Wrap breaks text into lines no wider than width, by word. Words wider
// than a line are split between runes.
func Wrap(text string, width, sizePt float64, m Measure) []string {
	fits := func(s string) bool { return m(s, sizePt) <= width+widthSlack }
	var lines []string
	cur := ""
	for _, word := range strings.Fields(text) {
		if cur != "" && fits(cur+" "+word) {
			cur += " " + word
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}
		for word != "" && !fits(word) {
			head := longestPrefix(word, fits)
			lines = append(lines, head)
			word = word[len(head):]
		}
		cur = word
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// longestPrefix is the longest rune prefix of s accepted by fits, and at
// least one rune so wrapping always advances.
func longestPrefix(s string, fits func(string) bool) string {
	end := 0
	for i, r := range s {
		next := i + utf8.RuneLen(r)
		if end > 0 && !fits(s[:next]) {
			break
		}
		end = next
	}
	return s[:end]
}

func ellipsize(line string, width, sizePt float64, m Measure) string {
	line = strings.TrimRightFunc(line, func(c rune) bool {
		return unicode.IsSpace(c) || unicode.IsPunct(c)
	})
	for line != "" && m(line+ellipsis, sizePt) > width+widthSlack {
		_, n := utf8.DecodeLastRuneInString(line)
		line = strings.TrimRightFunc(line[:len(line)-n], unicode.IsSpace)
	}
	return line + ellipsis
}

// Truncate cuts s to at most n runes, ending with an ellipsis when cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	return strings.TrimRightFunc(string(r[:n-1]), unicode.IsSpace) + ellipsis
}

// List is a bullet column wrapped for its box.
type List struct {
	Items   [][]string
	SizePt  float64
	Dropped int
}

func (l List) Height() float64 {
	if len(l.Items) == 0 {
		return 0
	}
	lines := 0
	for _, it := range l.Items {
		lines += len(it)
	}
	gaps := float64(len(l.Items)-1) * itemGap
	return (float64(lines) + gaps) * LineHeight(l.SizePt)
}

// Lines flattens the list with a bullet marker on the first line of each item.
func (l List) Lines() []string {
	var out []string
	for _, it := range l.Items {
		for i, line := range it {
			if i == 0 {
				out = append(out, marker+line)
			} else {
				out = append(out, indent+line)
			}
		}
	}
	return out
}

// FitList wraps items for box and stops at the first one that would run past
// the bottom of the box. Items after it are dropped, not squeezed.
func FitList(items []string, box Rect, sizePt float64, m Measure) List {
	out := List{SizePt: sizePt}
	width := box.W - max(m(marker, sizePt), m(indent, sizePt))
	for i, item := range items {
		lines := Wrap(item, width, sizePt, m)
		if len(lines) == 0 {
			continue
		}
		next := List{Items: append(append([][]string(nil), out.Items...), lines), SizePt: sizePt}
		if next.Height() > box.H+1e-9 {
			out.Dropped = len(items) - i
			break
		}
		out.Items = next.Items
	}
	return out
}
