package layout

import "fmt"

// Kind identifies the role of a slide in the deck.
type Kind string

const (
	KindCover   Kind = "cover"
	KindProduct Kind = "product"
	KindClosing Kind = "closing"
)

type Color struct{ R, G, B uint8 }

func (c Color) Hex() string { return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B) }

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Theme holds the deck colors.
type Theme struct {
	Accent      Color
	Ink         Color
	Muted       Color
	Placeholder Color
	OnAccent    Color
}

var DefaultTheme = Theme{
	Accent:      Color{0x1F, 0x4E, 0x79},
	Ink:         Color{0x22, 0x22, 0x22},
	Muted:       Color{0x6B, 0x6B, 0x6B},
	Placeholder: Color{0xE3, 0xE3, 0xE3},
	OnAccent:    Color{0xFF, 0xFF, 0xFF},
}

// Element is anything a backend draws. Bounds is in inches.
type Element interface {
	Bounds() Rect
	Role() string
}

// Text is pre-wrapped: backends draw one line per entry and do not re-wrap.
type Text struct {
	Name   string
	Box    Rect
	Lines  []string
	SizePt float64
	Bold   bool
	Color  Color
	Align  Align
}

// Shape is a filled rectangle.
type Shape struct {
	Name string
	Box  Rect
	Fill Color
}

// Picture carries PNG bytes already placed with Contain.
type Picture struct {
	Name          string
	Box           Rect
	PNG           []byte
	Width, Height int
}

func (t Text) Bounds() Rect    { return t.Box }
func (t Text) Role() string    { return t.Name }
func (s Shape) Bounds() Rect   { return s.Box }
func (s Shape) Role() string   { return s.Name }
func (p Picture) Bounds() Rect { return p.Box }
func (p Picture) Role() string { return p.Name }

// Slide is a renderer-neutral page.
type Slide struct {
	Kind      Kind
	ProductID string
	Elements  []Element
}

func (s *Slide) Add(e ...Element) { s.Elements = append(s.Elements, e...) }

// Find returns the first element with the given role.
func (s Slide) Find(role string) (Element, bool) {
	for _, e := range s.Elements {
		if e.Role() == role {
			return e, true
		}
	}
	return nil, false
}
