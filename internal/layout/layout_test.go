package layout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionsStayInsideCanvasWithoutOverlap(t *testing.T) {
	for _, c := range []Canvas{Slide16x9, PageA4Landscape} {
		bounds := c.Bounds()

		g := ProductRegions(c)
		content := g.Content()
		for i, r := range content {
			assert.True(t, r.Within(bounds), "region %d outside %+v", i, c)
			for j := i + 1; j < len(content); j++ {
				assert.False(t, r.Overlaps(content[j]), "regions %d and %d overlap on %+v", i, j, c)
			}
		}
		assert.True(t, g.FooterLabel.Within(g.FooterBar))
		assert.True(t, g.FooterCode.Within(g.FooterBar))
		assert.False(t, g.FooterLabel.Overlaps(g.FooterCode))

		for _, cg := range []CoverGeometry{CoverRegions(c), ClosingRegions(c)} {
			regions := cg.Content()
			for i, r := range regions {
				assert.True(t, r.Within(bounds))
				for j := i + 1; j < len(regions); j++ {
					assert.False(t, r.Overlaps(regions[j]))
				}
			}
		}
	}
}

func TestContainKeepsAspectRatio(t *testing.T) {
	box := Rect{X: 1, Y: 1, W: 4, H: 2}

	r := Contain(box, 100, 100)
	assert.InDelta(t, 2.0, r.W, 1e-9)
	assert.InDelta(t, 2.0, r.H, 1e-9)
	assert.InDelta(t, 2.0, r.X, 1e-9)
	assert.InDelta(t, 1.0, r.Y, 1e-9)

	r = Contain(box, 800, 100)
	assert.InDelta(t, 4.0, r.W, 1e-9)
	assert.InDelta(t, 0.5, r.H, 1e-9)
	assert.InDelta(t, 1.75, r.Y, 1e-9)
	assert.True(t, r.Within(box))

	assert.Equal(t, box, Contain(box, 0, 10))
}

func TestFitTextShrinksBeforeTruncating(t *testing.T) {
	g := ProductRegions(Slide16x9)

	short := FitText("Wall Faucet", g.Title, TitleMaxPt, TitleMinPt, Bold)
	assert.Equal(t, float64(TitleMaxPt), short.SizePt)
	assert.Equal(t, []string{"Wall Faucet"}, short.Lines)
	assert.False(t, short.Truncated)

	medium := FitText(strings.Repeat("Brushed nickel ", 4), g.Title, TitleMaxPt, TitleMinPt, Bold)
	assert.Less(t, medium.SizePt, float64(TitleMaxPt))
	assert.GreaterOrEqual(t, medium.SizePt, float64(TitleMinPt))
	assert.False(t, medium.Truncated)
	assert.LessOrEqual(t, medium.Height(), g.Title.H)
	assertLinesFit(t, medium, g.Title.W, Bold)
}

func assertLinesFit(t *testing.T, f Fitted, width float64, m Measure) {
	t.Helper()
	for _, line := range f.Lines {
		assert.LessOrEqual(t, m(line, f.SizePt), width+1e-9, "%q at %.0fpt", line, f.SizePt)
	}
}

func TestFitTextMeasuresWideGlyphs(t *testing.T) {
	const name = "THERMOSTATIC SHOWER MIXER WITH DIVERTER VALVE"
	for _, c := range []Canvas{Slide16x9, PageA4Landscape} {
		g := ProductRegions(c)
		require.Greater(t, Bold(name, TitleMaxPt), g.Title.W)

		f := FitText(name, g.Title, TitleMaxPt, TitleMinPt, Bold)
		require.NotEmpty(t, f.Lines)
		assert.Less(t, f.SizePt, float64(TitleMaxPt))
		assert.LessOrEqual(t, f.Height(), g.Title.H)
		assertLinesFit(t, f, g.Title.W, Bold)
	}
}

func TestMeasureUsesCoreFontWidths(t *testing.T) {
	// Helvetica: "W" 944, "i" 222 por 1000 em
	assert.InDelta(t, 0.944, Regular("W", 72), 1e-6)
	assert.InDelta(t, 0.222, Regular("i", 72), 1e-6)
	assert.Greater(t, Bold("Valve", 12), Regular("Valve", 12))
	assert.Zero(t, Regular("", 12))
	assert.Equal(t, Bold("x", 10), Font(true)("x", 10))
}

func TestFitTextEllipsizesLongDescription(t *testing.T) {
	g := ProductRegions(Slide16x9)
	long := strings.Repeat("Solid brass construction with a ceramic disc cartridge. ", 40)

	capped := FitText(Truncate(long, 600), g.Description, DescriptionMaxPt, DescriptionMinPt, Regular)
	require.NotEmpty(t, capped.Lines)
	assert.True(t, strings.HasSuffix(capped.Lines[len(capped.Lines)-1], "…"))
	assert.LessOrEqual(t, capped.Height(), g.Description.H)

	f := FitText(long, g.Description, DescriptionMaxPt, DescriptionMinPt, Regular)
	require.NotEmpty(t, f.Lines)
	assert.True(t, f.Truncated)
	assert.Equal(t, float64(DescriptionMinPt), f.SizePt)
	assert.True(t, strings.HasSuffix(f.Lines[len(f.Lines)-1], "…"))
	assert.LessOrEqual(t, f.Height(), g.Description.H)

	assertLinesFit(t, f, g.Description.W, Regular)
}

func TestFitTextTinyBox(t *testing.T) {
	f := FitText("anything at all", Rect{W: 1, H: 0.01}, 12, 8, Regular)
	assert.Empty(t, f.Lines)
	assert.True(t, f.Truncated)
	assert.Empty(t, FitText("   ", Rect{W: 1, H: 1}, 12, 8, Regular).Lines)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "ação…", Truncate("açãozinha", 5))
	assert.Equal(t, "ab…", Truncate("ab cdef", 4))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestWrapSplitsLongWords(t *testing.T) {
	// "x" mede 500/1000 em: 12 cabem em 1 polegada a 12pt
	lines := Wrap("tiny "+strings.Repeat("x", 30), 1, 12, Regular)
	assert.Equal(t, []string{"tiny", strings.Repeat("x", 12), strings.Repeat("x", 12), strings.Repeat("x", 6)}, lines)
}

func TestFitListStopsAtVerticalBudget(t *testing.T) {
	box := ProductRegions(Slide16x9).Bullets
	items := make([]string, 40)
	for i := range items {
		items[i] = "Material: Solid brass"
	}

	l := FitList(items, box, BulletPt, Regular)
	assert.NotEmpty(t, l.Items)
	assert.Less(t, len(l.Items), len(items))
	assert.Equal(t, len(items)-len(l.Items), l.Dropped)
	assert.LessOrEqual(t, l.Height(), box.H)
	assert.True(t, strings.HasPrefix(l.Lines()[0], "• "))
	for _, line := range l.Lines() {
		assert.LessOrEqual(t, Regular(line, BulletPt), box.W+1e-9)
	}

	few := FitList([]string{"One", "", "Two"}, box, BulletPt, Regular)
	assert.Equal(t, []string{"• One", "• Two"}, few.Lines())
	assert.Zero(t, few.Dropped)
}

func TestWriteWireframe(t *testing.T) {
	var buf bytes.Buffer
	WriteWireframe(&buf, Slide16x9, 96)
	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `width="960"`)
	assert.Contains(t, out, ">bullets<")
	assert.Contains(t, out, "</svg>")
}

func TestSliceFind(t *testing.T) {
	var s Slide
	s.Add(Shape{Name: "footer"}, Text{Name: "title", Lines: []string{"x"}})
	e, ok := s.Find("title")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, e.(Text).Lines)
	_, ok = s.Find("image")
	assert.False(t, ok)
	assert.Equal(t, "1F4E79", DefaultTheme.Accent.Hex())
}
