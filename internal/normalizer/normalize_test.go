package normalizer

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo/internal/model"
)

func TestImageFormulaURL(t *testing.T) {
	cases := map[string]string{
		`=IMAGE("https://cdn.example.com/a.jpg")`:             "https://cdn.example.com/a.jpg",
		`=image("https://cdn.example.com/a.jpg", 4, 50, 50)`:  "https://cdn.example.com/a.jpg",
		`IMAGE("//cdn.example.com/b.png")`:                    "//cdn.example.com/b.png",
		`  =Image( "/img/c.webp" ; 1 )  `:                     "/img/c.webp",
		`=IMAGE("https://x.test/a b.jpg",1)`:                  "https://x.test/a b.jpg",
	}
	for in, want := range cases {
		got, ok := ImageFormulaURL(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"https://cdn.example.com/a.jpg", `=SUM(A1:A3)`, `=IMAGE(A2)`, ""} {
		_, ok := ImageFormulaURL(in)
		assert.False(t, ok, in)
	}
}

func TestNormalizeRowHeadersAndFormula(t *testing.T) {
	headers := []string{"Product Name", "MODEL #", "Image", "Category", "List Price", "Flow Rate", "Notes"}
	cells := []any{"  Wall   Faucet ", "WF-100", `=IMAGE("https://cdn.example.com/wf100.jpg", 1)`, "Faucets", "1,299.50", "1.2 gpm", ""}

	p := Default.NormalizeRow(headers, cells, 0)

	assert.Equal(t, "WF-100", p.ID)
	assert.Equal(t, "Wall Faucet", p.Name)
	assert.Equal(t, "WF-100", p.Code)
	assert.Equal(t, "Faucets", p.Category)
	assert.Equal(t, "https://cdn.example.com/wf100.jpg", p.Image)
	require.NotNil(t, p.Price)
	assert.InDelta(t, 1299.50, *p.Price, 0.001)

	keys := make([]string, 0, len(p.Attributes))
	for _, a := range p.Attributes {
		keys = append(keys, a.Key)
	}
	assert.Equal(t, []string{"Product Name", "MODEL #", "Image", "Category", "List Price", "Flow Rate"}, keys)
}

func TestNormalizeIDFallbacks(t *testing.T) {
	assert.Equal(t, "SKU-9", Normalize(map[string]any{"sku": "SKU-9", "name": "Tub"}, 3).ID)
	assert.Equal(t, "https://shop.test/p/1", Normalize(map[string]any{"url": "https://shop.test/p/1", "title": "Tub"}, 3).ID)
	assert.Equal(t, "Tub", Normalize(map[string]any{"title": "Tub"}, 3).ID)
	assert.Equal(t, "abc", Normalize(map[string]any{"id": "abc"}, 3).ID)

	p := Normalize(map[string]any{"unrelated": "x"}, 3)
	assert.Equal(t, "row-5", p.ID)
	assert.Equal(t, model.PlaceholderName, p.Name)
}

func TestNormalizeNeverFailsOnJunk(t *testing.T) {
	rows := []map[string]any{
		nil,
		{},
		{"": nil},
		{"price": "abc", "specs": 42, "features": map[string]any{}},
		{"price": math.NaN(), "image": []any{nil, 3, "=IMAGE(\"x\")"}},
		{"specs": []any{nil, map[string]any{}, []any{1}, "Finish: Chrome"}},
		{"description": []any{"<b>a</b>", 1}, "assets": []any{map[string]any{"href": "/a.pdf"}, 7}},
		{"gallery": struct{ A int }{1}, "code": []byte(" X1 ")},
	}
	for i, row := range rows {
		assert.NotPanics(t, func() {
			p := Normalize(row, i)
			assert.NotEmpty(t, p.ID)
			assert.NotEmpty(t, p.Name)
		})
	}

	p := Normalize(map[string]any{"price": "abc"}, 0)
	assert.Nil(t, p.Price)
}

func TestParsePrice(t *testing.T) {
	for in, want := range map[string]float64{"1,234": 1234, " $ 12.5": 12.5, "R$ 99": 99, "1 000": 1000} {
		got := ParsePrice(in)
		require.NotNil(t, got, in)
		assert.InDelta(t, want, *got, 0.0001, in)
	}
	assert.Nil(t, ParsePrice("call us"))
	assert.Nil(t, ParsePrice(""))
	assert.InDelta(t, 10.0, *ParsePrice(10), 0.0001)
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("Ceramic disc valve\n• Lead free – ADA compliant\n- Solid brass\r\n\n")
	assert.Equal(t, []string{"Ceramic disc valve", "Lead free", "ADA compliant", "Solid brass"}, got)
}

func TestNormalizeSpecsShapes(t *testing.T) {
	want := []model.Spec{{Label: "Material", Value: "Brass"}, {Label: "Finish", Value: "Chrome"}}

	assert.Equal(t, want, NormalizeSpecs([]any{"Material: Brass", "Finish: Chrome"}))
	assert.Equal(t, want, NormalizeSpecs([]string{"Material: Brass", "Finish: Chrome"}))
	assert.Equal(t, want, NormalizeSpecs([]any{
		map[string]any{"label": "Material", "value": "Brass"},
		map[string]any{"Name": "Finish", "Val": "Chrome"},
	}))
	assert.Equal(t, []model.Spec{{Label: "Finish", Value: "Chrome"}, {Label: "Material", Value: "Brass"}},
		NormalizeSpecs(map[string]any{"Material": "Brass", "Finish": "Chrome"}))
	assert.Equal(t, []model.Spec{{Value: "Lifetime warranty"}, {Label: "Manual", Value: "https://x.test/m.pdf"}},
		NormalizeSpecs("Lifetime warranty | Manual: https://x.test/m.pdf"))
	assert.Equal(t, []model.Spec{{Value: "https://x.test/m.pdf"}}, NormalizeSpecs([]any{"https://x.test/m.pdf"}))
	assert.Nil(t, NormalizeSpecs(nil))
}

func TestNormalizeSpecColumnText(t *testing.T) {
	p := Normalize(map[string]any{"Specifications": "Height: 10 in\nWidth: 4 in", "code": "A"}, 0)
	assert.Equal(t, "Height: 10 in\nWidth: 4 in", p.SpecText)
	assert.Empty(t, p.Specs)

	p = Normalize(map[string]any{"specs": []any{map[string]any{"label": "Height", "value": "10 in"}}, "code": "A"}, 0)
	assert.Equal(t, []model.Spec{{Label: "Height", Value: "10 in"}}, p.Specs)
}

func TestSanitizeDescription(t *testing.T) {
	in := `<p>Sleek&nbsp;design</p><script>alert("x")</script><ul><li>One</li><li>Two</li></ul>`
	assert.Equal(t, "Sleek design One Two", SanitizeDescription(in))
	assert.Equal(t, "plain text", SanitizeDescription("  plain \n text "))
}

func TestNormalizeGrid(t *testing.T) {
	grid := [][]any{
		{"Name", "Code", "Image URL", "Gallery", "Features"},
		{"Tub", "T1", `"//cdn.test/t1.jpg"`, "a.jpg, b.jpg", "Deep soak\n• Acrylic"},
		{nil, "", nil},
		{"Sink"},
	}
	products := NormalizeGrid(grid)
	require.Len(t, products, 2)

	assert.Equal(t, "T1", products[0].ID)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, products[0].Gallery)
	assert.Equal(t, []string{"Deep soak", "Acrylic"}, products[0].Features)
	assert.Equal(t, "Sink", products[1].ID)
}

func TestLoadAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name:\n  - Nome do Item\npdfUrl: [Catálogo PDF]\n"), 0o644))

	extra, err := LoadAliases(path)
	require.NoError(t, err)

	n := New(extra)
	p := n.Normalize(map[string]any{"nome do item": "Ducha", "CATALOGO pdf": "/d.pdf"}, 0)
	assert.Equal(t, "Ducha", p.Name)
	assert.Equal(t, "/d.pdf", p.PDFURL)

	require.NoError(t, os.WriteFile(path, []byte("bogus: [x]\n"), 0o644))
	_, err = LoadAliases(path)
	assert.Error(t, err)
}

func TestFoldKey(t *testing.T) {
	assert.Equal(t, "descricao", FoldKey("Descrição"))
	assert.Equal(t, "productname", FoldKey(" Product_Name "))
	assert.Equal(t, "modelno", FoldKey("Model No."))
}
