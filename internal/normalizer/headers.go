package normalizer

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Field is a canonical Product field a sheet header can map to.
type Field string

const (
	FieldID          Field = "id"
	FieldName        Field = "name"
	FieldCode        Field = "code"
	FieldSKU         Field = "sku"
	FieldCategory    Field = "category"
	FieldImage       Field = "image"
	FieldGallery     Field = "gallery"
	FieldDescription Field = "description"
	FieldFeatures    Field = "features"
	FieldSpecs       Field = "specs"
	FieldCompliance  Field = "compliance"
	FieldPDF         Field = "pdfUrl"
	FieldPrice       Field = "price"
	FieldAssets      Field = "assets"
	FieldSourceURL   Field = "sourceUrl"
)

var knownFields = []Field{
	FieldID, FieldName, FieldCode, FieldSKU, FieldCategory, FieldImage, FieldGallery,
	FieldDescription, FieldFeatures, FieldSpecs, FieldCompliance, FieldPDF, FieldPrice,
	FieldAssets, FieldSourceURL,
}

// Tabela fixa de apelidos. As chaves já estão "dobradas" (ver FoldKey).
var defaultAliases = map[Field][]string{
	FieldID:          {"id", "productid", "itemid"},
	FieldName:        {"name", "productname", "title", "product", "producttitle", "itemname", "nome", "produto", "titulo"},
	FieldCode:        {"code", "productcode", "itemcode", "model", "modelnumber", "modelno", "ref", "reference", "codigo", "modelo", "referencia"},
	FieldSKU:         {"sku", "skunumber", "partnumber", "partno"},
	FieldCategory:    {"category", "categories", "collection", "type", "producttype", "categoria", "tipo", "linha"},
	FieldImage:       {"image", "imageurl", "img", "photo", "picture", "mainimage", "primaryimage", "thumbnail", "imagem", "foto"},
	FieldGallery:     {"gallery", "images", "additionalimages", "moreimages", "galeria", "imagens"},
	FieldDescription: {"description", "desc", "longdescription", "overview", "summary", "descricao"},
	FieldFeatures:    {"features", "feature", "highlights", "keyfeatures", "bullets", "caracteristicas", "diferenciais"},
	FieldSpecs:       {"specs", "spec", "specifications", "specification", "techspecs", "technicalspecifications", "details", "especificacoes", "especificacoestecnicas"},
	FieldCompliance:  {"compliance", "certifications", "certification", "certs", "standards", "certificacoes", "normas"},
	FieldPDF:         {"pdf", "pdfurl", "specpdf", "specpdfurl", "specsheet", "specsheeturl", "datasheet", "fichatecnica"},
	FieldPrice:       {"price", "listprice", "msrp", "unitprice", "retailprice", "preco", "valor"},
	FieldAssets:      {"assets", "downloads", "documents", "files", "arquivos"},
	FieldSourceURL:   {"url", "link", "producturl", "sourceurl", "pageurl", "page", "pagina"},
}

// FoldKey lower-cases s, strips accents and drops everything that is not a
// letter or a digit, so "Product Name", "product_name" and "PRODUCT-NAME"
// all fold to "productname".
func FoldKey(s string) string {
	var b strings.Builder
	for _, r := range Fold(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Fold lower-cases s and removes combining marks ("Descrição" -> "descricao").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

func buildAliasIndex(extra map[Field][]string) map[string]Field {
	idx := make(map[string]Field)
	add := func(src map[Field][]string) {
		for field, aliases := range src {
			for _, a := range aliases {
				if k := FoldKey(a); k != "" {
					idx[k] = field
				}
			}
		}
	}
	add(defaultAliases)
	add(extra)
	return idx
}

// LoadAliases reads extra header aliases from a YAML file shaped as
//
//	name: ["nome do item", "descrição curta"]
//	pdfUrl: ["catalogo pdf"]
func LoadAliases(path string) (map[Field][]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aliases %s: %w", path, err)
	}
	var raw map[string][]string
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse aliases %s: %w", path, err)
	}

	out := make(map[Field][]string, len(raw))
	for name, aliases := range raw {
		field, ok := lookupField(name)
		if !ok {
			return nil, fmt.Errorf("aliases %s: unknown field %q", path, name)
		}
		out[field] = append(out[field], aliases...)
	}
	return out, nil
}

func lookupField(name string) (Field, bool) {
	k := FoldKey(name)
	for _, f := range knownFields {
		if FoldKey(string(f)) == k {
			return f, true
		}
	}
	return "", false
}
