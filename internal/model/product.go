package model

// PlaceholderName é usado quando a linha não traz nenhum título.
const PlaceholderName = "Untitled product"

// Product is the canonical catalog entry every downstream component consumes.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Code        string      `json:"code,omitempty"`
	SKU         string      `json:"sku,omitempty"`
	Category    string      `json:"category,omitempty"`
	Image       string      `json:"image,omitempty"`
	Gallery     []string    `json:"gallery,omitempty"`
	Description string      `json:"description,omitempty"`
	Features    []string    `json:"features,omitempty"`
	Specs       []Spec      `json:"specs,omitempty"`
	SpecText    string      `json:"specText,omitempty"`
	Compliance  []string    `json:"compliance,omitempty"`
	PDFURL      string      `json:"pdfUrl,omitempty"`
	Price       *float64    `json:"price,omitempty"`
	Assets      []Asset     `json:"assets,omitempty"`
	SourceURL   string      `json:"sourceUrl,omitempty"`
	Attributes  []Attribute `json:"attributes,omitempty"`
}

// Spec is one label/value line of a technical specification.
type Spec struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Asset struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Attribute guarda a célula original (cabeçalho como veio da planilha) e o
// campo a que o cabeçalho foi mapeado, se algum.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Field string `json:"field,omitempty"`
}

// Label returns the short identifier printed in slide footers.
func (p Product) Label() string {
	if p.Code != "" {
		return p.Code
	}
	return p.SKU
}
