package model

import "github.com/google/uuid"

// ClientInfo is carried unchanged to the cover and closing slides.
type ClientInfo struct {
	ProjectName  string `json:"projectName,omitempty"`
	ClientName   string `json:"clientName,omitempty"`
	ContactName  string `json:"contactName,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
	DateISO      string `json:"dateISO,omitempty"`
}

// ContactLines returns the non-empty contact fields in display order.
func (c ClientInfo) ContactLines() []string {
	var lines []string
	for _, s := range []string{c.ContactName, c.ContactEmail, c.ContactPhone} {
		if s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

// Section agrupa produtos para o exportador multi-seção.
type Section struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Product  *Product  `json:"product,omitempty"`
	Products []Product `json:"products,omitempty"`
}

func NewSection(title string, products ...Product) Section {
	return Section{
		ID:       uuid.New().String(),
		Title:    title,
		Products: products,
	}
}

// Items flattens the single product and the product list, in that order.
func (s Section) Items() []Product {
	var out []Product
	if s.Product != nil {
		out = append(out, *s.Product)
	}
	return append(out, s.Products...)
}
