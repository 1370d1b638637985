package catalog

import "catalogo/internal/model"

// Selection is an ordered set of products keyed by ID. Adding an ID that
// is already present replaces the product but keeps its first position.
type Selection struct {
	order []string
	items map[string]model.Product
}

func NewSelection(products ...model.Product) *Selection {
	s := &Selection{items: make(map[string]model.Product, len(products))}
	for _, p := range products {
		s.Add(p)
	}
	return s
}

func (s *Selection) Add(p model.Product) {
	if _, ok := s.items[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.items[p.ID] = p
}

func (s *Selection) Remove(id string) {
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Selection) Get(id string) (model.Product, bool) {
	p, ok := s.items[id]
	return p, ok
}

func (s *Selection) Len() int { return len(s.order) }

func (s *Selection) IDs() []string { return append([]string(nil), s.order...) }

func (s *Selection) Products() []model.Product {
	out := make([]model.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}
