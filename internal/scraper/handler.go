package scraper

import (
	"encoding/json"
	"errors"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Handler serves GET /api/scrape?url=<product page>.
func Handler(s *Scraper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.Scrape(r.Context(), r.URL.Query().Get("url"))
		switch {
		case errors.Is(err, ErrInvalidURL):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing or invalid url"})
		case errors.Is(err, ErrFetch):
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		case err != nil:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		default:
			writeJSON(w, http.StatusOK, p)
		}
	}
}
