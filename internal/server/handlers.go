package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"catalogo/internal/catalog"
	"catalogo/internal/deck"
	"catalogo/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ProductsHandler serves GET /api/products?q=&category=&refresh=1.
func ProductsHandler(c Catalog, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var (
			products []model.Product
			err      error
		)
		if q.Get("refresh") == "1" || q.Get("refresh") == "true" {
			products, err = c.Refresh(r.Context())
		} else {
			products, err = c.Products(r.Context())
		}
		if err != nil {
			log.Error("[http] erro ao carregar produtos", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
			return
		}

		list := catalog.Search(products, catalog.Query{Text: q.Get("q"), Category: q.Get("category")})
		if list == nil {
			list = []model.Product{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// CategoriesHandler serves GET /api/categories.
func CategoriesHandler(c Catalog, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := c.Products(r.Context())
		if err != nil {
			log.Error("[http] erro ao carregar produtos", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
			return
		}
		cats := catalog.Categories(products)
		if cats == nil {
			cats = []string{}
		}
		writeJSON(w, http.StatusOK, cats)
	}
}

type ExportRequest struct {
	Format     string           `json:"format"`
	Client     model.ClientInfo `json:"client"`
	ProductIDs []string         `json:"productIds"`
	Products   []model.Product  `json:"products"`
	Sections   []model.Section  `json:"sections"`
}

// ExportHandler serves POST /api/export and answers with the file itself.
// Products can be picked by id from the catalog, sent inline, or both; ids
// come first.
func ExportHandler(c Catalog, e Exporter, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ExportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		format, err := deck.ParseFormat(req.Format)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		var products []model.Product
		if len(req.ProductIDs) > 0 {
			found, missing, err := c.Lookup(r.Context(), req.ProductIDs)
			if err != nil {
				log.Error("[export] erro ao carregar catálogo", zap.Error(err))
				writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
				return
			}
			if len(missing) > 0 {
				log.Warn("[export] produtos não encontrados", zap.Strings("ids", missing))
			}
			products = found
		}
		products = append(products, req.Products...)

		file, err := e.Export(r.Context(), deck.Request{
			Format:   format,
			Client:   req.Client,
			Products: products,
			Sections: req.Sections,
		})
		if errors.Is(err, deck.ErrNoProducts) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no products selected"})
			return
		}
		if err != nil {
			log.Error("[export] falha na exportação", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
		w.Header().Set("Content-Length", fmt.Sprint(len(file.Data)))
		w.WriteHeader(http.StatusOK)
		w.Write(file.Data)
	}
}
