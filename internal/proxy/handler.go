package proxy

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"catalogo/internal/assets"
	"catalogo/internal/observability"
)

func setCORS(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "*")
}

// Handler serves GET|HEAD /api/proxy?url=<asset>. The body is the upstream
// payload base64-encoded; errors are short text diagnostics.
func Handler(f *Fetcher, logger *zap.Logger) http.HandlerFunc {
	log := observability.OrNop(logger)

	return func(w http.ResponseWriter, r *http.Request) {
		setCORS(w.Header())

		fail := func(status int, msg string) {
			observability.ProxyRequests.WithLabelValues(strconv.Itoa(status)).Inc()
			http.Error(w, msg, status)
		}

		switch r.Method {
		case http.MethodOptions:
			w.WriteHeader(http.StatusNoContent)
			return
		case http.MethodGet, http.MethodHead:
		default:
			fail(http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		raw := r.URL.Query().Get("url")
		if raw == "" {
			fail(http.StatusBadRequest, "missing url parameter")
			return
		}
		target, ok := assets.ResolveURL(raw, "")
		if !ok {
			fail(http.StatusBadRequest, "invalid url")
			return
		}

		contentType, data, err := f.Fetch(r.Context(), target)
		if err != nil {
			var se *StatusError
			switch {
			case errors.As(err, &se) && se.Status >= 400:
				log.Info("[proxy] upstream recusou", zap.String("url", target), zap.Int("status", se.Status))
				fail(se.Status, "upstream returned "+strconv.Itoa(se.Status))
			case errors.Is(err, ErrTooLarge):
				log.Warn("[proxy] resposta grande demais", zap.String("url", target))
				fail(http.StatusBadGateway, "upstream response too large")
			default:
				log.Warn("[proxy] falha ao buscar", zap.String("url", target), zap.Error(err))
				fail(http.StatusBadGateway, "fetch failed")
			}
			return
		}

		if contentType == "" {
			contentType = "application/octet-stream"
		}
		encoded := base64.StdEncoding.EncodeToString(data)

		h := w.Header()
		h.Set("Content-Type", contentType)
		h.Set("Cache-Control", "public, max-age=86400")
		h.Set("Content-Length", strconv.Itoa(len(encoded)))
		w.WriteHeader(http.StatusOK)
		observability.ProxyRequests.WithLabelValues("200").Inc()

		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write([]byte(encoded))
	}
}
