package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProxyRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalogo_proxy_requests_total",
			Help: "Requisições ao proxy de imagens por status",
		},
		[]string{"status"},
	)

	AssetsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalogo_assets_total",
			Help: "Imagens resolvidas por tipo e resultado",
		},
		[]string{"kind", "result"},
	)

	SlidesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalogo_slides_total",
			Help: "Slides gerados por formato e tipo",
		},
		[]string{"format", "kind"},
	)

	ExportSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalogo_export_seconds",
			Help:    "Duração das exportações",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"format"},
	)

	CacheRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalogo_cache_refreshes_total",
			Help: "Recargas da lista de produtos",
		},
		[]string{"result"},
	)

	ScrapesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalogo_scrapes_total",
			Help: "Páginas de produto extraídas",
		},
		[]string{"result"},
	)
)

func Start(port string) {
	prometheus.MustRegister(ProxyRequests, AssetsTotal, SlidesTotal, ExportSeconds, CacheRefreshes, ScrapesTotal)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}
