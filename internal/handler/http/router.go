package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paripprabhu/sneakopedia/internal/service"
	"github.com/paripprabhu/sneakopedia/pkg/health"
	"github.com/paripprabhu/sneakopedia/pkg/middleware"
)

// RouterConfig carries the request-surface settings the router needs.
type RouterConfig struct {
	Environment    string
	AllowedOrigins []string
	// CacheMaxAge is the Cache-Control max-age for catalog reads, in seconds.
	CacheMaxAge int
}

// NewRouter creates a chi router with all catalog routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Environment:    cfg.Environment,
	}))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Catalog API endpoints
	sneakerHandler := NewSneakerHandler(catalogService, logger)
	retailerHandler := NewRetailerHandler(catalogService, logger)
	brandHandler := NewBrandHandler(catalogService, logger)

	r.Route("/api/v1/sneakers", func(r chi.Router) {
		r.Use(middleware.CacheControl(cfg.CacheMaxAge))

		r.Get("/", sneakerHandler.ListSneakers)
		r.Get("/{id}/retailers", retailerHandler.GetRetailers)
	})

	r.Route("/api/v1/brands", func(r chi.Router) {
		r.Use(middleware.CacheControl(cfg.CacheMaxAge))

		r.Get("/", brandHandler.ListBrands)
	})

	return r
}
