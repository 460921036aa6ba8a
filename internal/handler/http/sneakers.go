package http

import (
	"log/slog"
	"net/http"

	"github.com/paripprabhu/sneakopedia/internal/query"
	"github.com/paripprabhu/sneakopedia/internal/service"
	"github.com/paripprabhu/sneakopedia/pkg/httputil"
)

// SneakerHandler handles HTTP requests for the catalog query endpoints.
type SneakerHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewSneakerHandler creates a new sneaker HTTP handler.
func NewSneakerHandler(svc *service.CatalogService, logger *slog.Logger) *SneakerHandler {
	return &SneakerHandler{
		service: svc,
		logger:  logger,
	}
}

// ListSneakers handles GET /api/v1/sneakers
//
// Malformed parameters are never an error: every bad field is clamped or
// defaulted by the query builder. The general path responds with
// {data, pagination}; the id and random special modes respond with a bare
// array of zero or one sneakers, matching the consumer contract.
func (h *SneakerHandler) ListSneakers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := query.Params{
		Q:        q.Get("q"),
		Sort:     q.Get("sort"),
		Page:     q.Get("page"),
		PriceMin: q.Get("priceMin"),
		PriceMax: firstNonEmpty(q.Get("priceMax"), q.Get("price"), q.Get("maxPrice")),
		Brands:   firstNonEmpty(q.Get("brands"), q.Get("brand")),
		ID:       q.Get("id"),
		Random:   q.Get("random"),
		Seed:     q.Get("seed"),
	}

	spec := query.Build(params)

	switch spec.Mode {
	case query.ModeRandom:
		sneakers, err := h.service.RandomSneaker(r.Context())
		if err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, sneakers)

	case query.ModeByID:
		sneakers, err := h.service.LookupByID(r.Context(), spec.ID)
		if err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, sneakers)

	default:
		result, err := h.service.Search(r.Context(), spec)
		if err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, result)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
