package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paripprabhu/sneakopedia/internal/service"
	"github.com/paripprabhu/sneakopedia/pkg/httputil"
)

// RetailerHandler handles HTTP requests for retailer resolution.
type RetailerHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewRetailerHandler creates a new retailer HTTP handler.
func NewRetailerHandler(svc *service.CatalogService, logger *slog.Logger) *RetailerHandler {
	return &RetailerHandler{
		service: svc,
		logger:  logger,
	}
}

// GetRetailers handles GET /api/v1/sneakers/{id}/retailers
//
// Returns the ordered retailer listing for one sneaker: domestic retailers
// first, resale marketplaces last, live scraped prices taking precedence over
// estimates.
func (h *RetailerHandler) GetRetailers(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.service.ResolveRetailers(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
