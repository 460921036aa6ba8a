package http

import (
	"log/slog"
	"net/http"

	"github.com/paripprabhu/sneakopedia/internal/service"
	"github.com/paripprabhu/sneakopedia/pkg/httputil"
)

// BrandHandler handles HTTP requests for brand listing.
type BrandHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewBrandHandler creates a new brand HTTP handler.
func NewBrandHandler(svc *service.CatalogService, logger *slog.Logger) *BrandHandler {
	return &BrandHandler{
		service: svc,
		logger:  logger,
	}
}

// ListBrands handles GET /api/v1/brands
func (h *BrandHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.Brands(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: brands})
}
