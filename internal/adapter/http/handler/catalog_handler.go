package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/eccn-classifier/internal/usecase"
)

// CatalogHandler handles ECCN catalog requests
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	path      string
}

// NewCatalogHandler creates a new catalog handler. Ingestion always reads the
// configured catalog path.
func NewCatalogHandler(catalogUC usecase.CatalogUsecase, path string) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC, path: path}
}

// Ingest handles POST /api/v1/catalog/ingest; any request body is ignored
func (h *CatalogHandler) Ingest(c *gin.Context) {
	output, err := h.catalogUC.Ingest(c.Request.Context(), h.path)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// Stats handles GET /api/v1/catalog/stats
func (h *CatalogHandler) Stats(c *gin.Context) {
	stats, err := h.catalogUC.Stats(c.Request.Context())
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, stats)
}
