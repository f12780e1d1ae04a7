package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// WebHandler serves the classification page
type WebHandler struct {
	index []byte
}

// NewWebHandler creates a handler serving the given page
func NewWebHandler(index []byte) *WebHandler {
	return &WebHandler{index: index}
}

// Index handles GET /
func (h *WebHandler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.index)
}
