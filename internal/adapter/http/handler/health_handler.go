package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	statusOK            = "ok"
	statusNotConfigured = "not configured"
)

// CatalogSizer reports how many ECCN definitions are searchable
type CatalogSizer interface {
	Size() int
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db        *gorm.DB
	redis     *redis.Client
	catalog   CatalogSizer
	providers map[string]string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, redis *redis.Client, catalog CatalogSizer) *HealthHandler {
	return &HealthHandler{
		db:        db,
		redis:     redis,
		catalog:   catalog,
		providers: make(map[string]string),
	}
}

// SetProvider reports a model provider (llm, embedding) in /health
func (h *HealthHandler) SetProvider(component, provider string) {
	h.providers[component] = provider
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Health handles GET /health. Only the database and Redis affect the status;
// an empty catalog still serves fallback answers.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	components := map[string]string{
		"database": h.checkDatabase(ctx),
		"redis":    h.checkRedis(ctx),
		"catalog":  h.catalogStatus(),
	}
	for name, provider := range h.providers {
		components[name] = provider
	}

	healthy := isUp(components["database"]) && isUp(components["redis"])

	status := "healthy"
	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthStatus{
		Status:     status,
		Components: components,
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if status := h.checkDatabase(ctx); !isUp(status) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "database " + status})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) string {
	if h.db == nil {
		return statusNotConfigured
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return "error: " + err.Error()
	}
	return statusOK
}

func (h *HealthHandler) checkRedis(ctx context.Context) string {
	if h.redis == nil {
		return statusNotConfigured
	}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return "error: " + err.Error()
	}
	return statusOK
}

func (h *HealthHandler) catalogStatus() string {
	if h.catalog == nil {
		return statusNotConfigured
	}
	if n := h.catalog.Size(); n > 0 {
		return strconv.Itoa(n) + " definitions"
	}
	return "empty"
}

func isUp(status string) bool {
	return status == statusOK || status == statusNotConfigured
}
