package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ressKim-io/eccn-classifier/internal/usecase"
)

// PaginationParams holds pagination parameters
type PaginationParams struct {
	Limit  int
	Offset int
}

// Pagination defaults follow the history listing limits
const (
	DefaultLimit  = usecase.DefaultListLimit
	MaxLimit      = usecase.MaxListLimit
	DefaultOffset = 0
)

// ParsePagination reads limit and offset, replacing invalid values with defaults
func ParsePagination(c *gin.Context) PaginationParams {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, err := strconv.Atoi(c.Query("offset"))
	if err != nil || offset < 0 {
		offset = DefaultOffset
	}

	return PaginationParams{Limit: limit, Offset: offset}
}

// ExtractUUIDParam extracts and parses a UUID parameter from the URL path.
func ExtractUUIDParam(c *gin.Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", param, err)
	}
	return id, nil
}

// requestLogger tags logger with the request id
func requestLogger(c *gin.Context, logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.With(zap.String("request_id", c.GetString("request_id")))
}
