package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ressKim-io/eccn-classifier/internal/usecase"
)

// ClassificationHandler handles classification HTTP requests
type ClassificationHandler struct {
	classificationUC usecase.ClassificationUsecase
	logger           *zap.Logger
}

// NewClassificationHandler creates a new classification handler
func NewClassificationHandler(classificationUC usecase.ClassificationUsecase, logger *zap.Logger) *ClassificationHandler {
	return &ClassificationHandler{classificationUC: classificationUC, logger: logger}
}

// Classify handles POST /classify.
// The success body is the bare classification, not the envelope.
func (h *ClassificationHandler) Classify(c *gin.Context) {
	var input usecase.ClassifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	result, err := h.classificationUC.Classify(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyProductText) || errors.Is(err, usecase.ErrInvalidRequest) {
			HandleUsecaseError(c, err)
			return
		}
		requestLogger(c, h.logger).Error("Classification failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "CLASSIFICATION_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetClassification handles GET /api/v1/classifications/:id
func (h *ClassificationHandler) GetClassification(c *gin.Context) {
	id, err := ExtractUUIDParam(c, "id")
	if err != nil {
		HandleInvalidUUID(c, "classification id")
		return
	}

	output, err := h.classificationUC.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// ListClassifications handles GET /api/v1/classifications
func (h *ClassificationHandler) ListClassifications(c *gin.Context) {
	page := ParsePagination(c)

	output, err := h.classificationUC.List(c.Request.Context(), page.Limit, page.Offset)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}
