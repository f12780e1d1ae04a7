package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ressKim-io/eccn-classifier/internal/usecase"
)

func setupCatalogRouter(h *CatalogHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/catalog/ingest", h.Ingest)
	r.GET("/api/v1/catalog/stats", h.Stats)
	return r
}

func TestCatalogHandler_Ingest(t *testing.T) {
	t.Run("uses configured path without body", func(t *testing.T) {
		mockUC := new(MockCatalogUsecase)
		router := setupCatalogRouter(NewCatalogHandler(mockUC, "data/eccn_data.csv"))

		mockUC.On("Ingest", mock.Anything, "data/eccn_data.csv").Return(&usecase.IngestOutput{Rows: 10, Indexed: 10}, nil)

		req, _ := http.NewRequest("POST", "/api/v1/catalog/ingest", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Success)
		mockUC.AssertExpectations(t)
	})

	t.Run("ignores a path in the body", func(t *testing.T) {
		mockUC := new(MockCatalogUsecase)
		router := setupCatalogRouter(NewCatalogHandler(mockUC, "data/eccn_data.csv"))

		mockUC.On("Ingest", mock.Anything, "data/eccn_data.csv").Return(&usecase.IngestOutput{}, nil)

		req, _ := http.NewRequest("POST", "/api/v1/catalog/ingest", bytes.NewBufferString(`{"path": "/etc/passwd"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUC.AssertExpectations(t)
		mockUC.AssertNotCalled(t, "Ingest", mock.Anything, "/etc/passwd")
	})

	t.Run("missing file", func(t *testing.T) {
		mockUC := new(MockCatalogUsecase)
		router := setupCatalogRouter(NewCatalogHandler(mockUC, "missing.csv"))

		mockUC.On("Ingest", mock.Anything, "missing.csv").Return(nil, usecase.ErrCatalogFileNotFound)

		req, _ := http.NewRequest("POST", "/api/v1/catalog/ingest", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("embeddings disabled", func(t *testing.T) {
		mockUC := new(MockCatalogUsecase)
		router := setupCatalogRouter(NewCatalogHandler(mockUC, "data/eccn_data.csv"))

		mockUC.On("Ingest", mock.Anything, mock.Anything).Return(nil, usecase.ErrEmbeddingsDisabled)

		req, _ := http.NewRequest("POST", "/api/v1/catalog/ingest", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestCatalogHandler_Stats(t *testing.T) {
	mockUC := new(MockCatalogUsecase)
	router := setupCatalogRouter(NewCatalogHandler(mockUC, ""))

	mockUC.On("Stats", mock.Anything).Return(&usecase.CatalogStats{Definitions: 12, Indexed: 12, Model: "text-embedding-3-small"}, nil)

	req, _ := http.NewRequest("GET", "/api/v1/catalog/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "text-embedding-3-small")
}
