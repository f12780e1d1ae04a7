package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ressKim-io/eccn-classifier/internal/usecase"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *ErrorInfo {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestHandleUsecaseError(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		code    string
		message string
	}{
		{usecase.ErrEmptyProductText, http.StatusBadRequest, "INVALID_REQUEST", MessageEmptyProductText},
		{usecase.ErrInvalidRequest, http.StatusBadRequest, "INVALID_REQUEST", "invalid request"},
		{usecase.ErrClassificationNotFound, http.StatusNotFound, "NOT_FOUND", "classification not found"},
		{fmt.Errorf("%w: data/eccn_data.csv", usecase.ErrCatalogFileNotFound), http.StatusNotFound, "NOT_FOUND", "catalog file not found"},
		{fmt.Errorf("ingest: %w", usecase.ErrEmbeddingsDisabled), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "embeddings are not configured"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			mapped := MapUsecaseError(tt.err)
			assert.Equal(t, ErrorResponse{StatusCode: tt.status, Code: tt.code, Message: tt.message}, mapped)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			HandleUsecaseError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			info := decodeError(t, w)
			assert.Equal(t, tt.code, info.Code)
			assert.Equal(t, tt.message, info.Message)
		})
	}
}

func TestHandleInvalidInput(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleInvalidUUID(c, "classification id")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid classification id", decodeError(t, w).Message)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	HandleInvalidRequest(c, "product_text must be a string")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	info := decodeError(t, w)
	assert.Equal(t, "INVALID_REQUEST", info.Code)
	assert.Equal(t, "product_text must be a string", info.Message)
}
