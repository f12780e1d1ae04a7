package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fixedCatalog int

func (f fixedCatalog) Size() int { return int(f) }

func TestHealthHandler_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("healthy when no dependencies", func(t *testing.T) {
		handler := NewHealthHandler(nil, nil, nil)

		router := gin.New()
		router.GET("/health", handler.Health)

		req, _ := http.NewRequest("GET", "/health", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var status HealthStatus
		err := json.Unmarshal(w.Body.Bytes(), &status)
		assert.NoError(t, err)
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, "not configured", status.Components["database"])
		assert.Equal(t, "not configured", status.Components["redis"])
		assert.Equal(t, "not configured", status.Components["catalog"])
	})

	t.Run("reports catalog size", func(t *testing.T) {
		tests := []struct {
			name     string
			size     int
			expected string
		}{
			{name: "populated", size: 1523, expected: "1523 definitions"},
			{name: "empty", size: 0, expected: "empty"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				handler := NewHealthHandler(nil, nil, fixedCatalog(tt.size))

				router := gin.New()
				router.GET("/health", handler.Health)

				req, _ := http.NewRequest("GET", "/health", http.NoBody)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				var status HealthStatus
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
				assert.Equal(t, http.StatusOK, w.Code)
				assert.Equal(t, tt.expected, status.Components["catalog"])
			})
		}
	})
}

func TestHealthHandler_Providers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHealthHandler(nil, nil, fixedCatalog(3))
	handler.SetProvider("llm", "openai/gpt-4o")
	handler.SetProvider("embedding", "disabled")

	router := gin.New()
	router.GET("/health", handler.Health)

	req, _ := http.NewRequest("GET", "/health", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var status HealthStatus
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "openai/gpt-4o", status.Components["llm"])
	assert.Equal(t, "disabled", status.Components["embedding"])
}

func TestIsUp(t *testing.T) {
	assert.True(t, isUp("ok"))
	assert.True(t, isUp("not configured"))
	assert.False(t, isUp("error: connection refused"))
}

func TestHealthHandler_Ready(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ready when no database", func(t *testing.T) {
		handler := NewHealthHandler(nil, nil, nil)

		router := gin.New()
		router.GET("/ready", handler.Ready)

		req, _ := http.NewRequest("GET", "/ready", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ready")
	})
}
