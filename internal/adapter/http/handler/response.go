package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the request id middleware
const (
	ContextRequestID    = "request_id"
	ContextRequestStart = "request_start"
)

// Response is the envelope of every API response except the flat POST /classify success body
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *MetaInfo   `json:"meta"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MetaInfo represents response metadata
type MetaInfo struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
	LatencyMs *int64 `json:"latency_ms,omitempty"`
}

func newMeta(c *gin.Context) *MetaInfo {
	now := time.Now()
	requestID := c.GetString(ContextRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	meta := &MetaInfo{
		Timestamp: now.UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
	if start, ok := c.Get(ContextRequestStart); ok {
		if t, ok := start.(time.Time); ok {
			ms := now.Sub(t).Milliseconds()
			meta.LatencyMs = &ms
		}
	}
	return meta
}

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Data:    data,
		Meta:    newMeta(c),
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
		Meta: newMeta(c),
	})
}
