package entity

import (
	"time"

	"github.com/google/uuid"
)

// ClassificationSource records how a classification was produced
type ClassificationSource string

const (
	SourceLLM              ClassificationSource = "llm"
	SourceFallbackNoLLM    ClassificationSource = "fallback_no_llm"
	SourceFallbackLLMError ClassificationSource = "fallback_llm_error"
	SourceCache            ClassificationSource = "cache"
)

// Classification is a stored classification of a product description
type Classification struct {
	ID              uuid.UUID            `json:"id" gorm:"type:uuid;primary_key"`
	ProductText     string               `json:"product_text" gorm:"type:text;not null"`
	EcnNumber       string               `json:"ecn_number" gorm:"type:varchar(32);not null;index"`
	ConfidenceScore *float64             `json:"confidence_score" gorm:"type:decimal(5,4)"`
	Reasoning       string               `json:"reasoning" gorm:"type:text"`
	Source          ClassificationSource `json:"source" gorm:"type:varchar(32);not null"`
	Candidates      []string             `json:"candidates" gorm:"serializer:json;type:jsonb"`
	LatencyMs       int64                `json:"latency_ms" gorm:"default:0"`
	CreatedAt       time.Time            `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName returns the table name for GORM
func (Classification) TableName() string {
	return "classifications"
}

// NewClassification creates a new Classification for the given product text
func NewClassification(productText string) *Classification {
	return &Classification{
		ID:          uuid.New(),
		ProductText: productText,
	}
}

// SetResult sets the outcome of the classification
func (c *Classification) SetResult(ecnNumber string, confidence *float64, reasoning string, source ClassificationSource, latencyMs int64) {
	c.EcnNumber = ecnNumber
	c.ConfidenceScore = confidence
	c.Reasoning = reasoning
	c.Source = source
	c.LatencyMs = latencyMs
}

// IsFallback returns true if no LLM decision backs the result
func (c *Classification) IsFallback() bool {
	return c.Source == SourceFallbackNoLLM || c.Source == SourceFallbackLLMError
}
