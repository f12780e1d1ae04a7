package entity

import (
	"fmt"
	"strings"
	"time"
)

// EccnDefinition is one row of the ECCN catalog together with its embedding
type EccnDefinition struct {
	ID             string    `json:"id" gorm:"type:varchar(64);primary_key"`
	EcnNumber      string    `json:"ecn_number" gorm:"type:varchar(32);not null;index"`
	ParentEcn      string    `json:"parent_ecn" gorm:"type:varchar(32)"`
	IsLeaf         string    `json:"is_leaf" gorm:"type:varchar(8)"`
	Description    string    `json:"description" gorm:"type:text"`
	Notes          string    `json:"notes" gorm:"type:text"`
	Text           string    `json:"text" gorm:"type:text;not null"`
	Embedding      []float32 `json:"-" gorm:"serializer:json;type:jsonb"`
	EmbeddingModel string    `json:"embedding_model" gorm:"type:varchar(100)"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (EccnDefinition) TableName() string {
	return "eccn_definitions"
}

// NewEccnDefinition creates a definition and derives its embedding text
func NewEccnDefinition(id, ecnNumber, parentEcn, isLeaf, description, notes string) *EccnDefinition {
	return &EccnDefinition{
		ID:          id,
		EcnNumber:   ecnNumber,
		ParentEcn:   parentEcn,
		IsLeaf:      isLeaf,
		Description: description,
		Notes:       notes,
		Text:        EmbeddingText(ecnNumber, description, notes),
	}
}

// EmbeddingText builds the text that is embedded and shown to the LLM for a definition
func EmbeddingText(ecnNumber, description, notes string) string {
	return fmt.Sprintf("ECCN: %s\nDescription: %s\nNotes: %s", ecnNumber, description, notes)
}

// HasEmbedding returns true if the definition has been embedded
func (d *EccnDefinition) HasEmbedding() bool {
	return len(d.Embedding) > 0
}

// Preview returns at most n runes of the definition text
func (d *EccnDefinition) Preview(n int) string {
	r := []rune(strings.TrimSpace(d.Text))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "..."
}
