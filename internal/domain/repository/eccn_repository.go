package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ressKim-io/eccn-classifier/internal/domain/entity"
)

// DefinitionRepository defines the interface for ECCN catalog data operations
type DefinitionRepository interface {
	// Upsert creates or replaces definitions by ID
	Upsert(ctx context.Context, defs []*entity.EccnDefinition) error

	// ListEmbedded retrieves every definition that has an embedding
	ListEmbedded(ctx context.Context) ([]*entity.EccnDefinition, error)

	// Count counts definitions in the catalog
	Count(ctx context.Context) (int64, error)
}

// ClassificationRepository defines the interface for classification history operations
type ClassificationRepository interface {
	// Create stores a classification
	Create(ctx context.Context, c *entity.Classification) error

	// GetByID retrieves a classification by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Classification, error)

	// List retrieves classifications with pagination, newest first
	List(ctx context.Context, limit, offset int) ([]*entity.Classification, int64, error)
}
