package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ressKim-io/eccn-classifier/internal/domain/entity"
	"github.com/ressKim-io/eccn-classifier/internal/domain/repository"
)

type definitionRepository struct {
	db *gorm.DB
}

// NewDefinitionRepository creates a new ECCN definition repository
func NewDefinitionRepository(db *gorm.DB) repository.DefinitionRepository {
	return &definitionRepository{db: db}
}

func (r *definitionRepository) Upsert(ctx context.Context, defs []*entity.EccnDefinition) error {
	if len(defs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(defs, 100).Error
}

func (r *definitionRepository) ListEmbedded(ctx context.Context) ([]*entity.EccnDefinition, error) {
	var defs []*entity.EccnDefinition
	err := r.db.WithContext(ctx).Order("id ASC").Find(&defs).Error
	if err != nil {
		return nil, err
	}

	// a JSON null embedding is not SQL NULL, so filter after decoding
	embedded := defs[:0]
	for _, d := range defs {
		if d.HasEmbedding() {
			embedded = append(embedded, d)
		}
	}
	return embedded, nil
}

func (r *definitionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.EccnDefinition{}).Count(&count).Error
	return count, err
}

type classificationRepository struct {
	db *gorm.DB
}

// NewClassificationRepository creates a new classification history repository
func NewClassificationRepository(db *gorm.DB) repository.ClassificationRepository {
	return &classificationRepository{db: db}
}

func (r *classificationRepository) Create(ctx context.Context, c *entity.Classification) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *classificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Classification, error) {
	var c entity.Classification
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *classificationRepository) List(ctx context.Context, limit, offset int) ([]*entity.Classification, int64, error) {
	var items []*entity.Classification
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Classification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
