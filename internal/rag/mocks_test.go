package rag

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ressKim-io/eccn-classifier/internal/domain/entity"
)

// MockDefinitionRepository is a mock implementation of DefinitionRepository
type MockDefinitionRepository struct {
	mock.Mock
}

func (m *MockDefinitionRepository) Upsert(ctx context.Context, defs []*entity.EccnDefinition) error {
	args := m.Called(ctx, defs)
	return args.Error(0)
}

func (m *MockDefinitionRepository) ListEmbedded(ctx context.Context) ([]*entity.EccnDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.EccnDefinition), args.Error(1)
}

func (m *MockDefinitionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmbedder is a mock implementation of Embedder
type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func (m *MockEmbedder) Model() string {
	return "mock-embedding"
}
