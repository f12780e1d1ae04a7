package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ressKim-io/eccn-classifier/internal/domain/entity"
	"github.com/ressKim-io/eccn-classifier/internal/domain/service"
)

// MockRetriever is a mock implementation of Retriever
type MockRetriever struct {
	mock.Mock
}

func (m *MockRetriever) Search(ctx context.Context, query string, k int) ([]service.Candidate, error) {
	args := m.Called(ctx, query, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.Candidate), args.Error(1)
}

// MockLLM is a mock implementation of LLM
type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) CompleteJSON(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

// MockClassificationRepository is a mock implementation of ClassificationRepository
type MockClassificationRepository struct {
	mock.Mock
}

func (m *MockClassificationRepository) Create(ctx context.Context, c *entity.Classification) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClassificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Classification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Classification), args.Error(1)
}

func (m *MockClassificationRepository) List(ctx context.Context, limit, offset int) ([]*entity.Classification, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Classification), args.Get(1).(int64), args.Error(2)
}

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

// MockIndex is a mock implementation of IndexLoader
type MockIndex struct {
	mock.Mock
}

func (m *MockIndex) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockIndex) Size() int {
	args := m.Called()
	return args.Int(0)
}

// MockResultCache is a mock implementation of ResultCache
type MockResultCache struct {
	mock.Mock
}

func (m *MockResultCache) Get(ctx context.Context, productText string) (*service.ClassificationResult, bool, error) {
	args := m.Called(ctx, productText)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*service.ClassificationResult), args.Bool(1), args.Error(2)
}

func (m *MockResultCache) Set(ctx context.Context, productText string, result *service.ClassificationResult) error {
	args := m.Called(ctx, productText, result)
	return args.Error(0)
}

// memoryCache is a map-backed ResultCache
type memoryCache map[string]*service.ClassificationResult

func (c memoryCache) Get(_ context.Context, productText string) (*service.ClassificationResult, bool, error) {
	r, ok := c[productText]
	return r, ok, nil
}

func (c memoryCache) Set(_ context.Context, productText string, result *service.ClassificationResult) error {
	c[productText] = result
	return nil
}
