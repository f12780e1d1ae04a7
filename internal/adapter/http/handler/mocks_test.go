package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ressKim-io/eccn-classifier/internal/domain/service"
	"github.com/ressKim-io/eccn-classifier/internal/usecase"
)

// MockClassificationUsecase is a mock implementation of ClassificationUsecase
type MockClassificationUsecase struct {
	mock.Mock
}

func (m *MockClassificationUsecase) Classify(ctx context.Context, input *usecase.ClassifyInput) (*service.ClassificationResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ClassificationResult), args.Error(1)
}

func (m *MockClassificationUsecase) GetByID(ctx context.Context, id uuid.UUID) (*usecase.ClassificationOutput, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ClassificationOutput), args.Error(1)
}

func (m *MockClassificationUsecase) List(ctx context.Context, limit, offset int) (*usecase.ClassificationListOutput, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ClassificationListOutput), args.Error(1)
}

// MockCatalogUsecase is a mock implementation of CatalogUsecase
type MockCatalogUsecase struct {
	mock.Mock
}

func (m *MockCatalogUsecase) Ingest(ctx context.Context, path string) (*usecase.IngestOutput, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.IngestOutput), args.Error(1)
}

func (m *MockCatalogUsecase) IngestIfEmpty(ctx context.Context, path string) (*usecase.IngestOutput, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.IngestOutput), args.Error(1)
}

func (m *MockCatalogUsecase) Stats(ctx context.Context) (*usecase.CatalogStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CatalogStats), args.Error(1)
}
