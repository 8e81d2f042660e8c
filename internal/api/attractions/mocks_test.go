package attractions

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/FACorreiaa/horus-ai/internal/recommender"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListAttractions(ctx context.Context) ([]recommender.AttractionInput, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recommender.AttractionInput), args.Error(1)
}

func (m *MockRepository) GetAttractionsWithoutEmbeddings(ctx context.Context, limit int) ([]recommender.AttractionInput, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recommender.AttractionInput), args.Error(1)
}

func (m *MockRepository) UpdateAttractionEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	args := m.Called(ctx, id, embedding)
	return args.Error(0)
}

func (m *MockRepository) UpsertAttraction(ctx context.Context, in recommender.AttractionInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) BuildCatalog(ctx context.Context) (CatalogStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(CatalogStatus), args.Error(1)
}

func (m *MockService) EnsureSeeded(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockService) ListAttractions(ctx context.Context, city string) ([]AttractionResponse, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]AttractionResponse), args.Error(1)
}

func (m *MockService) Status() CatalogStatus {
	args := m.Called()
	return args.Get(0).(CatalogStatus)
}

func (m *MockService) BackfillEmbeddings(ctx context.Context, batchSize int) (BackfillResult, error) {
	args := m.Called(ctx, batchSize)
	return args.Get(0).(BackfillResult), args.Error(1)
}
