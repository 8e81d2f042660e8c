package recommendation

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/FACorreiaa/horus-ai/internal/recommender"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Recommend(ctx context.Context, raw recommender.RawQuery) (recommender.Result, error) {
	args := m.Called(ctx, raw)
	return args.Get(0).(recommender.Result), args.Error(1)
}

type MockRecommender struct {
	mock.Mock
}

func (m *MockRecommender) Recommend(ctx context.Context, raw recommender.RawQuery) (recommender.Result, error) {
	args := m.Called(ctx, raw)
	return args.Get(0).(recommender.Result), args.Error(1)
}
