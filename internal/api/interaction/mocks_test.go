package interaction

import (
	"context"

	"github.com/stretchr/testify/mock"

	generativeAI "github.com/FACorreiaa/horus-ai/internal/api/generative_ai"
)

type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, image []byte, mimeType string) (generativeAI.Classification, error) {
	args := m.Called(ctx, image, mimeType)
	return args.Get(0).(generativeAI.Classification), args.Error(1)
}

type MockChatter struct {
	mock.Mock
}

func (m *MockChatter) Chat(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) Interact(ctx context.Context, in InteractInput) (InteractResponse, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(InteractResponse), args.Error(1)
}

func (m *MockService) Chat(ctx context.Context, req ChatRequest) ChatResponse {
	args := m.Called(ctx, req)
	return args.Get(0).(ChatResponse)
}
