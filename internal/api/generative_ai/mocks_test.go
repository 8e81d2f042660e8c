package generativeAI

import (
	"context"

	"github.com/stretchr/testify/mock"
	"google.golang.org/genai"
)

type MockTextEmbedder struct {
	mock.Mock
}

func (m *MockTextEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, config)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) GenerateFromImage(ctx context.Context, prompt string, image []byte, mimeType string, config *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, image, mimeType, config)
	return args.String(0), args.Error(1)
}
