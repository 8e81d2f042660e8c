package generativeAI

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

// ContentGenerator produces text from a prompt.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// Chatter answers a free-form prompt.
type Chatter interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

var _ Chatter = (*ChatService)(nil)

type ChatService struct {
	generator ContentGenerator
	timeout   time.Duration
	logger    *slog.Logger
}

func NewChatService(generator ContentGenerator, timeout time.Duration, logger *slog.Logger) *ChatService {
	return &ChatService{
		generator: generator,
		timeout:   timeout,
		logger:    logger.With(slog.String("component", "ChatService")),
	}
}

func (s *ChatService) Chat(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer("ChatService").Start(ctx, "Chat", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
	))
	defer span.End()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	reply, err := s.generator.GenerateContent(ctx, prompt, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.4),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Chat generation failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return "", fmt.Errorf("chat: %w", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		span.SetStatus(codes.Error, "empty reply")
		return "", fmt.Errorf("chat: model returned an empty reply")
	}

	span.SetStatus(codes.Ok, "reply generated")
	return reply, nil
}
