package interaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	generativeAI "github.com/FACorreiaa/horus-ai/internal/api/generative_ai"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	// Interact classifies the image, answers the question, or both. The reply
	// starts with the label line when an image was given.
	Interact(ctx context.Context, in InteractInput) (InteractResponse, error)
	// Chat answers as Horus AI. It never fails; model errors yield the apology text.
	Chat(ctx context.Context, req ChatRequest) ChatResponse
}

type ServiceImpl struct {
	classifier generativeAI.Classifier
	chatter    generativeAI.Chatter
	logger     *slog.Logger
}

func NewService(classifier generativeAI.Classifier, chatter generativeAI.Chatter, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		classifier: classifier,
		chatter:    chatter,
		logger:     logger.With(slog.String("service", "InteractionService")),
	}
}

func (s *ServiceImpl) Interact(ctx context.Context, in InteractInput) (InteractResponse, error) {
	question := strings.TrimSpace(in.Question)
	ctx, span := otel.Tracer("InteractionService").Start(ctx, "Interact", trace.WithAttributes(
		attribute.Bool("has_image", len(in.Image) > 0),
		attribute.Bool("has_question", question != ""),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Interact"))

	if len(in.Image) == 0 && question == "" {
		span.SetStatus(codes.Error, "no input")
		return InteractResponse{}, ErrNoInput
	}

	var reply strings.Builder
	var label string

	if len(in.Image) > 0 {
		classification, err := s.classifier.Classify(ctx, in.Image, in.MimeType)
		if err != nil {
			l.ErrorContext(ctx, "Image classification failed", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "classification failed")
			return InteractResponse{}, fmt.Errorf("%w: %w", ErrDescriptionFailed, err)
		}
		label = classification.Label
		span.SetAttributes(attribute.String("label", label))
		fmt.Fprintf(&reply, "The photo seems to be: %s.\n", label)

		if question == "" {
			description, err := s.chatter.Chat(ctx, generativeAI.DescribeArtifactPrompt(label))
			if err != nil {
				l.ErrorContext(ctx, "Description generation failed", slog.Any("error", err))
				span.RecordError(err)
				span.SetStatus(codes.Error, "description failed")
				return InteractResponse{}, fmt.Errorf("%w: %w", ErrDescriptionFailed, err)
			}
			reply.WriteString(description)
		}
	}

	if question != "" {
		prompt := question
		if label != "" {
			prompt = generativeAI.ImageQuestionPrompt(label, question)
		}
		answer, err := s.chatter.Chat(ctx, prompt)
		if err != nil {
			l.ErrorContext(ctx, "Question answering failed", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "question failed")
			return InteractResponse{}, fmt.Errorf("%w: %w", ErrQuestionFailed, err)
		}
		reply.WriteString("\n")
		reply.WriteString(answer)
	}

	span.SetStatus(codes.Ok, "interaction answered")
	return InteractResponse{Reply: strings.TrimSpace(reply.String()), Label: label}, nil
}

func (s *ServiceImpl) Chat(ctx context.Context, req ChatRequest) ChatResponse {
	ctx, span := otel.Tracer("InteractionService").Start(ctx, "Chat", trace.WithAttributes(
		attribute.String("artifact.name", req.ArtifactName),
	))
	defer span.End()

	reply, err := s.chatter.Chat(ctx, generativeAI.HorusPrompt(req.Message, req.ArtifactName, req.ArtifactDescription))
	if err != nil {
		s.logger.WarnContext(ctx, "Chat failed, replying with apology", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "chat failed")
		return ChatResponse{Reply: generativeAI.ApologyMessage}
	}
	span.SetStatus(codes.Ok, "chat answered")
	return ChatResponse{Reply: reply}
}
