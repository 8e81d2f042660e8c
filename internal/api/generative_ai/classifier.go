package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

var ErrUnrecognizedImage = errors.New("image does not match a known class")

// ImageGenerator produces text from an image and a prompt.
type ImageGenerator interface {
	GenerateFromImage(ctx context.Context, prompt string, image []byte, mimeType string, config *genai.GenerateContentConfig) (string, error)
}

type Classification struct {
	Label string `json:"label"`
}

// Classifier assigns an image to one of ClassNames.
type Classifier interface {
	Classify(ctx context.Context, image []byte, mimeType string) (Classification, error)
}

var _ Classifier = (*VisionClassifier)(nil)

// VisionClassifier asks a multimodal model to pick a label and maps the reply
// back onto ClassNames.
type VisionClassifier struct {
	generator ImageGenerator
	logger    *slog.Logger
	// longest first so "Eye of Horus" wins over "Horus"
	byLength []string
}

func NewVisionClassifier(generator ImageGenerator, logger *slog.Logger) *VisionClassifier {
	byLength := append([]string(nil), ClassNames...)
	sort.SliceStable(byLength, func(i, j int) bool { return len(byLength[i]) > len(byLength[j]) })
	return &VisionClassifier{
		generator: generator,
		logger:    logger.With(slog.String("component", "VisionClassifier")),
		byLength:  byLength,
	}
}

func (c *VisionClassifier) Classify(ctx context.Context, image []byte, mimeType string) (Classification, error) {
	ctx, span := otel.Tracer("VisionClassifier").Start(ctx, "Classify", trace.WithAttributes(
		attribute.Int("image.bytes", len(image)),
		attribute.String("image.mime", mimeType),
	))
	defer span.End()

	if len(image) == 0 {
		span.SetStatus(codes.Error, "empty image")
		return Classification{}, fmt.Errorf("classify: %w: empty image", ErrUnrecognizedImage)
	}

	reply, err := c.generator.GenerateFromImage(ctx, classifyPrompt(), image, mimeType, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return Classification{}, fmt.Errorf("classify: %w", err)
	}

	label, ok := c.match(reply)
	if !ok {
		c.logger.WarnContext(ctx, "Model reply matched no class", slog.String("reply", reply))
		span.SetStatus(codes.Error, "no class matched")
		return Classification{}, fmt.Errorf("classify: %w: %q", ErrUnrecognizedImage, reply)
	}

	span.SetAttributes(attribute.String("label", label))
	span.SetStatus(codes.Ok, "classified")
	return Classification{Label: label}, nil
}

func (c *VisionClassifier) match(reply string) (string, bool) {
	cleaned := strings.ToLower(strings.Trim(strings.TrimSpace(reply), ".\"'*` "))
	for _, name := range ClassNames {
		if cleaned == strings.ToLower(name) {
			return name, true
		}
	}
	for _, name := range c.byLength {
		if strings.Contains(cleaned, strings.ToLower(name)) {
			return name, true
		}
	}
	return "", false
}
