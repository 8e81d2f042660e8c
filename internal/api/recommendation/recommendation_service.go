package recommendation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/horus-ai/app/observability/metrics"
	"github.com/FACorreiaa/horus-ai/internal/recommender"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	Recommend(ctx context.Context, raw recommender.RawQuery) (recommender.Result, error)
}

// Recommender is the subset of *recommender.Engine the service needs.
type Recommender interface {
	Recommend(ctx context.Context, raw recommender.RawQuery) (recommender.Result, error)
}

type ServiceImpl struct {
	engine  Recommender
	logger  *slog.Logger
	metrics *metrics.AppMetrics
}

func NewService(engine Recommender, logger *slog.Logger, m *metrics.AppMetrics) *ServiceImpl {
	return &ServiceImpl{
		engine:  engine,
		logger:  logger.With(slog.String("service", "RecommendationService")),
		metrics: m,
	}
}

func (s *ServiceImpl) Recommend(ctx context.Context, raw recommender.RawQuery) (recommender.Result, error) {
	ctx, span := otel.Tracer("RecommendationService").Start(ctx, "Recommend", trace.WithAttributes(
		attribute.String("query.location", raw.Location),
		attribute.Int("query.interests", len(raw.Interests)),
		attribute.Int("query.liked_places", len(raw.LikedPlaces)),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Recommend"))
	start := time.Now()

	res, err := s.engine.Recommend(ctx, raw)
	s.record(ctx, start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "recommendation failed")
		if errors.Is(err, recommender.ErrInvalidQuery) {
			l.InfoContext(ctx, "Rejected recommendation query", slog.Any("error", err))
		} else {
			l.ErrorContext(ctx, "Recommendation failed", slog.Any("error", err))
		}
		return recommender.Result{}, err
	}

	span.SetAttributes(
		attribute.Int("result.count", len(res.Ranked)),
		attribute.Int("catalog.size", res.CatalogSize),
	)
	span.SetStatus(codes.Ok, "recommendations ranked")
	l.DebugContext(ctx, "Recommendations ranked",
		slog.Int("count", len(res.Ranked)),
		slog.Int("top_n", res.Query.TopN),
		slog.Bool("filtered", res.Query.Filtering()))
	return res, nil
}

func (s *ServiceImpl) record(ctx context.Context, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	switch {
	case err == nil:
	case errors.Is(err, recommender.ErrInvalidQuery):
		outcome = "invalid"
	case errors.Is(err, recommender.ErrRecommenderUnavailable):
		outcome = "unavailable"
	default:
		outcome = "error"
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	s.metrics.RecommendationRequestsTotal.Add(ctx, 1, attrs)
	s.metrics.RecommendationDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		s.metrics.RecommendationErrorsTotal.Add(ctx, 1, attrs)
	}
}
