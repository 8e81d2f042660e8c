package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/horus-ai/app/observability/metrics"
	"github.com/FACorreiaa/horus-ai/internal/recommender"
)

var _ recommender.Embedder = (*EmbeddingService)(nil)

// TextEmbedder is the raw embedding provider.
type TextEmbedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

type BreakerSettings struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

type EmbeddingOptions struct {
	// Timeout bounds each provider call. Zero leaves the caller's deadline alone.
	Timeout  time.Duration
	CacheTTL time.Duration
	Breaker  BreakerSettings
}

// EmbeddingService turns text into vectors through a provider guarded by a
// circuit breaker. Identical text always yields the cached vector.
type EmbeddingService struct {
	provider TextEmbedder
	cache    *cache.Cache
	breaker  *gobreaker.CircuitBreaker[[]float32]
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.AppMetrics
}

func NewEmbeddingService(provider TextEmbedder, opts EmbeddingOptions, logger *slog.Logger, m *metrics.AppMetrics) *EmbeddingService {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	failures := opts.Breaker.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}

	l := logger.With(slog.String("component", "EmbeddingService"))
	breaker := gobreaker.NewCircuitBreaker[[]float32](gobreaker.Settings{
		Name:        "embedding-provider",
		MaxRequests: opts.Breaker.MaxRequests,
		Interval:    opts.Breaker.Interval,
		Timeout:     opts.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			// A caller giving up says nothing about the provider's health.
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &EmbeddingService{
		provider: provider,
		cache:    cache.New(ttl, 2*ttl),
		breaker:  breaker,
		timeout:  opts.Timeout,
		logger:   l,
		metrics:  m,
	}
}

func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, span := otel.Tracer("EmbeddingService").Start(ctx, "Embed", trace.WithAttributes(
		attribute.Int("text.length", len(text)),
	))
	defer span.End()

	if cached, ok := s.cache.Get(text); ok {
		s.count(ctx, func(m *metrics.AppMetrics) metric.Int64Counter { return m.EmbeddingCacheHitsTotal })
		span.SetAttributes(attribute.Bool("cache.hit", true))
		span.SetStatus(codes.Ok, "cache hit")
		return slices.Clone(cached.([]float32)), nil
	}

	s.count(ctx, func(m *metrics.AppMetrics) metric.Int64Counter { return m.EmbeddingRequestsTotal })
	vec, err := s.breaker.Execute(func() ([]float32, error) {
		callCtx := ctx
		if s.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		v, err := s.provider.EmbedText(callCtx, text)
		if err != nil {
			return nil, err
		}
		if len(v) == 0 {
			return nil, errors.New("provider returned an empty vector")
		}
		return v, nil
	})
	if err != nil {
		s.count(ctx, func(m *metrics.AppMetrics) metric.Int64Counter { return m.EmbeddingErrorsTotal })
		span.RecordError(err)
		span.SetStatus(codes.Error, "embedding failed")
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			s.logger.WarnContext(ctx, "Embedding provider short-circuited", slog.Any("error", err))
		} else {
			s.logger.ErrorContext(ctx, "Embedding provider call failed", slog.Any("error", err))
		}
		return nil, fmt.Errorf("embedding provider: %w", err)
	}

	s.cache.SetDefault(text, slices.Clone(vec))
	span.SetAttributes(attribute.Bool("cache.hit", false), attribute.Int("embedding.dimension", len(vec)))
	span.SetStatus(codes.Ok, "embedded")
	return vec, nil
}

func (s *EmbeddingService) count(ctx context.Context, pick func(*metrics.AppMetrics) metric.Int64Counter) {
	if s.metrics == nil {
		return
	}
	pick(s.metrics).Add(ctx, 1)
}
