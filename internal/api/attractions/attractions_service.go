package attractions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/horus-ai/app/observability/metrics"
	"github.com/FACorreiaa/horus-ai/internal/recommender"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	// BuildCatalog loads the configured source, embeds it and publishes the
	// result. On failure the previously published catalog stays in place.
	BuildCatalog(ctx context.Context) (CatalogStatus, error)
	// EnsureSeeded writes the embedded seed into Postgres when the table is empty.
	EnsureSeeded(ctx context.Context) (int, error)
	ListAttractions(ctx context.Context, city string) ([]AttractionResponse, error)
	// BackfillEmbeddings embeds stored attractions that have no vector yet,
	// batchSize records at a time.
	BackfillEmbeddings(ctx context.Context, batchSize int) (BackfillResult, error)
	Status() CatalogStatus
}

type Options struct {
	Source            string
	Concurrency       int
	RequestsPerSecond float64
	Burst             int
}

type ServiceImpl struct {
	repo     Repository
	embedder recommender.Embedder
	store    *recommender.Store
	opts     Options
	logger   *slog.Logger
	metrics  *metrics.AppMetrics

	// serializes rebuilds
	mu      sync.Mutex
	status  CatalogStatus
	statMu  sync.RWMutex
	limiter *rate.Limiter
}

// NewService wires a catalog service. repo may be nil when the source is the
// embedded seed.
func NewService(repo Repository, embedder recommender.Embedder, store *recommender.Store, opts Options, logger *slog.Logger, m *metrics.AppMetrics) *ServiceImpl {
	if opts.Source == "" {
		opts.Source = SourceSeed
	}
	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return &ServiceImpl{
		repo:     repo,
		embedder: embedder,
		store:    store,
		opts:     opts,
		logger:   logger.With(slog.String("service", "AttractionsService")),
		metrics:  m,
		status:   CatalogStatus{Source: opts.Source},
		limiter:  limiter,
	}
}

func (s *ServiceImpl) BuildCatalog(ctx context.Context) (CatalogStatus, error) {
	ctx, span := otel.Tracer("AttractionsService").Start(ctx, "BuildCatalog", trace.WithAttributes(
		attribute.String("catalog.source", s.opts.Source),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.logger.With(slog.String("method", "BuildCatalog"))
	start := time.Now()

	inputs, err := s.load(ctx)
	if err != nil {
		s.recordBuild(ctx, start, err)
		l.ErrorContext(ctx, "Failed to load catalog source", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return s.Status(), err
	}

	catalog, err := recommender.BuildCatalog(ctx, inputs, s.embedder, recommender.BuildOptions{
		Concurrency: s.opts.Concurrency,
		Limiter:     s.limiter,
		Logger:      l,
	})
	if err == nil {
		err = s.store.Publish(catalog)
	}
	if err != nil {
		s.recordBuild(ctx, start, err)
		l.ErrorContext(ctx, "Catalog build failed, keeping previous catalog", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "build failed")
		return s.Status(), err
	}

	if s.opts.Source == SourcePostgres {
		s.persistEmbeddings(ctx, inputs, catalog)
	}

	status := CatalogStatus{
		Ready:     true,
		Source:    s.opts.Source,
		Size:      catalog.Len(),
		Dimension: catalog.Dimension(),
		BuiltAt:   time.Now().UTC(),
	}
	s.statMu.Lock()
	s.status = status
	s.statMu.Unlock()

	s.recordBuild(ctx, start, nil)
	if s.metrics != nil {
		s.metrics.CatalogSize.Record(ctx, int64(catalog.Len()))
	}
	span.SetAttributes(attribute.Int("catalog.size", catalog.Len()))
	span.SetStatus(codes.Ok, "catalog published")
	l.InfoContext(ctx, "Catalog published",
		slog.Int("size", status.Size),
		slog.Int("dimension", status.Dimension),
		slog.Duration("took", time.Since(start)))
	return status, nil
}

func (s *ServiceImpl) load(ctx context.Context) ([]recommender.AttractionInput, error) {
	switch s.opts.Source {
	case SourceSeed:
		return LoadSeed()
	case SourcePostgres:
		if s.repo == nil {
			return nil, errors.New("postgres catalog source requires a repository")
		}
		return s.repo.ListAttractions(ctx)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", s.opts.Source)
	}
}

// persistEmbeddings stores vectors computed during the build so the next
// start does not embed them again. Failures only cost a future re-embed.
func (s *ServiceImpl) persistEmbeddings(ctx context.Context, inputs []recommender.AttractionInput, catalog *recommender.Catalog) {
	byID := make(map[uuid.UUID]recommender.Attraction, catalog.Len())
	for _, a := range catalog.Attractions() {
		byID[a.ID] = a
	}

	stored := 0
	for _, in := range inputs {
		if len(in.Embedding) > 0 {
			continue
		}
		id := in.ID
		if id == uuid.Nil {
			id = recommender.DeriveID(in.Name, in.City)
		}
		a, ok := byID[id]
		if !ok {
			continue
		}
		if err := s.repo.UpdateAttractionEmbedding(ctx, a.ID, a.Embedding); err != nil {
			s.logger.WarnContext(ctx, "Failed to persist embedding",
				slog.String("attraction", a.Name), slog.Any("error", err))
			continue
		}
		stored++
	}
	if stored > 0 {
		s.logger.InfoContext(ctx, "Persisted new embeddings", slog.Int("count", stored))
	}
}

func (s *ServiceImpl) EnsureSeeded(ctx context.Context) (int, error) {
	ctx, span := otel.Tracer("AttractionsService").Start(ctx, "EnsureSeeded")
	defer span.End()

	if s.repo == nil {
		return 0, errors.New("seeding requires a repository")
	}
	existing, err := s.repo.ListAttractions(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list failed")
		return 0, err
	}
	if len(existing) > 0 {
		span.SetStatus(codes.Ok, "already seeded")
		return 0, nil
	}

	seed, err := LoadSeed()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "seed parse failed")
		return 0, err
	}
	for _, in := range seed {
		if err := s.repo.UpsertAttraction(ctx, in); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "upsert failed")
			return 0, err
		}
	}
	s.logger.InfoContext(ctx, "Seeded attractions table", slog.Int("count", len(seed)))
	span.SetStatus(codes.Ok, "seeded")
	return len(seed), nil
}

func (s *ServiceImpl) BackfillEmbeddings(ctx context.Context, batchSize int) (BackfillResult, error) {
	ctx, span := otel.Tracer("AttractionsService").Start(ctx, "BackfillEmbeddings", trace.WithAttributes(
		attribute.Int("batch_size", batchSize),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "BackfillEmbeddings"))
	var res BackfillResult
	if s.repo == nil {
		return res, errors.New("backfill requires a repository")
	}
	if batchSize < 1 {
		batchSize = 20
	}

	failed := make(map[uuid.UUID]struct{})
	done := make(map[uuid.UUID]struct{})
	for {
		// Failed records stay without a vector, so fetch past them.
		batch, err := s.repo.GetAttractionsWithoutEmbeddings(ctx, batchSize+len(failed))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "fetch failed")
			return res, err
		}

		fresh := 0
		for _, in := range batch {
			if _, seen := failed[in.ID]; seen {
				continue
			}
			if _, seen := done[in.ID]; seen {
				continue
			}
			fresh++
			if err := s.backfillOne(ctx, in); err != nil {
				if ctx.Err() != nil {
					span.SetStatus(codes.Error, "cancelled")
					return res, ctx.Err()
				}
				l.WarnContext(ctx, "Failed to backfill embedding",
					slog.String("attraction", in.Name), slog.Any("error", err))
				failed[in.ID] = struct{}{}
				res.Failed++
				continue
			}
			done[in.ID] = struct{}{}
			res.Updated++
		}
		if fresh == 0 {
			break
		}
	}

	span.SetAttributes(attribute.Int("updated", res.Updated), attribute.Int("failed", res.Failed))
	span.SetStatus(codes.Ok, "backfill finished")
	l.InfoContext(ctx, "Embedding backfill finished",
		slog.Int("updated", res.Updated), slog.Int("failed", res.Failed))
	return res, nil
}

func (s *ServiceImpl) backfillOne(ctx context.Context, in recommender.AttractionInput) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	vec, err := s.embedder.Embed(ctx, in.Description)
	if err != nil {
		return err
	}
	if len(vec) == 0 {
		return fmt.Errorf("empty embedding for %q", in.Name)
	}
	return s.repo.UpdateAttractionEmbedding(ctx, in.ID, vec)
}

func (s *ServiceImpl) ListAttractions(ctx context.Context, city string) ([]AttractionResponse, error) {
	_, span := otel.Tracer("AttractionsService").Start(ctx, "ListAttractions", trace.WithAttributes(
		attribute.String("city", city),
	))
	defer span.End()

	catalog, err := s.store.Current()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog not ready")
		return nil, err
	}

	city = strings.TrimSpace(city)
	out := make([]AttractionResponse, 0, catalog.Len())
	for _, a := range catalog.Attractions() {
		if recommender.IsLocationFilter(city) && !strings.EqualFold(strings.TrimSpace(a.City), city) {
			continue
		}
		out = append(out, AttractionResponse{
			ID:          a.ID,
			Name:        a.Name,
			City:        a.City,
			Category:    a.Category,
			Popularity:  a.Popularity,
			Description: a.Description,
		})
	}
	span.SetStatus(codes.Ok, "listed")
	return out, nil
}

func (s *ServiceImpl) Status() CatalogStatus {
	s.statMu.RLock()
	defer s.statMu.RUnlock()
	status := s.status
	status.Ready = s.store.IsReady()
	return status
}

func (s *ServiceImpl) recordBuild(ctx context.Context, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("source", s.opts.Source),
	)
	s.metrics.CatalogBuildsTotal.Add(ctx, 1, attrs)
	s.metrics.CatalogBuildDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
}
