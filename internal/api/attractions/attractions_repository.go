package attractions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/horus-ai/app/observability/metrics"
	"github.com/FACorreiaa/horus-ai/internal/recommender"
)

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	// ListAttractions returns every attraction in catalog order.
	ListAttractions(ctx context.Context) ([]recommender.AttractionInput, error)
	GetAttractionsWithoutEmbeddings(ctx context.Context, limit int) ([]recommender.AttractionInput, error)
	UpdateAttractionEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
	// UpsertAttraction inserts or refreshes a record keyed by its ID.
	UpsertAttraction(ctx context.Context, in recommender.AttractionInput) error
}

type RepositoryImpl struct {
	logger  *slog.Logger
	db      DB
	metrics *metrics.AppMetrics
}

func NewRepository(db DB, logger *slog.Logger, m *metrics.AppMetrics) *RepositoryImpl {
	return &RepositoryImpl{
		logger:  logger,
		db:      db,
		metrics: m,
	}
}

const selectAttractionColumns = `SELECT id, name, city, description, category, popularity, embedding FROM attractions`

func (r *RepositoryImpl) ListAttractions(ctx context.Context) ([]recommender.AttractionInput, error) {
	ctx, span := otel.Tracer("AttractionsRepo").Start(ctx, "ListAttractions", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "attractions"),
	))
	defer span.End()

	query := selectAttractionColumns + ` ORDER BY position ASC`
	out, err := r.queryAttractions(ctx, "ListAttractions", query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("db.rows", len(out)))
	span.SetStatus(codes.Ok, "attractions listed")
	return out, nil
}

func (r *RepositoryImpl) GetAttractionsWithoutEmbeddings(ctx context.Context, limit int) ([]recommender.AttractionInput, error) {
	ctx, span := otel.Tracer("AttractionsRepo").Start(ctx, "GetAttractionsWithoutEmbeddings", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "attractions"),
		attribute.Int("limit", limit),
	))
	defer span.End()

	query := selectAttractionColumns + `
		WHERE embedding IS NULL OR cardinality(embedding) = 0
		ORDER BY position ASC
		LIMIT $1`
	out, err := r.queryAttractions(ctx, "GetAttractionsWithoutEmbeddings", query, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, err
	}
	span.SetStatus(codes.Ok, "attractions listed")
	return out, nil
}

func (r *RepositoryImpl) UpdateAttractionEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	ctx, span := otel.Tracer("AttractionsRepo").Start(ctx, "UpdateAttractionEmbedding", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "attractions"),
		attribute.String("attraction.id", id.String()),
	))
	defer span.End()

	start := time.Now()
	tag, err := r.db.Exec(ctx,
		`UPDATE attractions SET embedding = $2, updated_at = NOW() WHERE id = $1`,
		id, embedding)
	r.observe(ctx, "UpdateAttractionEmbedding", start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return fmt.Errorf("failed to update embedding for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return fmt.Errorf("attraction %s: %w", id, ErrNotFound)
	}
	span.SetStatus(codes.Ok, "embedding stored")
	return nil
}

func (r *RepositoryImpl) UpsertAttraction(ctx context.Context, in recommender.AttractionInput) error {
	ctx, span := otel.Tracer("AttractionsRepo").Start(ctx, "UpsertAttraction", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "attractions"),
		attribute.String("attraction.name", in.Name),
	))
	defer span.End()

	id := in.ID
	if id == uuid.Nil {
		id = recommender.DeriveID(in.Name, in.City)
	}

	query := `
		INSERT INTO attractions (id, name, city, description, category, popularity)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			description = EXCLUDED.description,
			category    = EXCLUDED.category,
			popularity  = EXCLUDED.popularity,
			embedding   = CASE WHEN attractions.description = EXCLUDED.description
			                   THEN attractions.embedding ELSE NULL END,
			updated_at  = NOW()`

	start := time.Now()
	_, err := r.db.Exec(ctx, query, id, in.Name, in.City, in.Description, in.Category, in.Popularity)
	r.observe(ctx, "UpsertAttraction", start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upsert failed")
		return fmt.Errorf("failed to upsert attraction %q: %w", in.Name, err)
	}
	span.SetStatus(codes.Ok, "attraction upserted")
	return nil
}

func (r *RepositoryImpl) queryAttractions(ctx context.Context, method, query string, args ...any) ([]recommender.AttractionInput, error) {
	l := r.logger.With(slog.String("method", method))

	start := time.Now()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.observe(ctx, method, start, err)
		l.ErrorContext(ctx, "Failed to query attractions", slog.Any("error", err))
		return nil, fmt.Errorf("failed to query attractions: %w", err)
	}
	defer rows.Close()

	var out []recommender.AttractionInput
	for rows.Next() {
		var a recommender.AttractionInput
		if err := rows.Scan(&a.ID, &a.Name, &a.City, &a.Description, &a.Category, &a.Popularity, &a.Embedding); err != nil {
			r.observe(ctx, method, start, err)
			l.ErrorContext(ctx, "Failed to scan attraction row", slog.Any("error", err))
			return nil, fmt.Errorf("failed to scan attraction row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		r.observe(ctx, method, start, err)
		return nil, fmt.Errorf("error iterating attraction rows: %w", err)
	}
	r.observe(ctx, method, start, nil)
	l.DebugContext(ctx, "Fetched attractions", slog.Int("count", len(out)))
	return out, nil
}

func (r *RepositoryImpl) observe(ctx context.Context, method string, start time.Time, err error) {
	if r.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("db.operation", method))
	r.metrics.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		r.metrics.DbQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}
