package metrics

import (
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	RecommendationRequestsTotal   metric.Int64Counter
	RecommendationDurationSeconds metric.Float64Histogram
	RecommendationErrorsTotal     metric.Int64Counter
	EmbeddingRequestsTotal        metric.Int64Counter
	EmbeddingErrorsTotal          metric.Int64Counter
	EmbeddingCacheHitsTotal       metric.Int64Counter
	CatalogBuildsTotal            metric.Int64Counter
	CatalogBuildDurationSeconds   metric.Float64Histogram
	CatalogSize                   metric.Int64Gauge
	DbQueryDurationSeconds        metric.Float64Histogram
	DbQueryErrorsTotal            metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// New creates every instrument on the given meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	if m.RecommendationRequestsTotal, err = meter.Int64Counter(
		"recommendation_requests_total",
		metric.WithDescription("Total number of recommendation queries answered"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, fmt.Errorf("recommendation_requests_total: %w", err)
	}

	if m.RecommendationDurationSeconds, err = meter.Float64Histogram(
		"recommendation_duration_seconds",
		metric.WithDescription("Duration of recommendation queries in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("recommendation_duration_seconds: %w", err)
	}

	if m.RecommendationErrorsTotal, err = meter.Int64Counter(
		"recommendation_errors_total",
		metric.WithDescription("Total number of recommendation queries that failed"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, fmt.Errorf("recommendation_errors_total: %w", err)
	}

	if m.EmbeddingRequestsTotal, err = meter.Int64Counter(
		"embedding_requests_total",
		metric.WithDescription("Total number of calls to the embedding provider"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, fmt.Errorf("embedding_requests_total: %w", err)
	}

	if m.EmbeddingErrorsTotal, err = meter.Int64Counter(
		"embedding_errors_total",
		metric.WithDescription("Total number of failed embedding calls"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, fmt.Errorf("embedding_errors_total: %w", err)
	}

	if m.EmbeddingCacheHitsTotal, err = meter.Int64Counter(
		"embedding_cache_hits_total",
		metric.WithDescription("Total number of embeddings served from the memo cache"),
		metric.WithUnit("{hit}"),
	); err != nil {
		return nil, fmt.Errorf("embedding_cache_hits_total: %w", err)
	}

	if m.CatalogBuildsTotal, err = meter.Int64Counter(
		"catalog_builds_total",
		metric.WithDescription("Total number of catalog builds, labelled by outcome"),
		metric.WithUnit("{build}"),
	); err != nil {
		return nil, fmt.Errorf("catalog_builds_total: %w", err)
	}

	if m.CatalogBuildDurationSeconds, err = meter.Float64Histogram(
		"catalog_build_duration_seconds",
		metric.WithDescription("Duration of catalog builds in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("catalog_build_duration_seconds: %w", err)
	}

	if m.CatalogSize, err = meter.Int64Gauge(
		"catalog_size",
		metric.WithDescription("Number of attractions in the published catalog"),
		metric.WithUnit("{attraction}"),
	); err != nil {
		return nil, fmt.Errorf("catalog_size: %w", err)
	}

	if m.DbQueryDurationSeconds, err = meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Duration of database queries in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("db_query_duration_seconds: %w", err)
	}

	if m.DbQueryErrorsTotal, err = meter.Int64Counter(
		"db_query_errors_total",
		metric.WithDescription("Total number of database query errors"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, fmt.Errorf("db_query_errors_total: %w", err)
	}

	return m, nil
}

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("HorusAI")
		m, err := New(meter)
		if err != nil {
			log.Fatalf("Metrics: Failed to create instruments: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
