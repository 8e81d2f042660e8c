package recommender

import (
	"context"
	"time"
)

// DefaultEmbedTimeout bounds the interest-vector call when no timeout is configured.
const DefaultEmbedTimeout = 10 * time.Second

// Result is the outcome of one recommendation query.
type Result struct {
	Query       Query
	Ranked      []Scored
	CatalogSize int
}

// Engine answers queries against the catalog currently published in a Store.
// It is safe for concurrent use.
type Engine struct {
	store    *Store
	embedder Embedder
	timeout  time.Duration
}

func NewEngine(store *Store, embedder Embedder, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = DefaultEmbedTimeout
	}
	return &Engine{store: store, embedder: embedder, timeout: timeout}
}

// Recommend normalizes raw, scores the current catalog and returns the ranked
// top-N. Either every attraction is scored or an error is returned.
func (e *Engine) Recommend(ctx context.Context, raw RawQuery) (Result, error) {
	q, err := NormalizeQuery(raw)
	if err != nil {
		return Result{}, err
	}
	return e.RecommendQuery(ctx, q)
}

// RecommendQuery is Recommend for an already normalized query.
func (e *Engine) RecommendQuery(ctx context.Context, q Query) (Result, error) {
	catalog, err := e.store.Current()
	if err != nil {
		return Result{}, err
	}

	embedCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	scored, err := Score(embedCtx, catalog, q, e.embedder)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Query:       q,
		Ranked:      Rank(scored, q.TopN),
		CatalogSize: catalog.Len(),
	}, nil
}
