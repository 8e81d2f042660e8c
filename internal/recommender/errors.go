package recommender

import (
	"errors"
	"fmt"
)

var (
	// ErrRecommenderUnavailable is returned when no ranking can be produced at all.
	ErrRecommenderUnavailable = errors.New("recommender unavailable")

	// ErrCatalogNotReady means the catalog build is incomplete or failed.
	ErrCatalogNotReady = fmt.Errorf("%w: catalog not ready", ErrRecommenderUnavailable)

	// ErrEmbeddingUnavailable means the embedding provider could not produce a required vector.
	ErrEmbeddingUnavailable = fmt.Errorf("%w: embedding unavailable", ErrRecommenderUnavailable)

	// ErrInvalidQuery is returned for input the normalizer cannot default.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidCatalog is returned for catalog input that violates catalog invariants.
	ErrInvalidCatalog = errors.New("invalid catalog")
)
