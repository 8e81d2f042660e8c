package recommender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Embedder maps text to a dense vector. Implementations must return vectors of
// the same dimension for the lifetime of a catalog.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbedderFunc adapts a plain function to the Embedder interface.
type EmbedderFunc func(ctx context.Context, text string) ([]float32, error)

func (f EmbedderFunc) Embed(ctx context.Context, text string) ([]float32, error) {
	return f(ctx, text)
}

// BuildOptions tunes catalog construction.
type BuildOptions struct {
	// Concurrency bounds the number of in-flight embedding calls. Values < 1 mean 1.
	Concurrency int
	// Limiter paces embedding calls when the provider enforces a request quota.
	Limiter *rate.Limiter
	Logger  *slog.Logger
}

// Catalog is the immutable, ordered attraction set. The zero value is an empty,
// not ready catalog.
type Catalog struct {
	records   []Attraction
	byName    map[string]int
	dimension int
	ready     bool
}

// BuildCatalog embeds every input description that has no stored embedding and
// returns a ready catalog. Readiness is all-or-nothing: when any embedding is
// missing the returned catalog is empty and not ready, and the error wraps
// ErrEmbeddingUnavailable.
func BuildCatalog(ctx context.Context, inputs []AttractionInput, embedder Embedder, opts BuildOptions) (*Catalog, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	records, err := prepareRecords(inputs)
	if err != nil {
		return &Catalog{}, err
	}

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	pending := 0
	for i := range records {
		if len(records[i].Embedding) == 0 {
			pending++
		}
	}
	if pending > 0 && embedder == nil {
		return &Catalog{}, fmt.Errorf("%w: no embedding provider configured", ErrEmbeddingUnavailable)
	}

	for i := range records {
		if len(records[i].Embedding) > 0 {
			continue
		}
		g.Go(func() error {
			if opts.Limiter != nil {
				if err := opts.Limiter.Wait(gctx); err != nil {
					return fmt.Errorf("%w: attraction %q: %w", ErrEmbeddingUnavailable, records[i].Name, err)
				}
			}
			vec, err := embedder.Embed(gctx, records[i].Description)
			if err != nil {
				return fmt.Errorf("%w: attraction %q: %w", ErrEmbeddingUnavailable, records[i].Name, err)
			}
			if len(vec) == 0 {
				return fmt.Errorf("%w: attraction %q: empty vector", ErrEmbeddingUnavailable, records[i].Name)
			}
			records[i].Embedding = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.ErrorContext(ctx, "Catalog build failed", slog.Int("records", len(records)), slog.Any("error", err))
		if !errors.Is(err, ErrEmbeddingUnavailable) {
			err = fmt.Errorf("%w: %w", ErrEmbeddingUnavailable, err)
		}
		return &Catalog{}, err
	}

	dimension := 0
	for i := range records {
		if dimension == 0 {
			dimension = len(records[i].Embedding)
			continue
		}
		if len(records[i].Embedding) != dimension {
			return &Catalog{}, fmt.Errorf("%w: attraction %q has dimension %d, expected %d",
				ErrEmbeddingUnavailable, records[i].Name, len(records[i].Embedding), dimension)
		}
	}

	byName := make(map[string]int, len(records))
	for i := range records {
		key := nameKey(records[i].Name)
		if _, exists := byName[key]; !exists {
			byName[key] = i
		}
	}

	logger.InfoContext(ctx, "Catalog built",
		slog.Int("records", len(records)),
		slog.Int("embedded", pending),
		slog.Int("dimension", dimension))

	return &Catalog{
		records:   records,
		byName:    byName,
		dimension: dimension,
		ready:     true,
	}, nil
}

func prepareRecords(inputs []AttractionInput) ([]Attraction, error) {
	records := make([]Attraction, len(inputs))
	seen := make(map[uuid.UUID]struct{}, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in.Name) == "" {
			return nil, fmt.Errorf("%w: record %d has no name", ErrInvalidCatalog, i)
		}
		if in.Popularity < 0 || in.Popularity > MaxPopularity {
			return nil, fmt.Errorf("%w: %q popularity %.2f outside [0,%.0f]", ErrInvalidCatalog, in.Name, in.Popularity, MaxPopularity)
		}
		id := in.ID
		if id == uuid.Nil {
			id = DeriveID(in.Name, in.City)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s (%q)", ErrInvalidCatalog, id, in.Name)
		}
		seen[id] = struct{}{}

		var embedding []float32
		if len(in.Embedding) > 0 {
			embedding = make([]float32, len(in.Embedding))
			copy(embedding, in.Embedding)
		}
		records[i] = Attraction{
			ID:          id,
			Name:        in.Name,
			City:        in.City,
			Description: in.Description,
			Category:    in.Category,
			Popularity:  in.Popularity,
			Embedding:   embedding,
		}
	}
	return records, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsReady reports whether every record carries an embedding.
func (c *Catalog) IsReady() bool {
	return c != nil && c.ready
}

// Len returns the number of attractions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Dimension returns the embedding dimension shared by all records.
func (c *Catalog) Dimension() int {
	if c == nil {
		return 0
	}
	return c.dimension
}

// Lookup resolves an attraction by name, case-insensitively. The first record
// in catalog order wins when names repeat.
func (c *Catalog) Lookup(name string) (Attraction, bool) {
	if c == nil {
		return Attraction{}, false
	}
	i, ok := c.byName[nameKey(name)]
	if !ok {
		return Attraction{}, false
	}
	return c.records[i], true
}

// Attractions returns a copy of the records in catalog order. Embeddings are
// shared and must not be modified.
func (c *Catalog) Attractions() []Attraction {
	if c == nil {
		return nil
	}
	out := make([]Attraction, len(c.records))
	copy(out, c.records)
	return out
}
