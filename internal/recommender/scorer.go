package recommender

import (
	"context"
	"fmt"
	"strings"
)

// Component weights of the final score. They sum to 1.
const (
	LocationWeight   = 0.2
	InterestWeight   = 0.5
	HistoryWeight    = 0.2
	PopularityWeight = 0.1
)

// ScoreComponents holds the per-query scores of one attraction.
type ScoreComponents struct {
	Location   float64 `json:"location"`
	Interest   float64 `json:"interest"`
	History    float64 `json:"history"`
	Popularity float64 `json:"popularity"`
	Final      float64 `json:"final"`
}

// Scored pairs an attraction with its scores. Position is the attraction's
// index in catalog order.
type Scored struct {
	Attraction Attraction
	Scores     ScoreComponents
	Position   int
}

// Combine returns the weighted final score of the four components.
func Combine(location, interest, history, popularity float64) float64 {
	return LocationWeight*location +
		InterestWeight*interest +
		HistoryWeight*history +
		PopularityWeight*popularity
}

// Score computes ScoreComponents for every attraction in the catalog, in
// catalog order. The interest vector is requested from the embedder exactly
// once; if that fails nothing is scored and the error wraps
// ErrEmbeddingUnavailable.
func Score(ctx context.Context, catalog *Catalog, q Query, embedder Embedder) ([]Scored, error) {
	if !catalog.IsReady() {
		return nil, ErrCatalogNotReady
	}
	if embedder == nil {
		return nil, fmt.Errorf("%w: no embedding provider configured", ErrEmbeddingUnavailable)
	}
	interests := q.Interests
	if len(interests) == 0 {
		interests = DefaultInterests
	}

	interestVec, err := embedder.Embed(ctx, strings.Join(interests, " "))
	if err != nil {
		return nil, fmt.Errorf("%w: interest vector: %w", ErrEmbeddingUnavailable, err)
	}
	if catalog.Len() > 0 && len(interestVec) != catalog.Dimension() {
		return nil, fmt.Errorf("%w: interest vector has dimension %d, catalog uses %d",
			ErrEmbeddingUnavailable, len(interestVec), catalog.Dimension())
	}

	liked := catalog.resolveLiked(q.LikedPlaces)
	filtering := q.Filtering()

	scored := make([]Scored, len(catalog.records))
	for i, a := range catalog.records {
		var c ScoreComponents

		c.Location = 1
		if filtering && !strings.EqualFold(strings.TrimSpace(a.City), q.Location) {
			c.Location = 0
		}

		c.Interest = CosineSimilarity(interestVec, a.Embedding)

		if len(liked) > 0 {
			var sum float64
			for _, e := range liked {
				sum += CosineSimilarity(a.Embedding, e)
			}
			c.History = sum / float64(len(liked))
		}

		c.Popularity = a.Popularity / MaxPopularity
		c.Final = Combine(c.Location, c.Interest, c.History, c.Popularity)

		scored[i] = Scored{Attraction: a, Scores: c, Position: i}
	}
	return scored, nil
}

// resolveLiked returns the embeddings of the distinct catalog entries named in
// names. Unknown names are ignored.
func (c *Catalog) resolveLiked(names []string) [][]float32 {
	var out [][]float32
	seen := make(map[int]struct{}, len(names))
	for _, name := range names {
		i, ok := c.byName[nameKey(name)]
		if !ok {
			continue
		}
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, c.records[i].Embedding)
	}
	return out
}
