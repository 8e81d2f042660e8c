package recommender

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubEmbedder returns fixed vectors per text and counts calls.
type stubEmbedder struct {
	mu       sync.Mutex
	vectors  map[string][]float32
	fallback []float32
	failOn   map[string]error
	err      error
	calls    []string
}

func newStubEmbedder(vectors map[string][]float32) *stubEmbedder {
	return &stubEmbedder{vectors: vectors}
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, text)
	if s.err != nil {
		return nil, s.err
	}
	if err, ok := s.failOn[text]; ok {
		return nil, err
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	if s.fallback != nil {
		return s.fallback, nil
	}
	return nil, fmt.Errorf("no vector for %q", text)
}

func (s *stubEmbedder) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

var errProviderDown = errors.New("provider down")

// buildTestCatalog embeds every input with the given vectors keyed by description.
func buildTestCatalog(t *testing.T, inputs []AttractionInput, vectors map[string][]float32) *Catalog {
	t.Helper()
	catalog, err := BuildCatalog(context.Background(), inputs, newStubEmbedder(vectors), BuildOptions{Concurrency: 4})
	require.NoError(t, err)
	require.True(t, catalog.IsReady())
	return catalog
}

func egyptInputs() []AttractionInput {
	return []AttractionInput{
		{Name: "Pyramids of Giza", City: "Giza", Description: "giza desc", Category: "Ancient Monument", Popularity: 10},
		{Name: "Karnak Temple", City: "Luxor", Description: "karnak desc", Category: "Temple", Popularity: 8},
		{Name: "Egyptian Museum", City: "Cairo", Description: "museum desc", Category: "Museum", Popularity: 9},
	}
}
