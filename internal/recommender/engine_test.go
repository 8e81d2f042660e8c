package recommender

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, inputs []AttractionInput, vectors map[string][]float32, embedder Embedder) *Engine {
	t.Helper()
	store := NewStore()
	require.NoError(t, store.Publish(buildTestCatalog(t, inputs, vectors)))
	return NewEngine(store, embedder, time.Second)
}

func catalogVectors() map[string][]float32 {
	return map[string][]float32{
		"giza desc":   {0.9, 0.1, 0.1},
		"karnak desc": {0.2, 0.9, 0.3},
		"museum desc": {0.5, 0.5, 0.6},
	}
}

func TestEngine_Recommend(t *testing.T) {
	ctx := context.Background()

	t.Run("pyramid lover in giza", func(t *testing.T) {
		embedder := newStubEmbedder(map[string][]float32{"pyramids": {1, 0, 0}})
		engine := newTestEngine(t, egyptInputs(), catalogVectors(), embedder)

		res, err := engine.Recommend(ctx, RawQuery{Location: "Giza", Interests: []string{"pyramids"}, TopN: "3"})
		require.NoError(t, err)
		require.Len(t, res.Ranked, 3)
		assert.Equal(t, "Pyramids of Giza", res.Ranked[0].Attraction.Name)
		assert.Equal(t, 3, res.CatalogSize)
		assert.Equal(t, []string{"pyramids"}, embedder.calls)
	})

	t.Run("no filter and no interests use the defaults", func(t *testing.T) {
		embedder := newStubEmbedder(map[string][]float32{"egyptian history culture": {0.5, 0.5, 0.5}})
		engine := newTestEngine(t, egyptInputs(), catalogVectors(), embedder)

		res, err := engine.Recommend(ctx, RawQuery{Location: "all"})
		require.NoError(t, err)
		assert.Equal(t, []string{"egyptian history culture"}, embedder.calls)
		assert.Equal(t, DefaultTopN, res.Query.TopN)
		for _, s := range res.Ranked {
			assert.Equal(t, 1.0, s.Scores.Location)
		}
	})

	t.Run("unknown liked place ranks like no liked places", func(t *testing.T) {
		embedder := newStubEmbedder(map[string][]float32{"temples": {0.1, 0.8, 0.2}})
		engine := newTestEngine(t, egyptInputs(), catalogVectors(), embedder)

		without, err := engine.Recommend(ctx, RawQuery{Location: "Luxor", Interests: []string{"temples"}})
		require.NoError(t, err)
		with, err := engine.Recommend(ctx, RawQuery{Location: "Luxor", Interests: []string{"temples"}, LikedPlaces: []string{"Nonexistent Place"}})
		require.NoError(t, err)

		assert.Equal(t, without.Ranked, with.Ranked)
		for _, s := range with.Ranked {
			assert.Zero(t, s.Scores.History)
		}
	})

	t.Run("top n above catalog size returns the whole catalog", func(t *testing.T) {
		inputs := make([]AttractionInput, 20)
		vectors := make(map[string][]float32, 20)
		for i := range inputs {
			desc := fmt.Sprintf("site %d", i)
			inputs[i] = AttractionInput{Name: desc, City: "Aswan", Description: desc, Popularity: float64(i % 10)}
			vectors[desc] = []float32{float32(i + 1), 1}
		}
		embedder := newStubEmbedder(map[string][]float32{"nile": {1, 0}})
		engine := newTestEngine(t, inputs, vectors, embedder)

		res, err := engine.Recommend(ctx, RawQuery{Interests: []string{"nile"}, TopN: "100"})
		require.NoError(t, err)
		assert.Len(t, res.Ranked, 20)
		for i := 1; i < len(res.Ranked); i++ {
			assert.GreaterOrEqual(t, res.Ranked[i-1].Scores.Final, res.Ranked[i].Scores.Final)
		}
	})

	t.Run("provider failure yields no recommendations", func(t *testing.T) {
		embedder := newStubEmbedder(nil)
		embedder.err = errProviderDown
		store := NewStore()
		require.NoError(t, store.Publish(buildTestCatalog(t, egyptInputs(), catalogVectors())))
		engine := NewEngine(store, embedder, time.Second)

		res, err := engine.Recommend(ctx, RawQuery{Interests: []string{"pyramids"}})
		assert.ErrorIs(t, err, ErrEmbeddingUnavailable)
		assert.ErrorIs(t, err, ErrRecommenderUnavailable)
		assert.Empty(t, res.Ranked)
		assert.Equal(t, 1, embedder.callCount())
	})

	t.Run("top n zero", func(t *testing.T) {
		embedder := newStubEmbedder(map[string][]float32{"pyramids": {1, 0, 0}})
		engine := newTestEngine(t, egyptInputs(), catalogVectors(), embedder)

		res, err := engine.Recommend(ctx, RawQuery{Interests: []string{"pyramids"}, TopN: "0"})
		require.NoError(t, err)
		assert.NotNil(t, res.Ranked)
		assert.Empty(t, res.Ranked)
	})

	t.Run("negative top n is rejected before embedding", func(t *testing.T) {
		embedder := newStubEmbedder(nil)
		engine := newTestEngine(t, egyptInputs(), catalogVectors(), embedder)

		_, err := engine.Recommend(ctx, RawQuery{TopN: "-2"})
		assert.ErrorIs(t, err, ErrInvalidQuery)
		assert.Zero(t, embedder.callCount())
	})
}

func TestEngine_NotReady(t *testing.T) {
	embedder := newStubEmbedder(nil)
	engine := NewEngine(NewStore(), embedder, 0)

	_, err := engine.Recommend(context.Background(), RawQuery{Interests: []string{"pyramids"}})
	assert.ErrorIs(t, err, ErrCatalogNotReady)
	assert.ErrorIs(t, err, ErrRecommenderUnavailable)
	assert.Zero(t, embedder.callCount())
}

func TestEngine_Timeout(t *testing.T) {
	blocking := EmbedderFunc(func(ctx context.Context, _ string) ([]float32, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	store := NewStore()
	require.NoError(t, store.Publish(buildTestCatalog(t, egyptInputs(), catalogVectors())))
	engine := NewEngine(store, blocking, 20*time.Millisecond)

	start := time.Now()
	_, err := engine.Recommend(context.Background(), RawQuery{Interests: []string{"pyramids"}})
	assert.ErrorIs(t, err, ErrEmbeddingUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestEngine_SwapsCatalog(t *testing.T) {
	embedder := newStubEmbedder(map[string][]float32{"pyramids": {1, 0, 0}})
	store := NewStore()
	require.NoError(t, store.Publish(buildTestCatalog(t, egyptInputs()[:1], catalogVectors())))
	engine := NewEngine(store, embedder, time.Second)

	res, err := engine.Recommend(context.Background(), RawQuery{Interests: []string{"pyramids"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.CatalogSize)

	require.NoError(t, store.Publish(buildTestCatalog(t, egyptInputs(), catalogVectors())))
	res, err = engine.Recommend(context.Background(), RawQuery{Interests: []string{"pyramids"}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.CatalogSize)
}
