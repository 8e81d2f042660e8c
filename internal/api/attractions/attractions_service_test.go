package attractions

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/FACorreiaa/horus-ai/app/observability/metrics"
	"github.com/FACorreiaa/horus-ai/internal/recommender"
)

// lengthEmbedder maps text to a 2-d vector derived from its length.
func lengthEmbedder(calls *atomic.Int32) recommender.EmbedderFunc {
	return func(_ context.Context, text string) ([]float32, error) {
		calls.Add(1)
		return []float32{float32(len(text)), 1}, nil
	}
}

func setupAttractionsServiceTest(t *testing.T, repo Repository, embedder recommender.Embedder, source string) (*ServiceImpl, *recommender.Store) {
	t.Helper()
	m, err := metrics.New(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	store := recommender.NewStore()
	svc := NewService(repo, embedder, store, Options{Source: source, Concurrency: 4}, slog.New(slog.DiscardHandler), m)
	return svc, store
}

func TestService_BuildCatalog_Seed(t *testing.T) {
	var calls atomic.Int32
	svc, store := setupAttractionsServiceTest(t, nil, lengthEmbedder(&calls), SourceSeed)

	assert.False(t, svc.Status().Ready)

	status, err := svc.BuildCatalog(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Ready)
	assert.Equal(t, 20, status.Size)
	assert.Equal(t, 2, status.Dimension)
	assert.EqualValues(t, 20, calls.Load())

	catalog, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, 20, catalog.Len())
	assert.True(t, svc.Status().Ready)
}

func TestService_BuildCatalog_FailureKeepsPrevious(t *testing.T) {
	var calls atomic.Int32
	var fail atomic.Bool
	embedder := recommender.EmbedderFunc(func(ctx context.Context, text string) ([]float32, error) {
		if fail.Load() {
			return nil, errors.New("quota exceeded")
		}
		return lengthEmbedder(&calls)(ctx, text)
	})
	svc, store := setupAttractionsServiceTest(t, nil, embedder, SourceSeed)

	_, err := svc.BuildCatalog(context.Background())
	require.NoError(t, err)
	before, err := store.Current()
	require.NoError(t, err)

	fail.Store(true)
	_, err = svc.BuildCatalog(context.Background())
	assert.ErrorIs(t, err, recommender.ErrEmbeddingUnavailable)

	after, err := store.Current()
	require.NoError(t, err)
	assert.Same(t, before, after)
	assert.True(t, svc.Status().Ready)
}

func TestService_BuildCatalog_FirstFailureIsNotReady(t *testing.T) {
	embedder := recommender.EmbedderFunc(func(context.Context, string) ([]float32, error) {
		return nil, errors.New("offline")
	})
	svc, store := setupAttractionsServiceTest(t, nil, embedder, SourceSeed)

	status, err := svc.BuildCatalog(context.Background())
	assert.ErrorIs(t, err, recommender.ErrRecommenderUnavailable)
	assert.False(t, status.Ready)
	assert.False(t, store.IsReady())
}

func TestService_BuildCatalog_Postgres(t *testing.T) {
	ctx := context.Background()
	stored := recommender.AttractionInput{
		ID: recommender.DeriveID("Pyramids of Giza", "Giza"), Name: "Pyramids of Giza", City: "Giza",
		Description: "tombs", Popularity: 10, Embedding: []float32{9, 1},
	}
	fresh := recommender.AttractionInput{
		ID: recommender.DeriveID("Karnak Temple", "Luxor"), Name: "Karnak Temple", City: "Luxor",
		Description: "temple", Popularity: 8,
	}

	t.Run("embeds only missing vectors and stores them", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListAttractions", mock.Anything).Return([]recommender.AttractionInput{stored, fresh}, nil).Once()
		repo.On("UpdateAttractionEmbedding", mock.Anything, fresh.ID, []float32{6, 1}).Return(nil).Once()

		var calls atomic.Int32
		svc, _ := setupAttractionsServiceTest(t, repo, lengthEmbedder(&calls), SourcePostgres)

		status, err := svc.BuildCatalog(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, status.Size)
		assert.EqualValues(t, 1, calls.Load())
		repo.AssertExpectations(t)
	})

	t.Run("stores vectors for rows sharing a name", func(t *testing.T) {
		other := recommender.AttractionInput{
			ID: recommender.DeriveID("Karnak Temple", "Cairo"), Name: "Karnak Temple", City: "Cairo",
			Description: "replica", Popularity: 2,
		}
		repo := new(MockRepository)
		repo.On("ListAttractions", mock.Anything).Return([]recommender.AttractionInput{fresh, other}, nil).Once()
		repo.On("UpdateAttractionEmbedding", mock.Anything, fresh.ID, []float32{6, 1}).Return(nil).Once()
		repo.On("UpdateAttractionEmbedding", mock.Anything, other.ID, []float32{7, 1}).Return(nil).Once()

		var calls atomic.Int32
		svc, _ := setupAttractionsServiceTest(t, repo, lengthEmbedder(&calls), SourcePostgres)

		status, err := svc.BuildCatalog(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, status.Size)
		repo.AssertExpectations(t)
	})

	t.Run("persist failure does not fail the build", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListAttractions", mock.Anything).Return([]recommender.AttractionInput{fresh}, nil).Once()
		repo.On("UpdateAttractionEmbedding", mock.Anything, fresh.ID, mock.Anything).Return(errors.New("read only")).Once()

		var calls atomic.Int32
		svc, _ := setupAttractionsServiceTest(t, repo, lengthEmbedder(&calls), SourcePostgres)

		_, err := svc.BuildCatalog(ctx)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListAttractions", mock.Anything).Return(nil, errors.New("db down")).Once()

		var calls atomic.Int32
		svc, store := setupAttractionsServiceTest(t, repo, lengthEmbedder(&calls), SourcePostgres)

		_, err := svc.BuildCatalog(ctx)
		assert.ErrorContains(t, err, "db down")
		assert.False(t, store.IsReady())
		assert.Zero(t, calls.Load())
	})
}

func TestService_EnsureSeeded(t *testing.T) {
	ctx := context.Background()

	t.Run("empty table gets the seed", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListAttractions", mock.Anything).Return([]recommender.AttractionInput{}, nil).Once()
		repo.On("UpsertAttraction", mock.Anything, mock.Anything).Return(nil).Times(20)
		svc, _ := setupAttractionsServiceTest(t, repo, nil, SourcePostgres)

		n, err := svc.EnsureSeeded(ctx)
		require.NoError(t, err)
		assert.Equal(t, 20, n)
		repo.AssertExpectations(t)
	})

	t.Run("populated table is left alone", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListAttractions", mock.Anything).Return([]recommender.AttractionInput{{Name: "x"}}, nil).Once()
		svc, _ := setupAttractionsServiceTest(t, repo, nil, SourcePostgres)

		n, err := svc.EnsureSeeded(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		repo.AssertNotCalled(t, "UpsertAttraction", mock.Anything, mock.Anything)
	})
}

func TestService_ListAttractions(t *testing.T) {
	var calls atomic.Int32
	svc, _ := setupAttractionsServiceTest(t, nil, lengthEmbedder(&calls), SourceSeed)

	_, err := svc.ListAttractions(context.Background(), "")
	assert.ErrorIs(t, err, recommender.ErrCatalogNotReady)

	_, err = svc.BuildCatalog(context.Background())
	require.NoError(t, err)

	all, err := svc.ListAttractions(context.Background(), "all")
	require.NoError(t, err)
	assert.Len(t, all, 20)

	luxor, err := svc.ListAttractions(context.Background(), " luxor ")
	require.NoError(t, err)
	require.NotEmpty(t, luxor)
	for _, a := range luxor {
		assert.Equal(t, "Luxor", a.City)
	}
}

func TestService_BackfillEmbeddings(t *testing.T) {
	ctx := context.Background()
	a := recommender.AttractionInput{ID: recommender.DeriveID("Philae Temple", "Aswan"), Name: "Philae Temple", Description: "island"}
	b := recommender.AttractionInput{ID: recommender.DeriveID("Siwa Oasis", "Siwa"), Name: "Siwa Oasis", Description: "fail"}
	c := recommender.AttractionInput{ID: recommender.DeriveID("Dahab", "Dahab"), Name: "Dahab", Description: "reef"}

	embedder := recommender.EmbedderFunc(func(_ context.Context, text string) ([]float32, error) {
		if text == "fail" {
			return nil, errors.New("provider rejected text")
		}
		return []float32{float32(len(text)), 1}, nil
	})

	t.Run("skips failures and drains the backlog", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetAttractionsWithoutEmbeddings", mock.Anything, 2).Return([]recommender.AttractionInput{a, b}, nil).Once()
		repo.On("GetAttractionsWithoutEmbeddings", mock.Anything, 3).Return([]recommender.AttractionInput{b, c}, nil).Once()
		repo.On("GetAttractionsWithoutEmbeddings", mock.Anything, 3).Return([]recommender.AttractionInput{b}, nil).Once()
		repo.On("UpdateAttractionEmbedding", mock.Anything, a.ID, []float32{6, 1}).Return(nil).Once()
		repo.On("UpdateAttractionEmbedding", mock.Anything, c.ID, []float32{4, 1}).Return(nil).Once()

		svc, _ := setupAttractionsServiceTest(t, repo, embedder, SourcePostgres)
		res, err := svc.BackfillEmbeddings(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, BackfillResult{Updated: 2, Failed: 1}, res)
		repo.AssertExpectations(t)
	})

	t.Run("keeps going after a fully failed batch", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetAttractionsWithoutEmbeddings", mock.Anything, 1).Return([]recommender.AttractionInput{b}, nil).Once()
		repo.On("GetAttractionsWithoutEmbeddings", mock.Anything, 2).Return([]recommender.AttractionInput{b, c}, nil).Once()
		repo.On("GetAttractionsWithoutEmbeddings", mock.Anything, 2).Return([]recommender.AttractionInput{b}, nil).Once()
		repo.On("UpdateAttractionEmbedding", mock.Anything, c.ID, []float32{4, 1}).Return(nil).Once()

		svc, _ := setupAttractionsServiceTest(t, repo, embedder, SourcePostgres)
		res, err := svc.BackfillEmbeddings(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, BackfillResult{Updated: 1, Failed: 1}, res)
		repo.AssertExpectations(t)
	})

	t.Run("stops when updated rows are returned again", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetAttractionsWithoutEmbeddings", mock.Anything, 1).Return([]recommender.AttractionInput{c}, nil).Twice()
		repo.On("UpdateAttractionEmbedding", mock.Anything, c.ID, []float32{4, 1}).Return(nil).Once()

		svc, _ := setupAttractionsServiceTest(t, repo, embedder, SourcePostgres)
		res, err := svc.BackfillEmbeddings(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, BackfillResult{Updated: 1}, res)
		repo.AssertExpectations(t)
	})

	t.Run("nothing to do", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetAttractionsWithoutEmbeddings", mock.Anything, 20).Return([]recommender.AttractionInput{}, nil).Once()

		svc, _ := setupAttractionsServiceTest(t, repo, embedder, SourcePostgres)
		res, err := svc.BackfillEmbeddings(ctx, 0)
		require.NoError(t, err)
		assert.Zero(t, res)
	})

	t.Run("fetch error", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetAttractionsWithoutEmbeddings", mock.Anything, 5).Return(nil, errors.New("db down")).Once()

		svc, _ := setupAttractionsServiceTest(t, repo, embedder, SourcePostgres)
		_, err := svc.BackfillEmbeddings(ctx, 5)
		assert.ErrorContains(t, err, "db down")
	})

	t.Run("requires a repository", func(t *testing.T) {
		svc, _ := setupAttractionsServiceTest(t, nil, embedder, SourceSeed)
		_, err := svc.BackfillEmbeddings(ctx, 5)
		assert.Error(t, err)
	})
}
