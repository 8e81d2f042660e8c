package generativeAI

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/FACorreiaa/horus-ai/app/observability/metrics"
)

func setupEmbeddingServiceTest(t *testing.T, opts EmbeddingOptions) (*EmbeddingService, *MockTextEmbedder) {
	t.Helper()
	m, err := metrics.New(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	provider := new(MockTextEmbedder)
	return NewEmbeddingService(provider, opts, slog.New(slog.DiscardHandler), m), provider
}

func TestEmbeddingService_Embed(t *testing.T) {
	ctx := context.Background()

	t.Run("identical text is served from the cache", func(t *testing.T) {
		svc, provider := setupEmbeddingServiceTest(t, EmbeddingOptions{})
		provider.On("EmbedText", mock.Anything, "pyramids").Return([]float32{1, 2, 3}, nil).Once()

		first, err := svc.Embed(ctx, "pyramids")
		require.NoError(t, err)
		second, err := svc.Embed(ctx, "pyramids")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		provider.AssertNumberOfCalls(t, "EmbedText", 1)
	})

	t.Run("cached vectors are not shared with callers", func(t *testing.T) {
		svc, provider := setupEmbeddingServiceTest(t, EmbeddingOptions{})
		provider.On("EmbedText", mock.Anything, "temples").Return([]float32{1, 0}, nil).Once()

		v, err := svc.Embed(ctx, "temples")
		require.NoError(t, err)
		v[0] = 42

		again, err := svc.Embed(ctx, "temples")
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 0}, again)
	})

	t.Run("provider errors are returned and not cached", func(t *testing.T) {
		svc, provider := setupEmbeddingServiceTest(t, EmbeddingOptions{})
		boom := errors.New("quota exceeded")
		provider.On("EmbedText", mock.Anything, "museum").Return(nil, boom).Once()
		provider.On("EmbedText", mock.Anything, "museum").Return([]float32{0.5}, nil).Once()

		_, err := svc.Embed(ctx, "museum")
		assert.ErrorIs(t, err, boom)

		v, err := svc.Embed(ctx, "museum")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.5}, v)
	})

	t.Run("empty vector is an error", func(t *testing.T) {
		svc, provider := setupEmbeddingServiceTest(t, EmbeddingOptions{})
		provider.On("EmbedText", mock.Anything, "nothing").Return([]float32{}, nil).Once()

		_, err := svc.Embed(ctx, "nothing")
		assert.Error(t, err)
	})

	t.Run("breaker opens after consecutive failures", func(t *testing.T) {
		svc, provider := setupEmbeddingServiceTest(t, EmbeddingOptions{
			Breaker: BreakerSettings{ConsecutiveFailures: 2, Timeout: time.Minute},
		})
		boom := errors.New("unavailable")
		provider.On("EmbedText", mock.Anything, mock.Anything).Return(nil, boom).Twice()

		_, err := svc.Embed(ctx, "a")
		require.Error(t, err)
		_, err = svc.Embed(ctx, "b")
		require.Error(t, err)

		_, err = svc.Embed(ctx, "c")
		assert.ErrorIs(t, err, gobreaker.ErrOpenState)
		provider.AssertNumberOfCalls(t, "EmbedText", 2)
	})

	t.Run("per call timeout", func(t *testing.T) {
		svc, provider := setupEmbeddingServiceTest(t, EmbeddingOptions{Timeout: 10 * time.Millisecond})
		provider.On("EmbedText", mock.Anything, "slow").
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
			}).
			Return(nil, context.DeadlineExceeded).Once()

		_, err := svc.Embed(ctx, "slow")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
