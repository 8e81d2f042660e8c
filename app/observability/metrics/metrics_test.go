package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNew(t *testing.T) {
	m, err := New(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	assert.NotNil(t, m.RecommendationRequestsTotal)
	assert.NotNil(t, m.EmbeddingErrorsTotal)
	assert.NotNil(t, m.CatalogSize)
}

func TestInitAppMetrics(t *testing.T) {
	InitAppMetrics()
	first := Get()
	InitAppMetrics()
	assert.Same(t, first, Get())
}
