package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func TestSnapshot_SumsCountersAcrossAttributes(t *testing.T) {
	tel := New()
	defer tel.Shutdown(context.Background())

	meter := tel.MeterProvider().Meter("test")
	counter, err := meter.Int64Counter("strategist_recommendations_total")
	require.NoError(t, err)

	ctx := context.Background()
	counter.Add(ctx, 2, metric.WithAttributes(attribute.String("industry", "tech")))
	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("industry", "politics")))

	snap, err := tel.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), snap["strategist_recommendations_total"])
}
