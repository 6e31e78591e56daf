package loops

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	native := &countingProvider{Provider: fakeNative()}
	sel, err := New(
		WithPrefix("m"),
		WithWorkers(2),
		WithLogger(zerolog.Nop()),
		WithNativeProbe(always(true)),
		WithProviders(nil, native),
		WithMetrics(reg),
	)
	require.NoError(t, err)
	defer sel.Dispose(context.Background())

	native.failures.Store(1)
	_, err = sel.OnClient(true)
	require.Error(t, err)
	_, err = sel.OnClient(true)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(sel.metrics.groupsCreated.WithLabelValues("client", "epoll")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sel.metrics.buildFailures.WithLabelValues("client")))
	assert.Equal(t, 0.0, testutil.ToFloat64(sel.metrics.groupsDiscarded.WithLabelValues("client")))

	families, err := reg.Gather()
	require.NoError(t, err)
	var threads float64
	for _, mf := range families {
		if mf.GetName() == "hioload_loops_threads_spawned" {
			threads = mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.Equal(t, 6.0, threads)
}

func TestSelectorMetrics_DisabledIsNil(t *testing.T) {
	sel, err := New(WithLogger(zerolog.Nop()), WithNativeProbe(always(false)))
	require.NoError(t, err)
	defer sel.Dispose(context.Background())

	assert.Nil(t, sel.metrics)
	assert.NotPanics(t, func() {
		sel.metrics.created("server", "epoll")
		sel.metrics.discarded("server")
		sel.metrics.failed("server")
	})
}
