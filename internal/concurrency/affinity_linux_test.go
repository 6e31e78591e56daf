//go:build linux

package concurrency

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-loops/affinity"
)

func TestGroup_AffinityPinsWorkers(t *testing.T) {
	g, err := NewGroup(2, NewThreadFactory("t", "server-epoll", false, nil), GroupConfig{
		Affinity: true,
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.ShutdownGracefully(context.Background()) })

	for i, w := range g.Workers() {
		got := make(chan []int, 1)
		require.NoError(t, w.Submit(func() {
			cpus, _ := affinity.Current()
			got <- cpus
		}))
		assert.Equal(t, []int{affinity.CPUFor(i)}, <-got, "worker %d", i)
	}
}
