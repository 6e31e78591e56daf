package loops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-loops/control"
)

func TestDefault_SharedAndEnvConfigured(t *testing.T) {
	t.Setenv("HIOLOAD_LOOPS_PREFIX", "shared")
	t.Setenv("HIOLOAD_LOOPS_WORKERS", "3")
	prev := SetDefault(nil)
	t.Cleanup(func() {
		_ = DisposeDefault(context.Background())
		SetDefault(prev)
	})

	a := Default()
	b := Default()
	require.Same(t, a, b)
	assert.Equal(t, "shared", a.Prefix())

	g, err := a.OnServer(false)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Size())
	assert.Equal(t, "shared-server-nio", g.Name())
}

func TestDefault_RecreatedAfterDispose(t *testing.T) {
	prev := SetDefault(nil)
	t.Cleanup(func() {
		_ = DisposeDefault(context.Background())
		SetDefault(prev)
	})

	a := Default()
	require.NoError(t, DisposeDefault(context.Background()))
	assert.True(t, a.Disposed())

	b := Default()
	assert.NotSame(t, a, b)
	assert.False(t, b.Disposed())
}

func TestFromConfig(t *testing.T) {
	cfg := control.LoopsConfig{Prefix: "cfg", Workers: 2, SelectCount: 1, Daemon: true}
	sel, err := New(append(FromConfig(cfg), WithNativeProbe(always(false)))...)
	require.NoError(t, err)
	defer sel.Dispose(context.Background())

	acc, err := sel.OnServerSelect(false)
	require.NoError(t, err)
	srv, err := sel.OnServer(false)
	require.NoError(t, err)
	assert.Equal(t, 1, acc.Size())
	assert.Equal(t, 2, srv.Size())
	assert.Equal(t, "cfg-select-nio", acc.Name())
}

func TestFromConfig_AffinityReachesNativeProvider(t *testing.T) {
	cfg, err := resolveOptions(FromConfig(control.LoopsConfig{Prefix: "pin", Workers: 1, Affinity: true}))
	require.NoError(t, err)
	native, ok := cfg.native.(NativeProvider)
	require.True(t, ok)
	assert.True(t, native.Affinity)
	assert.False(t, cfg.portable.Native())
}

func TestSelector_ProbesAndStats(t *testing.T) {
	ctrl := control.NewController()
	f := newFixture(t, true)
	f.sel.RegisterProbes(ctrl)

	_, err := f.sel.OnServer(true)
	require.NoError(t, err)
	f.sel.PublishStats(ctrl)

	stats := ctrl.Stats()
	assert.Equal(t, true, stats["debug.loops.io.native"])
	st, ok := stats["debug.loops.io.stats"].(Stats)
	require.True(t, ok)
	assert.Equal(t, []string{"select", "server"}, st.Published)
	assert.EqualValues(t, 12, stats["loops.io.threads_spawned"])
	assert.EqualValues(t, 1, stats["loops.io.groups_built"])
}
