package loops

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/momentics/hioload-loops/api"
)

// fakeReactor stands in for epoll so native groups build on any OS.
type fakeReactor struct {
	closed atomic.Bool
}

func (r *fakeReactor) Register(uintptr, uintptr) error    { return nil }
func (r *fakeReactor) Wait([]api.Event, int) (int, error) { return 0, nil }
func (r *fakeReactor) Close() error                       { r.closed.Store(true); return nil }

func fakeNative() NativeProvider {
	return NativeProvider{
		Logger:     zerolog.Nop(),
		NewReactor: func() (api.Reactor, error) { return &fakeReactor{}, nil },
	}
}

// countingGroup records how often it was shut down.
type countingGroup struct {
	api.ExecutionGroup
	shutdowns   atomic.Int32
	shutdownErr error
}

func (g *countingGroup) ShutdownGracefully(ctx context.Context) error {
	g.shutdowns.Add(1)
	err := g.ExecutionGroup.ShutdownGracefully(ctx)
	if g.shutdownErr != nil {
		return g.shutdownErr
	}
	return err
}

var errInjected = errors.New("injected construction failure")

// countingProvider wraps a Provider, counting constructions and optionally
// failing or slowing them down.
type countingProvider struct {
	Provider
	hold        time.Duration
	failures    atomic.Int32
	shutdownErr error

	mu     sync.Mutex
	groups []*countingGroup
}

func (p *countingProvider) NewGroup(size int, factory api.ThreadFactory) (api.ExecutionGroup, error) {
	if p.failures.Load() > 0 && p.failures.Add(-1) >= 0 {
		return nil, errInjected
	}
	if p.hold > 0 {
		time.Sleep(p.hold)
	}
	g, err := p.Provider.NewGroup(size, factory)
	if err != nil {
		return nil, err
	}
	cg := &countingGroup{ExecutionGroup: g, shutdownErr: p.shutdownErr}
	p.mu.Lock()
	p.groups = append(p.groups, cg)
	p.mu.Unlock()
	return cg, nil
}

func (p *countingProvider) built() []*countingGroup {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*countingGroup, len(p.groups))
	copy(out, p.groups)
	return out
}

// unwrapCounting strips colocation to reach the counting group.
func unwrapCounting(g api.ExecutionGroup) *countingGroup {
	if c, ok := g.(api.ColocatedGroup); ok {
		g = c.Unwrap()
	}
	cg, _ := g.(*countingGroup)
	return cg
}

func always(v bool) func() bool { return func() bool { return v } }

// runConcurrently releases n goroutines at once and collects their results.
func runConcurrently(n int, fn func() (api.ExecutionGroup, error)) ([]api.ExecutionGroup, []error) {
	groups := make([]api.ExecutionGroup, n)
	errs := make([]error, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			groups[i], errs[i] = fn()
		}(i)
	}
	close(start)
	wg.Wait()
	return groups, errs
}
