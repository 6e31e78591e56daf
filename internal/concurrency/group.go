// File: internal/concurrency/group.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Group is a fixed set of workers handed out round-robin. A group built with
// a reactor constructor is "native": every worker owns one reactor, created
// before any goroutine starts so a failed build leaks nothing.

package concurrency

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/ygrebnov/errorc"

	"github.com/momentics/hioload-loops/affinity"
	"github.com/momentics/hioload-loops/api"
)

// GroupConfig customizes NewGroup.
type GroupConfig struct {
	// NewReactor makes the group native when non-nil.
	NewReactor func() (api.Reactor, error)
	// Affinity pins worker i to affinity.CPUFor(i).
	Affinity bool
	Logger   zerolog.Logger
}

// Group implements api.ExecutionGroup.
type Group struct {
	id      string
	name    string
	native  bool
	daemon  bool
	workers []*worker
	views   []api.Worker

	next     atomic.Uint64
	shutdown atomic.Bool
	once     sync.Once
	wg       sync.WaitGroup
	done     chan struct{}
	log      zerolog.Logger
}

var _ api.ExecutionGroup = (*Group)(nil)

// NewGroup builds and starts size workers named by factory.
func NewGroup(size int, factory api.ThreadFactory, cfg GroupConfig) (*Group, error) {
	if size <= 0 {
		return nil, errorc.With(api.ErrInvalidArgument, errorc.String("size", strconv.Itoa(size)))
	}
	if factory == nil {
		return nil, errorc.With(api.ErrInvalidArgument, errorc.String("factory", "nil"))
	}

	g := &Group{
		id:     uuid.NewString(),
		name:   factory.Prefix(),
		native: cfg.NewReactor != nil,
		done:   make(chan struct{}),
	}
	g.log = cfg.Logger.With().Str("group", g.name).Str("group_id", g.id).Logger()

	g.workers = make([]*worker, 0, size)
	for i := 0; i < size; i++ {
		var r api.Reactor
		if g.native {
			var err error
			if r, err = cfg.NewReactor(); err != nil {
				for _, w := range g.workers {
					w.closeReactor()
				}
				return nil, fmt.Errorf("%s: reactor for worker %d: %w", g.name, i, err)
			}
		}
		cpu := -1
		if cfg.Affinity {
			cpu = affinity.CPUFor(i)
		}
		g.workers = append(g.workers, newWorker(factory.NewThread(), r, cpu, g.log))
	}

	g.daemon = g.workers[0].Daemon()
	g.views = make([]api.Worker, len(g.workers))
	for i, w := range g.workers {
		if g.native {
			g.views[i] = nativeWorker{w}
		} else {
			g.views[i] = w
		}
		w.start(&g.wg)
	}
	go func() {
		g.wg.Wait()
		close(g.done)
	}()

	g.log.Debug().Int("size", size).Bool("native", g.native).Bool("affinity", cfg.Affinity).Msg("execution group started")
	return g, nil
}

func (g *Group) ID() string       { return g.id }
func (g *Group) Name() string     { return g.name }
func (g *Group) Size() int        { return len(g.workers) }
func (g *Group) Native() bool     { return g.native }
func (g *Group) Daemon() bool     { return g.daemon }
func (g *Group) IsShutdown() bool { return g.shutdown.Load() }

func (g *Group) Done() <-chan struct{} { return g.done }

// Next returns workers round-robin.
func (g *Group) Next() api.Worker {
	idx := g.next.Add(1) - 1
	return g.views[idx%uint64(len(g.views))]
}

// Workers returns a copy of the worker list.
func (g *Group) Workers() []api.Worker {
	out := make([]api.Worker, len(g.views))
	copy(out, g.views)
	return out
}

// Submit schedules task on the next worker.
func (g *Group) Submit(task func()) error {
	if g.shutdown.Load() {
		return api.ErrGroupShutdown
	}
	return g.Next().Submit(task)
}

// ShutdownGracefully stops all workers once. Queued tasks still run. A
// non-daemon group waits for its workers to exit or ctx to end; a daemon
// group returns as soon as the workers are told to stop.
func (g *Group) ShutdownGracefully(ctx context.Context) error {
	g.once.Do(func() {
		g.shutdown.Store(true)
		for _, w := range g.workers {
			w.stop()
		}
		g.log.Debug().Msg("execution group shutting down")
	})
	if g.daemon {
		return nil
	}
	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s: shutdown: %w", g.name, ctx.Err())
	}
}
