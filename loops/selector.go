// File: loops/selector.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Default event loop selector: portable groups up front, native
// groups built lazily and published once per role.

package loops

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/momentics/hioload-loops/api"
	"github.com/momentics/hioload-loops/internal/concurrency"
)

// Selector is the default api.EventLoopSelector. Portable groups are built
// by New; native groups are built on first demand and cached in Slots.
type Selector struct {
	prefix          string
	daemon          bool
	workers         int
	selectCount     int
	hasNative       bool
	shutdownTimeout time.Duration

	portable Provider
	native   Provider

	// counter numbers every thread of every group this selector spawns.
	counter atomic.Int64

	serverLoops api.ExecutionGroup
	clientLoops api.ExecutionGroup
	selectLoops api.ExecutionGroup

	nativeServer *Slot[api.ExecutionGroup]
	nativeClient *Slot[api.ExecutionGroup]
	// nativeSelect is nativeServer when no select count is configured.
	nativeSelect *Slot[api.ExecutionGroup]

	disposed atomic.Bool

	built    atomic.Int64
	raceLost atomic.Int64
	failed   atomic.Int64

	log     zerolog.Logger
	metrics *selectorMetrics
}

var _ api.EventLoopSelector = (*Selector)(nil)

// New builds a Selector and starts its portable groups.
func New(opts ...Option) (*Selector, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	s := &Selector{
		prefix:          cfg.Prefix,
		daemon:          cfg.Daemon,
		workers:         cfg.Workers,
		hasNative:       cfg.probe(),
		shutdownTimeout: cfg.ShutdownTimeout,
		portable:        cfg.portable,
		native:          cfg.native,
		nativeServer:    new(Slot[api.ExecutionGroup]),
		nativeClient:    new(Slot[api.ExecutionGroup]),
		log:             cfg.log.With().Str("selector", cfg.Prefix).Logger(),
	}
	s.metrics = newSelectorMetrics(cfg.registerer, cfg.Prefix, func() float64 {
		return float64(s.counter.Load())
	})

	var started []api.ExecutionGroup
	abort := func(err error) (*Selector, error) {
		for _, g := range started {
			_ = g.ShutdownGracefully(context.Background())
		}
		return nil, err
	}

	if s.serverLoops, err = s.portable.NewGroup(s.workers, s.threadFactory(api.RoleServer, s.portable)); err != nil {
		return abort(err)
	}
	started = append(started, s.serverLoops)

	client, err := s.portable.NewGroup(s.workers, s.threadFactory(api.RoleClient, s.portable))
	if err != nil {
		return abort(err)
	}
	s.clientLoops = Colocate(client)
	started = append(started, s.clientLoops)

	if cfg.SelectCount == 0 {
		s.selectCount = s.workers
		s.selectLoops = s.serverLoops
		s.nativeSelect = s.nativeServer
	} else {
		s.selectCount = cfg.SelectCount
		sel, err := s.portable.NewGroup(s.selectCount, s.threadFactory(api.RoleServerSelect, s.portable))
		if err != nil {
			return abort(err)
		}
		s.selectLoops = Colocate(sel)
		s.nativeSelect = new(Slot[api.ExecutionGroup])
	}

	s.log.Debug().
		Bool("native", s.hasNative).
		Int("workers", s.workers).
		Int("select_count", s.selectCount).
		Bool("daemon", s.daemon).
		Msg("default native support")
	return s, nil
}

// OnServerSelect returns the group accepting new connections.
func (s *Selector) OnServerSelect(preferNative bool) (api.ExecutionGroup, error) {
	if s.disposed.Load() {
		return nil, api.ErrSelectorDisposed
	}
	if preferNative && s.hasNative {
		return s.cacheNativeSelectLoops()
	}
	return s.selectLoops, nil
}

// OnServer returns the group servicing server-side connections.
func (s *Selector) OnServer(preferNative bool) (api.ExecutionGroup, error) {
	if s.disposed.Load() {
		return nil, api.ErrSelectorDisposed
	}
	if preferNative && s.hasNative {
		return s.cacheNativeServerLoops()
	}
	return s.serverLoops, nil
}

// OnClient returns the group servicing client-side connections.
func (s *Selector) OnClient(preferNative bool) (api.ExecutionGroup, error) {
	if s.disposed.Load() {
		return nil, api.ErrSelectorDisposed
	}
	if preferNative && s.hasNative {
		return s.cacheNativeClientLoops()
	}
	return s.clientLoops, nil
}

// PreferNative reports whether the native transport is usable.
func (s *Selector) PreferNative() bool { return s.hasNative }

// Prefix returns the thread name namespace.
func (s *Selector) Prefix() string { return s.prefix }

func (s *Selector) cacheNativeSelectLoops() (api.ExecutionGroup, error) {
	if s.nativeSelect == s.nativeServer {
		return s.cacheNativeServerLoops()
	}
	return s.getOrCreate(s.nativeSelect, s.selectCount, api.RoleServerSelect, true)
}

func (s *Selector) cacheNativeServerLoops() (api.ExecutionGroup, error) {
	return s.getOrCreate(s.nativeServer, s.workers, api.RoleServer, false)
}

func (s *Selector) cacheNativeClientLoops() (api.ExecutionGroup, error) {
	return s.getOrCreate(s.nativeClient, s.workers, api.RoleClient, true)
}

// getOrCreate returns the group published in slot, building and publishing
// one if the slot is empty. Racing builders all construct a group without
// locking; the CAS picks one winner and every loser shuts its own group down
// before returning the winner's. A failed build never reaches the CAS, so
// the slot stays empty for the next caller.
func (s *Selector) getOrCreate(slot *Slot[api.ExecutionGroup], size int, role api.Role, colocate bool) (api.ExecutionGroup, error) {
	if g, ok := slot.Load(); ok {
		return g, nil
	}

	g, err := s.native.NewGroup(size, s.threadFactory(role, s.native))
	if err != nil {
		s.failed.Add(1)
		s.metrics.failed(role.String())
		s.log.Debug().Err(err).Stringer("role", role).Msg("native group construction failed")
		return nil, api.NewError(api.ErrCodeInternal, "native execution group construction failed").
			Wrap(err).
			WithContext("role", role.String()).
			WithContext("size", size)
	}
	if colocate {
		g = Colocate(g)
	}

	if !slot.CompareAndSwapEmpty(g) {
		s.raceLost.Add(1)
		s.metrics.discarded(role.String())
		s.discard(g, role)
		if s.disposed.Load() {
			return nil, disposedDuring(role)
		}
		winner, _ := slot.Load()
		return winner, nil
	}

	s.built.Add(1)
	s.metrics.created(role.String(), s.native.Transport())
	s.log.Debug().Stringer("role", role).Str("group", g.Name()).Int("size", size).Msg("native group published")

	// Dispose may have swept the slots before this publish.
	if s.disposed.Load() {
		s.discard(g, role)
		return nil, disposedDuring(role)
	}
	return g, nil
}

// disposedDuring reports a Dispose that overlapped a native build. The
// error still matches api.ErrSelectorDisposed.
func disposedDuring(role api.Role) error {
	return api.NewError(api.ErrCodeShutdown, "selector disposed during native group construction").
		Wrap(api.ErrSelectorDisposed).
		WithContext("role", role.String())
}

// discard shuts down a group nobody else has seen. Failures are logged only:
// the caller's result does not depend on them.
func (s *Selector) discard(g api.ExecutionGroup, role api.Role) {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := g.ShutdownGracefully(ctx); err != nil {
		s.log.Warn().Err(err).Stringer("role", role).Str("group", g.Name()).Msg("discarded group did not shut down cleanly")
	}
}

func (s *Selector) threadFactory(role api.Role, p Provider) *concurrency.ThreadFactory {
	return concurrency.NewThreadFactory(s.prefix, role.String()+"-"+p.Transport(), s.daemon, &s.counter)
}

// Dispose shuts down every group the selector owns, waiting at most until
// ctx ends for non-daemon workers. Later On* calls fail with
// api.ErrSelectorDisposed. Only the first call does any work.
func (s *Selector) Dispose(ctx context.Context) error {
	if !s.disposed.CompareAndSwap(false, true) {
		return nil
	}

	groups := []api.ExecutionGroup{s.serverLoops, s.clientLoops}
	if s.selectLoops != s.serverLoops {
		groups = append(groups, s.selectLoops)
	}
	slots := []*Slot[api.ExecutionGroup]{s.nativeServer, s.nativeClient}
	if s.nativeSelect != s.nativeServer {
		slots = append(slots, s.nativeSelect)
	}
	for _, slot := range slots {
		if g, ok := slot.Load(); ok {
			groups = append(groups, g)
		}
	}

	var errs []error
	for _, g := range groups {
		if err := g.ShutdownGracefully(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.log.Debug().Int("groups", len(groups)).Msg("selector disposed")
	return errors.Join(errs...)
}

// Disposed reports whether Dispose has been called.
func (s *Selector) Disposed() bool { return s.disposed.Load() }
