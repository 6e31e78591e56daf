// File: loops/provider.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Portable and native execution group providers.

package loops

import (
	"github.com/rs/zerolog"

	"github.com/momentics/hioload-loops/api"
	"github.com/momentics/hioload-loops/internal/concurrency"
	"github.com/momentics/hioload-loops/internal/transport"
	"github.com/momentics/hioload-loops/reactor"
)

// Provider builds execution groups of one flavor.
type Provider interface {
	// NewGroup starts size workers named by factory.
	NewGroup(size int, factory api.ThreadFactory) (api.ExecutionGroup, error)
	Native() bool
	// Transport is the thread-name suffix, "nio" or "epoll".
	Transport() string
}

// PortableProvider builds plain goroutine groups. It works everywhere.
type PortableProvider struct {
	Logger zerolog.Logger
}

func (p PortableProvider) NewGroup(size int, factory api.ThreadFactory) (api.ExecutionGroup, error) {
	g, err := concurrency.NewGroup(size, factory, concurrency.GroupConfig{Logger: p.Logger})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (PortableProvider) Native() bool { return false }

func (PortableProvider) Transport() string { return transport.PortableName }

// NativeProvider builds groups whose workers each own an epoll reactor.
type NativeProvider struct {
	Logger zerolog.Logger
	// NewReactor defaults to reactor.New.
	NewReactor func() (api.Reactor, error)
	// Affinity pins each worker to its own CPU.
	Affinity bool
}

func (p NativeProvider) NewGroup(size int, factory api.ThreadFactory) (api.ExecutionGroup, error) {
	newReactor := p.NewReactor
	if newReactor == nil {
		newReactor = reactor.New
	}
	g, err := concurrency.NewGroup(size, factory, concurrency.GroupConfig{
		NewReactor: newReactor,
		Affinity:   p.Affinity,
		Logger:     p.Logger,
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (NativeProvider) Native() bool { return true }

func (NativeProvider) Transport() string { return transport.NativeName }

// Colocate wraps g so each connection key stays on one worker.
func Colocate(g api.ExecutionGroup) api.ColocatedGroup {
	return concurrency.Colocate(g)
}
