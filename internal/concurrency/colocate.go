// File: internal/concurrency/colocate.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Colocation keeps all work of one connection on one worker for its lifetime.

package concurrency

import (
	"context"
	"sync"

	"github.com/momentics/hioload-loops/api"
)

// Colocated wraps a group with sticky key-to-worker assignment.
type Colocated struct {
	api.ExecutionGroup
	pins sync.Map // key -> api.Worker
}

var _ api.ColocatedGroup = (*Colocated)(nil)

// Colocate wraps g. Already colocated groups are returned unchanged.
func Colocate(g api.ExecutionGroup) api.ColocatedGroup {
	if c, ok := g.(api.ColocatedGroup); ok {
		return c
	}
	return &Colocated{ExecutionGroup: g}
}

// Pin returns the worker owning key, assigning the next one on first use.
func (c *Colocated) Pin(key any) api.Worker {
	if w, ok := c.pins.Load(key); ok {
		return w.(api.Worker)
	}
	w, _ := c.pins.LoadOrStore(key, c.Next())
	return w.(api.Worker)
}

// Unpin forgets the assignment for key.
func (c *Colocated) Unpin(key any) {
	c.pins.Delete(key)
}

// Pinned returns the number of live assignments.
func (c *Colocated) Pinned() int {
	n := 0
	c.pins.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Unwrap returns the underlying group.
func (c *Colocated) Unwrap() api.ExecutionGroup { return c.ExecutionGroup }

// ShutdownGracefully shuts the wrapped group down and drops all pins.
func (c *Colocated) ShutdownGracefully(ctx context.Context) error {
	err := c.ExecutionGroup.ShutdownGracefully(ctx)
	c.pins.Clear()
	return err
}
