// File: api/executor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Execution group contract: a fixed pool of named workers running I/O callbacks.

package api

import "context"

// Thread describes a worker goroutine before it is started.
type Thread struct {
	Name   string // "<prefix>-<role>-<seq>"
	Seq    int64  // manager-wide sequence number
	Daemon bool   // daemon workers are not joined on shutdown
}

// ThreadFactory hands out thread identities for new workers.
type ThreadFactory interface {
	NewThread() Thread
	// Prefix returns the "<prefix>-<role>" part shared by all threads.
	Prefix() string
}

// Worker is a single serial executor within a group.
type Worker interface {
	Name() string
	Seq() int64
	Daemon() bool
	// Submit schedules task on this worker. Tasks run in submission order.
	Submit(task func()) error
	// Pending returns queued, not yet started tasks.
	Pending() int
}

// NativeWorker is a Worker backed by a platform reactor.
type NativeWorker interface {
	Worker
	Reactor() Reactor
}

// ExecutionGroup is a runnable pool of workers.
type ExecutionGroup interface {
	GracefulShutdown

	// ID is unique per group instance.
	ID() string
	// Name is the thread prefix of the group, e.g. "io-server-epoll".
	Name() string
	Size() int
	Native() bool

	// Next picks a worker, round-robin.
	Next() Worker
	Workers() []Worker

	// Submit schedules task on Next().
	Submit(task func()) error

	IsShutdown() bool
	// Done is closed once every worker has exited.
	Done() <-chan struct{}
}

// ColocatedGroup pins every task of one logical connection to a single worker.
type ColocatedGroup interface {
	ExecutionGroup

	// Pin returns the worker owning key, assigning one on first use.
	Pin(key any) Worker
	// Unpin releases the assignment for key.
	Unpin(key any)
	// Unwrap returns the group being colocated.
	Unwrap() ExecutionGroup
}

// GracefulShutdown is implemented by components that release workers.
type GracefulShutdown interface {
	// ShutdownGracefully stops accepting tasks, lets queued ones finish and
	// releases workers. Calling it more than once is safe.
	ShutdownGracefully(ctx context.Context) error
}
