// File: api/reactor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Defines the abstract interface for event-driven IO Reactors owned by native
// workers (epoll today).

package api

// Event encapsulates the result of an OS-level readiness notification
type Event struct {
	Fd       uintptr // file descriptor or system handle
	UserData uintptr // opaque application value, usually a pointer-to-connection/context
}

// Reactor defines the common interface for an event-loop that dispatches I/O events
// regardless of specific polling mechanism used.
type Reactor interface {
	// Register must associate a socket/file handle with the event loop
	Register(fd uintptr, userData uintptr) error

	// Wait must block up to timeoutMs (negative = forever) and fill events into
	// the output buffer when IO is ready
	Wait(events []Event, timeoutMs int) (int, error)

	// Close must cleanup the internal poller backend
	Close() error
}
