// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral event reactor constructor used by native workers.

package reactor

import "github.com/momentics/hioload-loops/api"

// EventReactor is the reactor contract native workers own.
type EventReactor = api.Reactor

// Event contains event information returned by Wait call.
type Event = api.Event

// New constructs the reactor for this platform.
func New() (EventReactor, error) {
	return NewReactor()
}
