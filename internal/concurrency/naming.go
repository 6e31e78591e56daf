// File: internal/concurrency/naming.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Thread naming shared by every group one selector spawns.

package concurrency

import (
	"strconv"
	"sync/atomic"

	"github.com/momentics/hioload-loops/api"
)

// ThreadFactory names workers "<prefix>-<seq>". The counter is shared by all
// factories of one selector, so sequence numbers are unique and ordered
// across roles.
type ThreadFactory struct {
	prefix  string
	daemon  bool
	counter *atomic.Int64
}

var _ api.ThreadFactory = (*ThreadFactory)(nil)

// NewThreadFactory builds a factory for "<managerPrefix>-<role>" threads.
// A nil counter gets a private one.
func NewThreadFactory(managerPrefix, role string, daemon bool, counter *atomic.Int64) *ThreadFactory {
	if counter == nil {
		counter = new(atomic.Int64)
	}
	return &ThreadFactory{
		prefix:  managerPrefix + "-" + role,
		daemon:  daemon,
		counter: counter,
	}
}

// NewThread reserves the next sequence number.
func (f *ThreadFactory) NewThread() api.Thread {
	seq := f.counter.Add(1)
	return api.Thread{
		Name:   f.prefix + "-" + strconv.FormatInt(seq, 10),
		Seq:    seq,
		Daemon: f.daemon,
	}
}

// Prefix returns "<managerPrefix>-<role>".
func (f *ThreadFactory) Prefix() string { return f.prefix }

// Daemon reports the daemon flag stamped on every thread.
func (f *ThreadFactory) Daemon() bool { return f.daemon }
