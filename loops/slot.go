// File: loops/slot.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Publish-once cell over atomic.Pointer.

package loops

import "sync/atomic"

// Slot is a publish-once cell. It starts empty and can only move from empty
// to a value, via CompareAndSwapEmpty. Readers never block.
type Slot[T any] struct {
	p atomic.Pointer[T]
}

// Load returns the published value, if any.
func (s *Slot[T]) Load() (T, bool) {
	if p := s.p.Load(); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// CompareAndSwapEmpty publishes v if the slot is still empty and reports
// whether this call won.
func (s *Slot[T]) CompareAndSwapEmpty(v T) bool {
	return s.p.CompareAndSwap(nil, &v)
}
