// File: api/selector.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Contract connectors use to obtain execution groups per role.

package api

// EventLoopSelector hands out execution groups for accept, server I/O and
// client I/O. With preferNative false, or when the native transport is not
// available, the portable group for the role is returned and err is nil.
type EventLoopSelector interface {
	OnServerSelect(preferNative bool) (ExecutionGroup, error)
	OnServer(preferNative bool) (ExecutionGroup, error)
	OnClient(preferNative bool) (ExecutionGroup, error)
	// PreferNative reports whether the native transport is usable on this host.
	PreferNative() bool
}
