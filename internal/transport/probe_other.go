//go:build !linux
// +build !linux

// File: internal/transport/probe_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

// probeNative reports false: only epoll is supported as native transport.
func probeNative() bool {
	return false
}
