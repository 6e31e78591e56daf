// File: internal/transport/feature_detect.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Detects once per process whether the native (epoll) transport can be used.

package transport

import (
	"os"
	"runtime"
	"strings"
	"sync"
)

// NoNativeEnv disables the native transport when set to a true-ish value.
const NoNativeEnv = "HIOLOAD_NO_NATIVE"

const (
	NativeName   = "epoll"
	PortableName = "nio"
)

var nativeSupport = sync.OnceValue(DetectNativeSupport)

// HasNativeSupport reports whether native execution groups can be built on
// this host. The probe runs on first call and the answer is fixed for the
// process lifetime. It never panics; absence is a normal outcome.
func HasNativeSupport() bool {
	return nativeSupport()
}

// DetectNativeSupport runs the probe without caching.
func DetectNativeSupport() (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	if disabledByEnv() {
		return false
	}
	return probeNative()
}

// RuntimeTransportName returns the transport name used in thread names.
func RuntimeTransportName(native bool) string {
	if native {
		return NativeName
	}
	return PortableName
}

// Platform returns the OS the probe ran on.
func Platform() string {
	return runtime.GOOS
}

func disabledByEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(NoNativeEnv))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
