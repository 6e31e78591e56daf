//go:build !linux

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub implementation for unsupported platforms.

package affinity

import (
	"fmt"
	"runtime"

	"github.com/momentics/hioload-loops/api"
)

// setAffinityPlatform is a stub for platforms where CPU affinity is not supported.
func setAffinityPlatform(cpuID int) error {
	return fmt.Errorf("affinity: cpu %d on %s: %w", cpuID, runtime.GOOS, api.ErrNotSupported)
}

func allowedCPUs() []int { return nil }

// Current is not available on this platform.
func Current() ([]int, error) {
	return nil, fmt.Errorf("affinity: %s: %w", runtime.GOOS, api.ErrNotSupported)
}
