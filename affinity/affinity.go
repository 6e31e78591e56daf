// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are
// located in separate files guarded by build tags.

package affinity

import "runtime"

// SetAffinity locks the calling goroutine to its OS thread and binds that
// thread to the logical CPU cpuID. The goroutine stays locked until it exits,
// at which point the runtime discards the thread instead of reusing it.
func SetAffinity(cpuID int) error {
	runtime.LockOSThread()
	return setAffinityPlatform(cpuID)
}

// CPUFor maps a worker index onto the CPUs this process may run on,
// wrapping around when there are more workers than CPUs.
func CPUFor(index int) int {
	cpus := allowedCPUs()
	if len(cpus) == 0 {
		return index % runtime.NumCPU()
	}
	return cpus[index%len(cpus)]
}
