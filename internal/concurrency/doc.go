// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker goroutines, execution groups and thread naming backing the loop
// selector. A group is a fixed set of serial workers; native groups also
// give every worker its own reactor. Workers carry the thread name of the
// selector that created them as a pprof label.

package concurrency
