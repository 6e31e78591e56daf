// File: loops/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package loops hands out execution groups to connectors.
//
// A Selector owns three portable groups created up front (accept, server
// I/O, client I/O) and builds the native (epoll) equivalents lazily, at most
// once each, the first time a caller prefers them. Concurrent first calls
// race without a lock: every racer may build a group, exactly one publishes
// it through a Slot and the others shut theirs down before returning the
// winner.
//
// When no dedicated accept size is configured the accept slot is the server
// slot, so the native accept and server groups are one and the same.
//
//	sel, err := loops.New(loops.WithPrefix("io"), loops.WithWorkers(4))
//	if err != nil {
//		return err
//	}
//	defer sel.Dispose(context.Background())
//
//	g, err := sel.OnServer(sel.PreferNative())
//
// Connectors in one process normally share Default().
package loops
