// File: loops/default.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Process-wide default Selector shared by connectors.

package loops

import (
	"context"
	"sync"

	"github.com/momentics/hioload-loops/control"
	"github.com/momentics/hioload-loops/internal/logger"
)

var (
	defaultMu       sync.Mutex
	defaultSelector *Selector
)

// Default returns the process-wide Selector shared by connectors, creating
// it on first use from HIOLOAD_* environment configuration. Invalid
// environment configuration falls back to built-in defaults.
func Default() *Selector {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultSelector != nil && !defaultSelector.Disposed() {
		return defaultSelector
	}

	log := logger.Component("loops")
	var opts []Option
	if cfg, err := control.LoadConfig(""); err != nil {
		log.Warn().Err(err).Msg("ignoring loop configuration from environment")
	} else {
		opts = FromConfig(cfg.Loops)
	}

	s, err := New(opts...)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to default loop configuration")
		if s, err = New(); err != nil {
			panic(err)
		}
	}
	defaultSelector = s
	return s
}

// SetDefault installs s as the shared Selector and returns the previous one,
// which the caller now owns. A nil s resets to lazy creation.
func SetDefault(s *Selector) *Selector {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultSelector
	defaultSelector = s
	return prev
}

// DisposeDefault disposes the shared Selector, if any. The next Default call
// builds a fresh one.
func DisposeDefault(ctx context.Context) error {
	defaultMu.Lock()
	s := defaultSelector
	defaultSelector = nil
	defaultMu.Unlock()
	if s == nil {
		return nil
	}
	return s.Dispose(ctx)
}
