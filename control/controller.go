// File: control/controller.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Controller bundles config, metrics and debug probes behind api.Control.

package control

import (
	"runtime"

	"github.com/momentics/hioload-loops/api"
	"github.com/momentics/hioload-loops/internal/transport"
)

// Controller implements api.Control using the primitives in this package.
type Controller struct {
	config  *ConfigStore
	metrics *MetricsRegistry
	debug   *DebugProbes
}

var _ api.Control = (*Controller)(nil)

// NewController creates a controller with platform probes registered.
func NewController() *Controller {
	c := &Controller{
		config:  NewConfigStore(),
		metrics: NewMetricsRegistry(),
		debug:   NewDebugProbes(),
	}
	RegisterPlatformProbes(c.debug)
	return c
}

// RegisterPlatformProbes publishes host facts the selector depends on.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.os", func() any { return transport.Platform() })
	dp.RegisterProbe("platform.cpus", func() any { return runtime.NumCPU() })
	dp.RegisterProbe("platform.native_transport", func() any { return transport.HasNativeSupport() })
}

func (c *Controller) GetConfig() map[string]any {
	return c.config.GetSnapshot()
}

func (c *Controller) SetConfig(cfg map[string]any) error {
	c.config.SetConfig(cfg)
	return nil
}

// StoreConfig records a typed config section, see ConfigStore.Store.
func (c *Controller) StoreConfig(section any) error {
	return c.config.Store(section)
}

// Decode fills out from the current config snapshot.
func (c *Controller) Decode(out any) error {
	return c.config.Decode(out)
}

// Stats merges metrics with probe output under "debug.".
func (c *Controller) Stats() map[string]any {
	stats := c.metrics.GetSnapshot()
	debugStats := c.debug.DumpState()
	combined := make(map[string]any, len(stats)+len(debugStats))
	for k, v := range stats {
		combined[k] = v
	}
	for k, v := range debugStats {
		combined["debug."+k] = v
	}
	return combined
}

func (c *Controller) SetMetric(key string, value any) {
	c.metrics.Set(key, value)
}

func (c *Controller) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}
