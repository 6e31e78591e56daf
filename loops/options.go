// File: loops/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Functional options and config mapping for Selector.

package loops

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/ygrebnov/errorc"

	"github.com/momentics/hioload-loops/api"
	"github.com/momentics/hioload-loops/control"
	"github.com/momentics/hioload-loops/internal/logger"
	"github.com/momentics/hioload-loops/internal/transport"
)

// config holds Selector construction parameters. It is immutable once the
// Selector is built.
type config struct {
	// Prefix namespaces thread names: "<prefix>-<role>-<transport>-<seq>".
	Prefix string

	// Workers sizes the server and client groups.
	Workers int

	// SelectCount sizes a dedicated accept group. Zero means unset: the
	// accept group is the server group.
	SelectCount int

	// Daemon workers are not joined when a group shuts down.
	Daemon bool

	// Affinity pins native workers to CPUs.
	Affinity bool

	// ShutdownTimeout bounds the wait for a discarded group during a lost
	// creation race.
	ShutdownTimeout time.Duration

	portable   Provider
	native     Provider
	probe      func() bool
	log        *zerolog.Logger
	registerer prometheus.Registerer
}

func defaultConfig() config {
	d := control.DefaultLoopsConfig()
	return config{
		Prefix:          d.Prefix,
		Workers:         d.Workers,
		SelectCount:     d.SelectCount,
		Daemon:          d.Daemon,
		Affinity:        d.Affinity,
		ShutdownTimeout: 5 * time.Second,
		probe:           transport.HasNativeSupport,
	}
}

// Option configures a Selector.
type Option func(*config) error

// WithPrefix sets the thread name namespace (must be non-empty).
func WithPrefix(prefix string) Option {
	return func(cfg *config) error {
		if prefix == "" {
			return errorc.With(api.ErrInvalidArgument, errorc.String("prefix", "must not be empty"))
		}
		cfg.Prefix = prefix
		return nil
	}
}

// WithWorkers sets the size of the server and client groups (must be > 0).
func WithWorkers(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return errorc.With(api.ErrInvalidArgument, errorc.String("workers", strconv.Itoa(n)))
		}
		cfg.Workers = n
		return nil
	}
}

// WithSelectCount gives the accept role its own group of n workers (must be > 0).
func WithSelectCount(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return errorc.With(api.ErrInvalidArgument, errorc.String("select_count", strconv.Itoa(n)))
		}
		cfg.SelectCount = n
		return nil
	}
}

// WithDaemon sets the daemon flag stamped on every worker.
func WithDaemon(daemon bool) Option {
	return func(cfg *config) error { cfg.Daemon = daemon; return nil }
}

// WithAffinity pins every native worker to one CPU for its lifetime.
// Portable workers are never pinned.
func WithAffinity(pin bool) Option {
	return func(cfg *config) error { cfg.Affinity = pin; return nil }
}

// WithShutdownTimeout bounds the shutdown of a group discarded after a lost race.
func WithShutdownTimeout(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return errorc.With(api.ErrInvalidArgument, errorc.String("shutdown_timeout", d.String()))
		}
		cfg.ShutdownTimeout = d
		return nil
	}
}

// WithProviders replaces the group providers. A nil argument keeps the default.
func WithProviders(portable, native Provider) Option {
	return func(cfg *config) error {
		if portable != nil {
			if portable.Native() {
				return errorc.With(api.ErrInvalidArgument, errorc.String("portable", "provider is native"))
			}
			cfg.portable = portable
		}
		if native != nil {
			cfg.native = native
		}
		return nil
	}
}

// WithNativeProbe replaces the native transport availability probe. It is
// called once, during New.
func WithNativeProbe(probe func() bool) Option {
	return func(cfg *config) error {
		if probe == nil {
			return errorc.With(api.ErrInvalidArgument, errorc.String("probe", "nil"))
		}
		cfg.probe = probe
		return nil
	}
}

// WithLogger sets the logger. Defaults to the "loops" component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *config) error { cfg.log = &l; return nil }
}

// WithMetrics registers Prometheus collectors on reg. Without it no
// collectors are created.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(cfg *config) error { cfg.registerer = reg; return nil }
}

// FromConfig turns a loaded LoopsConfig into options.
func FromConfig(c control.LoopsConfig) []Option {
	opts := []Option{
		WithPrefix(c.Prefix),
		WithWorkers(c.Workers),
		WithDaemon(c.Daemon),
		WithAffinity(c.Affinity),
	}
	if c.SelectCount > 0 {
		opts = append(opts, WithSelectCount(c.SelectCount))
	}
	return opts
}

func resolveOptions(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	if cfg.log == nil {
		l := logger.Component("loops")
		cfg.log = &l
	}
	if cfg.portable == nil {
		cfg.portable = PortableProvider{Logger: *cfg.log}
	}
	if cfg.native == nil {
		cfg.native = NativeProvider{Logger: *cfg.log, Affinity: cfg.Affinity}
	}
	return cfg, nil
}
