// File: loops/metrics.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Prometheus collectors for group construction and disposal.

package loops

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// selectorMetrics is the Prometheus view of a Selector. A nil value records
// nothing.
type selectorMetrics struct {
	groupsCreated   *prometheus.CounterVec
	groupsDiscarded *prometheus.CounterVec
	buildFailures   *prometheus.CounterVec
}

func newSelectorMetrics(reg prometheus.Registerer, prefix string, threads func() float64) *selectorMetrics {
	if reg == nil {
		return nil
	}
	f := promauto.With(reg)
	labels := prometheus.Labels{"selector": prefix}

	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        "hioload_loops_threads_spawned",
		Help:        "Worker threads named by the selector, including discarded groups",
		ConstLabels: labels,
	}, threads)

	return &selectorMetrics{
		groupsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "hioload_loops_groups_created_total",
			Help:        "Execution groups published by the selector",
			ConstLabels: labels,
		}, []string{"role", "transport"}),
		groupsDiscarded: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "hioload_loops_groups_discarded_total",
			Help:        "Native groups shut down after losing a creation race",
			ConstLabels: labels,
		}, []string{"role"}),
		buildFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "hioload_loops_group_build_failures_total",
			Help:        "Native group constructions that returned an error",
			ConstLabels: labels,
		}, []string{"role"}),
	}
}

func (m *selectorMetrics) created(role, transport string) {
	if m == nil {
		return
	}
	m.groupsCreated.WithLabelValues(role, transport).Inc()
}

func (m *selectorMetrics) discarded(role string) {
	if m == nil {
		return
	}
	m.groupsDiscarded.WithLabelValues(role).Inc()
}

func (m *selectorMetrics) failed(role string) {
	if m == nil {
		return
	}
	m.buildFailures.WithLabelValues(role).Inc()
}
