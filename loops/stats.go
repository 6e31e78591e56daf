// File: loops/stats.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Selector counters exposed through api.Control.

package loops

import (
	"github.com/momentics/hioload-loops/api"
)

// Stats is a point-in-time view of a Selector.
type Stats struct {
	Native         bool
	Disposed       bool
	ThreadsSpawned int64
	// GroupsBuilt counts published native groups.
	GroupsBuilt int64
	// RaceLosses counts native groups discarded after losing a CAS.
	RaceLosses    int64
	BuildFailures int64
	// Published lists the roles whose native slot holds a group.
	Published []string
}

// Stats returns current counters.
func (s *Selector) Stats() Stats {
	st := Stats{
		Native:         s.hasNative,
		Disposed:       s.disposed.Load(),
		ThreadsSpawned: s.counter.Load(),
		GroupsBuilt:    s.built.Load(),
		RaceLosses:     s.raceLost.Load(),
		BuildFailures:  s.failed.Load(),
	}
	if _, ok := s.nativeSelect.Load(); ok {
		st.Published = append(st.Published, api.RoleServerSelect.String())
	}
	if _, ok := s.nativeServer.Load(); ok {
		st.Published = append(st.Published, api.RoleServer.String())
	}
	if _, ok := s.nativeClient.Load(); ok {
		st.Published = append(st.Published, api.RoleClient.String())
	}
	return st
}

// RegisterProbes exposes the selector state through c's debug probes.
func (s *Selector) RegisterProbes(c api.Control) {
	base := "loops." + s.prefix
	c.RegisterDebugProbe(base+".native", func() any { return s.hasNative })
	c.RegisterDebugProbe(base+".stats", func() any { return s.Stats() })
}

// PublishStats copies the counters into c's metrics.
func (s *Selector) PublishStats(c api.Control) {
	st := s.Stats()
	base := "loops." + s.prefix
	c.SetMetric(base+".threads_spawned", st.ThreadsSpawned)
	c.SetMetric(base+".groups_built", st.GroupsBuilt)
	c.SetMetric(base+".race_losses", st.RaceLosses)
	c.SetMetric(base+".build_failures", st.BuildFailures)
}
