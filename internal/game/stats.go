// internal/game/stats.go
package game

import "sync/atomic"

// counters belong to one search task and are merged into Stats when it ends.
type counters struct {
	nodes   uint64
	leaves  uint64
	cutoffs uint64
}

// Stats accumulates search counters across root tasks.
type Stats struct {
	nodes   uint64
	leaves  uint64
	cutoffs uint64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Nodes   uint64
	Leaves  uint64
	Cutoffs uint64
}

func (s *Stats) add(c counters) {
	atomic.AddUint64(&s.nodes, c.nodes)
	atomic.AddUint64(&s.leaves, c.leaves)
	atomic.AddUint64(&s.cutoffs, c.cutoffs)
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.nodes, 0)
	atomic.StoreUint64(&s.leaves, 0)
	atomic.StoreUint64(&s.cutoffs, 0)
}

// Snapshot reads every counter.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Nodes:   atomic.LoadUint64(&s.nodes),
		Leaves:  atomic.LoadUint64(&s.leaves),
		Cutoffs: atomic.LoadUint64(&s.cutoffs),
	}
}

// CutoffRate is cutoffs per interior node, in percent.
func (s StatsSnapshot) CutoffRate() float64 {
	interior := s.Nodes - s.Leaves
	if interior == 0 {
		return 0
	}
	return float64(s.Cutoffs) / float64(interior) * 100
}
