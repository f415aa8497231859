package pipeline

import (
	"slices"
	"sync"
	"time"
)

// resolution is one timed model resolution.
type resolution struct {
	at    time.Time
	ms    int64
	nodes int
}

// StatsSnapshot summarizes the resolutions inside the stats window.
type StatsSnapshot struct {
	Count int     `json:"count"`
	Nodes int     `json:"nodes"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`

	// NodesPerSec is total nodes over total resolve time. Zero when every
	// resolution rounded down to 0ms.
	NodesPerSec  float64 `json:"nodes_per_sec"`
	P95MeshNodes float64 `json:"p95_nodes"`
}

// ResolveStats keeps the resolutions of the last window for the stats
// endpoint. Prometheus histograms carry the long-run view.
type ResolveStats struct {
	mu     sync.Mutex
	window time.Duration
	recent []resolution
}

func NewResolveStats(window time.Duration) *ResolveStats {
	if window <= 0 {
		window = time.Hour
	}
	return &ResolveStats{window: window, recent: make([]resolution, 0, 256)}
}

// Record adds one resolution that took durationMs and produced nodes nodes.
func (s *ResolveStats) Record(durationMs int64, nodes int) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expire(now)
	s.recent = append(s.recent, resolution{at: now, ms: max(durationMs, 0), nodes: max(nodes, 0)})
}

func (s *ResolveStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	s.expire(time.Now())
	recent := slices.Clone(s.recent)
	s.mu.Unlock()

	if len(recent) == 0 {
		return StatsSnapshot{}
	}

	ms := make([]float64, len(recent))
	nodes := make([]float64, len(recent))
	var totalMs int64
	var totalNodes int
	for i, r := range recent {
		ms[i] = float64(r.ms)
		nodes[i] = float64(r.nodes)
		totalMs += r.ms
		totalNodes += r.nodes
	}
	slices.Sort(ms)
	slices.Sort(nodes)

	snap := StatsSnapshot{
		Count:        len(recent),
		Nodes:        totalNodes,
		MinMs:        int64(ms[0]),
		MaxMs:        int64(ms[len(ms)-1]),
		AvgMs:        float64(totalMs) / float64(len(recent)),
		P50Ms:        percentile(ms, 50),
		P95Ms:        percentile(ms, 95),
		P99Ms:        percentile(ms, 99),
		P95MeshNodes: percentile(nodes, 95),
	}
	if totalMs > 0 {
		snap.NodesPerSec = float64(totalNodes) * 1000 / float64(totalMs)
	}
	return snap
}

// expire drops resolutions older than the window. Caller holds s.mu.
func (s *ResolveStats) expire(now time.Time) {
	cutoff := now.Add(-s.window)
	s.recent = slices.DeleteFunc(s.recent, func(r resolution) bool {
		return r.at.Before(cutoff)
	})
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []float64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return sorted[0]
	case pct >= 100:
		return sorted[len(sorted)-1]
	}
	pos := float64(len(sorted)-1) * pct / 100
	lo := int(pos)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}
