package engine

import (
	"log/slog"
	"time"
)

// Stats counts the work done by one search.
type Stats struct {
	Nodes        uint64
	Leaves       uint64
	BetaCutoffs  uint64
	AlphaCutoffs uint64
	CacheHits    uint64
	CacheStores  uint64
	Elapsed      time.Duration
}

// NodesPerSecond returns the search speed, 0 when no time was measured.
func (s Stats) NodesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Nodes) / s.Elapsed.Seconds()
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("nodes", s.Nodes),
		slog.Uint64("leaves", s.Leaves),
		slog.Uint64("beta_cutoffs", s.BetaCutoffs),
		slog.Uint64("alpha_cutoffs", s.AlphaCutoffs),
		slog.Uint64("cache_hits", s.CacheHits),
		slog.Uint64("cache_stores", s.CacheStores),
		slog.Duration("elapsed", s.Elapsed),
	)
}
