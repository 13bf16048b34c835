package liquidity

import (
	"sync/atomic"

	"sol-watchtower/internal/domain"
)

// SnapshotCache holds the single live snapshot. The whole value is swapped
// at the end of each poll cycle; readers never block writers and never
// observe a mix of two cycles.
type SnapshotCache struct {
	current atomic.Pointer[domain.LiquiditySnapshot]
}

// NewSnapshotCache seeds the cache with an empty pre-first-cycle snapshot
// (nil LastPoll, so staleness is distinguishable from a failed cycle).
func NewSnapshotCache() *SnapshotCache {
	c := &SnapshotCache{}
	c.current.Store(&domain.LiquiditySnapshot{})
	return c
}

// Get returns a copy of the latest completed snapshot.
func (c *SnapshotCache) Get() domain.LiquiditySnapshot {
	return *c.current.Load()
}

// Replace swaps in a new snapshot wholesale.
func (c *SnapshotCache) Replace(snap domain.LiquiditySnapshot) {
	c.current.Store(&snap)
}
