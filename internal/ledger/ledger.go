// Package ledger tracks every pool or token address seen across poll
// cycles, deduplicated, with first and last sighting times.
package ledger

import (
	"sync"
	"time"

	"sol-watchtower/internal/domain"
)

// DefaultCapacity bounds the ledger so a noisy source cannot grow it
// without limit. At capacity the entry with the stalest last sighting
// is evicted to make room.
const DefaultCapacity = 100_000

// Ledger is a bounded, deduplicating address registry. Safe for
// concurrent use.
type Ledger struct {
	mu       sync.Mutex
	entries  map[string]*domain.TrackedAddress
	capacity int
}

// New creates a ledger with the given capacity. Zero or negative means
// DefaultCapacity.
func New(capacity int) *Ledger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ledger{
		entries:  make(map[string]*domain.TrackedAddress),
		capacity: capacity,
	}
}

// Upsert records a sighting of address from source at the given time.
// The first sighting fixes FirstSeen and Source for good; later
// sightings only advance LastSeen, regardless of which source reported
// them. Returns true when the address is new to the ledger.
func (l *Ledger) Upsert(address, source string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[address]; ok {
		if now.After(e.LastSeen) {
			e.LastSeen = now
		}
		return false
	}

	if len(l.entries) >= l.capacity {
		l.evictStalest()
	}
	l.entries[address] = &domain.TrackedAddress{
		Address:   address,
		Source:    source,
		FirstSeen: now,
		LastSeen:  now,
	}
	return true
}

// evictStalest drops the entry with the oldest LastSeen. Caller holds mu.
func (l *Ledger) evictStalest() {
	var victim string
	var oldest time.Time
	first := true
	for addr, e := range l.entries {
		if first || e.LastSeen.Before(oldest) {
			victim = addr
			oldest = e.LastSeen
			first = false
		}
	}
	if victim != "" {
		delete(l.entries, victim)
	}
}

// Size returns the number of distinct addresses tracked.
func (l *Ledger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Get returns the entry for address, if tracked.
func (l *Ledger) Get(address string) (domain.TrackedAddress, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[address]
	if !ok {
		return domain.TrackedAddress{}, false
	}
	return *e, true
}

// Sample returns up to n entries in map iteration order. It is a
// diagnostic view, not a stable listing.
func (l *Ledger) Sample(n int) []domain.TrackedAddress {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]domain.TrackedAddress, 0, n)
	for _, e := range l.entries {
		out = append(out, *e)
		if len(out) == n {
			break
		}
	}
	return out
}
