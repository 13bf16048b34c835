// Package source holds the ordered endpoint registry consumed by the
// failover poller.
package source

import (
	"sort"

	"sol-watchtower/internal/domain"
)

// Registry is an immutable, priority-ordered view of the configured
// sources. Built once at startup; safe for concurrent reads.
type Registry struct {
	byClass map[domain.SourceClass][]domain.Source
}

// NewRegistry groups sources by class and orders each chain by ascending
// priority. Input order breaks priority ties.
func NewRegistry(sources []domain.Source) *Registry {
	byClass := make(map[domain.SourceClass][]domain.Source)
	for _, s := range sources {
		byClass[s.Class] = append(byClass[s.Class], s)
	}
	for class, chain := range byClass {
		sort.SliceStable(chain, func(i, j int) bool { return chain[i].Priority < chain[j].Priority })
		byClass[class] = chain
	}
	return &Registry{byClass: byClass}
}

// Chain returns the failover chain for a class as a defensive copy.
func (r *Registry) Chain(class domain.SourceClass) []domain.Source {
	chain := r.byClass[class]
	if len(chain) == 0 {
		return nil
	}
	out := make([]domain.Source, len(chain))
	copy(out, chain)
	return out
}

// Primary returns the priority-0 source for a class, if any.
func (r *Registry) Primary(class domain.SourceClass) (domain.Source, bool) {
	chain := r.byClass[class]
	if len(chain) == 0 {
		return domain.Source{}, false
	}
	return chain[0], true
}

// Len reports the number of sources registered for a class.
func (r *Registry) Len(class domain.SourceClass) int {
	return len(r.byClass[class])
}
