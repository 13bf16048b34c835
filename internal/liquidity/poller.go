package liquidity

import (
	"context"
	"fmt"
	"log"
	"time"

	"sol-watchtower/internal/domain"
	"sol-watchtower/internal/fetch"
	"sol-watchtower/internal/source"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Fetcher is the bounded fetch primitive the poller drives.
type Fetcher interface {
	Fetch(ctx context.Context, url string, headers map[string]string) fetch.Outcome
}

// Sighting is an address observed during a cycle, tagged with the source
// that reported it.
type Sighting struct {
	Address string
	Source  string
}

// CycleOutcome is everything one poll cycle produced. The snapshot inside
// has already been committed to the cache when RunCycle returns.
type CycleOutcome struct {
	Snapshot  domain.LiquiditySnapshot
	Sightings []Sighting
	Errors    []string
}

// Poller walks the liquidity failover chain in strict priority order and
// commits exactly one snapshot per cycle, success or not.
type Poller struct {
	tracer   trace.Tracer
	fetcher  Fetcher
	registry *source.Registry
	cache    *SnapshotCache

	now func() time.Time
}

// NewPoller creates a failover poller over the given registry.
func NewPoller(tracer trace.Tracer, fetcher Fetcher, registry *source.Registry, cache *SnapshotCache) *Poller {
	return &Poller{
		tracer:   tracer,
		fetcher:  fetcher,
		registry: registry,
		cache:    cache,
		now:      time.Now,
	}
}

// RunCycle tries each source in the primary chain until one yields usable
// data (ok and count > 0); an empty result from a reachable source does
// not win. The auxiliary class is polled independently and its count added
// to the total without participating in failover. The snapshot is replaced
// atomically at the end of the cycle in every case, and LastPoll always
// advances so staleness stays measurable.
func (p *Poller) RunCycle(ctx context.Context) CycleOutcome {
	_, span := p.tracer.Start(ctx, "liquidity.run-cycle")
	defer span.End()

	outcome := CycleOutcome{}

	chain := p.registry.Chain(domain.ClassLiquidity)
	winnerIdx := -1
	count := 0
	for i, src := range chain {
		payload, err := p.fetchAndParse(ctx, src)
		if err != nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s: %v", src.Name, err))
			log.Printf("liquidity source %s unusable: %v", src.Name, err)
			continue
		}
		winnerIdx = i
		count = payload.Count
		for _, addr := range payload.Addresses {
			outcome.Sightings = append(outcome.Sightings, Sighting{Address: addr, Source: src.Name})
		}
		break
	}

	for _, src := range p.registry.Chain(domain.ClassAuxLiquidity) {
		payload, err := p.fetchAndParse(ctx, src)
		if err != nil {
			// Auxiliary sources contribute zero on failure; they never
			// fail the cycle.
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s: %v", src.Name, err))
			continue
		}
		count += payload.Count
		for _, addr := range payload.Addresses {
			outcome.Sightings = append(outcome.Sightings, Sighting{Address: addr, Source: src.Name})
		}
	}

	now := p.now().UTC()
	snap := domain.LiquiditySnapshot{
		TokenCount:   count,
		LastPoll:     &now,
		ActiveSource: domain.AllFailed,
	}
	if winnerIdx >= 0 {
		snap.ActiveSource = chain[winnerIdx].Name
		snap.BackupUsed = winnerIdx != 0
	}
	p.cache.Replace(snap)

	span.SetAttributes(
		attribute.String("active_source", snap.ActiveSource),
		attribute.Int("token_count", snap.TokenCount),
		attribute.Bool("backup_used", snap.BackupUsed),
	)

	outcome.Snapshot = snap
	return outcome
}

func (p *Poller) fetchAndParse(ctx context.Context, src domain.Source) (Payload, error) {
	out := p.fetcher.Fetch(ctx, src.URL, src.Headers)
	if out.Err != nil {
		return Payload{}, out.Err
	}
	payload, err := Parse(src.Name, out.Body)
	if err != nil {
		return Payload{}, err
	}
	if payload.Count == 0 {
		return Payload{}, fetch.ErrEmptyResult
	}
	return payload, nil
}
