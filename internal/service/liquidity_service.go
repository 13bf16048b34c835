package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"sol-watchtower/internal/domain"
	"sol-watchtower/internal/ledger"
	"sol-watchtower/internal/liquidity"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const snapshotCacheTTL = 90 * time.Second

const snapshotCacheKey = "liquidity:snapshot"

// LiquidityPoller runs one failover cycle.
type LiquidityPoller interface {
	RunCycle(ctx context.Context) liquidity.CycleOutcome
}

// AddressRepository persists newly discovered addresses.
type AddressRepository interface {
	InsertAddress(ctx context.Context, addr domain.TrackedAddress) error
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// LiquidityService orchestrates poll cycles, address deduplication,
// persistence, and snapshot caching.
type LiquidityService struct {
	tracer trace.Tracer
	poller LiquidityPoller
	cache  *liquidity.SnapshotCache
	ledger *ledger.Ledger
	repo   AddressRepository
	redis  RedisClient
}

func NewLiquidityService(
	tracer trace.Tracer,
	poller LiquidityPoller,
	cache *liquidity.SnapshotCache,
	addrLedger *ledger.Ledger,
	repo AddressRepository,
	redisClient RedisClient,
) *LiquidityService {
	return &LiquidityService{
		tracer: tracer,
		poller: poller,
		cache:  cache,
		ledger: addrLedger,
		repo:   repo,
		redis:  redisClient,
	}
}

// RunPoll executes one liquidity cycle and applies its side effects:
// dedup-ledger upserts for every sighting, best-effort persistence of
// new addresses, and a Redis copy of the committed snapshot. Side
// effect failures are recorded in the result, never returned as errors.
func (s *LiquidityService) RunPoll(ctx context.Context) domain.LiquidityRunResult {
	_, span := s.tracer.Start(ctx, "liquidity-service.run-poll")
	defer span.End()

	outcome := s.poller.RunCycle(ctx)
	result := domain.LiquidityRunResult{
		Snapshot: outcome.Snapshot,
		Errors:   outcome.Errors,
	}

	now := time.Now().UTC()
	for _, sighting := range outcome.Sightings {
		if !s.ledger.Upsert(sighting.Address, sighting.Source, now) {
			continue
		}
		result.NewAddresses++
		if s.repo != nil {
			entry, _ := s.ledger.Get(sighting.Address)
			if err := s.repo.InsertAddress(ctx, entry); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("persist %s: %v", sighting.Address, err))
			}
		}
	}

	if s.redis != nil {
		if err := s.cacheSnapshot(ctx, outcome.Snapshot); err != nil {
			log.Printf("redis snapshot write error: %v", err)
		}
	}

	log.Printf("liquidity poll: source=%s tokens=%d new_addresses=%d errors=%d",
		result.Snapshot.ActiveSource, result.Snapshot.TokenCount, result.NewAddresses, len(result.Errors))
	return result
}

// Snapshot returns the latest committed snapshot without triggering a
// poll.
func (s *LiquidityService) Snapshot() domain.LiquiditySnapshot {
	return s.cache.Get()
}

// AddressCount returns the number of distinct addresses tracked.
func (s *LiquidityService) AddressCount() int {
	return s.ledger.Size()
}

// AddressSample returns up to n tracked addresses for inspection.
func (s *LiquidityService) AddressSample(n int) []domain.TrackedAddress {
	return s.ledger.Sample(n)
}

func (s *LiquidityService) cacheSnapshot(ctx context.Context, snap domain.LiquiditySnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, snapshotCacheKey, data, snapshotCacheTTL).Err()
}
