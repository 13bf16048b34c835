package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"sol-watchtower/internal/domain"
	"sol-watchtower/internal/ledger"
	"sol-watchtower/internal/liquidity"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type mockPoller struct {
	outcome liquidity.CycleOutcome
	calls   int
}

func (m *mockPoller) RunCycle(ctx context.Context) liquidity.CycleOutcome {
	m.calls++
	return m.outcome
}

type mockAddressRepo struct {
	inserted  []domain.TrackedAddress
	insertErr error
}

func (m *mockAddressRepo) InsertAddress(ctx context.Context, addr domain.TrackedAddress) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, addr)
	return nil
}

type fakeRedis struct {
	data   map[string][]byte
	setErr error
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string][]byte)}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = append([]byte(nil), v...)
	case string:
		f.data[key] = []byte(v)
	default:
		bytes, _ := json.Marshal(v)
		f.data[key] = bytes
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	if v, ok := f.data[key]; ok {
		return redis.NewStringResult(string(v), nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func successOutcome() liquidity.CycleOutcome {
	now := time.Now().UTC()
	return liquidity.CycleOutcome{
		Snapshot: domain.LiquiditySnapshot{
			TokenCount:   3,
			LastPoll:     &now,
			ActiveSource: "raydium",
		},
		Sightings: []liquidity.Sighting{
			{Address: "MintA", Source: "raydium"},
			{Address: "MintB", Source: "raydium"},
		},
	}
}

func TestLiquidityService_RunPollUpsertsAndPersists(t *testing.T) {
	t.Parallel()

	poller := &mockPoller{outcome: successOutcome()}
	repo := &mockAddressRepo{}
	fr := newFakeRedis()
	cache := liquidity.NewSnapshotCache()
	svc := NewLiquidityService(testTracer, poller, cache, ledger.New(0), repo, fr)

	result := svc.RunPoll(context.Background())
	if result.NewAddresses != 2 {
		t.Fatalf("expected 2 new addresses, got %d", result.NewAddresses)
	}
	if len(repo.inserted) != 2 {
		t.Fatalf("expected 2 persisted addresses, got %d", len(repo.inserted))
	}
	if _, ok := fr.data[snapshotCacheKey]; !ok {
		t.Fatal("snapshot not cached in redis")
	}
	if svc.AddressCount() != 2 {
		t.Fatalf("expected ledger size 2, got %d", svc.AddressCount())
	}

	// Second identical poll discovers nothing new.
	result = svc.RunPoll(context.Background())
	if result.NewAddresses != 0 {
		t.Fatalf("repeat sightings must not count as new, got %d", result.NewAddresses)
	}
}

func TestLiquidityService_PersistFailureIsRecordedNotFatal(t *testing.T) {
	t.Parallel()

	poller := &mockPoller{outcome: successOutcome()}
	repo := &mockAddressRepo{insertErr: errors.New("db down")}
	svc := NewLiquidityService(testTracer, poller, liquidity.NewSnapshotCache(), ledger.New(0), repo, nil)

	result := svc.RunPoll(context.Background())
	if result.NewAddresses != 2 {
		t.Fatalf("persist failure must not block ledger upserts, got %d", result.NewAddresses)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 persist errors recorded, got %v", result.Errors)
	}
}

func TestLiquidityService_RedisFailureOnlyLogged(t *testing.T) {
	t.Parallel()

	poller := &mockPoller{outcome: successOutcome()}
	fr := newFakeRedis()
	fr.setErr = errors.New("redis down")
	svc := NewLiquidityService(testTracer, poller, liquidity.NewSnapshotCache(), ledger.New(0), nil, fr)

	result := svc.RunPoll(context.Background())
	if result.NewAddresses != 2 {
		t.Fatalf("redis failure must not affect the result, got %+v", result)
	}
}
