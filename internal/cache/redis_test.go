package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
)

func stubInit(t *testing.T) *string {
	t.Helper()

	origNewClient := newRedisClient
	origPing := pingRedis
	t.Cleanup(func() {
		newRedisClient = origNewClient
		pingRedis = origPing
		Client = nil
	})

	captured := new(string)
	newRedisClient = func(opts *redis.Options) *redis.Client {
		*captured = opts.Addr
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return nil
	}
	return captured
}

func TestInitRedisWithCustomAddr(t *testing.T) {
	t.Setenv("REDIS_URL", "redis:9999")
	captured := stubInit(t)

	InitRedis(context.Background())
	if *captured != "redis:9999" {
		t.Fatalf("expected custom addr, got %s", *captured)
	}
	if Client == nil {
		t.Fatal("expected client to be set")
	}
}

func TestInitRedisOptional(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	stubInit(t)

	InitRedis(context.Background())
	if Client != nil {
		t.Fatal("expected no client without REDIS_URL")
	}
}

func TestInitRedisUnreachableIsNotFatal(t *testing.T) {
	t.Setenv("REDIS_URL", "redis:9999")
	stubInit(t)
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return errors.New("connection refused")
	}

	InitRedis(context.Background())
	if Client != nil {
		t.Fatal("expected no client when ping fails")
	}
}
