// Package job runs the periodic poll loops. Each loop owns a
// single-flight guard so a slow cycle is never overlapped by the next
// tick; the late tick is simply dropped.
package job

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"sol-watchtower/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type LiquidityRunner interface {
	RunPoll(ctx context.Context) domain.LiquidityRunResult
}

// LiquidityPollJob drives the liquidity failover cycle on a fixed
// interval.
type LiquidityPollJob struct {
	tracer       trace.Tracer
	runner       LiquidityRunner
	pollInterval time.Duration
	running      atomic.Bool
}

func NewLiquidityPollJob(tracer trace.Tracer, runner LiquidityRunner, pollInterval time.Duration) *LiquidityPollJob {
	if pollInterval <= 0 {
		pollInterval = time.Minute
	}
	return &LiquidityPollJob{tracer: tracer, runner: runner, pollInterval: pollInterval}
}

// Start polls until ctx is cancelled. The first cycle runs immediately.
func (j *LiquidityPollJob) Start(ctx context.Context) {
	log.Println("Liquidity poll job starting...")

	j.RunOnce(ctx)
	ticker := time.NewTicker(j.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Liquidity poll job stopped")
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

// RunOnce runs a single cycle unless one is already in flight, in
// which case it is a no-op and reports false.
func (j *LiquidityPollJob) RunOnce(ctx context.Context) bool {
	if !j.running.CompareAndSwap(false, true) {
		log.Println("liquidity poll skipped: previous cycle still running")
		return false
	}
	defer j.running.Store(false)

	_, span := j.tracer.Start(ctx, "liquidity-job.run-once")
	defer span.End()

	result := j.runner.RunPoll(ctx)
	for _, e := range result.Errors {
		log.Printf("liquidity poll warning: %s", e)
	}
	return true
}

type WalletRunner interface {
	RunPoll(ctx context.Context) domain.WalletRunResult
}

// WalletPollJob drives swap ingestion for the watchlist on its own
// interval, independent of the liquidity loop.
type WalletPollJob struct {
	tracer       trace.Tracer
	runner       WalletRunner
	pollInterval time.Duration
	running      atomic.Bool
}

func NewWalletPollJob(tracer trace.Tracer, runner WalletRunner, pollInterval time.Duration) *WalletPollJob {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Minute
	}
	return &WalletPollJob{tracer: tracer, runner: runner, pollInterval: pollInterval}
}

// Start polls until ctx is cancelled. The first cycle is delayed by a
// few seconds to stagger startup traffic with the liquidity loop.
func (j *WalletPollJob) Start(ctx context.Context) {
	log.Println("Wallet poll job starting...")

	select {
	case <-ctx.Done():
		return
	case <-time.After(5 * time.Second):
	}

	j.RunOnce(ctx)
	ticker := time.NewTicker(j.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Wallet poll job stopped")
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

// RunOnce runs a single ingestion cycle unless one is already in
// flight.
func (j *WalletPollJob) RunOnce(ctx context.Context) bool {
	if !j.running.CompareAndSwap(false, true) {
		log.Println("wallet poll skipped: previous cycle still running")
		return false
	}
	defer j.running.Store(false)

	_, span := j.tracer.Start(ctx, "wallet-job.run-once")
	defer span.End()

	result := j.runner.RunPoll(ctx)
	for _, e := range result.Errors {
		log.Printf("wallet poll warning: %s", e)
	}
	return true
}
