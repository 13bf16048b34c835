package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"sol-watchtower/internal/bot"
	"sol-watchtower/internal/config"
	"sol-watchtower/internal/domain"
	"sol-watchtower/internal/service"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestMainBootstrap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	restore := stubServerDeps()
	defer restore()

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
}

func stubServerDeps() func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitPostgres := initPostgresFunc
	origInitRedis := initRedisFunc
	origInitTracer := initTracerFunc
	origNewProvider := newHeliusProviderFunc
	origStartJob := startJobFunc
	origStartTelegram := startTelegramBotFunc
	origNewRouter := newRouterFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc
	origStartHTTP := startHTTPServerFunc
	origShutdownHTTP := shutdownHTTPServerFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			HeliusAPIKey:         "test-key",
			LiquidityPollSecs:    1,
			WalletPollSecs:       1,
			FetchTimeoutSecs:     1,
			FetchMaxBytes:        1024,
			SurvivalThresholdMin: 5,
			RaydiumURL:           "http://example/pools",
			DexScreenerURL:       "http://example/pairs",
			GeckoTerminalURL:     "http://example/data",
			OrcaURL:              "http://example/whirlpools",
		}
	}
	initPostgresFunc = func(context.Context) {}
	initRedisFunc = func(context.Context) {}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	newHeliusProviderFunc = func(trace.Tracer, string) service.SwapProvider { return stubSwapProvider{} }
	startJobFunc = func(func(ctx context.Context), context.Context) {}
	startTelegramBotFunc = func(bot.SnapshotReader, bot.WalletCommander, int64) service.Notifier { return nil }
	newRouterFunc = func(...gin.OptionFunc) *gin.Engine { return gin.New() }
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}
	startHTTPServerFunc = func(*http.Server) error { return http.ErrServerClosed }
	shutdownHTTPServerFunc = func(*http.Server, context.Context) error { return nil }

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initPostgresFunc = origInitPostgres
		initRedisFunc = origInitRedis
		initTracerFunc = origInitTracer
		newHeliusProviderFunc = origNewProvider
		startJobFunc = origStartJob
		startTelegramBotFunc = origStartTelegram
		newRouterFunc = origNewRouter
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
		startHTTPServerFunc = origStartHTTP
		shutdownHTTPServerFunc = origShutdownHTTP
	}
}

type stubSwapProvider struct{}

func (stubSwapProvider) FetchWalletSwaps(ctx context.Context, walletAddr string) ([]domain.SwapEvent, error) {
	return nil, nil
}
