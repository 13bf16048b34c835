package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sol-watchtower/internal/bot"
	"sol-watchtower/internal/cache"
	"sol-watchtower/internal/config"
	"sol-watchtower/internal/db"
	"sol-watchtower/internal/domain"
	"sol-watchtower/internal/fetch"
	"sol-watchtower/internal/handler"
	"sol-watchtower/internal/job"
	"sol-watchtower/internal/ledger"
	"sol-watchtower/internal/liquidity"
	"sol-watchtower/internal/provider"
	"sol-watchtower/internal/repository"
	"sol-watchtower/internal/service"
	"sol-watchtower/internal/source"
	"sol-watchtower/internal/wallet"
	"sol-watchtower/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "sol-watchtower/docs"
)

var (
	loadEnvFunc           = godotenv.Load
	loadConfigFunc        = config.Load
	initPostgresFunc      = db.InitPostgres
	initRedisFunc         = cache.InitRedis
	initTracerFunc        = tracing.InitTracer
	newHeliusProviderFunc = func(tracer trace.Tracer, apiKey string) service.SwapProvider {
		return provider.NewHeliusProvider(tracer, apiKey)
	}
	startJobFunc = func(start func(ctx context.Context), ctx context.Context) { go start(ctx) }
	startTelegramBotFunc = func(liq bot.SnapshotReader, w bot.WalletCommander, chatID int64) service.Notifier {
		n := bot.StartTelegramBot(liq, w, chatID)
		if n == nil {
			return nil
		}
		return n
	}
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// liquiditySources builds the failover chain from config. Order in the
// primary class is failover priority; Orca is auxiliary and polled
// outside the chain.
func liquiditySources(cfg *config.Config) []domain.Source {
	return []domain.Source{
		{Name: "raydium", URL: cfg.RaydiumURL, Class: domain.ClassLiquidity, Priority: 0},
		{Name: "dexscreener", URL: cfg.DexScreenerURL, Class: domain.ClassLiquidity, Priority: 1,
			Headers: map[string]string{"User-Agent": "sol-watchtower/1.0"}},
		{Name: "geckoterminal", URL: cfg.GeckoTerminalURL, Class: domain.ClassLiquidity, Priority: 2},
		{Name: "orca", URL: cfg.OrcaURL, Class: domain.ClassAuxLiquidity, Priority: 0},
	}
}

// @title           Sol Watchtower API
// @version         1.0
// @description     Solana liquidity failover poller and wallet win-rate tracker.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Liquidity side: bounded fetcher, failover poller, dedup ledger.
	fetcher := fetch.New(
		fetch.WithTimeout(time.Duration(cfg.FetchTimeoutSecs)*time.Second),
		fetch.WithMaxBytes(int64(cfg.FetchMaxBytes)),
	)
	registry := source.NewRegistry(liquiditySources(cfg))
	snapCache := liquidity.NewSnapshotCache()
	poller := liquidity.NewPoller(tracer, fetcher, registry, snapCache)
	addrLedger := ledger.New(cfg.AddressCapacity)

	var addrRepo service.AddressRepository
	var walletRepo service.WalletRepository
	if db.Pool != nil {
		addrRepo = repository.NewAddressRepository(db.Pool, tracer)
		walletRepo = repository.NewWalletRepository(db.Pool, tracer)
	}

	var redisClient service.RedisClient
	if cache.Client != nil {
		redisClient = cache.Client
	}

	liquidityService := service.NewLiquidityService(tracer, poller, snapCache, addrLedger, addrRepo, redisClient)

	// Wallet side: swap ingestion and win-rate evaluation.
	var swapProvider service.SwapProvider
	if cfg.HeliusAPIKey != "" {
		swapProvider = newHeliusProviderFunc(tracer, cfg.HeliusAPIKey)
	}
	swapLedger := wallet.NewLedger()
	walletService := service.NewWalletService(tracer, swapProvider, swapLedger, walletRepo, nil,
		time.Duration(cfg.SurvivalThresholdMin)*time.Minute)
	if err := walletService.Restore(ctx); err != nil {
		log.Printf("watchlist restore failed: %v", err)
	}

	if notifier := startTelegramBotFunc(liquidityService, walletService, cfg.TelegramChatID); notifier != nil {
		walletService.SetNotifier(notifier)
	}

	liquidityJob := job.NewLiquidityPollJob(tracer, liquidityService, time.Duration(cfg.LiquidityPollSecs)*time.Second)
	startJobFunc(liquidityJob.Start, ctx)

	var walletTrigger handler.PollTrigger
	if swapProvider != nil {
		walletJob := job.NewWalletPollJob(tracer, walletService, time.Duration(cfg.WalletPollSecs)*time.Second)
		startJobFunc(walletJob.Start, ctx)
		walletTrigger = walletJob
	}

	h := handler.New(tracer, liquidityService, walletService, liquidityJob, walletTrigger)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("sol-watchtower"))

	h.RegisterRoutes(r, cfg.APIKey)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
