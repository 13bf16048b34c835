package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sol-watchtower/internal/cache"
	"sol-watchtower/internal/config"
	"sol-watchtower/internal/db"
	"sol-watchtower/internal/domain"
	"sol-watchtower/internal/fetch"
	"sol-watchtower/internal/job"
	"sol-watchtower/internal/ledger"
	"sol-watchtower/internal/liquidity"
	"sol-watchtower/internal/provider"
	"sol-watchtower/internal/repository"
	"sol-watchtower/internal/service"
	"sol-watchtower/internal/source"
	"sol-watchtower/internal/tui"
	"sol-watchtower/internal/wallet"
	"sol-watchtower/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
	gossh "golang.org/x/crypto/ssh"
)

// ctxKey is a typed context key to avoid collisions.
type ctxKey string

const sshUserKey ctxKey = "ssh_user"

var (
	loadEnvFunc           = godotenv.Load
	loadConfigFunc        = config.Load
	initPostgresFunc      = db.InitPostgres
	initRedisFunc         = cache.InitRedis
	initTracerFunc        = tracing.InitTracer
	newSSHUserRepoFunc    = repository.NewSSHUserRepository
	newHeliusProviderFunc = func(tracer trace.Tracer, apiKey string) service.SwapProvider {
		return provider.NewHeliusProvider(tracer, apiKey)
	}
	startJobFunc      = func(start func(ctx context.Context), ctx context.Context) { go start(ctx) }
	newWishServerFunc = wish.NewServer
	setupSignalNotify = signal.Notify
	waitForSignalFunc = func(quit <-chan os.Signal) { <-quit }
)

// authenticate resolves a key fingerprint to a known user. Without a
// repository (no Postgres) every connection is denied.
func authenticate(ctx context.Context, repo *repository.SSHUserRepository, fingerprint string) *repository.SSHUser {
	if repo == nil {
		return nil
	}
	user, err := repo.FindByFingerprint(ctx, fingerprint)
	if err != nil {
		log.Printf("fingerprint lookup failed: %v", err)
		return nil
	}
	return user
}

// watchtowerSources mirrors the HTTP server's failover chain so the
// dashboard shows the same data either way.
func watchtowerSources(cfg *config.Config) []domain.Source {
	return []domain.Source{
		{Name: "raydium", URL: cfg.RaydiumURL, Class: domain.ClassLiquidity, Priority: 0},
		{Name: "dexscreener", URL: cfg.DexScreenerURL, Class: domain.ClassLiquidity, Priority: 1,
			Headers: map[string]string{"User-Agent": "sol-watchtower/1.0"}},
		{Name: "geckoterminal", URL: cfg.GeckoTerminalURL, Class: domain.ClassLiquidity, Priority: 2},
		{Name: "orca", URL: cfg.OrcaURL, Class: domain.ClassAuxLiquidity, Priority: 0},
	}
}

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

	var sshUserRepo *repository.SSHUserRepository
	if db.Pool != nil {
		sshUserRepo = newSSHUserRepoFunc(db.Pool, tracer)
	} else {
		log.Println("no Postgres, SSH public-key auth will deny all connections")
	}

	// The SSH process runs its own poll loops so the dashboard works
	// standalone.
	fetcher := fetch.New(
		fetch.WithTimeout(time.Duration(cfg.FetchTimeoutSecs)*time.Second),
		fetch.WithMaxBytes(int64(cfg.FetchMaxBytes)),
	)
	registry := source.NewRegistry(watchtowerSources(cfg))
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

	liquidityJob := job.NewLiquidityPollJob(tracer, liquidityService, time.Duration(cfg.LiquidityPollSecs)*time.Second)
	startJobFunc(liquidityJob.Start, ctx)
	if swapProvider != nil {
		walletJob := job.NewWalletPollJob(tracer, walletService, time.Duration(cfg.WalletPollSecs)*time.Second)
		startJobFunc(walletJob.Start, ctx)
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)

	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			fingerprint := gossh.FingerprintSHA256(key)
			user := authenticate(context.Background(), sshUserRepo, fingerprint)
			if user == nil {
				log.Printf("SSH auth denied: fingerprint=%s", fingerprint)
				return false
			}
			ctx.SetValue(sshUserKey, user)
			_ = sshUserRepo.UpdateLastLogin(context.Background(), user.ID)
			log.Printf("SSH auth accepted: user=%s fingerprint=%s", user.Username, fingerprint)
			return true
		}),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				user, _ := s.Context().Value(sshUserKey).(*repository.SSHUser)

				username := "unknown"
				if user != nil {
					username = user.Username
				}

				model := tui.NewAppModel(tui.Services{
					Liquidity: liquidityService,
					Wallets:   walletService,
					Username:  username,
				})
				pty, _, _ := s.Pty()
				model.SetSize(pty.Window.Width, pty.Window.Height)

				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	if srv != nil {
		go func() {
			log.Printf("SSH server listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil {
				log.Printf("SSH server stopped: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("SSH server shutdown error: %v", err)
		}
	}

	log.Println("SSH server exited")
}
