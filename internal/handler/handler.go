package handler

import (
	"context"
	"time"

	"sol-watchtower/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// LiquidityReader serves the committed snapshot and the dedup ledger
// without triggering a poll.
type LiquidityReader interface {
	Snapshot() domain.LiquiditySnapshot
	AddressCount() int
	AddressSample(n int) []domain.TrackedAddress
}

// WalletManager is the watchlist and win-rate surface.
type WalletManager interface {
	AddWallet(ctx context.Context, address, label string) error
	RemoveWallet(ctx context.Context, address string) error
	ListWallets() []domain.WalletInfo
	WinRate(now time.Time) domain.WinRateReport
}

// PollTrigger runs one cycle on demand. Reports false when a cycle is
// already in flight.
type PollTrigger interface {
	RunOnce(ctx context.Context) bool
}

type Handler struct {
	tracer        trace.Tracer
	liquidity     LiquidityReader
	wallets       WalletManager
	liquidityPoll PollTrigger
	walletPoll    PollTrigger
}

func New(tracer trace.Tracer, liquidity LiquidityReader, wallets WalletManager, liquidityPoll, walletPoll PollTrigger) *Handler {
	return &Handler{
		tracer:        tracer,
		liquidity:     liquidity,
		wallets:       wallets,
		liquidityPoll: liquidityPoll,
		walletPoll:    walletPoll,
	}
}

// RegisterRoutes wires the API. Reads stay open; mutating routes sit
// behind the API key when one is configured.
func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.GET("/status", h.Status)
	api.GET("/addresses", h.Addresses)
	api.GET("/wallets", h.ListWallets)
	api.GET("/winrate", h.WinRate)

	protected := api.Group("", APIKeyAuth(apiKey))
	protected.POST("/wallets", h.AddWallet)
	protected.DELETE("/wallets/:address", h.RemoveWallet)
	protected.POST("/poll", h.TriggerPoll)
}
