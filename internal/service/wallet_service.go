package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"sol-watchtower/internal/domain"
	"sol-watchtower/internal/solana"
	"sol-watchtower/internal/wallet"

	"go.opentelemetry.io/otel/trace"
)

// SwapProvider fetches recent swap events for one wallet.
type SwapProvider interface {
	FetchWalletSwaps(ctx context.Context, walletAddr string) ([]domain.SwapEvent, error)
}

// WalletRepository persists the watchlist across restarts.
type WalletRepository interface {
	InsertWallet(ctx context.Context, address, label string) error
	DeleteWallet(ctx context.Context, address string) error
	ListWallets(ctx context.Context) ([]domain.WalletInfo, error)
}

// Notifier pushes a human-readable alert. Delivery is best effort.
type Notifier interface {
	Notify(msg string)
}

// WalletService owns the watchlist, swap ingestion, and win-rate
// reporting.
type WalletService struct {
	tracer            trace.Tracer
	provider          SwapProvider
	ledger            *wallet.Ledger
	repo              WalletRepository
	notifier          Notifier
	survivalThreshold time.Duration
}

func NewWalletService(
	tracer trace.Tracer,
	provider SwapProvider,
	swapLedger *wallet.Ledger,
	repo WalletRepository,
	notifier Notifier,
	survivalThreshold time.Duration,
) *WalletService {
	return &WalletService{
		tracer:            tracer,
		provider:          provider,
		ledger:            swapLedger,
		repo:              repo,
		notifier:          notifier,
		survivalThreshold: survivalThreshold,
	}
}

// SetNotifier installs the alert sink after construction. The bot
// needs the service to exist before it can start, so wiring happens in
// two steps.
func (s *WalletService) SetNotifier(n Notifier) {
	s.notifier = n
}

// AddWallet validates the address, registers it for polling, and
// persists it. Re-adding a watched wallet only updates its label.
func (s *WalletService) AddWallet(ctx context.Context, address, label string) error {
	_, span := s.tracer.Start(ctx, "wallet-service.add-wallet")
	defer span.End()

	if err := solana.ValidateAddress(address); err != nil {
		return fmt.Errorf("invalid wallet address: %w", err)
	}
	s.ledger.Watch(address, label)
	if s.repo != nil {
		if err := s.repo.InsertWallet(ctx, address, label); err != nil {
			log.Printf("persist wallet %s: %v", address, err)
		}
	}
	return nil
}

// RemoveWallet drops a wallet and its accumulated trades.
func (s *WalletService) RemoveWallet(ctx context.Context, address string) error {
	_, span := s.tracer.Start(ctx, "wallet-service.remove-wallet")
	defer span.End()

	if !s.ledger.Unwatch(address) {
		return fmt.Errorf("wallet not watched: %s", address)
	}
	if s.repo != nil {
		if err := s.repo.DeleteWallet(ctx, address); err != nil {
			log.Printf("delete wallet %s: %v", address, err)
		}
	}
	return nil
}

// ListWallets returns the current watchlist.
func (s *WalletService) ListWallets() []domain.WalletInfo {
	return s.ledger.List()
}

// Restore loads the persisted watchlist into the ledger at startup.
// Trade history is not persisted; it re-accumulates from polling.
func (s *WalletService) Restore(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	infos, err := s.repo.ListWallets(ctx)
	if err != nil {
		return fmt.Errorf("restore watchlist: %w", err)
	}
	for _, info := range infos {
		s.ledger.Watch(info.Address, info.Label)
	}
	return nil
}

// RunPoll fetches recent swaps for every watched wallet, fanning out one
// goroutine per wallet. One wallet's failure is recorded and the batch
// continues; the provider's rate limiter bounds the request rate. The
// feed overlaps between cycles, so the ledger drops events it has
// already counted. New mints trigger a notification.
func (s *WalletService) RunPoll(ctx context.Context) domain.WalletRunResult {
	_, span := s.tracer.Start(ctx, "wallet-service.run-poll")
	defer span.End()

	addrs := s.ledger.Addresses()
	result := domain.WalletRunResult{WalletsPolled: len(addrs)}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, addr := range addrs {
		wg.Add(1)
		go func(addr string) {
			defer wg.Done()
			events, err := s.provider.FetchWalletSwaps(ctx, addr)
			if err != nil {
				log.Printf("wallet poll %s failed: %v", addr, err)
				mu.Lock()
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", addr, err))
				mu.Unlock()
				return
			}
			for _, ev := range events {
				recorded, newMint := s.ledger.RecordSwap(ev.Wallet, ev.Mint, ev.Signature, ev.Timestamp)
				mu.Lock()
				if recorded {
					result.SwapsRecorded++
				}
				if newMint {
					result.NewMints++
				}
				mu.Unlock()
				if newMint {
					s.notifyNewMint(ev)
				}
			}
		}(addr)
	}
	wg.Wait()

	log.Printf("wallet poll: wallets=%d swaps=%d new_mints=%d errors=%d",
		result.WalletsPolled, result.SwapsRecorded, result.NewMints, len(result.Errors))
	return result
}

// WinRate evaluates every watched wallet at the given time.
func (s *WalletService) WinRate(now time.Time) domain.WinRateReport {
	return wallet.Evaluate(s.ledger, now, s.survivalThreshold)
}

func (s *WalletService) notifyNewMint(ev domain.SwapEvent) {
	if s.notifier == nil {
		return
	}
	label := s.ledger.Label(ev.Wallet)
	if label == "" {
		label = ev.Wallet
	}
	s.notifier.Notify(fmt.Sprintf("%s swapped new token %s on %s", label, ev.Mint, ev.Venue))
}
