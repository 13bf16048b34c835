package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"sol-watchtower/internal/domain"
	"sol-watchtower/internal/wallet"
)

// Valid base58 Solana addresses for watchlist tests.
const (
	walletOne = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"
	walletTwo = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
)

type mockSwapProvider struct {
	mu     sync.Mutex
	events map[string][]domain.SwapEvent
	errs   map[string]error
	calls  []string
}

func (m *mockSwapProvider) FetchWalletSwaps(ctx context.Context, addr string) ([]domain.SwapEvent, error) {
	m.mu.Lock()
	m.calls = append(m.calls, addr)
	m.mu.Unlock()
	if err, ok := m.errs[addr]; ok {
		return nil, err
	}
	return m.events[addr], nil
}

type mockWalletRepo struct {
	inserted  []string
	deleted   []string
	stored    []domain.WalletInfo
	insertErr error
	listErr   error
}

func (m *mockWalletRepo) InsertWallet(ctx context.Context, address, label string) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, address)
	return nil
}

func (m *mockWalletRepo) DeleteWallet(ctx context.Context, address string) error {
	m.deleted = append(m.deleted, address)
	return nil
}

func (m *mockWalletRepo) ListWallets(ctx context.Context) ([]domain.WalletInfo, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.stored, nil
}

type mockNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (m *mockNotifier) Notify(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msg)
}

func newWalletService(p SwapProvider, repo WalletRepository, n Notifier) *WalletService {
	return NewWalletService(testTracer, p, wallet.NewLedger(), repo, n, 5*time.Minute)
}

func TestWalletService_AddWalletValidatesAddress(t *testing.T) {
	t.Parallel()

	svc := newWalletService(&mockSwapProvider{}, nil, nil)
	if err := svc.AddWallet(context.Background(), "not-base58!!", ""); err == nil {
		t.Fatal("expected rejection of invalid address")
	}
	if err := svc.AddWallet(context.Background(), walletOne, "degen"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	infos := svc.ListWallets()
	if len(infos) != 1 || infos[0].Label != "degen" {
		t.Fatalf("unexpected watchlist: %+v", infos)
	}
}

func TestWalletService_RemoveWallet(t *testing.T) {
	t.Parallel()

	repo := &mockWalletRepo{}
	svc := newWalletService(&mockSwapProvider{}, repo, nil)
	_ = svc.AddWallet(context.Background(), walletOne, "")

	if err := svc.RemoveWallet(context.Background(), walletOne); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.RemoveWallet(context.Background(), walletOne); err == nil {
		t.Fatal("expected error removing unwatched wallet")
	}
	if len(repo.deleted) != 1 {
		t.Fatalf("expected 1 repo delete, got %d", len(repo.deleted))
	}
}

func TestWalletService_Restore(t *testing.T) {
	t.Parallel()

	repo := &mockWalletRepo{stored: []domain.WalletInfo{
		{Address: walletOne, Label: "a"},
		{Address: walletTwo, Label: "b"},
	}}
	svc := newWalletService(&mockSwapProvider{}, repo, nil)

	if err := svc.Restore(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(svc.ListWallets()) != 2 {
		t.Fatalf("expected 2 restored wallets, got %d", len(svc.ListWallets()))
	}
}

func TestWalletService_RunPollIsolatesFailures(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	provider := &mockSwapProvider{
		events: map[string][]domain.SwapEvent{
			walletTwo: {
				{Wallet: walletTwo, Mint: "MintA", Venue: "RAYDIUM", Signature: "sig1", Timestamp: now},
				{Wallet: walletTwo, Mint: "MintA", Venue: "RAYDIUM", Signature: "sig2", Timestamp: now},
			},
		},
		errs: map[string]error{walletOne: errors.New("timeout")},
	}
	notifier := &mockNotifier{}
	svc := newWalletService(provider, nil, notifier)
	_ = svc.AddWallet(context.Background(), walletOne, "")
	_ = svc.AddWallet(context.Background(), walletTwo, "whale")

	result := svc.RunPoll(context.Background())
	if result.WalletsPolled != 2 {
		t.Fatalf("both wallets must be polled, got %d", result.WalletsPolled)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 isolated failure, got %v", result.Errors)
	}
	if result.SwapsRecorded != 2 || result.NewMints != 1 {
		t.Fatalf("unexpected ingestion counts: %+v", result)
	}
	// Only the first swap of a mint notifies.
	if len(notifier.msgs) != 1 {
		t.Fatalf("expected 1 notification, got %v", notifier.msgs)
	}
}

func TestWalletService_RepeatedPollOfSameHistoryCountsOnce(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	old := now.Add(-time.Hour)
	// The provider returns a page of recent history, so consecutive
	// cycles see the same transaction again.
	provider := &mockSwapProvider{
		events: map[string][]domain.SwapEvent{
			walletOne: {
				{Wallet: walletOne, Mint: "MintA", Signature: "sig1", Timestamp: old},
			},
		},
	}
	svc := newWalletService(provider, nil, nil)
	_ = svc.AddWallet(context.Background(), walletOne, "")

	first := svc.RunPoll(context.Background())
	if first.SwapsRecorded != 1 || first.NewMints != 1 {
		t.Fatalf("unexpected first cycle: %+v", first)
	}

	second := svc.RunPoll(context.Background())
	if second.SwapsRecorded != 0 || second.NewMints != 0 {
		t.Fatalf("replayed history must not re-count: %+v", second)
	}

	// One real swap, however old, is never a win.
	report := svc.WinRate(now)
	if report.Global.Wins != 0 {
		t.Fatalf("expected 0 wins for a single-swap token, got %d", report.Global.Wins)
	}
	if report.Global.Tokens != 1 {
		t.Fatalf("expected 1 token, got %d", report.Global.Tokens)
	}
}

func TestWalletService_WinRate(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	old := now.Add(-time.Hour)
	provider := &mockSwapProvider{
		events: map[string][]domain.SwapEvent{
			walletOne: {
				{Wallet: walletOne, Mint: "MintA", Signature: "sig1", Timestamp: old},
				{Wallet: walletOne, Mint: "MintA", Signature: "sig2", Timestamp: old},
				{Wallet: walletOne, Mint: "MintB", Signature: "sig3", Timestamp: old},
			},
		},
	}
	svc := newWalletService(provider, nil, nil)
	_ = svc.AddWallet(context.Background(), walletOne, "")
	_ = svc.RunPoll(context.Background())

	report := svc.WinRate(now)
	if report.Global.Tokens != 2 || report.Global.Wins != 1 {
		t.Fatalf("expected 1 win of 2 tokens, got %+v", report.Global)
	}
	if report.Global.WinRate != 0.5 {
		t.Fatalf("expected 0.5, got %f", report.Global.WinRate)
	}
}
