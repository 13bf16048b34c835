package wallet

import (
	"fmt"
	"testing"
	"time"

	"sol-watchtower/internal/domain"
)

func TestWinRequiresAgeAndRepeat(t *testing.T) {
	now := time.Now().UTC()
	threshold := 5 * time.Minute
	info := domain.WalletInfo{Address: "Wallet1"}

	// Old enough and swapped twice: a win.
	rep := EvaluateWallet(info, []domain.TradeRecord{
		{Mint: "MintA", FirstSeen: now.Add(-10 * time.Minute), SwapCount: 2},
	}, now, threshold)
	if rep.Wins != 1 {
		t.Fatalf("expected a win, got %d", rep.Wins)
	}

	// Same age but only one swap: never a win.
	rep = EvaluateWallet(info, []domain.TradeRecord{
		{Mint: "MintA", FirstSeen: now.Add(-10 * time.Minute), SwapCount: 1},
	}, now, threshold)
	if rep.Wins != 0 {
		t.Fatalf("single swap must not win, got %d", rep.Wins)
	}

	// Swapped twice but too recent: not a win either.
	rep = EvaluateWallet(info, []domain.TradeRecord{
		{Mint: "MintA", FirstSeen: now.Add(-1 * time.Minute), SwapCount: 2},
	}, now, threshold)
	if rep.Wins != 0 {
		t.Fatalf("too-recent token must not win, got %d", rep.Wins)
	}
}

func TestEmptyWalletRateIsZero(t *testing.T) {
	rep := EvaluateWallet(domain.WalletInfo{Address: "Wallet1"}, nil, time.Now(), time.Minute)
	if rep.WinRate != 0 {
		t.Fatalf("empty wallet must report rate 0, got %f", rep.WinRate)
	}
}

func TestGlobalRateIsPooledNotAveraged(t *testing.T) {
	l := NewLedger()
	now := time.Now().UTC()
	old := now.Add(-time.Hour)
	threshold := 5 * time.Minute

	// Wallet1: 1 win out of 2 tokens.
	l.Watch("Wallet1", "")
	l.RecordSwap("Wallet1", "MintA", "sig1", old)
	l.RecordSwap("Wallet1", "MintA", "sig2", old)
	l.RecordSwap("Wallet1", "MintB", "sig3", old)

	// Wallet2: 2 wins out of 2 tokens.
	l.Watch("Wallet2", "")
	for i, mint := range []string{"MintC", "MintD"} {
		l.RecordSwap("Wallet2", mint, fmt.Sprintf("sig%d-a", i), old)
		l.RecordSwap("Wallet2", mint, fmt.Sprintf("sig%d-b", i), old)
	}

	report := Evaluate(l, now, threshold)
	if report.Global.Tokens != 4 || report.Global.Wins != 3 {
		t.Fatalf("expected 3 wins over 4 tokens, got %d/%d", report.Global.Wins, report.Global.Tokens)
	}
	if report.Global.WinRate != 0.75 {
		t.Fatalf("expected pooled rate 0.75, got %f", report.Global.WinRate)
	}
}
