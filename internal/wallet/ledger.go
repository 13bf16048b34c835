// Package wallet holds the watched-wallet registry, the per-wallet
// swap ledger, and the win-rate evaluator over it.
package wallet

import (
	"sort"
	"sync"
	"time"

	"sol-watchtower/internal/domain"
)

type walletEntry struct {
	label  string
	trades map[string]*domain.TradeRecord
	// seen holds signature+mint pairs already counted, so re-reading
	// the same history page never inflates swap counts.
	seen map[string]struct{}
}

// Ledger accumulates swap activity per watched wallet. Safe for
// concurrent use.
type Ledger struct {
	mu      sync.Mutex
	wallets map[string]*walletEntry
}

// NewLedger creates an empty swap ledger.
func NewLedger() *Ledger {
	return &Ledger{wallets: make(map[string]*walletEntry)}
}

// Watch registers a wallet for polling. Re-watching an existing wallet
// updates its label and keeps its accumulated trades. Returns true when
// the wallet is new.
func (l *Ledger) Watch(address, label string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.wallets[address]; ok {
		e.label = label
		return false
	}
	l.wallets[address] = &walletEntry{
		label:  label,
		trades: make(map[string]*domain.TradeRecord),
		seen:   make(map[string]struct{}),
	}
	return true
}

// Unwatch removes a wallet and its trade history. Returns false when
// the wallet was not watched.
func (l *Ledger) Unwatch(address string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.wallets[address]; !ok {
		return false
	}
	delete(l.wallets, address)
	return true
}

// List returns the watched wallets sorted by address.
func (l *Ledger) List() []domain.WalletInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.WalletInfo, 0, len(l.wallets))
	for addr, e := range l.wallets {
		out = append(out, domain.WalletInfo{
			Address:    addr,
			Label:      e.label,
			TokenCount: len(e.trades),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}

// Addresses returns the watched wallet addresses sorted, for polling.
func (l *Ledger) Addresses() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, 0, len(l.wallets))
	for addr := range l.wallets {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}

// RecordSwap notes one swap of mint by wallet, identified by its
// transaction signature. The provider re-reads recent history every
// cycle, so a signature+mint pair already counted is a no-op. The
// first swap of a mint creates its trade record with FirstSeen fixed
// to occurredAt; later distinct swaps only bump the count. Reports
// whether the swap was recorded at all and whether the mint is new
// for this wallet. Swaps for unwatched wallets are dropped.
func (l *Ledger) RecordSwap(walletAddr, mint, signature string, occurredAt time.Time) (recorded, newMint bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.wallets[walletAddr]
	if !ok {
		return false, false
	}
	key := signature + "|" + mint
	if _, dup := e.seen[key]; dup {
		return false, false
	}
	e.seen[key] = struct{}{}
	if tr, seen := e.trades[mint]; seen {
		tr.SwapCount++
		return true, false
	}
	e.trades[mint] = &domain.TradeRecord{
		Mint:      mint,
		FirstSeen: occurredAt,
		SwapCount: 1,
	}
	return true, true
}

// Trades returns a copy of the trade records for one wallet.
func (l *Ledger) Trades(walletAddr string) []domain.TradeRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.wallets[walletAddr]
	if !ok {
		return nil
	}
	out := make([]domain.TradeRecord, 0, len(e.trades))
	for _, tr := range e.trades {
		out = append(out, *tr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mint < out[j].Mint })
	return out
}

// Label returns the label for a watched wallet.
func (l *Ledger) Label(walletAddr string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.wallets[walletAddr]; ok {
		return e.label
	}
	return ""
}
