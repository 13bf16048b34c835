package domain

import "time"

// SourceClass groups interchangeable endpoints into one failover chain.
type SourceClass string

const (
	// ClassLiquidity is the primary liquidity-pair chain (DexScreener,
	// GeckoTerminal, Raydium in priority order).
	ClassLiquidity SourceClass = "liquidity"
	// ClassAuxLiquidity is polled independently of the failover chain; its
	// count is added to the snapshot total but it can never win the cycle.
	ClassAuxLiquidity SourceClass = "liquidity-aux"
)

// AllFailed is the sentinel active source recorded when every endpoint in
// the chain was exhausted without usable data.
const AllFailed = "All failed"

// Source is one candidate endpoint in a failover chain.
// Sources are fixed at process start and never mutated.
type Source struct {
	Name     string            `json:"name"`
	URL      string            `json:"url"`
	Class    SourceClass       `json:"class"`
	Priority int               `json:"priority"`
	Headers  map[string]string `json:"-"`
}

// LiquiditySnapshot summarizes the most recent completed poll cycle.
// It is replaced wholesale at the end of every cycle; readers always see a
// value from some fully completed cycle, never a mix of two.
type LiquiditySnapshot struct {
	TokenCount   int        `json:"token_count"`
	LastPoll     *time.Time `json:"last_poll"`
	ActiveSource string     `json:"active_source"`
	BackupUsed   bool       `json:"backup_used"`
}

// TrackedAddress records the first and most recent sighting of an address
// across poll cycles. Source and FirstSeen are immutable once set.
type TrackedAddress struct {
	Address   string    `json:"address"`
	Source    string    `json:"source"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// SwapEvent is one swap-classified transaction observed for a watched
// wallet. The core only depends on this shape, not on any provider schema.
type SwapEvent struct {
	Wallet    string    `json:"wallet"`
	Mint      string    `json:"mint"`
	Venue     string    `json:"venue"`
	Signature string    `json:"signature"`
	Timestamp time.Time `json:"timestamp"`
}

// LiquidityRunResult is the outcome of one liquidity poll cycle.
type LiquidityRunResult struct {
	Snapshot     LiquiditySnapshot `json:"snapshot"`
	NewAddresses int               `json:"new_addresses"`
	Errors       []string          `json:"errors,omitempty"`
}

// WalletRunResult is the outcome of one wallet ingestion cycle. Per-wallet
// failures are accumulated here instead of aborting the batch.
type WalletRunResult struct {
	WalletsPolled int      `json:"wallets_polled"`
	SwapsRecorded int      `json:"swaps_recorded"`
	NewMints      int      `json:"new_mints"`
	Errors        []string `json:"errors,omitempty"`
}
