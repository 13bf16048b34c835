package domain

import "time"

// TradeRecord accumulates swap statistics for one token mint inside a
// watched wallet. FirstSeen is set on the first observed swap and never
// changes; SwapCount only ever increments.
type TradeRecord struct {
	Mint      string    `json:"mint"`
	FirstSeen time.Time `json:"first_seen"`
	SwapCount int       `json:"swap_count"`
}

// WalletInfo is the listing shape for a registered wallet.
type WalletInfo struct {
	Address    string `json:"address"`
	Label      string `json:"label,omitempty"`
	TokenCount int    `json:"token_count"`
}

// WalletReport is the per-wallet slice of a win-rate evaluation.
type WalletReport struct {
	Address string  `json:"address"`
	Label   string  `json:"label,omitempty"`
	Tokens  int     `json:"tokens"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

// GlobalWinRate aggregates wins and token counts across all wallets before
// computing the ratio. It is not an average of per-wallet rates.
type GlobalWinRate struct {
	Tokens  int     `json:"tokens"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

// WinRateReport is derived and read-only; it is never persisted.
type WinRateReport struct {
	PerWallet []WalletReport `json:"per_wallet"`
	Global    GlobalWinRate  `json:"global"`
}
