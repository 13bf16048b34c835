package wallet

import (
	"time"

	"sol-watchtower/internal/domain"
)

// EvaluateWallet classifies one wallet's trades at a point in time. A
// token counts as a win only when it has survived past the threshold
// and the wallet swapped it at least twice; a single swap is never a
// win no matter how old the token is.
func EvaluateWallet(info domain.WalletInfo, trades []domain.TradeRecord, now time.Time, survivalThreshold time.Duration) domain.WalletReport {
	wins := 0
	for _, tr := range trades {
		alive := now.Sub(tr.FirstSeen)
		if alive >= survivalThreshold && tr.SwapCount >= 2 {
			wins++
		}
	}
	rep := domain.WalletReport{
		Address: info.Address,
		Label:   info.Label,
		Tokens:  len(trades),
		Wins:    wins,
	}
	if rep.Tokens > 0 {
		rep.WinRate = float64(rep.Wins) / float64(rep.Tokens)
	}
	return rep
}

// Evaluate produces the full report over every watched wallet. The
// global rate is computed from summed wins and token counts, not by
// averaging per-wallet rates.
func Evaluate(l *Ledger, now time.Time, survivalThreshold time.Duration) domain.WinRateReport {
	report := domain.WinRateReport{PerWallet: []domain.WalletReport{}}
	for _, info := range l.List() {
		wr := EvaluateWallet(info, l.Trades(info.Address), now, survivalThreshold)
		report.PerWallet = append(report.PerWallet, wr)
		report.Global.Tokens += wr.Tokens
		report.Global.Wins += wr.Wins
	}
	if report.Global.Tokens > 0 {
		report.Global.WinRate = float64(report.Global.Wins) / float64(report.Global.Tokens)
	}
	return report
}
