package tui

import (
	"strings"
	"testing"
	"time"

	"sol-watchtower/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

type stubLiquidity struct {
	snap  domain.LiquiditySnapshot
	count int
}

func (s *stubLiquidity) Snapshot() domain.LiquiditySnapshot { return s.snap }
func (s *stubLiquidity) AddressCount() int                  { return s.count }

type stubWallets struct {
	report domain.WinRateReport
}

func (s *stubWallets) ListWallets() []domain.WalletInfo {
	infos := make([]domain.WalletInfo, 0, len(s.report.PerWallet))
	for _, wr := range s.report.PerWallet {
		infos = append(infos, domain.WalletInfo{Address: wr.Address, Label: wr.Label, TokenCount: wr.Tokens})
	}
	return infos
}

func (s *stubWallets) WinRate(now time.Time) domain.WinRateReport { return s.report }

func newTestModel() *AppModel {
	now := time.Now().UTC()
	liq := &stubLiquidity{
		snap: domain.LiquiditySnapshot{
			TokenCount:   42,
			LastPoll:     &now,
			ActiveSource: "raydium",
		},
		count: 7,
	}
	wallets := &stubWallets{report: domain.WinRateReport{
		PerWallet: []domain.WalletReport{
			{Address: "WalletA", Label: "whale", Tokens: 4, Wins: 3, WinRate: 0.75},
		},
		Global: domain.GlobalWinRate{Tokens: 4, Wins: 3, WinRate: 0.75},
	}}
	return NewAppModel(Services{Liquidity: liq, Wallets: wallets, Username: "op"})
}

func TestStatusView(t *testing.T) {
	m := newTestModel()
	m.SetSize(80, 24)

	view := m.View()
	for _, want := range []string{"42", "raydium", "7", "Status", "Wallets"} {
		if !strings.Contains(view, want) {
			t.Fatalf("status view missing %q:\n%s", want, view)
		}
	}
}

func TestTabSwitchShowsWallets(t *testing.T) {
	m := newTestModel()
	m.SetSize(80, 24)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	view := model.View()
	if !strings.Contains(view, "WalletA") || !strings.Contains(view, "75%") {
		t.Fatalf("wallet view missing rows:\n%s", view)
	}
	if !strings.Contains(view, "3 wins / 4 tokens") {
		t.Fatalf("wallet view missing global line:\n%s", view)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Fatalf("expected tea.Quit, got %T", msg)
	}
}

func TestAllFailedIsShown(t *testing.T) {
	m := NewAppModel(Services{
		Liquidity: &stubLiquidity{snap: domain.LiquiditySnapshot{ActiveSource: domain.AllFailed}},
		Wallets:   &stubWallets{},
	})
	if !strings.Contains(m.View(), domain.AllFailed) {
		t.Fatal("all-failed sentinel must be visible")
	}
}
