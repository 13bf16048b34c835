// Package tui renders the SSH operator dashboard: live liquidity
// status on one tab, the wallet watchlist and win rates on the other.
package tui

import (
	"fmt"
	"time"

	"sol-watchtower/internal/domain"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SnapshotReader serves the latest committed liquidity snapshot.
type SnapshotReader interface {
	Snapshot() domain.LiquiditySnapshot
	AddressCount() int
}

// WalletStats serves the watchlist and win-rate report.
type WalletStats interface {
	ListWallets() []domain.WalletInfo
	WinRate(now time.Time) domain.WinRateReport
}

// Services bundles everything the dashboard reads.
type Services struct {
	Liquidity SnapshotReader
	Wallets   WalletStats
	Username  string
}

const (
	tabStatus = iota
	tabWallets
	tabCount
)

const refreshEvery = 5 * time.Second

type refreshMsg time.Time

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	tabStyle   = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("240"))
	activeTab  = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("205"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// AppModel is the root bubbletea model for the dashboard.
type AppModel struct {
	svc    Services
	tab    int
	width  int
	height int
	table  table.Model
	now    func() time.Time
}

func NewAppModel(svc Services) *AppModel {
	cols := []table.Column{
		{Title: "Wallet", Width: 24},
		{Title: "Label", Width: 16},
		{Title: "Tokens", Width: 8},
		{Title: "Wins", Width: 6},
		{Title: "Win rate", Width: 10},
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithHeight(12),
		table.WithFocused(true),
	)
	m := &AppModel{svc: svc, table: t, now: time.Now}
	m.reloadWallets()
	return m
}

// SetSize is called once from the session with the pty dimensions.
func (m *AppModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *AppModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case refreshMsg:
		m.reloadWallets()
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % tabCount
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab + tabCount - 1) % tabCount
			return m, nil
		case "r":
			m.reloadWallets()
			return m, nil
		}
	}

	if m.tab == tabWallets {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *AppModel) reloadWallets() {
	if m.svc.Wallets == nil {
		return
	}
	report := m.svc.Wallets.WinRate(m.now().UTC())
	rows := make([]table.Row, 0, len(report.PerWallet))
	for _, wr := range report.PerWallet {
		rows = append(rows, table.Row{
			wr.Address,
			wr.Label,
			fmt.Sprintf("%d", wr.Tokens),
			fmt.Sprintf("%d", wr.Wins),
			fmt.Sprintf("%.0f%%", wr.WinRate*100),
		})
	}
	m.table.SetRows(rows)
}

func (m *AppModel) View() string {
	header := m.renderTabs()

	var body string
	switch m.tab {
	case tabStatus:
		body = m.renderStatus()
	case tabWallets:
		body = m.renderWallets()
	}

	help := helpStyle.Render("tab: switch  r: refresh  q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", help)
}

func (m *AppModel) renderTabs() string {
	title := titleStyle.Render("sol-watchtower")
	if m.svc.Username != "" {
		title += helpStyle.Render("  (" + m.svc.Username + ")")
	}
	names := []string{"Status", "Wallets"}
	tabs := make([]string, len(names))
	for i, name := range names {
		if i == m.tab {
			tabs[i] = activeTab.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m *AppModel) renderStatus() string {
	if m.svc.Liquidity == nil {
		return failStyle.Render("liquidity service unavailable")
	}
	snap := m.svc.Liquidity.Snapshot()

	source := okStyle.Render(snap.ActiveSource)
	if snap.ActiveSource == domain.AllFailed {
		source = failStyle.Render(snap.ActiveSource)
	} else if snap.BackupUsed {
		source = warnStyle.Render(snap.ActiveSource + " (backup)")
	}

	lastPoll := "never"
	if snap.LastPoll != nil {
		lastPoll = snap.LastPoll.Format("15:04:05 MST")
	}

	return fmt.Sprintf(
		"Tokens tracked:   %d\nActive source:    %s\nLast poll:        %s\nKnown addresses:  %d",
		snap.TokenCount, source, lastPoll, m.svc.Liquidity.AddressCount(),
	)
}

func (m *AppModel) renderWallets() string {
	if m.svc.Wallets == nil {
		return failStyle.Render("wallet service unavailable")
	}
	if len(m.table.Rows()) == 0 {
		return helpStyle.Render("no wallets watched")
	}

	report := m.svc.Wallets.WinRate(m.now().UTC())
	global := fmt.Sprintf("Global: %d wins / %d tokens (%.0f%%)",
		report.Global.Wins, report.Global.Tokens, report.Global.WinRate*100)
	return lipgloss.JoinVertical(lipgloss.Left, m.table.View(), "", global)
}
