package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"sol-watchtower/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// WalletCommander is the slice of the wallet service the bot drives.
type WalletCommander interface {
	AddWallet(ctx context.Context, address, label string) error
	RemoveWallet(ctx context.Context, address string) error
	ListWallets() []domain.WalletInfo
	WinRate(now time.Time) domain.WinRateReport
}

// SnapshotReader serves the latest liquidity snapshot.
type SnapshotReader interface {
	Snapshot() domain.LiquiditySnapshot
}

// TelegramNotifier pushes alerts to a fixed chat. Satisfies the wallet
// service's Notifier; delivery failures are logged and dropped.
type TelegramNotifier struct {
	bot    *tele.Bot
	chatID int64
}

func (n *TelegramNotifier) Notify(msg string) {
	if n == nil || n.bot == nil || n.chatID == 0 {
		return
	}
	if _, err := n.bot.Send(tele.ChatID(n.chatID), msg); err != nil {
		log.Printf("telegram notify error: %v", err)
	}
}

// StartTelegramBot wires the command surface and returns a notifier
// for push alerts. Returns nil when the bot token is not configured.
func StartTelegramBot(liquidity SnapshotReader, wallets WalletCommander, chatID int64) *TelegramNotifier {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/status", func(c tele.Context) error {
		return c.Send(formatSnapshot(liquidity.Snapshot()))
	})

	b.Handle("/watch", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /watch <address> [label]")
		}
		label := ""
		if len(args) > 1 {
			label = strings.Join(args[1:], " ")
		}
		if err := wallets.AddWallet(context.Background(), args[0], label); err != nil {
			return c.Send(fmt.Sprintf("Cannot watch %s: %v", args[0], err))
		}
		return c.Send(fmt.Sprintf("Watching %s", args[0]))
	})

	b.Handle("/unwatch", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /unwatch <address>")
		}
		if err := wallets.RemoveWallet(context.Background(), args[0]); err != nil {
			return c.Send(fmt.Sprintf("Cannot unwatch %s: %v", args[0], err))
		}
		return c.Send(fmt.Sprintf("Stopped watching %s", args[0]))
	})

	b.Handle("/wallets", func(c tele.Context) error {
		infos := wallets.ListWallets()
		if len(infos) == 0 {
			return c.Send("No wallets watched. Use /watch <address> to add one.")
		}
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Watching %d wallets:\n", len(infos)))
		for _, info := range infos {
			name := info.Address
			if info.Label != "" {
				name = fmt.Sprintf("%s (%s)", info.Label, shortAddr(info.Address))
			}
			sb.WriteString(fmt.Sprintf("%s, %d tokens\n", name, info.TokenCount))
		}
		return c.Send(sb.String())
	})

	b.Handle("/winrate", func(c tele.Context) error {
		report := wallets.WinRate(time.Now().UTC())
		if report.Global.Tokens == 0 {
			return c.Send("No trades recorded yet.")
		}
		var sb strings.Builder
		for _, wr := range report.PerWallet {
			name := wr.Address
			if wr.Label != "" {
				name = wr.Label
			}
			sb.WriteString(fmt.Sprintf("%s: %d/%d (%.0f%%)\n", name, wr.Wins, wr.Tokens, wr.WinRate*100))
		}
		sb.WriteString(fmt.Sprintf("Global: %d/%d (%.0f%%)", report.Global.Wins, report.Global.Tokens, report.Global.WinRate*100))
		return c.Send(sb.String())
	})

	log.Println("Telegram bot started")
	go b.Start()

	return &TelegramNotifier{bot: b, chatID: chatID}
}

func formatSnapshot(snap domain.LiquiditySnapshot) string {
	lastPoll := "never"
	if snap.LastPoll != nil {
		lastPoll = snap.LastPoll.Format(time.RFC3339)
	}
	msg := fmt.Sprintf("Tokens: %d\nSource: %s\nLast poll: %s", snap.TokenCount, snap.ActiveSource, lastPoll)
	if snap.BackupUsed {
		msg += "\nRunning on a backup source"
	}
	return msg
}

func shortAddr(addr string) string {
	if len(addr) <= 8 {
		return addr
	}
	return addr[:4] + ".." + addr[len(addr)-4:]
}
