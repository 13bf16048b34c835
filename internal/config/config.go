package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	TelegramBotToken string
	TelegramChatID   int64
	DatabaseURL      string
	RedisURL         string
	APIKey           string

	HeliusAPIKey string

	LiquidityPollSecs    int
	WalletPollSecs       int
	FetchTimeoutSecs     int
	FetchMaxBytes        int
	SurvivalThresholdMin int
	AddressCapacity      int

	RaydiumURL       string
	DexScreenerURL   string
	GeckoTerminalURL string
	OrcaURL          string

	SSHPort        int
	SSHHostKeyPath string
}

func Load() *Config {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		APIKey:           os.Getenv("API_KEY"),
		HeliusAPIKey:     os.Getenv("HELIUS_API_KEY"),
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set, notifications disabled")
	}
	if cfg.HeliusAPIKey == "" {
		log.Println("Warning: HELIUS_API_KEY not set, wallet polling disabled")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, watchlist will not survive restarts")
	}

	if v := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.TelegramChatID = n
		}
	}

	cfg.LiquidityPollSecs = envInt("LIQUIDITY_POLL_SECS", 60)
	cfg.WalletPollSecs = envInt("WALLET_POLL_SECS", 120)
	cfg.FetchTimeoutSecs = envInt("FETCH_TIMEOUT_SECS", 10)
	cfg.FetchMaxBytes = envInt("FETCH_MAX_BYTES", 512*1024)
	cfg.SurvivalThresholdMin = envInt("SURVIVAL_THRESHOLD_MIN", 30)
	cfg.AddressCapacity = envInt("ADDRESS_CAPACITY", 100_000)

	cfg.RaydiumURL = envString("RAYDIUM_URL", "https://api.raydium.io/v2/main/pairs")
	cfg.DexScreenerURL = envString("DEXSCREENER_URL", "https://api.dexscreener.com/latest/dex/search?q=SOL")
	cfg.GeckoTerminalURL = envString("GECKOTERMINAL_URL", "https://api.geckoterminal.com/api/v2/networks/solana/pools")
	cfg.OrcaURL = envString("ORCA_URL", "https://api.orca.so/v2/solana/pools")

	cfg.SSHPort = envInt("SSH_PORT", 2222)
	cfg.SSHHostKeyPath = envString("SSH_HOST_KEY_PATH", ".ssh/watchtower_ed25519")

	return cfg
}

func envInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
