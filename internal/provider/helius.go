// Package provider holds clients for the external data feeds the
// watchtower polls.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sol-watchtower/internal/domain"
	"sol-watchtower/internal/solana"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const heliusBaseURL = "https://api.helius.xyz/v0"

// swapSources are the venue tags Helius attaches to DEX activity. An
// event counts as swap-like when its source matches one of these or its
// type is SWAP outright.
var swapSources = map[string]bool{
	"RAYDIUM":  true,
	"PUMP_AMM": true,
	"PUMP_FUN": true,
	"JUPITER":  true,
	"ORCA":     true,
	"METEORA":  true,
}

// HeliusProvider fetches enhanced transaction history for a wallet from
// the Helius API and extracts swap events from it.
type HeliusProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewHeliusProvider creates a provider with built-in rate limiting.
// The free tier allows 10 requests per second; we stay well under it.
func NewHeliusProvider(tracer trace.Tracer, apiKey string) *HeliusProvider {
	return &HeliusProvider{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: heliusBaseURL,
		apiKey:  apiKey,
		tracer:  tracer,
		limiter: NewRateLimiter(5, 250*time.Millisecond),
	}
}

type heliusTx struct {
	Signature      string `json:"signature"`
	Timestamp      int64  `json:"timestamp"`
	Type           string `json:"type"`
	Source         string `json:"source"`
	TokenTransfers []struct {
		Mint            string  `json:"mint"`
		FromUserAccount string  `json:"fromUserAccount"`
		ToUserAccount   string  `json:"toUserAccount"`
		TokenAmount     float64 `json:"tokenAmount"`
	} `json:"tokenTransfers"`
}

// FetchWalletSwaps returns the swap events in the wallet's recent
// transaction history. Non-swap transactions and transfers of quote
// mints (SOL, USDC, USDT) are discarded without error.
func (p *HeliusProvider) FetchWalletSwaps(ctx context.Context, wallet string) ([]domain.SwapEvent, error) {
	_, span := p.tracer.Start(ctx, "helius.fetch-wallet-swaps")
	defer span.End()
	span.SetAttributes(attribute.String("wallet", wallet))

	url := fmt.Sprintf("%s/addresses/%s/transactions?api-key=%s&limit=50", p.baseURL, wallet, p.apiKey)

	body, err := p.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions for %s: %w", wallet, err)
	}

	var txs []heliusTx
	if err := json.Unmarshal(body, &txs); err != nil {
		return nil, fmt.Errorf("parse transactions for %s: %w", wallet, err)
	}

	var events []domain.SwapEvent
	for _, tx := range txs {
		if !isSwapLike(tx.Type, tx.Source) {
			continue
		}
		ts := time.Unix(tx.Timestamp, 0).UTC()
		for _, tr := range tx.TokenTransfers {
			if tr.Mint == "" || solana.QuoteMints[tr.Mint] {
				continue
			}
			if tr.FromUserAccount != wallet && tr.ToUserAccount != wallet {
				continue
			}
			events = append(events, domain.SwapEvent{
				Wallet:    wallet,
				Mint:      tr.Mint,
				Venue:     tx.Source,
				Signature: tx.Signature,
				Timestamp: ts,
			})
		}
	}

	return events, nil
}

// isSwapLike matches the venue/type keywords that mark DEX swaps.
func isSwapLike(txType, source string) bool {
	if strings.EqualFold(txType, "SWAP") {
		return true
	}
	return swapSources[strings.ToUpper(source)]
}

func (p *HeliusProvider) doRequest(ctx context.Context, url string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("helius API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
