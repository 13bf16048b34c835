// Package solana holds small chain-specific helpers shared by the wallet
// and liquidity layers.
package solana

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// WSOLMint is wrapped SOL; swaps against it are the quote side, not a
// tracked token.
const WSOLMint = "So11111111111111111111111111111111111111112"

// Stablecoin and quote mints that never count as tracked tokens.
var QuoteMints = map[string]bool{
	WSOLMint: true,
	"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v": true, // USDC
	"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB": true, // USDT
}

// ValidateAddress checks that addr is a well-formed Solana public key:
// base58, decoding to exactly 32 bytes.
func ValidateAddress(addr string) error {
	if len(addr) < 32 || len(addr) > 44 {
		return fmt.Errorf("address length %d out of range", len(addr))
	}
	decoded, err := base58.Decode(addr)
	if err != nil {
		return fmt.Errorf("decode address: %w", err)
	}
	if len(decoded) != 32 {
		return fmt.Errorf("address decodes to %d bytes, want 32", len(decoded))
	}
	return nil
}

// IsAddress reports whether addr looks like a Solana public key.
func IsAddress(addr string) bool {
	return ValidateAddress(addr) == nil
}
