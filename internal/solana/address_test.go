package solana

import "testing"

func TestValidateAddress(t *testing.T) {
	if err := ValidateAddress(WSOLMint); err != nil {
		t.Fatalf("WSOL mint should validate: %v", err)
	}
	if err := ValidateAddress("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"); err != nil {
		t.Fatalf("USDC mint should validate: %v", err)
	}
}

func TestValidateAddressRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"short",
		"0x52908400098527886E0F7030069857D2E4169EE7",    // EVM, not base58
		"So1111111111111111111111111111111111111111l!", // invalid base58 alphabet
	}
	for _, addr := range cases {
		if err := ValidateAddress(addr); err == nil {
			t.Errorf("expected error for %q", addr)
		}
	}
}

func TestIsAddress(t *testing.T) {
	if !IsAddress(WSOLMint) {
		t.Fatal("expected WSOL mint to be an address")
	}
	if IsAddress("not-an-address") {
		t.Fatal("expected garbage to be rejected")
	}
}
