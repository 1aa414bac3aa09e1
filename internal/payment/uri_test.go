package payment

import (
	"errors"
	"testing"

	"github.com/vmspawn/vmspawn/internal/domain"
)

func TestURI(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		address  string
		amount   uint64
		want     string
	}{
		{
			name:     "btc",
			currency: "btc",
			address:  "1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2",
			amount:   1234567,
			want:     "bitcoin:1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2?amount=0.01234567",
		},
		{
			name:     "bch cashaddr keeps its own prefix",
			currency: "bch",
			address:  "bitcoincash:qzm47qz5ue99y9yl4aca7jnz7dwgdenl85jkfx3znl",
			amount:   100000000,
			want:     "bitcoincash:qzm47qz5ue99y9yl4aca7jnz7dwgdenl85jkfx3znl?amount=1.00000000",
		},
		{
			name:     "bsv uses bitcoin scheme",
			currency: "bsv",
			address:  "1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2",
			amount:   1,
			want:     "bitcoin:1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2?amount=0.00000001",
		},
		{
			name:     "xmr twelve decimals",
			currency: "xmr",
			address:  "44AFFq5kSiGBoZ4NMDwYtN18obc8AemS33DBLWs3H7otXft3XjrpDtQGv7SqSsaBYBb98uNbr2VBBEt7f2wfn3RVGQBEP3A",
			amount:   250000000000,
			want:     "monero:44AFFq5kSiGBoZ4NMDwYtN18obc8AemS33DBLWs3H7otXft3XjrpDtQGv7SqSsaBYBb98uNbr2VBBEt7f2wfn3RVGQBEP3A?tx_amount=0.250000000000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := URI(tt.currency, tt.address, tt.amount)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestURI_Invalid(t *testing.T) {
	if _, err := URI("doge", "addr", 1); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for unknown currency, got %v", err)
	}
	if _, err := URI("btc", "", 1); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for empty address, got %v", err)
	}
	// The settlement pseudo-currency never reaches the payment layer.
	if _, err := URI("settlement", "addr", 1); err == nil {
		t.Error("expected settlement to be rejected")
	}
}

func TestCentsToUSD(t *testing.T) {
	tests := []struct {
		cents uint64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{28, "$0.28"},
		{2500, "$25.00"},
		{123456789, "$1,234,567.89"},
	}
	for _, tt := range tests {
		if got := CentsToUSD(tt.cents); got != tt.want {
			t.Errorf("CentsToUSD(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
