// Package payment derives payment instructions from unpaid
// provisioning responses and blocks until the payment has been made,
// either through an automated wallet or by a human scanning a QR code.
// It never confirms settlement itself; the orchestrator detects that
// by re-polling the remote API.
package payment

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/vmspawn/vmspawn/internal/domain"
)

// URI builds a wallet-scannable payment URI. Amounts are in the
// currency's base unit: satoshis for the bitcoin family, piconero for
// monero.
func URI(currency, address string, amount uint64) (string, error) {
	if address == "" {
		return "", fmt.Errorf("%w: payment address must not be empty", domain.ErrValidation)
	}

	switch currency {
	case "btc", "bsv":
		return fmt.Sprintf("bitcoin:%s?amount=%s", address, decimalAmount(amount, 8)), nil
	case "bch":
		// Cashaddr addresses carry their own scheme prefix.
		return fmt.Sprintf("%s?amount=%s", address, decimalAmount(amount, 8)), nil
	case "xmr":
		return fmt.Sprintf("monero:%s?tx_amount=%s", address, decimalAmount(amount, 12)), nil
	}
	return "", fmt.Errorf("%w: currency must be one of: btc|bch|bsv|xmr, got %q", domain.ErrValidation, currency)
}

// decimalAmount renders a base-unit amount with the given number of
// decimal places, using integer math to avoid float rounding.
func decimalAmount(amount uint64, places int) string {
	divisor := uint64(1)
	for i := 0; i < places; i++ {
		divisor *= 10
	}
	return fmt.Sprintf("%d.%0*d", amount/divisor, places, amount%divisor)
}

// CentsToUSD renders US cents as a human-readable dollar string.
func CentsToUSD(cents uint64) string {
	return fmt.Sprintf("$%s.%02d", humanize.Comma(int64(cents/100)), cents%100)
}
