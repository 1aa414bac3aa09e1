package wallet

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewSettlementToken generates a fresh settlement token: 64 lowercase
// hex characters from 32 cryptographically random bytes. The token is
// a bearer secret; whoever holds it can spend its balance.
func NewSettlementToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("wallet: generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
