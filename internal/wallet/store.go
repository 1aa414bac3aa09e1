// Package wallet holds the secrets used to pay for machines: the
// automated wallet credential and the default settlement token. Both
// live in the OS keychain, never on disk.
package wallet

import "errors"

const ServiceName = "vmspawn"

// Well-known secret names within the keychain service.
const (
	KeyCredential      = "wallet-credential"
	KeySettlementToken = "settlement-token"
)

var ErrSecretNotFound = errors.New("secret not found")

// Store is the persistence interface for payment secrets.
type Store interface {
	SetSecret(name string, value string) error
	GetSecret(name string) (string, error)
	DeleteSecret(name string) error
}

// DefaultStore returns the standard store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}
