package config

import (
	"fmt"
	"strings"

	"github.com/vmspawn/vmspawn/internal/domain"
	"github.com/vmspawn/vmspawn/internal/flavor"
	"github.com/vmspawn/vmspawn/internal/validate"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "default-currency").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)

	// Validate rejects values that would break later commands. Nil means
	// any value is accepted.
	Validate func(value string) error
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "api-endpoint",
		Description: "API endpoint used when --api-endpoint is not specified",
		Get:         func(cfg *Config) string { return cfg.APIEndpoint },
		Set:         func(cfg *Config, v string) { cfg.APIEndpoint = v },
	},
	{
		Name:        "tor-proxy",
		Description: "When to use the SOCKS proxy: auto, always, or never",
		Get:         func(cfg *Config) string { return cfg.TorProxy },
		Set:         func(cfg *Config, v string) { cfg.TorProxy = v },
		Validate: func(v string) error {
			switch v {
			case "auto", "always", "never":
				return nil
			}
			return fmt.Errorf("%w: tor-proxy must be auto, always, or never", domain.ErrValidation)
		},
	},
	{
		Name:        "socks-proxy",
		Description: "host:port of the local Tor SOCKS proxy",
		Get:         func(cfg *Config) string { return cfg.SocksProxy },
		Set:         func(cfg *Config, v string) { cfg.SocksProxy = v },
	},
	{
		Name:        "default-currency",
		Description: "Currency used when launch is run without --currency",
		Get:         func(cfg *Config) string { return cfg.DefaultCurrency },
		Set:         func(cfg *Config, v string) { cfg.DefaultCurrency = v },
		Validate:    validate.Currency,
	},
	{
		Name:        "default-flavor",
		Description: "Flavor used when launch is run without a shape",
		Get:         func(cfg *Config) string { return cfg.DefaultFlavor },
		Set:         func(cfg *Config, v string) { cfg.DefaultFlavor = v },
		Validate: func(v string) error {
			_, err := flavor.Find(v)
			return err
		},
	},
	{
		Name:        "default-ssh-key-file",
		Description: "Public key file read when launch is run without --ssh-key-file",
		Get:         func(cfg *Config) string { return cfg.DefaultSSHKeyFile },
		Set:         func(cfg *Config, v string) { cfg.DefaultSSHKeyFile = v },
	},
	{
		Name:        "wallet-command",
		Description: "External wallet binary used to send payments non-interactively",
		Get:         func(cfg *Config) string { return cfg.WalletCommand },
		Set:         func(cfg *Config, v string) { cfg.WalletCommand = v },
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
