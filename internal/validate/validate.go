// Package validate checks provisioning arguments before any network
// call. Every function takes one value (or one pair, for cross-field
// rules), has no side effects, and returns an error wrapping
// domain.ErrValidation when the value is rejected.
package validate

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/vmspawn/vmspawn/internal/domain"
)

// Currencies the payment layer knows how to build instructions for,
// plus the prepaid settlement balance.
var currencies = map[string]bool{
	"btc":        true,
	"bch":        true,
	"bsv":        true,
	"xmr":        true,
	"settlement": true,
}

func errf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}

// MachineID checks a machine ID: exactly 64 characters, each in
// [0-9a-f]. In effect, a lowercase sha256 hex digest.
func MachineID(id string) error {
	if len(id) != 64 {
		return errf("machine_id must be exactly 64 characters, got %d", len(id))
	}
	for _, c := range id {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return errf("machine_id must contain only 0-9 and lowercase a-f")
		}
	}
	return nil
}

// SettlementToken checks a settlement token, which has the same shape
// rules as a machine ID.
func SettlementToken(token string) error {
	if len(token) != 64 {
		return errf("settlement_token must be exactly 64 characters, got %d", len(token))
	}
	for _, c := range token {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return errf("settlement_token must contain only 0-9 and lowercase a-f")
		}
	}
	return nil
}

// Days checks a rental duration. 1-28 normally; 0 means "no
// expiration" and is only allowed when an override code is in play,
// which the caller signals with zeroAllowed.
func Days(days int, zeroAllowed bool) error {
	minimum := 1
	if zeroAllowed {
		minimum = 0
	}
	if days < minimum || days > 28 {
		return errf("days must be %d-28, got %d", minimum, days)
	}
	return nil
}

// OperatingSystem checks an operating system slug: 1-16 characters
// from [a-z0-9-].
func OperatingSystem(os string) error {
	if len(os) < 1 {
		return errf("operating_system must have at least one character")
	}
	if len(os) > 16 {
		return errf("operating_system must have 16 characters or less")
	}
	for _, c := range os {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return errf("operating_system must contain only a-z, 0-9, and -")
		}
	}
	return nil
}

// Organization checks an organization name: 1-16 letters.
func Organization(org string) error {
	if len(org) < 1 {
		return errf("organization must have at least one letter")
	}
	if len(org) > 16 {
		return errf("organization must have 16 letters or less")
	}
	for _, c := range org {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return errf("organization must contain only a-z and A-Z")
		}
	}
	return nil
}

// Bandwidth is in gigabytes per day. -1 means unlimited; 0 means no
// bandwidth and is only sensible when both IP modes are disabled.
func Bandwidth(bandwidth int) error {
	if bandwidth < -1 {
		return errf("bandwidth can be no lower than -1, got %d", bandwidth)
	}
	return nil
}

// Cores checks a core count.
func Cores(cores int) error {
	if cores < 0 {
		return errf("cores must be an unsigned integer, got %d", cores)
	}
	return nil
}

// Memory is in megabytes; zero is not a machine.
func Memory(memory int) error {
	if memory < 0 {
		return errf("memory must be an unsigned integer, got %d", memory)
	}
	if memory == 0 {
		return errf("memory must not be zero")
	}
	return nil
}

// Disk is in gigabytes; zero means diskless and is valid.
func Disk(disk int) error {
	if disk < 0 {
		return errf("disk must be an unsigned integer, got %d", disk)
	}
	return nil
}

// IPv4 checks an IPv4 connectivity mode: "false" (no address), the
// "/32" CIDR sentinel, "nat", or "tor".
func IPv4(ipv4 string) error {
	return ipMode("ipv4", ipv4, "/32")
}

// IPv6 checks an IPv6 connectivity mode: "false", "/128", "nat", or
// "tor".
func IPv6(ipv6 string) error {
	return ipMode("ipv6", ipv6, "/128")
}

func ipMode(name, mode, cidr string) error {
	switch mode {
	case "false", cidr, "nat", "tor":
		return nil
	}
	return errf("%s must be one of: false|%s|nat|tor, got %q", name, cidr, mode)
}

// IPv4IPv6 enforces the cross-field rule: mixed transport modes are
// invalid, so if either side is "tor" or "nat" both must be equal.
func IPv4IPv6(ipv4, ipv6 string) error {
	if ipv4 == "tor" || ipv4 == "nat" || ipv6 == "tor" || ipv6 == "nat" {
		if ipv4 != ipv6 {
			return errf("ipv4 and ipv6 must be the same if either is tor or nat")
		}
	}
	return nil
}

// IPXEScript checks a network boot script: 1-4000 printable ASCII
// characters (tabs and newlines included).
func IPXEScript(script string) error {
	if len(script) == 0 {
		return errf("ipxescript must be more than zero bytes long")
	}
	if len(script) > 4000 {
		return errf("ipxescript must be 4,000 bytes or less, got %d", len(script))
	}
	for _, c := range script {
		if c >= 0x20 && c <= 0x7e {
			continue
		}
		switch c {
		case '\t', '\n', '\r', '\v', '\f':
			continue
		}
		return errf("ipxescript must contain only printable ASCII characters")
	}
	return nil
}

// AffiliateAmount checks an affiliate payout amount, which is either
// absent or a nonzero unsigned integer.
func AffiliateAmount(amount int) error {
	if amount <= 0 {
		return errf("affiliate_amount must be a nonzero unsigned integer, got %d", amount)
	}
	return nil
}

// SSHKey checks that a string parses as a structurally valid SSH
// public key in authorized_keys format.
func SSHKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errf("ssh_key must not be empty")
	}
	if _, _, _, _, err := ssh.ParseAuthorizedKey([]byte(key)); err != nil {
		return errf("invalid ssh_key: %v", err)
	}
	return nil
}

// Currency checks a payment currency selection.
func Currency(currency string) error {
	if !currencies[currency] {
		return errf("currency must be one of: btc|bch|bsv|xmr|settlement, got %q", currency)
	}
	return nil
}

// Region checks a region hint: 1-200 printable ASCII characters.
func Region(region string) error {
	if len(region) == 0 {
		return errf("region must be more than zero bytes long")
	}
	if len(region) > 200 {
		return errf("region must be 200 bytes or less, got %d", len(region))
	}
	for _, c := range region {
		if c < 0x09 || c > 0x7e {
			return errf("region must contain only printable ASCII characters")
		}
	}
	return nil
}

// Hostname checks a local machine hostname, the registry's primary
// key:
//   - 2 to 64 characters
//   - Only alphanumeric characters, hyphens, and periods
//   - First character must be alphanumeric
//   - Last character must not be a hyphen or period
func Hostname(name string) error {
	if len(name) < 2 {
		return errf("hostname must be at least 2 characters, got %d", len(name))
	}
	// The hostname becomes a registry file name.
	if len(name) > 64 {
		return errf("hostname must be 64 characters or less, got %d", len(name))
	}
	for _, c := range name {
		if !isAlphanumeric(byte(c)) && c != '-' && c != '.' {
			return errf("hostname %q contains invalid characters (only a-z, A-Z, 0-9, hyphens, and periods are allowed)", name)
		}
	}
	if !isAlphanumeric(name[0]) {
		return errf("hostname must start with an alphanumeric character, got %q", string(name[0]))
	}
	if last := name[len(name)-1]; last == '-' || last == '.' {
		return errf("hostname must not end with a hyphen or period, got %q", string(last))
	}
	return nil
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
