package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/vmspawn/vmspawn/internal/domain"
)

const validID = "ab0c9d8e7f6a5b4c3d2e1f0a9b8c7d6e5f4a3b2c1d0e9f8a7b6c5d4e3f2a1b0c"

func TestMachineID_Valid(t *testing.T) {
	ids := []string{
		validID,
		strings.Repeat("0", 64),
		strings.Repeat("f", 64),
	}
	for _, id := range ids {
		if err := MachineID(id); err != nil {
			t.Errorf("expected %q to be valid, got error: %v", id, err)
		}
	}
}

func TestMachineID_Invalid(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"too short", validID[:63]},
		{"too long", validID + "0"},
		{"uppercase hex", strings.ToUpper(validID)},
		{"non-hex character", strings.Repeat("g", 64)},
		{"embedded space", validID[:32] + " " + validID[33:]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MachineID(tt.id)
			if err == nil {
				t.Fatalf("expected %q to be invalid", tt.id)
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestSettlementToken(t *testing.T) {
	if err := SettlementToken(validID); err != nil {
		t.Errorf("expected valid token, got %v", err)
	}
	if err := SettlementToken("deadbeef"); err == nil {
		t.Error("expected short token to be invalid")
	}
}

func TestDays(t *testing.T) {
	tests := []struct {
		days        int
		zeroAllowed bool
		wantErr     bool
	}{
		{1, false, false},
		{28, false, false},
		{0, false, true},
		{0, true, false},
		{29, false, true},
		{29, true, true},
		{-1, false, true},
		{-1, true, true},
	}
	for _, tt := range tests {
		err := Days(tt.days, tt.zeroAllowed)
		if (err != nil) != tt.wantErr {
			t.Errorf("Days(%d, %t): got err=%v, wantErr=%t", tt.days, tt.zeroAllowed, err, tt.wantErr)
		}
	}
}

func TestOperatingSystem(t *testing.T) {
	valid := []string{"debian-12", "ubuntu2404", "a", "freebsd"}
	for _, os := range valid {
		if err := OperatingSystem(os); err != nil {
			t.Errorf("expected %q to be valid, got %v", os, err)
		}
	}
	invalid := []string{"", "Debian", "a b", "toolongoperatingsys", "über"}
	for _, os := range invalid {
		if err := OperatingSystem(os); err == nil {
			t.Errorf("expected %q to be invalid", os)
		}
	}
}

func TestOrganization(t *testing.T) {
	if err := Organization("AcmeCorp"); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
	for _, org := range []string{"", "acme corp", "acme1", "seventeencharslong"} {
		if err := Organization(org); err == nil {
			t.Errorf("expected %q to be invalid", org)
		}
	}
}

func TestBandwidth(t *testing.T) {
	for _, bw := range []int{-1, 0, 10, 1000} {
		if err := Bandwidth(bw); err != nil {
			t.Errorf("Bandwidth(%d): unexpected error %v", bw, err)
		}
	}
	if err := Bandwidth(-2); err == nil {
		t.Error("expected -2 to be invalid")
	}
}

func TestMemory(t *testing.T) {
	if err := Memory(1024); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Memory(0); err == nil {
		t.Error("expected 0 to be invalid for memory")
	}
	if err := Memory(-1); err == nil {
		t.Error("expected -1 to be invalid for memory")
	}
}

func TestIPModes(t *testing.T) {
	for _, mode := range []string{"false", "/32", "nat", "tor"} {
		if err := IPv4(mode); err != nil {
			t.Errorf("IPv4(%q): unexpected error %v", mode, err)
		}
	}
	for _, mode := range []string{"false", "/128", "nat", "tor"} {
		if err := IPv6(mode); err != nil {
			t.Errorf("IPv6(%q): unexpected error %v", mode, err)
		}
	}
	if err := IPv4("/128"); err == nil {
		t.Error("expected /128 to be invalid for ipv4")
	}
	if err := IPv6("/32"); err == nil {
		t.Error("expected /32 to be invalid for ipv6")
	}
	if err := IPv4("true"); err == nil {
		t.Error("expected \"true\" to be invalid for ipv4")
	}
}

func TestIPv4IPv6(t *testing.T) {
	tests := []struct {
		ipv4, ipv6 string
		wantErr    bool
	}{
		{"tor", "tor", false},
		{"nat", "nat", false},
		{"/32", "/128", false},
		{"false", "/128", false},
		{"tor", "nat", true},
		{"tor", "false", true},
		{"nat", "/128", true},
		{"/32", "tor", true},
	}
	for _, tt := range tests {
		err := IPv4IPv6(tt.ipv4, tt.ipv6)
		if (err != nil) != tt.wantErr {
			t.Errorf("IPv4IPv6(%q, %q): got err=%v, wantErr=%t", tt.ipv4, tt.ipv6, err, tt.wantErr)
		}
	}
}

func TestIPXEScript(t *testing.T) {
	if err := IPXEScript("#!ipxe\nchain http://boot.example.com/boot.ipxe\n"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := IPXEScript(""); err == nil {
		t.Error("expected empty script to be invalid")
	}
	if err := IPXEScript(strings.Repeat("a", 4001)); err == nil {
		t.Error("expected oversized script to be invalid")
	}
	if err := IPXEScript("#!ipxe\x00"); err == nil {
		t.Error("expected NUL byte to be invalid")
	}
	if err := IPXEScript("#!ipxe é"); err == nil {
		t.Error("expected non-ASCII to be invalid")
	}
}

func TestAffiliateAmount(t *testing.T) {
	if err := AffiliateAmount(100); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := AffiliateAmount(0); err == nil {
		t.Error("expected 0 to be invalid")
	}
	if err := AffiliateAmount(-5); err == nil {
		t.Error("expected -5 to be invalid")
	}
}

func TestSSHKey(t *testing.T) {
	// Structurally valid ed25519 public key (throwaway, generated for tests).
	const key = "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIGt1PUDLkmm1H9gbFCAtLzcXC4W29TJztDpMGkNCCo/Z test@example"
	if err := SSHKey(key); err != nil {
		t.Errorf("expected valid key, got %v", err)
	}
	for _, bad := range []string{"", "   ", "not a key", "ssh-ed25519 AAAA"} {
		if err := SSHKey(bad); err == nil {
			t.Errorf("expected %q to be invalid", bad)
		}
	}
}

func TestCurrency(t *testing.T) {
	for _, c := range []string{"btc", "bch", "bsv", "xmr", "settlement"} {
		if err := Currency(c); err != nil {
			t.Errorf("Currency(%q): unexpected error %v", c, err)
		}
	}
	for _, c := range []string{"", "usd", "BTC", "doge"} {
		if err := Currency(c); err == nil {
			t.Errorf("expected %q to be invalid", c)
		}
	}
}

func TestHostname(t *testing.T) {
	valid := []string{"web-1", "my.machine", "a1", "Relay.Tor.01"}
	for _, name := range valid {
		if err := Hostname(name); err != nil {
			t.Errorf("expected %q to be valid, got %v", name, err)
		}
	}
	invalid := []string{"", "a", "-web", "web-", "web.", "web server", "web_1", strings.Repeat("a", 65)}
	for _, name := range invalid {
		if err := Hostname(name); err == nil {
			t.Errorf("expected %q to be invalid", name)
		}
	}
}
