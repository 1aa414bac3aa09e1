package machine

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vmspawn/vmspawn/internal/api"
	"github.com/vmspawn/vmspawn/internal/domain"
)

func validRequest() *api.LaunchRequest {
	return &api.LaunchRequest{
		Days:      7,
		Cores:     1,
		Memory:    1024,
		Disk:      8,
		Bandwidth: 20,
		IPv4:      api.IPTor,
		IPv6:      api.IPTor,
		Currency:  "xmr",
	}
}

func TestValidateLaunch(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *api.LaunchRequest)
		wantErr bool
	}{
		{
			name:   "valid tor shape",
			mutate: func(req *api.LaunchRequest) {},
		},
		{
			name:    "zero days without override",
			mutate:  func(req *api.LaunchRequest) { req.Days = 0 },
			wantErr: true,
		},
		{
			name: "zero days with override code",
			mutate: func(req *api.LaunchRequest) {
				req.Days = 0
				req.OverrideCode = "letmein"
			},
		},
		{
			name:    "too many days",
			mutate:  func(req *api.LaunchRequest) { req.Days = 29 },
			wantErr: true,
		},
		{
			name:    "bad currency",
			mutate:  func(req *api.LaunchRequest) { req.Currency = "doge" },
			wantErr: true,
		},
		{
			name: "mixed tor and public connectivity",
			mutate: func(req *api.LaunchRequest) {
				req.IPv4 = api.IPTor
				req.IPv6 = api.IPv6Public
			},
			wantErr: true,
		},
		{
			name:    "zero memory",
			mutate:  func(req *api.LaunchRequest) { req.Memory = 0 },
			wantErr: true,
		},
		{
			name:    "malformed ssh key",
			mutate:  func(req *api.LaunchRequest) { req.SSHKey = "not a key" },
			wantErr: true,
		},
		{
			name:    "ipxe script with null byte",
			mutate:  func(req *api.LaunchRequest) { req.IPXEScript = "#!ipxe\x00" },
			wantErr: true,
		},
		{
			name:    "short settlement token",
			mutate:  func(req *api.LaunchRequest) { req.SettlementToken = "abc123" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := validateLaunch("web-01", req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected a validation error, got nil")
				}
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("error %v does not wrap ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateLaunch_BadHostname(t *testing.T) {
	if err := validateLaunch("", validRequest()); err == nil {
		t.Error("empty hostname must be rejected")
	}
	if err := validateLaunch(strings.Repeat("a", 300), validRequest()); err == nil {
		t.Error("oversized hostname must be rejected")
	}
}

func TestFormatExpiration(t *testing.T) {
	if got := formatExpiration(0); got != "-" {
		t.Errorf("formatExpiration(0) = %q, want %q", got, "-")
	}

	future := time.Now().Add(10 * 24 * time.Hour).Unix()
	got := formatExpiration(future)
	if !strings.Contains(got, "d left") {
		t.Errorf("expected remaining days in %q", got)
	}

	past := time.Now().Add(-time.Hour).Unix()
	if got := formatExpiration(past); !strings.Contains(got, "expired") {
		t.Errorf("expected %q to mention expired", got)
	}
}
