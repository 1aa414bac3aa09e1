package api

import (
	"encoding/json"
	"fmt"
)

// IPPolicy is a connectivity mode for one address family. On the wire
// it is either the JSON literal false (no address) or one of the
// strings "/32", "/128", "nat", "tor".
type IPPolicy string

const (
	IPNone     IPPolicy = "false"
	IPNat      IPPolicy = "nat"
	IPTor      IPPolicy = "tor"
	IPv4Public IPPolicy = "/32"
	IPv6Public IPPolicy = "/128"
)

func (p IPPolicy) MarshalJSON() ([]byte, error) {
	if p == "" || p == IPNone {
		return []byte("false"), nil
	}
	return json.Marshal(string(p))
}

func (p *IPPolicy) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "false":
		*p = IPNone
		return nil
	case "true":
		return fmt.Errorf("ip policy cannot be true")
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = IPPolicy(s)
	return nil
}

// LaunchRequest is the body of a launch call. The same body is
// resubmitted verbatim on every poll; the machine ID makes the call
// idempotent server-side.
type LaunchRequest struct {
	MachineID       string   `json:"machine_id"`
	Days            int      `json:"days"`
	Disk            int      `json:"disk"`
	Memory          int      `json:"memory"`
	Cores           int      `json:"cores"`
	Bandwidth       int      `json:"bandwidth"`
	IPv4            IPPolicy `json:"ipv4"`
	IPv6            IPPolicy `json:"ipv6"`
	Currency        string   `json:"currency,omitempty"`
	SettlementToken string   `json:"settlement_token,omitempty"`
	RefundAddress   string   `json:"refund_address,omitempty"`
	Region          string   `json:"region,omitempty"`
	Organization    string   `json:"organization,omitempty"`
	OverrideCode    string   `json:"override_code,omitempty"`
	AffiliateAmount *int     `json:"affiliate_amount,omitempty"`
	Managed         bool     `json:"managed,omitempty"`
	HostAccess      bool     `json:"hostaccess,omitempty"`
	IPXEScript      string   `json:"ipxescript,omitempty"`
	OperatingSystem string   `json:"operating_system,omitempty"`
	SSHKey          string   `json:"ssh_key,omitempty"`
	QEMUOpts        string   `json:"qemuopts,omitempty"`
	WantTopup       bool     `json:"want_topup,omitempty"`
	Host            string   `json:"host,omitempty"`
}

// TopupRequest is the body of a topup call, reusing the machine ID of
// an existing machine.
type TopupRequest struct {
	MachineID       string `json:"machine_id"`
	Days            int    `json:"days"`
	Currency        string `json:"currency,omitempty"`
	SettlementToken string `json:"settlement_token,omitempty"`
	RefundAddress   string `json:"refund_address,omitempty"`
	OverrideCode    string `json:"override_code,omitempty"`
	Host            string `json:"host,omitempty"`
}

// Payment carries the instruction for settling an unpaid request.
type Payment struct {
	Address string `json:"address,omitempty"`
	// Amount is in the currency's base unit (satoshis, or piconero
	// for xmr).
	Amount uint64 `json:"amount,omitempty"`
	URI    string `json:"uri,omitempty"`
	// USDCents is an optional fiat estimate for display only.
	USDCents *uint64 `json:"usd_cents,omitempty"`
}

// NetworkInterface describes one of the machine's interfaces.
type NetworkInterface struct {
	IPv4 string `json:"ipv4,omitempty"`
	IPv6 string `json:"ipv6,omitempty"`
}

// ProvisioningResponse is the reply to a launch or topup call. It is a
// snapshot: the client re-fetches it by resubmitting the same request
// and only reacts to the Paid/Created fields.
type ProvisioningResponse struct {
	Paid              bool               `json:"paid"`
	Created           bool               `json:"created"`
	Payment           *Payment           `json:"payment,omitempty"`
	Host              string             `json:"host,omitempty"`
	Expiration        int64              `json:"expiration,omitempty"`
	NetworkInterfaces []NetworkInterface `json:"network_interfaces,omitempty"`
	SSHHostname       string             `json:"sshhostname,omitempty"`
	LatestAPIVersion  int                `json:"latest_api_version,omitempty"`
}

// IsPaid implements payment polling for the orchestrator.
func (r *ProvisioningResponse) IsPaid() bool { return r.Paid }

// PaymentInfo implements payment polling for the orchestrator.
func (r *ProvisioningResponse) PaymentInfo() *Payment { return r.Payment }

// InfoResponse is the reply to an info query.
type InfoResponse struct {
	Running           bool               `json:"running"`
	Expiration        int64              `json:"expiration,omitempty"`
	NetworkInterfaces []NetworkInterface `json:"network_interfaces,omitempty"`
	SSHHostname       string             `json:"sshhostname,omitempty"`
	Host              string             `json:"host,omitempty"`
	LatestAPIVersion  int                `json:"latest_api_version,omitempty"`
}

type existsResponse struct {
	Result bool `json:"result"`
}

type statusResponse struct {
	Result string `json:"result"`
}

type sshHostnameResponse struct {
	SSHHostname string `json:"sshhostname"`
}

// TokenRequest addresses a prepaid settlement token.
type TokenRequest struct {
	Token    string `json:"token"`
	Currency string `json:"currency,omitempty"`
	// Cents is the prepaid amount to add, in US cents. Only set for
	// token_add.
	Cents uint64 `json:"cents,omitempty"`
}

// TokenPaymentResponse is the reply to token_enable and token_add,
// which follow the same pay-then-poll contract as launch.
type TokenPaymentResponse struct {
	Paid             bool     `json:"paid"`
	Payment          *Payment `json:"payment,omitempty"`
	LatestAPIVersion int      `json:"latest_api_version,omitempty"`
}

// IsPaid implements payment polling for the orchestrator.
func (r *TokenPaymentResponse) IsPaid() bool { return r.Paid }

// PaymentInfo implements payment polling for the orchestrator.
func (r *TokenPaymentResponse) PaymentInfo() *Payment { return r.Payment }

// TokenBalanceResponse is the reply to a token_balance query.
type TokenBalanceResponse struct {
	Cents            uint64 `json:"cents"`
	USD              string `json:"usd,omitempty"`
	LatestAPIVersion int    `json:"latest_api_version,omitempty"`
}
