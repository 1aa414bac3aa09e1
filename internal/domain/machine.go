package domain

// Machine is the durable local record of a launched machine, one JSON
// file per user-chosen hostname. The machine ID doubles as the secret
// capability token for all further operations against the machine, so
// records are stored with owner-only permissions.
type Machine struct {
	// Hostname is the user-chosen primary key. It must match the
	// filename the record is stored under.
	Hostname string `json:"vm_hostname"`

	// MachineID is the 64-hex-character idempotency key / secret.
	MachineID string `json:"machine_id"`

	// Host is the physical host that owns the machine, as reported by
	// the provisioning API.
	Host string `json:"host,omitempty"`

	// APIEndpoint is the endpoint the machine was launched through.
	APIEndpoint string `json:"api_endpoint,omitempty"`

	// Expiration is a unix timestamp; topup raises it.
	Expiration int64 `json:"expiration,omitempty"`

	// LaunchProfile records the flavor slug used at launch, if any.
	LaunchProfile string `json:"launch_profile,omitempty"`
}
