package domain

import "errors"

// Sentinel errors for cross-layer error classification.
// Lower layers wrap these so the CLI can handle error categories
// uniformly without inspecting HTTP status codes or file-system errors.
//
//	return fmt.Errorf("%w: %s", domain.ErrValidation, body)
var (
	// ErrValidation indicates bad caller input, either rejected locally
	// before any network call or by the remote API with a 4xx status.
	// Never retried.
	ErrValidation = errors.New("invalid request")

	// ErrAlreadyExists indicates a machine record already exists for
	// the target hostname.
	ErrAlreadyExists = errors.New("machine already exists")

	// ErrNotFound indicates no machine record exists for the hostname.
	ErrNotFound = errors.New("machine not found")

	// ErrCorruptRecord indicates a stored machine record whose embedded
	// hostname does not match its filename key.
	ErrCorruptRecord = errors.New("corrupt machine record")

	// ErrNotSupported indicates the target server answered HTTP 415:
	// the feature is not implemented by that server.
	ErrNotSupported = errors.New("not supported by this server")

	// ErrServer indicates a 5xx response received without retry enabled.
	ErrServer = errors.New("server error")

	// ErrPaymentTimeout indicates the payment polling ceiling was
	// reached before the remote API reported the request as paid.
	ErrPaymentTimeout = errors.New("timed out waiting for payment confirmation")

	// ErrProvisioningTimeout indicates payment settled but the
	// provisioning polling ceiling was reached before the machine was
	// built. Distinct from ErrPaymentTimeout so the user knows which
	// phase to investigate.
	ErrProvisioningTimeout = errors.New("timed out waiting for machine provisioning")
)
