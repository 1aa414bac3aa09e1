// Package machine drives the provisioning lifecycle: submit a request,
// poll until paid, poll until provisioned, persist the local record.
//
// Submission is idempotent: every poll resubmits the identical request
// with the same machine ID, and the server either advances the request
// or reports its current status. The orchestrator only reacts to the
// structured paid/created fields; transport and 5xx failures are
// retried underneath it by the API client.
package machine

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vmspawn/vmspawn/internal/api"
	"github.com/vmspawn/vmspawn/internal/domain"
	"github.com/vmspawn/vmspawn/internal/payment"
	"github.com/vmspawn/vmspawn/internal/registry"
)

const (
	// DefaultPollInterval is the sleep between resubmissions.
	DefaultPollInterval = 10 * time.Second
	// DefaultMaxPollAttempts bounds each polling phase at about an
	// hour with the default interval.
	DefaultMaxPollAttempts = 360
)

// API is the slice of the provisioning client the orchestrator needs.
type API interface {
	Launch(ctx context.Context, req *api.LaunchRequest, retryEnabled bool) (*api.ProvisioningResponse, error)
	Topup(ctx context.Context, req *api.TopupRequest, retryEnabled bool) (*api.ProvisioningResponse, error)
	TokenEnable(ctx context.Context, req *api.TokenRequest, retryEnabled bool) (*api.TokenPaymentResponse, error)
	TokenAdd(ctx context.Context, req *api.TokenRequest, retryEnabled bool) (*api.TokenPaymentResponse, error)
	Endpoint() string
}

// Service orchestrates launch, topup, and settlement token payments.
type Service struct {
	API      API
	Registry *registry.Registry
	Resolver payment.Resolver
	Log      *logrus.Logger

	// PollInterval and MaxPollAttempts bound each polling phase.
	// Zero values fall back to the defaults.
	PollInterval    time.Duration
	MaxPollAttempts int

	// Dial returns a client for a stored record's endpoint when it
	// differs from API's. Nil means API is used regardless.
	Dial func(endpoint string) API
}

// NewMachineID generates a fresh machine ID: 64 lowercase hex
// characters digested from 64 cryptographically random bytes. The ID
// doubles as the idempotency key for resubmission, so uniqueness is
// what matters.
func NewMachineID() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("machine: generate id: %w", err)
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:]), nil
}

func (s *Service) log() *logrus.Logger {
	if s.Log != nil {
		return s.Log
	}
	return logrus.StandardLogger()
}

func (s *Service) pollInterval() time.Duration {
	if s.PollInterval > 0 {
		return s.PollInterval
	}
	return DefaultPollInterval
}

func (s *Service) maxPollAttempts() int {
	if s.MaxPollAttempts > 0 {
		return s.MaxPollAttempts
	}
	return DefaultMaxPollAttempts
}

// window is the total duration one polling phase may take.
func (s *Service) window() time.Duration {
	return time.Duration(s.maxPollAttempts()) * s.pollInterval()
}

func (s *Service) sleep(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.pollInterval()):
		return nil
	}
}

// paidResponse is any reply that follows the pay-then-poll contract.
type paidResponse interface {
	IsPaid() bool
	PaymentInfo() *api.Payment
}

// awaitPaid resolves the payment for an unpaid response, then polls by
// resubmitting until the server confirms settlement. A response that
// is already paid returns immediately without touching the resolver.
func (s *Service) awaitPaid(ctx context.Context, currency string, first paidResponse, resubmit func() (paidResponse, error)) error {
	if first.IsPaid() {
		return nil
	}

	instruction := first.PaymentInfo()
	if instruction == nil {
		return fmt.Errorf("%w: unpaid response carried no payment instruction", domain.ErrServer)
	}
	if s.Resolver == nil {
		return fmt.Errorf("%w: no payment resolver configured", domain.ErrValidation)
	}
	if err := s.Resolver.ResolvePayment(ctx, currency, instruction); err != nil {
		return err
	}

	for try := 0; try < s.maxPollAttempts(); try++ {
		if err := s.sleep(ctx); err != nil {
			return err
		}
		s.log().Info("waiting for payment to confirm")
		resp, err := resubmit()
		if err != nil {
			return err
		}
		if resp.IsPaid() {
			return nil
		}
	}
	return fmt.Errorf("%w: payment not confirmed within %s", domain.ErrPaymentTimeout, s.window())
}

// awaitCreated polls until the server reports the machine built. The
// ceiling failure is distinct from the payment one so the caller can
// tell which phase gave up.
func (s *Service) awaitCreated(ctx context.Context, first *api.ProvisioningResponse, resubmit func() (*api.ProvisioningResponse, error)) (*api.ProvisioningResponse, error) {
	if first.Created {
		return first, nil
	}

	for try := 0; try < s.maxPollAttempts(); try++ {
		if err := s.sleep(ctx); err != nil {
			return nil, err
		}
		s.log().Info("waiting for machine to build")
		resp, err := resubmit()
		if err != nil {
			return nil, err
		}
		if resp.Created {
			return resp, nil
		}
	}
	return nil, fmt.Errorf("%w: machine not built within %s", domain.ErrProvisioningTimeout, s.window())
}

// Launch provisions a new machine and persists its record. Profile is
// the flavor slug the request was built from, or empty for custom
// shapes. No record is written unless the server reported the machine
// created.
func (s *Service) Launch(ctx context.Context, hostname, profile string, req *api.LaunchRequest) (*api.ProvisioningResponse, error) {
	if s.Registry.Exists(hostname) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyExists, hostname)
	}

	if req.MachineID == "" {
		id, err := NewMachineID()
		if err != nil {
			return nil, err
		}
		req.MachineID = id
	}

	submit := func() (*api.ProvisioningResponse, error) {
		return s.API.Launch(ctx, req, true)
	}

	resp, err := submit()
	if err != nil {
		return nil, err
	}
	// The hosted endpoint assigns a physical host; pin it so every
	// resubmission lands on the same one.
	if resp.Host != "" {
		req.Host = resp.Host
	}

	if err := s.awaitPaid(ctx, req.Currency, resp, func() (paidResponse, error) {
		r, err := submit()
		if err != nil {
			return nil, err
		}
		resp = r
		return r, nil
	}); err != nil {
		return nil, err
	}

	resp, err = s.awaitCreated(ctx, resp, submit)
	if err != nil {
		return nil, err
	}

	host := resp.Host
	if host == "" {
		host = req.Host
	}
	record := &domain.Machine{
		Hostname:      hostname,
		MachineID:     req.MachineID,
		Host:          host,
		APIEndpoint:   s.API.Endpoint(),
		Expiration:    resp.Expiration,
		LaunchProfile: profile,
	}
	if err := s.Registry.Create(record); err != nil {
		return nil, err
	}
	return resp, nil
}

// Topup extends an existing machine's lifetime, reusing the stored
// machine ID and host. Only the record's expiration is rewritten.
func (s *Service) Topup(ctx context.Context, hostname string, req *api.TopupRequest) (*domain.Machine, error) {
	record, err := s.Registry.Read(hostname)
	if err != nil {
		return nil, err
	}

	req.MachineID = record.MachineID
	if req.Host == "" {
		req.Host = record.Host
	}

	client := s.API
	if record.APIEndpoint != "" && record.APIEndpoint != s.API.Endpoint() && s.Dial != nil {
		client = s.Dial(record.APIEndpoint)
	}

	submit := func() (*api.ProvisioningResponse, error) {
		return client.Topup(ctx, req, true)
	}

	resp, err := submit()
	if err != nil {
		return nil, err
	}

	if err := s.awaitPaid(ctx, req.Currency, resp, func() (paidResponse, error) {
		r, err := submit()
		if err != nil {
			return nil, err
		}
		resp = r
		return r, nil
	}); err != nil {
		return nil, err
	}

	record.Expiration = resp.Expiration
	if err := s.Registry.Overwrite(record); err != nil {
		return nil, err
	}
	return record, nil
}

// TokenEnable registers a settlement token, paying the enablement fee
// if the server asks for one.
func (s *Service) TokenEnable(ctx context.Context, token, currency string) error {
	req := &api.TokenRequest{Token: token, Currency: currency}
	resp, err := s.API.TokenEnable(ctx, req, true)
	if err != nil {
		return err
	}
	return s.awaitPaid(ctx, currency, resp, func() (paidResponse, error) {
		return s.API.TokenEnable(ctx, req, true)
	})
}

// TokenAdd adds prepaid balance, in US cents, to an enabled settlement
// token.
func (s *Service) TokenAdd(ctx context.Context, token, currency string, cents uint64) error {
	req := &api.TokenRequest{Token: token, Currency: currency, Cents: cents}
	resp, err := s.API.TokenAdd(ctx, req, true)
	if err != nil {
		return err
	}
	return s.awaitPaid(ctx, currency, resp, func() (paidResponse, error) {
		return s.API.TokenAdd(ctx, req, true)
	})
}
