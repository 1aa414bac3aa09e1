// Package api is a stateless client for the remote provisioning API:
// versioned JSON over HTTP, path pattern {endpoint}/v{version}/{action}.
// Mutating calls are POSTs with a JSON body; read-only queries are GETs
// with query parameters.
//
// It deliberately uses a direct HTTP client rather than any SDK: the
// protocol is bespoke, and typed request/response structs keep the
// optional, version-dependent fields explicit.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/proxy"

	"github.com/vmspawn/vmspawn/internal/domain"
	"github.com/vmspawn/vmspawn/internal/retry"
)

// Version is the API version this client speaks. Responses may carry a
// latest_api_version field; a newer value logs a compatibility warning
// but is not fatal.
const Version = 2

// DefaultEndpoint is the hosted provisioning endpoint.
const DefaultEndpoint = "https://api.vmspawn.net"

// ProxyMode controls SOCKS routing for .onion endpoints.
type ProxyMode string

const (
	// ProxyAuto routes through the SOCKS proxy only when the target
	// URL is a hidden service. This is the default.
	ProxyAuto ProxyMode = "auto"
	// ProxyAlways behaves like ProxyAuto for routing; it exists so a
	// caller can assert intent explicitly.
	ProxyAlways ProxyMode = "always"
	// ProxyNever disables SOCKS routing unconditionally.
	ProxyNever ProxyMode = "never"
)

const (
	// GETs are read-only and should answer fast.
	defaultGetTimeout = 60 * time.Second
	// POSTs may do real provisioning work server-side.
	defaultPostTimeout = 90 * time.Second
	// Fixed sleep between retries of 5xx/transport failures.
	defaultRetryInterval = 5 * time.Second

	defaultSocksProxy = "127.0.0.1:9050"
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	Endpoint      string
	SocksProxy    string
	ProxyMode     ProxyMode
	Logger        *logrus.Logger
	GetTimeout    time.Duration
	PostTimeout   time.Duration
	RetryInterval time.Duration
}

// Client is a stateless request/response mapper for one API endpoint.
type Client struct {
	endpoint      string
	socksProxy    string
	mode          ProxyMode
	log           *logrus.Logger
	retryInterval time.Duration
	getTimeout    time.Duration
	postTimeout   time.Duration

	httpGet  *http.Client
	httpPost *http.Client

	torOnce sync.Once
	torGet  *http.Client
	torPost *http.Client
	torErr  error
}

// New creates a Client for the given endpoint.
func New(opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.SocksProxy == "" {
		opts.SocksProxy = defaultSocksProxy
	}
	if opts.ProxyMode == "" {
		opts.ProxyMode = ProxyAuto
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	if opts.GetTimeout == 0 {
		opts.GetTimeout = defaultGetTimeout
	}
	if opts.PostTimeout == 0 {
		opts.PostTimeout = defaultPostTimeout
	}
	if opts.RetryInterval == 0 {
		opts.RetryInterval = defaultRetryInterval
	}

	return &Client{
		endpoint:      strings.TrimRight(opts.Endpoint, "/"),
		socksProxy:    opts.SocksProxy,
		mode:          opts.ProxyMode,
		log:           opts.Logger,
		retryInterval: opts.RetryInterval,
		getTimeout:    opts.GetTimeout,
		postTimeout:   opts.PostTimeout,
		httpGet:       &http.Client{Timeout: opts.GetTimeout},
		httpPost:      &http.Client{Timeout: opts.PostTimeout},
	}
}

// EndpointForHost derives an endpoint URL for talking to a physical
// host directly instead of the hosted endpoint.
func EndpointForHost(host string) string {
	return "http://" + host
}

// Endpoint returns the endpoint this client talks to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) actionURL(action string) string {
	return fmt.Sprintf("%s/v%d/%s", c.endpoint, Version, action)
}

// torClients builds the SOCKS-routed HTTP clients on first use.
func (c *Client) torClients() (*http.Client, *http.Client, error) {
	c.torOnce.Do(func() {
		dialer, err := proxy.SOCKS5("tcp", c.socksProxy, nil, proxy.Direct)
		if err != nil {
			c.torErr = fmt.Errorf("socks proxy %s: %w", c.socksProxy, err)
			return
		}
		ctxDialer, ok := dialer.(proxy.ContextDialer)
		if !ok {
			c.torErr = fmt.Errorf("socks proxy %s: dialer does not support contexts", c.socksProxy)
			return
		}
		transport := &http.Transport{DialContext: ctxDialer.DialContext}
		c.torGet = &http.Client{Timeout: c.getTimeout, Transport: transport}
		c.torPost = &http.Client{Timeout: c.postTimeout, Transport: transport}
	})
	return c.torGet, c.torPost, c.torErr
}

// clientFor picks the HTTP client for a request: the SOCKS-routed one
// when the target is a hidden service and proxying is not disabled.
func (c *Client) clientFor(method, target string) (*http.Client, error) {
	if c.mode != ProxyNever && IsOnionURL(target) {
		get, post, err := c.torClients()
		if err != nil {
			return nil, err
		}
		if method == http.MethodGet {
			return get, nil
		}
		return post, nil
	}
	if method == http.MethodGet {
		return c.httpGet, nil
	}
	return c.httpPost, nil
}

// isTransient reports whether an error is worth retrying: 5xx
// responses and transport-level failures. 4xx classifications and
// context cancellation are final.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, domain.ErrServer) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// do performs one API call. When retryEnabled is set, 5xx and
// transport failures are resubmitted every retryInterval without
// bound; everything else fails immediately.
func (c *Client) do(ctx context.Context, method, action string, query url.Values, body, out any) error {
	return c.doRetry(ctx, method, action, query, body, out, false)
}

func (c *Client) doRetry(ctx context.Context, method, action string, query url.Values, body, out any, retryEnabled bool) error {
	target := c.actionURL(action)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	client, err := c.clientFor(method, target)
	if err != nil {
		return err
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	attempt := func() error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, reader)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, action, err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("%s %s: read response: %w", method, action, err)
		}

		switch resp.StatusCode / 100 {
		case 2:
			return c.decode(raw, out)
		case 4:
			if resp.StatusCode == http.StatusUnsupportedMediaType {
				return fmt.Errorf("%w: %s", domain.ErrNotSupported, action)
			}
			return fmt.Errorf("%w: %s", domain.ErrValidation, strings.TrimSpace(string(raw)))
		case 5:
			return fmt.Errorf("%w: %s: %s", domain.ErrServer, resp.Status, strings.TrimSpace(string(raw)))
		default:
			return fmt.Errorf("%w: unexpected status %s", domain.ErrServer, resp.Status)
		}
	}

	if !retryEnabled {
		return attempt()
	}

	cfg := retry.Config{MaxAttempts: 0, Interval: c.retryInterval}
	return retry.Do(ctx, cfg, isTransient, func() error {
		err := attempt()
		if err != nil && isTransient(err) {
			c.log.WithError(err).Warnf("transient error, retrying in %s", c.retryInterval)
		}
		return err
	})
}

// decode parses a 2xx body, logging a compatibility warning if the
// server advertises a newer API version than this client speaks.
func (c *Client) decode(raw []byte, out any) error {
	var probe struct {
		LatestAPIVersion int `json:"latest_api_version"`
	}
	if len(raw) > 0 && json.Unmarshal(raw, &probe) == nil && probe.LatestAPIVersion > Version {
		c.log.Warnf("server speaks API v%d, this client speaks v%d; a newer client may be available", probe.LatestAPIVersion, Version)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("malformed response body: %w", err)
	}
	return nil
}

func machineQuery(machineID, host string) url.Values {
	query := url.Values{"machine_id": {machineID}}
	if host != "" {
		query.Set("host", host)
	}
	return query
}

type machineRef struct {
	MachineID string `json:"machine_id"`
	Host      string `json:"host,omitempty"`
}

// Launch submits (or resubmits) a launch request. Resubmitting with
// the same machine ID never creates a second machine; the server
// advances the request or reports its current status.
func (c *Client) Launch(ctx context.Context, req *LaunchRequest, retryEnabled bool) (*ProvisioningResponse, error) {
	var resp ProvisioningResponse
	if err := c.doRetry(ctx, http.MethodPost, "launch", nil, req, &resp, retryEnabled); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Topup submits (or resubmits) a topup request for an existing machine.
func (c *Client) Topup(ctx context.Context, req *TopupRequest, retryEnabled bool) (*ProvisioningResponse, error) {
	var resp ProvisioningResponse
	if err := c.doRetry(ctx, http.MethodPost, "topup", nil, req, &resp, retryEnabled); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Start boots the machine.
func (c *Client) Start(ctx context.Context, machineID, host string) error {
	return c.do(ctx, http.MethodPost, "start", nil, &machineRef{machineID, host}, nil)
}

// Stop immediately powers off the machine.
func (c *Client) Stop(ctx context.Context, machineID, host string) error {
	return c.do(ctx, http.MethodPost, "stop", nil, &machineRef{machineID, host}, nil)
}

// Delete destroys the machine. There is no undo.
func (c *Client) Delete(ctx context.Context, machineID, host string) error {
	return c.do(ctx, http.MethodPost, "delete", nil, &machineRef{machineID, host}, nil)
}

// Exists reports whether the machine still exists remotely.
func (c *Client) Exists(ctx context.Context, machineID, host string) (bool, error) {
	var resp existsResponse
	if err := c.do(ctx, http.MethodGet, "exists", machineQuery(machineID, host), nil, &resp); err != nil {
		return false, err
	}
	return resp.Result, nil
}

// Status reports whether the machine is started or stopped.
func (c *Client) Status(ctx context.Context, machineID, host string) (string, error) {
	var resp statusResponse
	if err := c.do(ctx, http.MethodGet, "status", machineQuery(machineID, host), nil, &resp); err != nil {
		return "", err
	}
	return resp.Result, nil
}

// Info returns details about the machine.
func (c *Client) Info(ctx context.Context, machineID, host string) (*InfoResponse, error) {
	var resp InfoResponse
	if err := c.do(ctx, http.MethodGet, "info", machineQuery(machineID, host), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SSHHostname returns a hostname that reaches port 22 on the machine.
func (c *Client) SSHHostname(ctx context.Context, machineID, host string) (string, error) {
	var resp sshHostnameResponse
	if err := c.do(ctx, http.MethodGet, "sshhostname", machineQuery(machineID, host), nil, &resp); err != nil {
		return "", err
	}
	return resp.SSHHostname, nil
}

// SetIPXEScript replaces the machine's network boot script. Servers
// that do not implement this answer 415, surfaced as ErrNotSupported.
func (c *Client) SetIPXEScript(ctx context.Context, machineID, host, script string) error {
	body := struct {
		machineRef
		IPXEScript string `json:"ipxescript"`
	}{machineRef{machineID, host}, script}
	return c.do(ctx, http.MethodPost, "ipxescript", nil, &body, nil)
}

// SetBootOrder updates the machine's boot order.
func (c *Client) SetBootOrder(ctx context.Context, machineID, host, bootorder string) error {
	body := struct {
		machineRef
		BootOrder string `json:"bootorder"`
	}{machineRef{machineID, host}, bootorder}
	return c.do(ctx, http.MethodPost, "bootorder", nil, &body, nil)
}

// HostInfo returns the raw host_info document for a physical host.
// The shape varies by server version, so it is passed through opaque.
func (c *Client) HostInfo(ctx context.Context, host string) (json.RawMessage, error) {
	query := url.Values{}
	if host != "" {
		query.Set("host", host)
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "host_info", query, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// TokenEnable registers a new settlement token. Like launch, the reply
// may be unpaid and carry a payment instruction.
func (c *Client) TokenEnable(ctx context.Context, req *TokenRequest, retryEnabled bool) (*TokenPaymentResponse, error) {
	var resp TokenPaymentResponse
	if err := c.doRetry(ctx, http.MethodPost, "token_enable", nil, req, &resp, retryEnabled); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TokenAdd adds prepaid balance to an enabled settlement token.
func (c *Client) TokenAdd(ctx context.Context, req *TokenRequest, retryEnabled bool) (*TokenPaymentResponse, error) {
	var resp TokenPaymentResponse
	if err := c.doRetry(ctx, http.MethodPost, "token_add", nil, req, &resp, retryEnabled); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TokenBalance returns the remaining balance on a settlement token.
func (c *Client) TokenBalance(ctx context.Context, token string) (*TokenBalanceResponse, error) {
	var resp TokenBalanceResponse
	query := url.Values{"token": {token}}
	if err := c.do(ctx, http.MethodGet, "token_balance", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
