// Package app wires the pieces a CLI command needs: configuration,
// the API client, the machine registry, the payment resolver, and the
// orchestrator. Flags override config, config overrides defaults.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vmspawn/vmspawn/internal/api"
	"github.com/vmspawn/vmspawn/internal/auditlog"
	"github.com/vmspawn/vmspawn/internal/config"
	"github.com/vmspawn/vmspawn/internal/machine"
	"github.com/vmspawn/vmspawn/internal/payment"
	"github.com/vmspawn/vmspawn/internal/registry"
	"github.com/vmspawn/vmspawn/internal/wallet"
)

// App holds the wired dependencies for one command invocation.
type App struct {
	Config   *config.Config
	Log      *logrus.Logger
	Client   *api.Client
	Registry *registry.Registry
	Service  *machine.Service
	Secrets  wallet.Store

	started time.Time
}

// FromCommand builds an App from the root command's persistent flags
// and the stored configuration.
func FromCommand(cmd *cobra.Command) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	endpoint := flagOr(cmd, "api-endpoint", cfg.APIEndpoint)
	torProxy := flagOr(cmd, "tor-proxy", cfg.TorProxy)
	socksProxy := flagOr(cmd, "socks-proxy", cfg.SocksProxy)

	mode := api.ProxyAuto
	switch torProxy {
	case "", "auto":
	case "always":
		mode = api.ProxyAlways
	case "never":
		mode = api.ProxyNever
	default:
		return nil, fmt.Errorf("invalid --tor-proxy value %q (valid: auto, always, never)", torProxy)
	}

	client := api.New(api.Options{
		Endpoint:   endpoint,
		SocksProxy: socksProxy,
		ProxyMode:  mode,
		Logger:     log,
	})

	reg, err := registry.Open()
	if err != nil {
		return nil, err
	}

	secrets := wallet.DefaultStore()

	a := &App{
		Config:   cfg,
		Log:      log,
		Client:   client,
		Registry: reg,
		Secrets:  secrets,
		started:  time.Now(),
	}

	a.Service = &machine.Service{
		API:      client,
		Registry: reg,
		Resolver: a.resolver(cmd),
		Log:      log,
		Dial: func(endpoint string) machine.API {
			return api.New(api.Options{
				Endpoint:   endpoint,
				SocksProxy: socksProxy,
				ProxyMode:  mode,
				Logger:     log,
			})
		},
	}

	return a, nil
}

// resolver picks the payment path: a configured wallet command with a
// stored credential sends non-interactively, otherwise payment falls
// back to the QR-and-confirm flow.
func (a *App) resolver(cmd *cobra.Command) payment.Resolver {
	if a.Config.WalletCommand != "" {
		credential, err := a.Secrets.GetSecret(wallet.KeyCredential)
		if err == nil && credential != "" {
			return &payment.WalletResolver{
				Sender: &wallet.ExecSender{
					Command:    a.Config.WalletCommand,
					Credential: credential,
				},
				Log: a.Log,
			}
		}
		if err != nil && !errors.Is(err, wallet.ErrSecretNotFound) {
			a.Log.WithError(err).Warn("wallet credential unavailable, falling back to interactive payment")
		}
	}
	return &payment.InteractiveResolver{Out: cmd.OutOrStdout(), Log: a.Log}
}

// SettlementToken resolves a settlement token: an explicit value wins,
// otherwise the one stored in the keyring is used.
func (a *App) SettlementToken(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	token, err := a.Secrets.GetSecret(wallet.KeySettlementToken)
	if errors.Is(err, wallet.ErrSecretNotFound) {
		return "", nil
	}
	return token, err
}

// Audit records a command outcome. Audit failures never fail the
// command; they are logged and dropped.
func (a *App) Audit(cmd *cobra.Command, args []string, hostname, currency string, runErr error) {
	repo, err := auditlog.Open()
	if err != nil {
		a.Log.WithError(err).Debug("audit log unavailable")
		return
	}
	defer repo.Close()

	entry := &auditlog.AuditEntry{
		Command:    cmd.CommandPath(),
		Args:       fmt.Sprintf("%v", auditlog.SanitizeArgs(args)),
		Hostname:   hostname,
		Currency:   currency,
		Outcome:    auditlog.OutcomeSuccess,
		DurationMs: time.Since(a.started).Milliseconds(),
	}
	if runErr != nil {
		entry.Outcome = auditlog.OutcomeError
		entry.Detail = runErr.Error()
	}
	if err := repo.Save(entry); err != nil {
		a.Log.WithError(err).Debug("failed to save audit entry")
	}
}

func flagOr(cmd *cobra.Command, name, fallback string) string {
	if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
		return flag.Value.String()
	}
	if fallback != "" {
		return fallback
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Value.String()
	}
	return ""
}
