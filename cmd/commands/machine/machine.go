// Package machine implements the "vmspawn machine" command group.
package machine

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmspawn/vmspawn/internal/api"
	"github.com/vmspawn/vmspawn/internal/app"
	"github.com/vmspawn/vmspawn/internal/domain"
)

// NewCommand returns the "machine" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "machine",
		Short:        "Launch and manage machines",
		Long:         `Launch, top up, inspect, and control machines from the provisioning API.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(LaunchCommand())
	cmd.AddCommand(TopupCommand())
	cmd.AddCommand(ListCommand())
	cmd.AddCommand(InfoCommand())
	cmd.AddCommand(StatusCommand())
	cmd.AddCommand(StartCommand())
	cmd.AddCommand(StopCommand())
	cmd.AddCommand(DeleteCommand())
	cmd.AddCommand(ExistsCommand())
	cmd.AddCommand(RemoveCommand())
	cmd.AddCommand(SSHCommand())
	cmd.AddCommand(SerialConsoleCommand())
	cmd.AddCommand(IPXEScriptCommand())
	cmd.AddCommand(BootOrderCommand())
	cmd.AddCommand(HostInfoCommand())
	cmd.AddCommand(GetAttributeCommand())

	return cmd
}

// clientFor returns the right API client for a stored record: the
// record's endpoint when it has one, the default otherwise.
func clientFor(a *app.App, record *domain.Machine) *api.Client {
	if record.APIEndpoint != "" && record.APIEndpoint != a.Client.Endpoint() {
		c, ok := a.Service.Dial(record.APIEndpoint).(*api.Client)
		if ok {
			return c
		}
	}
	return a.Client
}

// lookup loads the app and the record for a hostname in one step,
// shared by the per-machine subcommands.
func lookup(cmd *cobra.Command, hostname string) (*app.App, *domain.Machine, error) {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return nil, nil, err
	}
	record, err := a.Registry.Read(hostname)
	if err != nil {
		return nil, nil, err
	}
	return a, record, nil
}

func formatExpiration(expiration int64) string {
	if expiration == 0 {
		return "-"
	}
	t := time.Unix(expiration, 0).UTC()
	return fmt.Sprintf("%s (%s)", t.Format("2006-01-02 15:04"), humanRemaining(time.Until(t)))
}

func humanRemaining(d time.Duration) string {
	if d <= 0 {
		return "expired"
	}
	days := int(d.Hours()) / 24
	if days > 0 {
		return fmt.Sprintf("%dd left", days)
	}
	return fmt.Sprintf("%dh left", int(d.Hours()))
}
