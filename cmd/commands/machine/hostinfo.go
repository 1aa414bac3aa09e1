package machine

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmspawn/vmspawn/internal/app"
)

func HostInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hostinfo [hostname]",
		Short: "Show the host_info document for a physical host",
		Long: `Show the host_info document for a physical host.

With a hostname argument the stored machine's host is queried; without
one the endpoint picks a host itself (useful before a pinned launch).`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runHostInfo,
		SilenceUsage: true,
	}

	return cmd
}

func runHostInfo(cmd *cobra.Command, args []string) error {
	var raw json.RawMessage

	if len(args) == 1 {
		a, record, err := lookup(cmd, args[0])
		if err != nil {
			return err
		}
		raw, err = clientFor(a, record).HostInfo(cmd.Context(), record.Host)
		if err != nil {
			return err
		}
	} else {
		a, err := app.FromCommand(cmd)
		if err != nil {
			return err
		}
		raw, err = a.Client.HostInfo(cmd.Context(), "")
		if err != nil {
			return err
		}
	}

	var pretty map[string]any
	if err := json.Unmarshal(raw, &pretty); err == nil {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(pretty)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return nil
}
