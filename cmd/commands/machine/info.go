package machine

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func InfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <hostname>",
		Short: "Show details about a machine",
		Long: `Query the remote API for a machine's details.

Examples:
  vmspawn machine info web-01
  vmspawn machine info web-01 -o json`,
		Args:         cobra.ExactArgs(1),
		RunE:         runInfo,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format: text or json")

	return cmd
}

func runInfo(cmd *cobra.Command, args []string) error {
	a, record, err := lookup(cmd, args[0])
	if err != nil {
		return err
	}

	info, err := clientFor(a, record).Info(cmd.Context(), record.MachineID, record.Host)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}

	running := "stopped"
	if info.Running {
		running = "running"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Hostname:    %s\n", record.Hostname)
	fmt.Fprintf(cmd.OutOrStdout(), "State:       %s\n", running)
	if info.Host != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Host:        %s\n", info.Host)
	} else if record.Host != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Host:        %s\n", record.Host)
	}
	if info.Expiration != 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Expiration:  %s\n", formatExpiration(info.Expiration))
	}
	if info.SSHHostname != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "SSH:         %s\n", info.SSHHostname)
	}
	for _, iface := range info.NetworkInterfaces {
		if iface.IPv4 != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "IPv4:        %s\n", iface.IPv4)
		}
		if iface.IPv6 != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "IPv6:        %s\n", iface.IPv6)
		}
	}
	return nil
}
