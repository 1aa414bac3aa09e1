package machine

import (
	"fmt"

	"github.com/spf13/cobra"
)

func GetAttributeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-attribute <hostname> <attribute>",
		Short: "Print one field from a machine's local record",
		Long: `Print a single field from a machine's local record, for scripting.

Attributes: hostname, machine_id, host, api_endpoint, expiration,
launch_profile.

Example:
  vmspawn machine get-attribute web-01 expiration`,
		Args:         cobra.ExactArgs(2),
		RunE:         runGetAttribute,
		SilenceUsage: true,
	}
}

func runGetAttribute(cmd *cobra.Command, args []string) error {
	_, record, err := lookup(cmd, args[0])
	if err != nil {
		return err
	}

	switch args[1] {
	case "hostname", "vm_hostname":
		fmt.Fprintln(cmd.OutOrStdout(), record.Hostname)
	case "machine_id":
		fmt.Fprintln(cmd.OutOrStdout(), record.MachineID)
	case "host":
		fmt.Fprintln(cmd.OutOrStdout(), record.Host)
	case "api_endpoint":
		fmt.Fprintln(cmd.OutOrStdout(), record.APIEndpoint)
	case "expiration":
		fmt.Fprintln(cmd.OutOrStdout(), record.Expiration)
	case "launch_profile":
		fmt.Fprintln(cmd.OutOrStdout(), record.LaunchProfile)
	default:
		return fmt.Errorf("unknown attribute %q", args[1])
	}
	return nil
}
