package machine

import (
	"fmt"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "status <hostname>",
		Short:        "Show whether a machine is started or stopped",
		Args:         cobra.ExactArgs(1),
		RunE:         runStatus,
		SilenceUsage: true,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, record, err := lookup(cmd, args[0])
	if err != nil {
		return err
	}

	status, err := clientFor(a, record).Status(cmd.Context(), record.MachineID, record.Host)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), status)
	return nil
}
