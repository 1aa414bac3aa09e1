package machine

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func ExistsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exists <hostname>",
		Short: "Check whether a machine still exists remotely",
		Long: `Check whether a machine still exists on the remote API.

Prints true or false; the exit code is 0 when the machine exists and 1
when it does not.`,
		Args:         cobra.ExactArgs(1),
		RunE:         runExists,
		SilenceUsage: true,
	}
}

func runExists(cmd *cobra.Command, args []string) error {
	a, record, err := lookup(cmd, args[0])
	if err != nil {
		return err
	}

	exists, err := clientFor(a, record).Exists(cmd.Context(), record.MachineID, record.Host)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), exists)
	if !exists {
		os.Exit(1)
	}
	return nil
}
