package machine

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func BootOrderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bootorder <hostname> <order>",
		Short: "Update a machine's boot order",
		Long: `Update a machine's boot order.

Example:
  vmspawn machine bootorder web-01 network`,
		Args:         cobra.ExactArgs(2),
		RunE:         runBootOrder,
		SilenceUsage: true,
	}
}

func runBootOrder(cmd *cobra.Command, args []string) (err error) {
	a, record, err := lookup(cmd, args[0])
	if err != nil {
		return err
	}
	defer func() { a.Audit(cmd, os.Args[1:], record.Hostname, "", err) }()

	if err := clientFor(a, record).SetBootOrder(cmd.Context(), record.MachineID, record.Host, args[1]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Boot order for %s set to %s.\n", record.Hostname, args[1])
	return nil
}
