package machine

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func StartCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "start <hostname>",
		Short:        "Boot a machine",
		Args:         cobra.ExactArgs(1),
		RunE:         runStart,
		SilenceUsage: true,
	}
}

func runStart(cmd *cobra.Command, args []string) (err error) {
	a, record, err := lookup(cmd, args[0])
	if err != nil {
		return err
	}
	defer func() { a.Audit(cmd, os.Args[1:], record.Hostname, "", err) }()

	if err := clientFor(a, record).Start(cmd.Context(), record.MachineID, record.Host); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Machine %s started.\n", record.Hostname)
	return nil
}
