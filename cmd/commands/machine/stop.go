package machine

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func StopCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "stop <hostname>",
		Short:        "Immediately power off a machine",
		Args:         cobra.ExactArgs(1),
		RunE:         runStop,
		SilenceUsage: true,
	}
}

func runStop(cmd *cobra.Command, args []string) (err error) {
	a, record, err := lookup(cmd, args[0])
	if err != nil {
		return err
	}
	defer func() { a.Audit(cmd, os.Args[1:], record.Hostname, "", err) }()

	if err := clientFor(a, record).Stop(cmd.Context(), record.MachineID, record.Host); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Machine %s stopped.\n", record.Hostname)
	return nil
}
