package machine

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmspawn/vmspawn/internal/app"
)

func RemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <hostname>",
		Short: "Forget a machine locally",
		Long: `Delete the local record for a machine without touching the remote
machine. The machine ID in the record is its only credential; once the
record is gone the machine can no longer be managed from here.`,
		Args:         cobra.ExactArgs(1),
		RunE:         runRemove,
		SilenceUsage: true,
	}
}

func runRemove(cmd *cobra.Command, args []string) (err error) {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}
	defer func() { a.Audit(cmd, os.Args[1:], args[0], "", err) }()

	if err := a.Registry.Remove(args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Record for %s removed.\n", args[0])
	return nil
}
