// Package audit implements the "vmspawn audit" command group.
package audit

import "github.com/spf13/cobra"

// NewCommand returns the "audit" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "View and manage audit history",
		Long: "View a local audit trail of vmspawn commands and prune old entries.\n\n" +
			"Audit history is stored locally in ~/.config/vmspawn/vmspawn.db.\n" +
			"Machine IDs are never recorded; entries reference machines by hostname.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
