// Package walletcmd implements the "vmspawn wallet" command group for
// the stored wallet credential.
package walletcmd

import (
	"github.com/spf13/cobra"
)

// NewCommand returns the "wallet" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage the stored wallet credential",
		Long: `Manage the wallet credential used for non-interactive payments.

The credential is handed on stdin to the external wallet command set
with 'vmspawn config set wallet-command'. It is kept in the local
keychain, never in config files.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(StatusCommand())
	cmd.AddCommand(ClearCommand())

	return cmd
}
