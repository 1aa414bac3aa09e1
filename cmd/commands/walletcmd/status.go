package walletcmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmspawn/vmspawn/internal/wallet"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which secrets are stored in the local keychain",
		Long: `Show which secrets are stored in the local keychain.

Example:
  vmspawn wallet status`,
		RunE:         runStatus,
		SilenceUsage: true,
	}

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	store := wallet.DefaultStore()

	for _, key := range []string{wallet.KeyCredential, wallet.KeySettlementToken} {
		_, err := store.GetSecret(key)
		switch {
		case err == nil:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: stored\n", key)
		case errors.Is(err, wallet.ErrSecretNotFound):
			fmt.Fprintf(cmd.OutOrStdout(), "%s: not stored\n", key)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: error (%v)\n", key, err)
		}
	}
	return nil
}
