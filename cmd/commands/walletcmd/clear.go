package walletcmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmspawn/vmspawn/internal/wallet"
)

func ClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the wallet credential from the local keychain",
		Long: `Remove the wallet credential from the local keychain.

The stored settlement token is left untouched; remove it with
--settlement-token if wanted.

Example:
  vmspawn wallet clear`,
		RunE:         runClear,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("settlement-token", false, "Remove the stored settlement token instead")

	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
	key := wallet.KeyCredential
	if tokenOnly, _ := cmd.Flags().GetBool("settlement-token"); tokenOnly {
		key = wallet.KeySettlementToken
	}

	store := wallet.DefaultStore()
	err := store.DeleteSecret(key)
	if errors.Is(err, wallet.ErrSecretNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: nothing stored\n", key)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: removed\n", key)
	return nil
}
