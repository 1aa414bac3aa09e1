package walletcmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vmspawn/vmspawn/internal/wallet"
)

func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the wallet credential in the local keychain",
		Long: `Store the wallet credential in the local keychain.

The credential is prompted for without echo; pass --credential only in
contexts where the shell history is not a concern.

Example:
  vmspawn wallet set`,
		RunE:         runSet,
		SilenceUsage: true,
	}

	cmd.Flags().String("credential", "", "Wallet credential (optional, overrides prompt)")

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	credential, _ := cmd.Flags().GetString("credential")
	credential = strings.TrimSpace(credential)

	if credential == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Enter wallet credential: ")
		bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		credential = strings.TrimSpace(string(bytes))
	}

	if credential == "" {
		return fmt.Errorf("credential cannot be empty")
	}

	store := wallet.DefaultStore()
	if err := store.SetSecret(wallet.KeyCredential, credential); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Wallet credential saved.")
	return nil
}
