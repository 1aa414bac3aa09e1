package settlement

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmspawn/vmspawn/internal/app"
	"github.com/vmspawn/vmspawn/internal/wallet"
)

func GenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new settlement token",
		Long: `Generate a new settlement token locally.

The token is not known to the server until it is enabled. With --save
it is also stored in the local keychain and used by default from then
on.

Examples:
  vmspawn settlement generate
  vmspawn settlement generate --save`,
		RunE:         runGenerate,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("save", false, "Store the token in the local keychain")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	token, err := wallet.NewSettlementToken()
	if err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		a, err := app.FromCommand(cmd)
		if err != nil {
			return err
		}
		if err := a.Secrets.SetSecret(wallet.KeySettlementToken, token); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Token stored in the local keychain.")
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
