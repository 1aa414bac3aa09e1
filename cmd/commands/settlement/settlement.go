// Package settlement implements the "vmspawn settlement" command group
// for prepaid settlement tokens.
package settlement

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmspawn/vmspawn/internal/app"
	"github.com/vmspawn/vmspawn/internal/validate"
)

// NewCommand returns the "settlement" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settlement",
		Short: "Manage prepaid settlement tokens",
		Long: `Manage prepaid settlement tokens.

A settlement token is a bearer secret with a prepaid US dollar balance
that machines can be paid from without a fresh cryptocurrency payment
per launch. Generate one locally, enable it remotely, then add
balance.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(GenerateCommand())
	cmd.AddCommand(EnableCommand())
	cmd.AddCommand(AddCommand())
	cmd.AddCommand(BalanceCommand())

	return cmd
}

// resolveToken picks the token for a subcommand: the --token flag if
// set, otherwise the stored one.
func resolveToken(cmd *cobra.Command, a *app.App) (string, error) {
	flag, _ := cmd.Flags().GetString("token")
	token, err := a.SettlementToken(flag)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", fmt.Errorf("no settlement token: pass --token or store one with 'vmspawn settlement generate --save'")
	}
	if err := validate.SettlementToken(token); err != nil {
		return "", err
	}
	return token, nil
}
