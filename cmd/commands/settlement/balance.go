package settlement

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmspawn/vmspawn/internal/app"
	"github.com/vmspawn/vmspawn/internal/payment"
)

func BalanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "balance",
		Short:        "Show a settlement token's remaining balance",
		RunE:         runBalance,
		SilenceUsage: true,
	}

	cmd.Flags().String("token", "", "Settlement token (falls back to the stored one)")

	return cmd
}

func runBalance(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	token, err := resolveToken(cmd, a)
	if err != nil {
		return err
	}

	balance, err := a.Client.TokenBalance(cmd.Context(), token)
	if err != nil {
		return err
	}

	usd := balance.USD
	if usd == "" {
		usd = payment.CentsToUSD(balance.Cents)
	}
	fmt.Fprintln(cmd.OutOrStdout(), usd)
	return nil
}
