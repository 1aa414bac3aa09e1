package settlement

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmspawn/vmspawn/internal/app"
	"github.com/vmspawn/vmspawn/internal/payment"
	"github.com/vmspawn/vmspawn/internal/validate"
)

func AddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add balance to a settlement token",
		Long: `Add prepaid balance to an enabled settlement token.

Example:
  vmspawn settlement add --cents 2500 --currency xmr`,
		RunE:         runAdd,
		SilenceUsage: true,
	}

	cmd.Flags().String("token", "", "Settlement token (falls back to the stored one)")
	cmd.Flags().String("currency", "", "Payment currency: btc, bch, bsv, or xmr")
	cmd.Flags().Uint64("cents", 0, "Balance to add, in US cents")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) (err error) {
	currency, _ := cmd.Flags().GetString("currency")

	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}
	defer func() { a.Audit(cmd, os.Args[1:], "", currency, err) }()

	if currency == "" {
		currency = a.Config.DefaultCurrency
	}
	if err := validate.Currency(currency); err != nil {
		return err
	}
	if currency == "settlement" {
		return fmt.Errorf("a settlement token cannot pay for its own balance")
	}

	cents, _ := cmd.Flags().GetUint64("cents")
	if cents == 0 {
		return fmt.Errorf("--cents must be greater than 0")
	}

	token, err := resolveToken(cmd, a)
	if err != nil {
		return err
	}

	if err := a.Service.TokenAdd(cmd.Context(), token, currency, cents); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s to the settlement token.\n", payment.CentsToUSD(cents))
	return nil
}
