package settlement

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmspawn/vmspawn/internal/app"
	"github.com/vmspawn/vmspawn/internal/validate"
)

func EnableCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enable",
		Short: "Enable a settlement token remotely",
		Long: `Register a settlement token with the server, paying the enablement
fee if one is asked for.

Example:
  vmspawn settlement enable --currency xmr`,
		RunE:         runEnable,
		SilenceUsage: true,
	}

	cmd.Flags().String("token", "", "Settlement token (falls back to the stored one)")
	cmd.Flags().String("currency", "", "Payment currency: btc, bch, bsv, or xmr")

	return cmd
}

func runEnable(cmd *cobra.Command, args []string) (err error) {
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
		return fmt.Errorf("a settlement token cannot pay for its own enablement")
	}

	token, err := resolveToken(cmd, a)
	if err != nil {
		return err
	}

	if err := a.Service.TokenEnable(cmd.Context(), token, currency); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Settlement token enabled.")
	return nil
}
