package machine

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmspawn/vmspawn/internal/api"
	"github.com/vmspawn/vmspawn/internal/app"
	"github.com/vmspawn/vmspawn/internal/validate"
)

func TopupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topup <hostname>",
		Short: "Extend a machine's lifetime",
		Long: `Pay to extend an existing machine's lifetime.

The stored machine record supplies the machine ID and host; only the
record's expiration is updated on success.

Examples:
  vmspawn machine topup web-01 --days 7 --currency xmr
  vmspawn machine topup web-01 --days 28 --currency settlement`,
		Args:         cobra.ExactArgs(1),
		RunE:         runTopup,
		SilenceUsage: true,
	}

	cmd.Flags().Int("days", 0, "Days to add, 1-28")
	cmd.Flags().String("currency", "", "Payment currency: btc, bch, bsv, xmr, or settlement")
	cmd.Flags().String("settlement-token", "", "Settlement token (falls back to the stored one)")
	cmd.Flags().String("refund-address", "", "Address for overpayment refunds")
	cmd.Flags().String("override-code", "", "Operator override code (waives payment)")

	return cmd
}

func runTopup(cmd *cobra.Command, args []string) (err error) {
	hostname := strings.TrimSpace(args[0])
	currency, _ := cmd.Flags().GetString("currency")

	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}
	defer func() { a.Audit(cmd, os.Args[1:], hostname, currency, err) }()

	if currency == "" {
		currency = a.Config.DefaultCurrency
	}

	days, _ := cmd.Flags().GetInt("days")
	req := &api.TopupRequest{Days: days, Currency: currency}
	req.RefundAddress, _ = cmd.Flags().GetString("refund-address")
	req.OverrideCode, _ = cmd.Flags().GetString("override-code")

	if currency == "settlement" {
		tokenFlag, _ := cmd.Flags().GetString("settlement-token")
		token, err := a.SettlementToken(tokenFlag)
		if err != nil {
			return err
		}
		if token == "" {
			return fmt.Errorf("currency is settlement but no settlement token is set")
		}
		req.SettlementToken = token
	}

	if err := validate.Days(req.Days, req.OverrideCode != ""); err != nil {
		return err
	}
	if req.Currency != "" {
		if err := validate.Currency(req.Currency); err != nil {
			return err
		}
	}
	if req.SettlementToken != "" {
		if err := validate.SettlementToken(req.SettlementToken); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Topping up %s...\n", hostname)
	record, err := a.Service.Topup(cmd.Context(), hostname, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Machine %s topped up.\n", hostname)
	fmt.Fprintf(cmd.OutOrStdout(), "Expiration:  %s\n", formatExpiration(record.Expiration))
	return nil
}
