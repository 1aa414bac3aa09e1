package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mdp/qrterminal/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/vmspawn/vmspawn/internal/api"
	"github.com/vmspawn/vmspawn/internal/wallet"
)

// ErrDeclined is returned when the user answers the payment
// confirmation prompt with "no".
var ErrDeclined = errors.New("payment not confirmed")

// Resolver blocks until a payment for the given instruction has been
// made. Implementations never verify settlement; the orchestrator does
// that by re-polling the remote API.
type Resolver interface {
	ResolvePayment(ctx context.Context, currency string, p *api.Payment) error
}

// WalletResolver pays non-interactively through an automated wallet.
type WalletResolver struct {
	Sender wallet.Sender
	Log    *logrus.Logger
}

func (r *WalletResolver) ResolvePayment(ctx context.Context, currency string, p *api.Payment) error {
	if p == nil || p.Address == "" || p.Amount == 0 {
		return fmt.Errorf("response carried no usable payment instruction")
	}

	txid, err := r.Sender.Send(ctx, currency, p.Address, p.Amount)
	if err != nil {
		return fmt.Errorf("automated payment: %w", err)
	}
	r.Log.WithFields(logrus.Fields{
		"currency": currency,
		"txid":     txid,
	}).Info("payment transaction broadcast")
	return nil
}

var (
	paymentTitleStyle  = lipgloss.NewStyle().Bold(true)
	paymentAmountStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	paymentURIStyle    = lipgloss.NewStyle().Faint(true)
)

// InteractiveResolver renders the payment URI as a terminal QR code
// plus human-readable instructions and blocks until the user confirms
// they have paid. There is deliberately no timeout here; the polling
// ceiling upstream bounds the overall wait.
type InteractiveResolver struct {
	// Out receives the QR code and instructions, typically stderr so
	// structured output on stdout stays scriptable.
	Out io.Writer
	Log *logrus.Logger
}

func (r *InteractiveResolver) ResolvePayment(ctx context.Context, currency string, p *api.Payment) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("manual payment requires an interactive terminal; configure a wallet command or pass a settlement token")
	}
	if p == nil {
		return fmt.Errorf("response carried no payment instruction")
	}

	uri := p.URI
	if uri == "" {
		built, err := URI(currency, p.Address, p.Amount)
		if err != nil {
			return err
		}
		uri = built
	}

	r.renderInstructions(currency, p, uri)

	confirm := true
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Have you sent the payment?").
			Affirmative("Sent").
			Negative("Abort").
			Value(&confirm),
	)).WithAccessible(os.Getenv("ACCESSIBLE") != "")

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrDeclined
		}
		return err
	}
	if !confirm {
		return ErrDeclined
	}
	return nil
}

func (r *InteractiveResolver) renderInstructions(currency string, p *api.Payment, uri string) {
	// Both polarities, so the code scans on light and dark terminals.
	qrterminal.GenerateWithConfig(uri, qrterminal.Config{
		Level:     qrterminal.L,
		Writer:    r.Out,
		BlackChar: qrterminal.BLACK,
		WhiteChar: qrterminal.WHITE,
		QuietZone: 1,
	})
	qrterminal.GenerateWithConfig(uri, qrterminal.Config{
		Level:     qrterminal.L,
		Writer:    r.Out,
		BlackChar: qrterminal.WHITE,
		WhiteChar: qrterminal.BLACK,
		QuietZone: 1,
	})

	fmt.Fprintln(r.Out, paymentTitleStyle.Render(fmt.Sprintf("Pay with %s. Resize your terminal if the QR code is not visible.", currency)))
	amount := fmt.Sprintf("Amount: %d (base units)", p.Amount)
	if p.USDCents != nil {
		amount += fmt.Sprintf(" (about %s)", CentsToUSD(*p.USDCents))
	}
	fmt.Fprintln(r.Out, paymentAmountStyle.Render(amount))
	fmt.Fprintln(r.Out, paymentURIStyle.Render(uri))
}
