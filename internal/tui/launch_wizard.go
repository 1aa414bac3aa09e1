// Package tui holds the interactive wizards.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/vmspawn/vmspawn/internal/flavor"
	"github.com/vmspawn/vmspawn/internal/payment"
	"github.com/vmspawn/vmspawn/internal/validate"
)

// ErrAborted is returned when a user cancels the interactive flow.
var ErrAborted = errors.New("launch aborted by user")

// LaunchOptions is what the wizard collects.
type LaunchOptions struct {
	Hostname        string
	Flavor          string
	Days            int
	Currency        string
	OperatingSystem string
	SSHKeyFile      string
}

// LaunchForm walks the user through the launch parameters. Prefilled
// fields become the form defaults.
func LaunchForm(prefill LaunchOptions) (*LaunchOptions, error) {
	accessible := os.Getenv("ACCESSIBLE") != ""

	opts := prefill
	if opts.Days == 0 {
		opts.Days = 1
	}
	days := strconv.Itoa(opts.Days)

	hostnameField := huh.NewInput().
		Title("Hostname").
		Description("Local name for the machine, used as the record key.").
		Value(&opts.Hostname).
		Validate(func(value string) error {
			return validate.Hostname(strings.TrimSpace(value))
		})

	flavorField := huh.NewSelect[string]().
		Title("Flavor").
		Options(flavorOptions()...).
		Value(&opts.Flavor)

	daysField := huh.NewInput().
		Title("Days").
		Description("Lifetime to pay for up front (1-28).").
		Value(&days).
		Validate(func(value string) error {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return errors.New("days must be a number")
			}
			return validate.Days(n, false)
		})

	currencyField := huh.NewSelect[string]().
		Title("Currency").
		Options(
			huh.NewOption("Monero (xmr)", "xmr"),
			huh.NewOption("Bitcoin (btc)", "btc"),
			huh.NewOption("Bitcoin Cash (bch)", "bch"),
			huh.NewOption("Bitcoin SV (bsv)", "bsv"),
			huh.NewOption("Settlement token", "settlement"),
		).
		Value(&opts.Currency)

	osField := huh.NewInput().
		Title("Operating system").
		Description("Image slug, e.g. debian-12. Leave empty to boot your own iPXE script later.").
		Value(&opts.OperatingSystem).
		Validate(func(value string) error {
			trimmed := strings.TrimSpace(value)
			if trimmed == "" {
				return nil
			}
			return validate.OperatingSystem(trimmed)
		})

	keyField := huh.NewInput().
		Title("SSH public key file").
		Description("Authorized key installed on first boot. Leave empty to skip.").
		Value(&opts.SSHKeyFile).
		Validate(func(value string) error {
			trimmed := strings.TrimSpace(value)
			if trimmed == "" {
				return nil
			}
			if _, err := os.Stat(trimmed); err != nil {
				return fmt.Errorf("cannot read %s", trimmed)
			}
			return nil
		})

	confirm := false
	summaryNote := huh.NewNote().
		Title("Summary").
		DescriptionFunc(func() string {
			return buildSummary(opts, days)
		}, &opts)

	confirmField := huh.NewConfirm().
		Title("Launch this machine?").
		Value(&confirm)

	if err := runForm(accessible,
		huh.NewGroup(hostnameField),
		huh.NewGroup(flavorField, daysField),
		huh.NewGroup(currencyField),
		huh.NewGroup(osField, keyField),
		huh.NewGroup(summaryNote, confirmField),
	); err != nil {
		return nil, err
	}

	if !confirm {
		return nil, ErrAborted
	}

	opts.Hostname = strings.TrimSpace(opts.Hostname)
	opts.OperatingSystem = strings.TrimSpace(opts.OperatingSystem)
	opts.SSHKeyFile = strings.TrimSpace(opts.SSHKeyFile)
	opts.Days, _ = strconv.Atoi(strings.TrimSpace(days))

	return &opts, nil
}

// runForm creates and runs a huh.Form, translating ErrUserAborted to ErrAborted.
func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

func flavorOptions() []huh.Option[string] {
	flavors := flavor.All()
	options := make([]huh.Option[string], 0, len(flavors))
	for _, f := range flavors {
		label := fmt.Sprintf("%s  %d core, %d MB RAM, %d GB disk, %s/day",
			f.Slug, f.Cores, f.Memory, f.Disk, payment.CentsToUSD(uint64(f.PriceCents)))
		options = append(options, huh.NewOption(label, f.Slug))
	}
	return options
}

func buildSummary(opts LaunchOptions, days string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hostname:  %s\n", strings.TrimSpace(opts.Hostname))
	fmt.Fprintf(&b, "Flavor:    %s\n", opts.Flavor)
	fmt.Fprintf(&b, "Days:      %s\n", strings.TrimSpace(days))
	fmt.Fprintf(&b, "Currency:  %s\n", opts.Currency)
	if osName := strings.TrimSpace(opts.OperatingSystem); osName != "" {
		fmt.Fprintf(&b, "OS:        %s\n", osName)
	}
	if key := strings.TrimSpace(opts.SSHKeyFile); key != "" {
		fmt.Fprintf(&b, "SSH key:   %s\n", key)
	}
	if f, err := flavor.Find(opts.Flavor); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(days)); err == nil && n > 0 {
			fmt.Fprintf(&b, "Price:     %s", payment.CentsToUSD(uint64(f.PriceCents)*uint64(n)))
		}
	}
	return b.String()
}
