package machine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vmspawn/vmspawn/internal/api"
	"github.com/vmspawn/vmspawn/internal/app"
	"github.com/vmspawn/vmspawn/internal/flavor"
	"github.com/vmspawn/vmspawn/internal/payment"
	"github.com/vmspawn/vmspawn/internal/tui"
	"github.com/vmspawn/vmspawn/internal/validate"
)

func LaunchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "launch <hostname>",
		Short: "Launch a new machine",
		Long: `Launch a new machine and pay for it.

The shape comes from either --flavor or the explicit --cores, --memory,
--disk, --bandwidth, --ipv4, and --ipv6 flags, not both. Run with no
shape flags in a terminal to use the interactive wizard.

Unpaid launches print a payment instruction and wait for the payment
to confirm remotely; the same command can be re-run safely, the server
never builds a second machine for the same request.

Examples:
  vmspawn machine launch web-01 --flavor tor-1024 --days 7 --currency xmr
  vmspawn machine launch web-01 --cores 2 --memory 2048 --disk 16 \
    --bandwidth 40 --ipv4 /32 --ipv6 /128 --days 7 --currency btc`,
		Args:         cobra.ExactArgs(1),
		RunE:         runLaunch,
		SilenceUsage: true,
	}

	cmd.Flags().String("flavor", "", "Predefined machine shape (see flavors with 'vmspawn config get')")
	cmd.Flags().Int("days", 0, "Lifetime to pay for up front, 1-28")
	cmd.Flags().String("currency", "", "Payment currency: btc, bch, bsv, xmr, or settlement")
	cmd.Flags().String("settlement-token", "", "Settlement token (falls back to the stored one)")
	cmd.Flags().String("refund-address", "", "Address for overpayment refunds")

	cmd.Flags().Int("cores", 0, "vCPU cores (custom shape)")
	cmd.Flags().Int("memory", 0, "Memory in MB (custom shape)")
	cmd.Flags().Int("disk", 0, "Disk in GB (custom shape)")
	cmd.Flags().Int("bandwidth", 0, "Bandwidth in GB/day, -1 for unmetered (custom shape)")
	cmd.Flags().String("ipv4", "", `IPv4 connectivity: "/32", "nat", "tor", or "false"`)
	cmd.Flags().String("ipv6", "", `IPv6 connectivity: "/128", "nat", "tor", or "false"`)

	cmd.Flags().String("operating-system", "", "Image slug to install, e.g. debian-12")
	cmd.Flags().String("ssh-key-file", "", "Public key file installed on first boot")
	cmd.Flags().String("ipxescript-file", "", "Boot the machine with this iPXE script")
	cmd.Flags().Bool("ipxescript-stdin", false, "Read the iPXE script from stdin")
	cmd.Flags().String("region", "", "Preferred region")
	cmd.Flags().String("organization", "", "Organization the machine belongs to")
	cmd.Flags().String("override-code", "", "Operator override code (waives payment)")
	cmd.Flags().Bool("managed", false, "Request a managed machine")
	cmd.Flags().Bool("hostaccess", false, "Request host access")
	cmd.Flags().String("qemuopts", "", "Extra QEMU options")
	cmd.Flags().Bool("want-topup", false, "Ask for a machine that can be topped up")
	cmd.Flags().String("host", "", "Pin the machine to a physical host")

	return cmd
}

func runLaunch(cmd *cobra.Command, args []string) (err error) {
	hostname := strings.TrimSpace(args[0])
	currency, _ := cmd.Flags().GetString("currency")

	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}
	defer func() { a.Audit(cmd, os.Args[1:], hostname, currency, err) }()

	flavorSlug, _ := cmd.Flags().GetString("flavor")
	days, _ := cmd.Flags().GetInt("days")

	customShape := cmd.Flags().Changed("cores") || cmd.Flags().Changed("memory") ||
		cmd.Flags().Changed("disk") || cmd.Flags().Changed("bandwidth") ||
		cmd.Flags().Changed("ipv4") || cmd.Flags().Changed("ipv6")

	if flavorSlug != "" && customShape {
		return fmt.Errorf("--flavor and the custom shape flags are mutually exclusive")
	}

	if currency == "" {
		currency = a.Config.DefaultCurrency
	}
	if flavorSlug == "" && !customShape {
		flavorSlug = a.Config.DefaultFlavor
	}
	keyFile, _ := cmd.Flags().GetString("ssh-key-file")
	if keyFile == "" {
		keyFile = a.Config.DefaultSSHKeyFile
	}
	operatingSystem, _ := cmd.Flags().GetString("operating-system")

	// No shape at all: fall back to the wizard when a human is
	// attached.
	if flavorSlug == "" && !customShape {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("no shape specified: use --flavor or the custom shape flags")
		}
		opts, wizErr := tui.LaunchForm(tui.LaunchOptions{
			Hostname:        hostname,
			Days:            days,
			Currency:        currency,
			OperatingSystem: operatingSystem,
			SSHKeyFile:      keyFile,
		})
		if wizErr != nil {
			if errors.Is(wizErr, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Launch cancelled.")
				return nil
			}
			return wizErr
		}
		hostname = opts.Hostname
		flavorSlug = opts.Flavor
		days = opts.Days
		currency = opts.Currency
		operatingSystem = opts.OperatingSystem
		keyFile = opts.SSHKeyFile
	}

	req := &api.LaunchRequest{Days: days, Currency: currency}

	if flavorSlug != "" {
		f, err := flavor.Find(flavorSlug)
		if err != nil {
			return err
		}
		req.Cores = int(f.Cores)
		req.Memory = int(f.Memory)
		req.Disk = int(f.Disk)
		req.Bandwidth = int(f.Bandwidth)
		req.IPv4 = f.IPv4
		req.IPv6 = f.IPv6
	} else {
		req.Cores, _ = cmd.Flags().GetInt("cores")
		req.Memory, _ = cmd.Flags().GetInt("memory")
		req.Disk, _ = cmd.Flags().GetInt("disk")
		req.Bandwidth, _ = cmd.Flags().GetInt("bandwidth")
		ipv4, _ := cmd.Flags().GetString("ipv4")
		ipv6, _ := cmd.Flags().GetString("ipv6")
		req.IPv4 = api.IPPolicy(ipv4)
		req.IPv6 = api.IPPolicy(ipv6)
	}

	req.OperatingSystem = operatingSystem
	req.RefundAddress, _ = cmd.Flags().GetString("refund-address")
	req.Region, _ = cmd.Flags().GetString("region")
	req.Organization, _ = cmd.Flags().GetString("organization")
	req.OverrideCode, _ = cmd.Flags().GetString("override-code")
	req.Managed, _ = cmd.Flags().GetBool("managed")
	req.HostAccess, _ = cmd.Flags().GetBool("hostaccess")
	req.QEMUOpts, _ = cmd.Flags().GetString("qemuopts")
	req.WantTopup, _ = cmd.Flags().GetBool("want-topup")
	req.Host, _ = cmd.Flags().GetString("host")

	if keyFile != "" {
		key, err := os.ReadFile(keyFile)
		if err != nil {
			return fmt.Errorf("failed to read ssh key file: %w", err)
		}
		req.SSHKey = strings.TrimSpace(string(key))
	}

	scriptFile, _ := cmd.Flags().GetString("ipxescript-file")
	scriptStdin, _ := cmd.Flags().GetBool("ipxescript-stdin")
	if scriptFile != "" && scriptStdin {
		return fmt.Errorf("--ipxescript-file and --ipxescript-stdin are mutually exclusive")
	}
	if scriptFile != "" {
		script, err := os.ReadFile(scriptFile)
		if err != nil {
			return fmt.Errorf("failed to read ipxe script: %w", err)
		}
		req.IPXEScript = string(script)
	}
	if scriptStdin {
		script, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read ipxe script from stdin: %w", err)
		}
		req.IPXEScript = string(script)
	}

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

	if err := validateLaunch(hostname, req); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Launching %s...\n", hostname)
	resp, err := a.Service.Launch(cmd.Context(), hostname, flavorSlug, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Machine %s launched.\n", hostname)
	printProvisioned(cmd.OutOrStdout(), resp)
	return nil
}

func validateLaunch(hostname string, req *api.LaunchRequest) error {
	if err := validate.Hostname(hostname); err != nil {
		return err
	}
	zeroDaysAllowed := req.OverrideCode != ""
	if err := validate.Days(req.Days, zeroDaysAllowed); err != nil {
		return err
	}
	if req.Currency != "" {
		if err := validate.Currency(req.Currency); err != nil {
			return err
		}
	}
	if err := validate.Cores(req.Cores); err != nil {
		return err
	}
	if err := validate.Memory(req.Memory); err != nil {
		return err
	}
	if err := validate.Disk(req.Disk); err != nil {
		return err
	}
	if err := validate.Bandwidth(req.Bandwidth); err != nil {
		return err
	}
	if err := validate.IPv4(string(req.IPv4)); err != nil {
		return err
	}
	if err := validate.IPv6(string(req.IPv6)); err != nil {
		return err
	}
	if err := validate.IPv4IPv6(string(req.IPv4), string(req.IPv6)); err != nil {
		return err
	}
	if req.OperatingSystem != "" {
		if err := validate.OperatingSystem(req.OperatingSystem); err != nil {
			return err
		}
	}
	if req.Organization != "" {
		if err := validate.Organization(req.Organization); err != nil {
			return err
		}
	}
	if req.SSHKey != "" {
		if err := validate.SSHKey(req.SSHKey); err != nil {
			return err
		}
	}
	if req.IPXEScript != "" {
		if err := validate.IPXEScript(req.IPXEScript); err != nil {
			return err
		}
	}
	if req.Region != "" {
		if err := validate.Region(req.Region); err != nil {
			return err
		}
	}
	if req.SettlementToken != "" {
		if err := validate.SettlementToken(req.SettlementToken); err != nil {
			return err
		}
	}
	return nil
}

func printProvisioned(w io.Writer, resp *api.ProvisioningResponse) {
	if resp.Host != "" {
		fmt.Fprintf(w, "Host:        %s\n", resp.Host)
	}
	if resp.Expiration != 0 {
		fmt.Fprintf(w, "Expiration:  %s\n", formatExpiration(resp.Expiration))
	}
	if resp.SSHHostname != "" {
		fmt.Fprintf(w, "SSH:         %s\n", resp.SSHHostname)
	}
	for _, iface := range resp.NetworkInterfaces {
		if iface.IPv4 != "" {
			fmt.Fprintf(w, "IPv4:        %s\n", iface.IPv4)
		}
		if iface.IPv6 != "" {
			fmt.Fprintf(w, "IPv6:        %s\n", iface.IPv6)
		}
	}
	if resp.Payment != nil && resp.Payment.USDCents != nil {
		fmt.Fprintf(w, "Paid:        %s\n", payment.CentsToUSD(*resp.Payment.USDCents))
	}
}
