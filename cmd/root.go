package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmspawn/vmspawn/cmd/commands/audit"
	cfgcmd "github.com/vmspawn/vmspawn/cmd/commands/config"
	machinecmd "github.com/vmspawn/vmspawn/cmd/commands/machine"
	"github.com/vmspawn/vmspawn/cmd/commands/settlement"
	"github.com/vmspawn/vmspawn/cmd/commands/walletcmd"
	"github.com/vmspawn/vmspawn/internal/api"
)

// version is set at build time via -ldflags.
var version = "dev"

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "vmspawn",
		Short: "Launch and manage machines paid for in cryptocurrency",
		Long: `vmspawn launches virtual machines from a remote hosting provider and
pays for them in cryptocurrency or with a prepaid settlement token.
Machine records are kept locally; the machine ID inside each record is
the only credential for the machine, so guard the record files.

Quick start:
  vmspawn machine launch web-01 --flavor tor-1024 --days 7 --currency xmr
  vmspawn machine list
  vmspawn machine topup web-01 --days 7 --currency xmr`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("api-endpoint", "", "Provisioning API endpoint (default "+api.DefaultEndpoint+")")
	cmd.PersistentFlags().String("tor-proxy", "", "When to route through the SOCKS proxy: auto, always, or never")
	cmd.PersistentFlags().String("socks-proxy", "", "host:port of the local Tor SOCKS proxy (default 127.0.0.1:9050)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(machinecmd.NewCommand())
	cmd.AddCommand(settlement.NewCommand())
	cmd.AddCommand(walletcmd.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(audit.NewCommand())
	cmd.AddCommand(versionCommand())

	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the vmspawn version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vmspawn %s (API v%d)\n", version, api.Version)
		},
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
