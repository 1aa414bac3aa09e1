// Package config implements the "vmspawn config" command group.
package config

import (
	"github.com/vmspawn/vmspawn/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vmspawn configuration",
		Long: "View and modify persistent vmspawn settings.\n\n" +
			"Configuration is stored at ~/.config/vmspawn/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
