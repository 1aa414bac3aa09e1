package machine

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmspawn/vmspawn/internal/validate"
)

func IPXEScriptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ipxescript <hostname>",
		Short: "Replace a machine's network boot script",
		Long: `Replace a machine's iPXE boot script.

The script is read from --file, or from stdin when --file is not
given. Servers without iPXE support report the feature as unavailable.

Examples:
  vmspawn machine ipxescript web-01 --file boot.ipxe
  cat boot.ipxe | vmspawn machine ipxescript web-01`,
		Args:         cobra.ExactArgs(1),
		RunE:         runIPXEScript,
		SilenceUsage: true,
	}

	cmd.Flags().String("file", "", "Read the iPXE script from this file")

	return cmd
}

func runIPXEScript(cmd *cobra.Command, args []string) (err error) {
	a, record, err := lookup(cmd, args[0])
	if err != nil {
		return err
	}
	defer func() { a.Audit(cmd, os.Args[1:], record.Hostname, "", err) }()

	var script []byte
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		script, err = os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
	} else {
		script, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read script from stdin: %w", err)
		}
	}

	if err := validate.IPXEScript(string(script)); err != nil {
		return err
	}

	if err := clientFor(a, record).SetIPXEScript(cmd.Context(), record.MachineID, record.Host, string(script)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Boot script for %s updated.\n", record.Hostname)
	return nil
}
