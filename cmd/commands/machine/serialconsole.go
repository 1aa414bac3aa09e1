package machine

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

// Serial consoles are exposed by the physical host's management
// account, reached over SSH on a dedicated port.
const (
	consoleUser = "vmmanagement"
	consolePort = "1060"
)

func SerialConsoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serialconsole <hostname>",
		Short: "Attach to a machine's serial console",
		Long: `Attach to a machine's serial console through its physical host.

Quit with ctrl + \.`,
		Args:         cobra.ExactArgs(1),
		RunE:         runSerialConsole,
		SilenceUsage: true,
	}
}

func runSerialConsole(cmd *cobra.Command, args []string) error {
	_, record, err := lookup(cmd, args[0])
	if err != nil {
		return err
	}
	if record.Host == "" {
		return fmt.Errorf("machine %s has no recorded host", record.Hostname)
	}

	sshCmd := exec.CommandContext(cmd.Context(), "ssh",
		"-t",
		"-p", consolePort,
		"-o", "StrictHostKeyChecking=accept-new",
		fmt.Sprintf("%s@%s", consoleUser, record.Host),
		"serialconsole", record.MachineID,
	)
	sshCmd.Stdin = os.Stdin
	sshCmd.Stdout = os.Stdout
	sshCmd.Stderr = os.Stderr

	if err := sshCmd.Run(); err != nil {
		return fmt.Errorf("serial console session failed: %w", err)
	}
	return nil
}
