package machine

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

// SSHCommand returns a cobra.Command that connects to a machine via SSH.
func SSHCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ssh <hostname> [-- ssh args...]",
		Short: "Connect to a machine via SSH",
		Long: `Connect to a machine via SSH.

The remote API supplies a hostname that reaches port 22 on the
machine, which works for Tor-only machines too (route the connection
through torsocks or a ProxyCommand yourself).

Examples:
  vmspawn machine ssh web-01
  vmspawn machine ssh web-01 --user debian
  vmspawn machine ssh web-01 -- -L 8080:localhost:80`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         runMachineSSH,
		SilenceUsage: true,
	}

	cmd.Flags().String("user", "root", "SSH username")

	return cmd
}

func runMachineSSH(cmd *cobra.Command, args []string) error {
	a, record, err := lookup(cmd, args[0])
	if err != nil {
		return err
	}

	target, err := clientFor(a, record).SSHHostname(cmd.Context(), record.MachineID, record.Host)
	if err != nil {
		return err
	}
	if target == "" {
		return fmt.Errorf("machine %s has no reachable SSH hostname", record.Hostname)
	}

	user, _ := cmd.Flags().GetString("user")
	sshArgs := []string{
		"-o", "StrictHostKeyChecking=accept-new",
		"-o", "ConnectTimeout=10",
	}
	sshArgs = append(sshArgs, args[1:]...)
	sshArgs = append(sshArgs, fmt.Sprintf("%s@%s", user, target))

	sshCmd := exec.CommandContext(cmd.Context(), "ssh", sshArgs...)
	sshCmd.Stdin = os.Stdin
	sshCmd.Stdout = os.Stdout
	sshCmd.Stderr = os.Stderr

	if err := sshCmd.Run(); err != nil {
		return fmt.Errorf("ssh connection failed: %w", err)
	}
	return nil
}
