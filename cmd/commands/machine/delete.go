package machine

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <hostname>",
		Short: "Destroy a machine",
		Long: `Destroy a machine remotely and remove its local record.

There is no undo and no refund. In a terminal you are asked to confirm
first; pass --force to skip the prompt.`,
		Args:         cobra.ExactArgs(1),
		RunE:         runDelete,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("force", false, "Skip the confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) (err error) {
	a, record, err := lookup(cmd, args[0])
	if err != nil {
		return err
	}
	defer func() { a.Audit(cmd, os.Args[1:], record.Hostname, "", err) }()

	force, _ := cmd.Flags().GetBool("force")
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if !force && interactive {
		confirm := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Destroy %s? This cannot be undone.", record.Hostname)).
				Value(&confirm),
		)).WithAccessible(os.Getenv("ACCESSIBLE") != "")
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Deletion cancelled.")
				return nil
			}
			return err
		}
		if !confirm {
			fmt.Fprintln(cmd.ErrOrStderr(), "Deletion cancelled.")
			return nil
		}
	}

	client := clientFor(a, record)
	if interactive {
		var deleteErr error
		spinErr := spinner.New().
			Title("Destroying machine...").
			Accessible(os.Getenv("ACCESSIBLE") != "").
			Output(cmd.ErrOrStderr()).
			Action(func() {
				deleteErr = client.Delete(cmd.Context(), record.MachineID, record.Host)
			}).
			Run()
		if spinErr != nil {
			return spinErr
		}
		if deleteErr != nil {
			return deleteErr
		}
	} else if err := client.Delete(cmd.Context(), record.MachineID, record.Host); err != nil {
		return err
	}
	if err := a.Registry.Remove(record.Hostname); err != nil {
		return fmt.Errorf("machine destroyed but local record removal failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Machine %s destroyed.\n", record.Hostname)
	return nil
}
