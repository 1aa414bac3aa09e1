package machine

import (
	"fmt"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vmspawn/vmspawn/internal/app"
	"github.com/vmspawn/vmspawn/internal/domain"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List locally known machines",
		Long: `List all machines recorded locally.

With --check, each machine's existence is also verified against the
remote API.`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("check", false, "Verify each machine still exists remotely")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	hostnames, err := a.Registry.List()
	if err != nil {
		return err
	}
	if len(hostnames) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No machines found.")
		return nil
	}

	records := make([]*domain.Machine, 0, len(hostnames))
	for _, hostname := range hostnames {
		record, err := a.Registry.Read(hostname)
		if err != nil {
			return err
		}
		records = append(records, record)
	}

	check, _ := cmd.Flags().GetBool("check")
	remote := make(map[string]string, len(records))
	if check {
		var mu sync.Mutex
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(8)
		for _, record := range records {
			record := record
			g.Go(func() error {
				exists, err := clientFor(a, record).Exists(ctx, record.MachineID, record.Host)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err != nil:
					remote[record.Hostname] = "error"
				case exists:
					remote[record.Hostname] = "yes"
				default:
					remote[record.Hostname] = "GONE"
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	if check {
		fmt.Fprintln(w, "HOSTNAME\tHOST\tPROFILE\tEXPIRATION\tREMOTE")
		fmt.Fprintln(w, "--------\t----\t-------\t----------\t------")
	} else {
		fmt.Fprintln(w, "HOSTNAME\tHOST\tPROFILE\tEXPIRATION")
		fmt.Fprintln(w, "--------\t----\t-------\t----------")
	}

	for _, record := range records {
		profile := record.LaunchProfile
		if profile == "" {
			profile = "-"
		}
		host := record.Host
		if host == "" {
			host = "-"
		}
		if check {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				record.Hostname, host, profile, formatExpiration(record.Expiration), remote[record.Hostname])
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				record.Hostname, host, profile, formatExpiration(record.Expiration))
		}
	}

	return w.Flush()
}
