package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/pitstop/internal/wire"
)

// ActivityCmd returns the activity command
func ActivityCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the activity ledger, newest first",
		Long: `Show recent shop activity: intakes, searches and notices. The ledger keeps
the newest 100 entries; older ones are discarded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *wire.App) error {
				entries, err := a.Intake.RecentActivity(context.Background(), limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Println("No activity yet.")
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				for _, e := range entries {
					fmt.Fprintf(w, "%s\t%s\t%s\n",
						e.At.Local().Format("2006-01-02 15:04"), e.Kind, e.Description)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show")

	return cmd
}
