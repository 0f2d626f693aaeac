package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/pitstop/internal/wire"
)

// ListCmd returns the list command
func ListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List vehicle records, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *wire.App) error {
				vehicles, err := a.Intake.RecentRecords(context.Background(), limit)
				if err != nil {
					return err
				}
				if len(vehicles) == 0 {
					fmt.Println("No records yet. Run `pitstop intake` to register one.")
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tPLATE\tOWNER\tSTATUS\tUPDATED")
				for _, v := range vehicles {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
						v.ID, v.Plate, v.OwnerName, v.Status,
						v.UpdatedAt.Local().Format("2006-01-02 15:04"))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records to show")

	return cmd
}
