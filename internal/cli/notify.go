package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/pitstop/internal/wire"
)

// NotifyCmd returns the notify command
func NotifyCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "notify [plate]",
		Short: "Send a text notice to the vehicle's owner",
		Long: `Send a text notice to the contact handle on a vehicle record.

Kinds:
  ready        the vehicle is ready for pickup
  inspection   the vehicle's inspection advisory, when one applies

Dispatch is fire-and-forget: delivery is not confirmed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *wire.App) error {
				ctx := context.Background()
				var err error
				switch kind {
				case "ready":
					err = a.Intake.SendReadyNotice(ctx, args[0])
				case "inspection":
					err = a.Intake.SendInspectionNotice(ctx, args[0])
				default:
					return fmt.Errorf("unknown notice kind %q (want ready or inspection)", kind)
				}
				if err != nil {
					return err
				}
				fmt.Printf("✓ Notice dispatched for %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "ready", "Notice kind: ready, inspection")

	return cmd
}
