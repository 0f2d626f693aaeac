package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/pitstop/internal/ports/primary"
	"github.com/example/pitstop/internal/wire"
)

// FindCmd returns the find command
func FindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find [plate]",
		Short: "Look up a vehicle record by plate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *wire.App) error {
				result, err := a.Intake.Lookup(context.Background(), args[0])
				if errors.Is(err, primary.ErrNotFound) {
					return fmt.Errorf("no record for plate %q", args[0])
				}
				if err != nil {
					return err
				}
				printVehicle(result.Vehicle)
				printAdvisories(result.Advisories)
				return nil
			})
		},
	}
}
