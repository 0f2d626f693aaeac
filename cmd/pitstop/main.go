package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/pitstop/internal/cli"
	"github.com/example/pitstop/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "pitstop",
		Short:   "pitstop - vehicle intake records for the workshop counter",
		Version: version.String(),
		Long: `pitstop keeps the workshop's vehicle intake records: who brought which car,
what for, and what state the job is in. Records live in a local database and
are mirrored to a remote store when one is configured.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.IntakeCmd())
	rootCmd.AddCommand(cli.FindCmd())
	rootCmd.AddCommand(cli.ListCmd())
	rootCmd.AddCommand(cli.ActivityCmd())
	rootCmd.AddCommand(cli.NotifyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
