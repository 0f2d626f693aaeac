package cli

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/pitstop/internal/config"
	"github.com/example/pitstop/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the pitstop data directory",
		Long: `Initialize the pitstop data directory: create the local database with the
required schema, generate a shop ID and write config.json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			fmt.Printf("Initializing pitstop data directory at %s\n", cfg.DataDir)

			database, err := db.Open(cfg.DataDir)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer database.Close()
			fmt.Println("✓ Database initialized successfully")

			// The shop ID is generated once and stamped on every mirrored
			// record from then on.
			if cfg.ShopID == "" {
				cfg.ShopID = uuid.NewString()
				fmt.Printf("✓ Generated shop ID %s\n", cfg.ShopID)
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("✓ Config written to %s\n", filepath.Join(cfg.DataDir, config.FileName))
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  pitstop intake --plate 1234ABC --owner \"Ana Torres\"")
			fmt.Println("  pitstop list")

			return nil
		},
	}
}
