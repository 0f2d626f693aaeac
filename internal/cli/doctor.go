package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/pitstop/internal/config"
	"github.com/example/pitstop/internal/db"
	"github.com/example/pitstop/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the pitstop environment",
		Long: `Health check for the pitstop environment.

Validates:
- Config loads and the shop ID is set
- Data directory and local database
- Remote mirror connectivity (when configured)
- Notify gateway configuration (when configured)

Examples:
  pitstop doctor            # Run full health check
  pitstop doctor --quiet    # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{}

			cfg, err := config.Load()
			if err != nil {
				results = append(results, CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()})
			} else {
				results = append(results, checkConfig(cfg))
				results = append(results, checkLocalStore(cfg))
				results = append(results, checkMirror(cfg))
				results = append(results, checkGateway(cfg))
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

func checkConfig(cfg *config.Config) CheckResult {
	if cfg.ShopID == "" {
		return CheckResult{Name: "Config", Status: "⚠", Details: "  No shop ID set. Run 'pitstop init' to generate one."}
	}
	return CheckResult{Name: "Config", Status: "✓"}
}

func checkLocalStore(cfg *config.Config) CheckResult {
	if _, err := os.Stat(filepath.Join(cfg.DataDir, db.FileName)); err != nil {
		return CheckResult{Name: "Local store", Status: "⚠", Details: "  No database yet. Run 'pitstop init' to create it."}
	}
	database, err := db.Open(cfg.DataDir)
	if err != nil {
		return CheckResult{Name: "Local store", Status: "✗", Details: "  " + err.Error()}
	}
	defer database.Close()
	if err := database.Ping(); err != nil {
		return CheckResult{Name: "Local store", Status: "✗", Details: "  " + err.Error()}
	}
	return CheckResult{Name: "Local store", Status: "✓"}
}

func checkMirror(cfg *config.Config) CheckResult {
	if cfg.MirrorDatabaseURL == "" {
		return CheckResult{Name: "Mirror", Status: "⚠", Details: "  Replication disabled (no mirror_database_url)."}
	}
	a, err := wire.New(cfg)
	if err != nil {
		return CheckResult{Name: "Mirror", Status: "✗", Details: "  " + err.Error()}
	}
	defer a.Close()
	mirror := a.Mirror()
	if mirror == nil {
		return CheckResult{Name: "Mirror", Status: "✗", Details: "  Mirror configured but unreachable."}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mirror.Ping(ctx); err != nil {
		return CheckResult{Name: "Mirror", Status: "✗", Details: "  " + err.Error()}
	}
	return CheckResult{Name: "Mirror", Status: "✓"}
}

func checkGateway(cfg *config.Config) CheckResult {
	if cfg.NotifyGatewayURL == "" {
		return CheckResult{Name: "Notify gateway", Status: "⚠", Details: "  Notices disabled (no notify_gateway_url)."}
	}
	if cfg.NotifyAPIKey == "" {
		return CheckResult{Name: "Notify gateway", Status: "⚠", Details: "  Gateway URL set but notify_api_key is empty."}
	}
	return CheckResult{Name: "Notify gateway", Status: "✓"}
}
