// Package cli implements the pitstop commands. Commands are thin: they load
// config, wire the app, call a primary port and render the result.
package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/pitstop/internal/config"
	"github.com/example/pitstop/internal/ports/primary"
	"github.com/example/pitstop/internal/wire"
)

// withApp loads config, wires the application and runs fn, closing the app
// afterwards so the replicator gets its drain window.
func withApp(fn func(a *wire.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a, err := wire.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// printVehicle renders one record in the detail layout.
func printVehicle(v *primary.Vehicle) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Plate:\t%s\n", v.Plate)
	if v.OwnerName != "" {
		fmt.Fprintf(w, "Owner:\t%s\n", v.OwnerName)
	}
	if v.Contact != "" {
		fmt.Fprintf(w, "Contact:\t%s\n", v.Contact)
	}
	fmt.Fprintf(w, "Status:\t%s\n", v.Status)
	if v.Mileage != nil {
		fmt.Fprintf(w, "Mileage:\t%d km\n", *v.Mileage)
	}
	if v.NextInspection != "" {
		fmt.Fprintf(w, "Inspection:\t%s\n", v.NextInspection)
	}
	if v.Notes != "" {
		fmt.Fprintf(w, "Notes:\t%s\n", v.Notes)
	}
	fmt.Fprintf(w, "Updated:\t%s\n", v.UpdatedAt.Local().Format("2006-01-02 15:04"))
	w.Flush()
}

// printAdvisories renders advisories with a severity-colored marker.
func printAdvisories(advisories []primary.Advisory) {
	if len(advisories) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Advisories:")
	for _, a := range advisories {
		fmt.Printf("  %s %s\n", severityMarker(a.Severity), a.Message)
	}
}

func severityMarker(severity string) string {
	switch severity {
	case "critical":
		return color.New(color.FgRed).Sprintf("[%s]", severity)
	case "warning":
		return color.New(color.FgYellow).Sprintf("[%s]", severity)
	default:
		return fmt.Sprintf("[%s]", severity)
	}
}
