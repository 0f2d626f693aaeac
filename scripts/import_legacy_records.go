// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/example/pitstop/internal/adapters/sqlite"
	"github.com/example/pitstop/internal/core/intake"
	"github.com/example/pitstop/internal/db"
	"github.com/example/pitstop/internal/ports/secondary"
)

// legacyRecord matches the JSON produced by the old counter spreadsheet
// export. Field names are the export's, not ours.
type legacyRecord struct {
	Matricula  string `json:"matricula"`
	Cliente    string `json:"cliente"`
	Whatsapp   string `json:"whatsapp"`
	Notas      string `json:"notas"`
	Estado     string `json:"estado"`
	Kilometros string `json:"kilometros"`
	ProximaITV string `json:"proxima_itv"`
}

var legacyStatus = map[string]string{
	"en_curso":  "in_progress",
	"terminado": "done",
	"entregado": "delivered",
}

// Usage: go run scripts/import_legacy_records.go -file fichas.json [-data-dir DIR] [-dry-run]
func main() {
	var (
		file    = flag.String("file", "", "Legacy JSON export to import")
		dataDir = flag.String("data-dir", defaultDataDir(), "Pitstop data directory")
		dryRun  = flag.Bool("dry-run", false, "Parse and report without writing")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: import_legacy_records -file fichas.json")
		os.Exit(1)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read export: %v\n", err)
		os.Exit(1)
	}
	var legacy []legacyRecord
	if err := json.Unmarshal(data, &legacy); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse export: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Open(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open local store: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	repo := sqlite.NewRecordRepository(database)
	ctx := context.Background()

	imported, updated, skipped := 0, 0, 0
	for _, l := range legacy {
		event, err := intake.Normalize(intake.RawIntake{
			Plate:          l.Matricula,
			OwnerName:      l.Cliente,
			Contact:        l.Whatsapp,
			Notes:          l.Notas,
			Status:         legacyStatus[l.Estado],
			Mileage:        l.Kilometros,
			NextInspection: l.ProximaITV,
			Source:         intake.SourceImport,
		})
		if err != nil {
			fmt.Printf("skipping %q: %v\n", l.Matricula, err)
			skipped++
			continue
		}

		if *dryRun {
			fmt.Printf("would import %s (%s)\n", event.Plate, event.OwnerName)
			imported++
			continue
		}

		existing, err := repo.GetByPlate(ctx, event.Plate)
		if err == nil {
			existing.OwnerName = event.OwnerName
			existing.Contact = event.Contact
			existing.Notes = event.Notes
			existing.Status = string(event.Status)
			if event.Mileage != nil {
				existing.Mileage = event.Mileage
			}
			if event.NextInspection != "" {
				existing.NextInspection = event.NextInspection
			}
			if err := repo.Update(ctx, existing); err != nil {
				fmt.Printf("skipping %s: %v\n", event.Plate, err)
				skipped++
				continue
			}
			updated++
			continue
		}

		id, err := repo.NextID(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to allocate id: %v\n", err)
			os.Exit(1)
		}
		record := &secondary.VehicleRecord{
			ID:             id,
			Plate:          event.Plate,
			OwnerName:      event.OwnerName,
			Contact:        event.Contact,
			Notes:          event.Notes,
			Status:         string(event.Status),
			Mileage:        event.Mileage,
			NextInspection: event.NextInspection,
		}
		if err := repo.Create(ctx, record); err != nil {
			fmt.Printf("skipping %s: %v\n", event.Plate, err)
			skipped++
			continue
		}
		imported++
	}

	fmt.Printf("done: %d imported, %d updated, %d skipped\n", imported, updated, skipped)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pitstop"
	}
	return home + "/.pitstop"
}
