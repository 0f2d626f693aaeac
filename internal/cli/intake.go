package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/pitstop/internal/core/intake"
	"github.com/example/pitstop/internal/ports/primary"
	"github.com/example/pitstop/internal/wire"
)

// IntakeCmd returns the intake command
func IntakeCmd() *cobra.Command {
	var (
		plate      string
		owner      string
		contact    string
		notes      string
		status     string
		mileage    string
		inspection string
		ocrText    string
		chatText   string
	)

	cmd := &cobra.Command{
		Use:   "intake",
		Short: "Register or update a vehicle check-in",
		Long: `Register a vehicle check-in. Records are keyed by plate: an unknown plate
creates a record, a known plate updates it in place.

Plates can come from three sources:
  --plate       typed in at the counter
  --ocr-text    raw text from a plate scanner
  --chat-text   a "PLATE notes..." message forwarded from chat

Scanned or chatted text that does not yield a usable plate is ignored.

Examples:
  pitstop intake --plate "1234 ABC" --owner "Ana Torres" --contact "+34 600 112 233"
  pitstop intake --plate 1234ABC --status done --notes "brake pads replaced"
  pitstop intake --chat-text "1234ABC cambio de aceite"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := primary.SubmitIntakeRequest{
				Plate:          plate,
				OwnerName:      owner,
				Contact:        contact,
				Notes:          notes,
				Status:         status,
				Mileage:        mileage,
				NextInspection: inspection,
				Source:         string(intake.SourceWeb),
			}
			switch {
			case ocrText != "":
				req.Plate = ocrText
				req.Source = string(intake.SourceOCR)
			case chatText != "":
				raw := intake.ParseChatMessage(chatText)
				req.Plate = raw.Plate
				req.Notes = raw.Notes
				req.Source = string(intake.SourceChat)
			}

			scanned := req.Source != string(intake.SourceWeb)

			return withApp(func(a *wire.App) error {
				resp, err := a.Intake.SubmitIntake(context.Background(), req)
				if scanned && (errors.Is(err, intake.ErrPlateTooShort) || errors.Is(err, intake.ErrEmptyPlate)) {
					// Scanner noise, not operator error.
					fmt.Println("Ignored: scanned text did not yield a usable plate")
					return nil
				}
				if err != nil {
					return err
				}

				if resp.Created {
					fmt.Printf("✓ Created record #%d for %s\n", resp.Vehicle.ID, resp.Vehicle.Plate)
				} else {
					fmt.Printf("✓ Updated record #%d for %s\n", resp.Vehicle.ID, resp.Vehicle.Plate)
				}
				printAdvisories(resp.Advisories)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&plate, "plate", "", "License plate")
	cmd.Flags().StringVar(&owner, "owner", "", "Owner name")
	cmd.Flags().StringVar(&contact, "contact", "", "Contact handle (phone)")
	cmd.Flags().StringVar(&notes, "notes", "", "Work notes")
	cmd.Flags().StringVar(&status, "status", "", "Status: in_progress, done, delivered")
	cmd.Flags().StringVar(&mileage, "mileage", "", "Odometer reading, e.g. \"151.000 km\"")
	cmd.Flags().StringVar(&inspection, "inspection", "", "Next inspection date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ocrText, "ocr-text", "", "Raw plate-scanner text")
	cmd.Flags().StringVar(&chatText, "chat-text", "", "Forwarded chat message (\"PLATE notes...\")")

	return cmd
}
