// Package primary defines the primary ports (driving adapters) for the
// application: the operations collaborators may invoke and the shapes they
// get back.
package primary

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Lookup when no record exists for a plate.
var ErrNotFound = errors.New("vehicle not found")

// IntakeService defines the primary port for vehicle intake operations.
type IntakeService interface {
	// SubmitIntake normalizes a raw intake and upserts the vehicle record
	// keyed by canonical plate. Advisories are evaluated on the written
	// record and returned alongside it.
	SubmitIntake(ctx context.Context, req SubmitIntakeRequest) (*SubmitIntakeResponse, error)

	// Lookup retrieves the record for a plate together with freshly
	// evaluated advisories. Returns ErrNotFound on a miss.
	Lookup(ctx context.Context, plate string) (*LookupResult, error)

	// RecentRecords lists vehicle records, most recently updated first.
	RecentRecords(ctx context.Context, limit int) ([]*Vehicle, error)

	// RecentActivity lists ledger entries, newest first.
	RecentActivity(ctx context.Context, limit int) ([]*ActivityEntry, error)

	// SendReadyNotice dispatches a "vehicle ready" text to the record's
	// contact handle, fire-and-forget.
	SendReadyNotice(ctx context.Context, plate string) error

	// SendInspectionNotice dispatches the record's current inspection
	// advisory, if one applies.
	SendInspectionNotice(ctx context.Context, plate string) error
}

// SubmitIntakeRequest carries raw, unnormalized intake input. Source selects
// the normalization path ("web", "ocr", "chat", "import").
type SubmitIntakeRequest struct {
	Plate          string
	OwnerName      string
	Contact        string
	Notes          string
	Status         string
	Mileage        string
	NextInspection string
	Source         string
}

// SubmitIntakeResponse is the outcome of an upsert.
type SubmitIntakeResponse struct {
	Vehicle    *Vehicle
	Advisories []Advisory
	Created    bool // true if a new record was allocated
}

// LookupResult pairs a record with its current advisories.
type LookupResult struct {
	Vehicle    *Vehicle
	Advisories []Advisory
}

// Vehicle represents a vehicle record at the port boundary.
type Vehicle struct {
	ID             int64
	Plate          string
	OwnerName      string
	Contact        string
	Notes          string
	Status         string
	Mileage        *int
	NextInspection string
	UpdatedAt      time.Time
}

// Advisory is a generated recommendation at the port boundary.
type Advisory struct {
	Kind     string
	Message  string
	Severity string
}

// ActivityEntry is one ledger entry at the port boundary.
type ActivityEntry struct {
	Kind        string
	Description string
	At          time.Time
}
