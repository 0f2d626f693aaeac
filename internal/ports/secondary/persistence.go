// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems.
package secondary

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by lookups that miss. A miss is a valid outcome,
// not a failure.
var ErrNotFound = errors.New("not found")

// ActivityCapacity is how many ledger entries are retained. Older entries are
// evicted on append (FIFO by truncation); callers must not assume durability
// beyond this bound.
const ActivityCapacity = 100

// RecordRepository defines the secondary port for vehicle record persistence.
// This is the authoritative store; all mutation goes through the service's
// upsert path.
type RecordRepository interface {
	// GetByPlate retrieves a record by canonical plate. Returns ErrNotFound
	// on a miss.
	GetByPlate(ctx context.Context, plate string) (*VehicleRecord, error)

	// Create persists a new record with its pre-assigned ID.
	Create(ctx context.Context, record *VehicleRecord) error

	// Update overwrites the mutable fields of an existing record.
	Update(ctx context.Context, record *VehicleRecord) error

	// NextID returns the next record ID (max existing ID + 1, starting at 1).
	NextID(ctx context.Context) (int64, error)

	// ListRecent retrieves records ordered most-recently-updated first.
	ListRecent(ctx context.Context, limit int) ([]*VehicleRecord, error)
}

// VehicleRecord represents a vehicle record as stored in persistence.
// There is at most one per canonical plate; the plate and ID never change
// after creation.
type VehicleRecord struct {
	ID             int64
	Plate          string
	OwnerName      string
	Contact        string
	Notes          string
	Status         string
	Mileage        *int
	NextInspection string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ActivityRepository defines the secondary port for the activity ledger.
type ActivityRepository interface {
	// Append adds an entry and evicts the oldest entries beyond
	// ActivityCapacity.
	Append(ctx context.Context, entry *ActivityRecord) error

	// List retrieves entries newest first, at most limit.
	List(ctx context.Context, limit int) ([]*ActivityRecord, error)
}

// ActivityRecord is one immutable ledger entry.
type ActivityRecord struct {
	ID          int64
	Kind        string
	Description string
	CreatedAt   time.Time
}
