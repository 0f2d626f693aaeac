package secondary

import (
	"context"
	"time"
)

// MirrorWriter defines the secondary port for the remote mirror store. The
// mirror is write-only: the core never reads it back, and a stale or missing
// mirror row is acceptable.
type MirrorWriter interface {
	// Write pushes one record snapshot. Last write applied wins; there is no
	// sequencing or reconciliation between racing writes for the same plate.
	Write(ctx context.Context, record *MirrorRecord) error

	// Ping verifies the remote store is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection pool.
	Close()
}

// MirrorRecord is the snapshot pushed to the remote mirror.
type MirrorRecord struct {
	ShopID         string
	Plate          string
	OwnerName      string
	Contact        string
	Notes          string
	Status         string
	Mileage        *int
	NextInspection string
	UpdatedAt      time.Time
}

// Notifier defines the secondary port for outbound text notices ("vehicle
// ready", "inspection due"). Dispatch is fire-and-forget; delivery retries
// are the gateway's problem, not ours.
type Notifier interface {
	Send(ctx context.Context, recipient, message string) error
}
