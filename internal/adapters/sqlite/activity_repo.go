package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/pitstop/internal/ports/secondary"
)

// ActivityRepository implements secondary.ActivityRepository with SQLite.
// The ledger is a ring buffer by truncation: every append trims the table to
// the configured capacity, oldest entries first.
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new SQLite activity repository.
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Append adds an entry and evicts everything beyond the capacity bound.
func (r *ActivityRepository) Append(ctx context.Context, entry *secondary.ActivityRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO activity (kind, description, created_at) VALUES (?, ?, ?)",
		entry.Kind, entry.Description, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}

	// FIFO eviction: retention depends only on insertion order, never reads.
	_, err = r.db.ExecContext(ctx,
		"DELETE FROM activity WHERE id NOT IN (SELECT id FROM activity ORDER BY id DESC LIMIT ?)",
		secondary.ActivityCapacity,
	)
	if err != nil {
		return fmt.Errorf("failed to trim activity ledger: %w", err)
	}
	return nil
}

// List retrieves entries newest first, at most limit.
func (r *ActivityRepository) List(ctx context.Context, limit int) ([]*secondary.ActivityRecord, error) {
	if limit <= 0 || limit > secondary.ActivityCapacity {
		limit = secondary.ActivityCapacity
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, kind, description, created_at FROM activity ORDER BY id DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.ActivityRecord
	for rows.Next() {
		var entry secondary.ActivityRecord
		if err := rows.Scan(&entry.ID, &entry.Kind, &entry.Description, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
