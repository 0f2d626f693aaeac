// Package postgres contains the remote mirror adapter. The mirror is a
// best-effort, possibly-stale replica in a cloud Postgres; it is written by
// the replicator and never read back.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/pitstop/internal/ports/secondary"
)

// mirrorSchema is ensured on connect. A single table keyed (shop_id, plate);
// racing writes resolve to last-applied-wins, matching the replication
// contract.
const mirrorSchema = `
CREATE TABLE IF NOT EXISTS vehicle_mirror (
	shop_id UUID NOT NULL,
	plate TEXT NOT NULL,
	owner_name TEXT NOT NULL DEFAULT '',
	contact TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'in_progress',
	mileage INTEGER,
	next_inspection TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (shop_id, plate)
)`

// Mirror implements secondary.MirrorWriter against Postgres.
type Mirror struct {
	pool *pgxpool.Pool
}

// NewMirror connects to the remote store and ensures the mirror table exists.
func NewMirror(ctx context.Context, databaseURL string) (*Mirror, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mirror store: %w", err)
	}
	if _, err := pool.Exec(ctx, mirrorSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure mirror schema: %w", err)
	}
	return &Mirror{pool: pool}, nil
}

// Write upserts one record snapshot. Whatever arrives last wins; there is no
// sequence-number reconciliation between racing writes for the same plate.
func (m *Mirror) Write(ctx context.Context, record *secondary.MirrorRecord) error {
	_, err := m.pool.Exec(ctx, `
		INSERT INTO vehicle_mirror (shop_id, plate, owner_name, contact, notes, status, mileage, next_inspection, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (shop_id, plate) DO UPDATE SET
			owner_name = EXCLUDED.owner_name,
			contact = EXCLUDED.contact,
			notes = EXCLUDED.notes,
			status = EXCLUDED.status,
			mileage = EXCLUDED.mileage,
			next_inspection = EXCLUDED.next_inspection,
			updated_at = EXCLUDED.updated_at`,
		record.ShopID, record.Plate, record.OwnerName, record.Contact, record.Notes,
		record.Status, record.Mileage, record.NextInspection, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to write mirror record: %w", err)
	}
	return nil
}

// Ping verifies the remote store is reachable.
func (m *Mirror) Ping(ctx context.Context) error {
	return m.pool.Ping(ctx)
}

// Close releases the connection pool.
func (m *Mirror) Close() {
	m.pool.Close()
}
