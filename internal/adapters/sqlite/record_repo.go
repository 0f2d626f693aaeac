// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/pitstop/internal/ports/secondary"
)

// RecordRepository implements secondary.RecordRepository with SQLite.
type RecordRepository struct {
	db *sql.DB
}

// NewRecordRepository creates a new SQLite record repository.
func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

const recordColumns = "id, plate, owner_name, contact, notes, status, mileage, next_inspection, created_at, updated_at"

// GetByPlate retrieves a record by canonical plate.
func (r *RecordRepository) GetByPlate(ctx context.Context, plate string) (*secondary.VehicleRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM vehicle_records WHERE plate = ?", plate,
	)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vehicle %s: %w", plate, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return record, nil
}

// Create persists a new record with its pre-assigned ID.
func (r *RecordRepository) Create(ctx context.Context, record *secondary.VehicleRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO vehicle_records (id, plate, owner_name, contact, notes, status, mileage, next_inspection, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		record.ID, record.Plate, record.OwnerName, record.Contact, record.Notes, record.Status,
		nullMileage(record.Mileage), record.NextInspection, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of an existing record. The plate and
// ID are immutable and never touched.
func (r *RecordRepository) Update(ctx context.Context, record *secondary.VehicleRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE vehicle_records SET owner_name = ?, contact = ?, notes = ?, status = ?, mileage = ?, next_inspection = ?, updated_at = ? WHERE id = ?",
		record.OwnerName, record.Contact, record.Notes, record.Status,
		nullMileage(record.Mileage), record.NextInspection, record.UpdatedAt, record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("vehicle record %d: %w", record.ID, secondary.ErrNotFound)
	}
	return nil
}

// NextID returns max(existing ids) + 1, starting at 1. Callers must hold the
// per-plate lock when pairing this with Create, otherwise two racing creates
// could be handed the same ID.
func (r *RecordRepository) NextID(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(id), 0) + 1 FROM vehicle_records",
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next record id: %w", err)
	}
	return next, nil
}

// ListRecent retrieves records ordered most-recently-updated first.
func (r *RecordRepository) ListRecent(ctx context.Context, limit int) ([]*secondary.VehicleRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM vehicle_records ORDER BY updated_at DESC, id DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []*secondary.VehicleRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*secondary.VehicleRecord, error) {
	var (
		record    secondary.VehicleRecord
		mileage   sql.NullInt64
		createdAt time.Time
		updatedAt time.Time
	)
	err := s.Scan(&record.ID, &record.Plate, &record.OwnerName, &record.Contact,
		&record.Notes, &record.Status, &mileage, &record.NextInspection,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if mileage.Valid {
		m := int(mileage.Int64)
		record.Mileage = &m
	}
	record.CreatedAt = createdAt
	record.UpdatedAt = updatedAt
	return &record, nil
}

func nullMileage(m *int) sql.NullInt64 {
	if m == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*m), Valid: true}
}
