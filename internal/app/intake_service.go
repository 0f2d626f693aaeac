// Package app implements the primary ports. Services orchestrate the
// functional core, the repositories and the outbound collaborators.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/pitstop/internal/core/advisory"
	"github.com/example/pitstop/internal/core/intake"
	"github.com/example/pitstop/internal/ports/primary"
	"github.com/example/pitstop/internal/ports/secondary"
)

// notifyTimeout bounds a single async notice dispatch.
const notifyTimeout = 10 * time.Second

// Replicator is the hand-off point for mirror snapshots. Enqueue must never
// block. A nil Replicator disables replication.
type Replicator interface {
	Enqueue(record *secondary.MirrorRecord)
}

// IntakeServiceImpl implements primary.IntakeService.
type IntakeServiceImpl struct {
	records    secondary.RecordRepository
	activity   secondary.ActivityRepository
	replicator Replicator         // nil when no mirror is configured
	notifier   secondary.Notifier // nil when no gateway is configured
	shopID     string
	now        func() time.Time

	// plateLocks serializes upserts per plate. Without it, two racing
	// "new record" paths could both be handed the same next ID.
	plateMu    sync.Mutex
	plateLocks map[string]*sync.Mutex
}

// NewIntakeService creates an IntakeService with injected dependencies.
func NewIntakeService(
	records secondary.RecordRepository,
	activity secondary.ActivityRepository,
	repl Replicator,
	notifier secondary.Notifier,
	shopID string,
) *IntakeServiceImpl {
	return &IntakeServiceImpl{
		records:    records,
		activity:   activity,
		replicator: repl,
		notifier:   notifier,
		shopID:     shopID,
		now:        time.Now,
		plateLocks: make(map[string]*sync.Mutex),
	}
}

// SubmitIntake normalizes the raw input and upserts the record keyed by
// canonical plate. Upserts to the same plate serialize; different plates run
// concurrently. The mirror snapshot is handed off after the local write and
// never blocks it.
func (s *IntakeServiceImpl) SubmitIntake(ctx context.Context, req primary.SubmitIntakeRequest) (*primary.SubmitIntakeResponse, error) {
	event, err := intake.Normalize(intake.RawIntake{
		Plate:          req.Plate,
		OwnerName:      req.OwnerName,
		Contact:        req.Contact,
		Notes:          req.Notes,
		Status:         req.Status,
		Mileage:        req.Mileage,
		NextInspection: req.NextInspection,
		Source:         intake.Source(req.Source),
	})
	if err != nil {
		return nil, err
	}

	unlock := s.lockPlate(event.Plate)
	defer unlock()

	record, created, err := s.fold(ctx, event)
	if err != nil {
		return nil, err
	}

	if s.replicator != nil {
		s.replicator.Enqueue(s.mirrorSnapshot(record))
	}

	desc := fmt.Sprintf("Updated: %s (%s)", record.Plate, record.OwnerName)
	if created {
		desc = fmt.Sprintf("New intake: %s (%s)", record.Plate, record.OwnerName)
	}
	s.recordActivity(ctx, "UPSERT", desc)

	return &primary.SubmitIntakeResponse{
		Vehicle:    toVehicle(record),
		Advisories: s.evaluate(record),
		Created:    created,
	}, nil
}

// fold applies an intake event to the store: mutate in place when the plate
// exists, otherwise allocate the next ID and create. Callers must hold the
// plate lock.
func (s *IntakeServiceImpl) fold(ctx context.Context, event intake.IntakeEvent) (*secondary.VehicleRecord, bool, error) {
	now := s.now().UTC()

	existing, err := s.records.GetByPlate(ctx, event.Plate)
	switch {
	case err == nil:
		// Owner, contact, notes and status are always overwritten; the
		// odometer and inspection date only when the event carries them.
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
		existing.UpdatedAt = now
		if err := s.records.Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("failed to update record: %w", err)
		}
		return existing, false, nil

	case errors.Is(err, secondary.ErrNotFound):
		id, err := s.records.NextID(ctx)
		if err != nil {
			return nil, false, fmt.Errorf("failed to allocate record id: %w", err)
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
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.records.Create(ctx, record); err != nil {
			return nil, false, fmt.Errorf("failed to create record: %w", err)
		}
		return record, true, nil

	default:
		return nil, false, fmt.Errorf("failed to look up plate: %w", err)
	}
}

// Lookup retrieves the record for a plate together with fresh advisories.
func (s *IntakeServiceImpl) Lookup(ctx context.Context, plate string) (*primary.LookupResult, error) {
	canonical := intake.NormalizePlate(plate)
	if canonical == "" {
		return nil, fmt.Errorf("empty plate: %w", primary.ErrNotFound)
	}

	record, err := s.records.GetByPlate(ctx, canonical)
	if errors.Is(err, secondary.ErrNotFound) {
		s.recordActivity(ctx, "SEARCH", fmt.Sprintf("Not found: %s", canonical))
		return nil, fmt.Errorf("vehicle %s: %w", canonical, primary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up plate: %w", err)
	}

	s.recordActivity(ctx, "SEARCH", fmt.Sprintf("Found: %s (%s)", record.Plate, record.OwnerName))
	return &primary.LookupResult{
		Vehicle:    toVehicle(record),
		Advisories: s.evaluate(record),
	}, nil
}

// RecentRecords lists records, most recently updated first.
func (s *IntakeServiceImpl) RecentRecords(ctx context.Context, limit int) ([]*primary.Vehicle, error) {
	records, err := s.records.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	vehicles := make([]*primary.Vehicle, len(records))
	for i, r := range records {
		vehicles[i] = toVehicle(r)
	}
	return vehicles, nil
}

// RecentActivity lists ledger entries, newest first.
func (s *IntakeServiceImpl) RecentActivity(ctx context.Context, limit int) ([]*primary.ActivityEntry, error) {
	entries, err := s.activity.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	out := make([]*primary.ActivityEntry, len(entries))
	for i, e := range entries {
		out[i] = &primary.ActivityEntry{Kind: e.Kind, Description: e.Description, At: e.CreatedAt}
	}
	return out, nil
}

// SendReadyNotice dispatches a "vehicle ready" text to the record's contact
// handle. Dispatch is asynchronous; gateway failures are logged, never
// surfaced, never retried.
func (s *IntakeServiceImpl) SendReadyNotice(ctx context.Context, plate string) error {
	record, err := s.noticeTarget(ctx, plate)
	if err != nil {
		return err
	}
	message := fmt.Sprintf("Your vehicle %s is ready for pickup.", record.Plate)
	s.dispatchNotice(ctx, record, message)
	return nil
}

// SendInspectionNotice dispatches the current inspection advisory for the
// record, if there is one.
func (s *IntakeServiceImpl) SendInspectionNotice(ctx context.Context, plate string) error {
	record, err := s.noticeTarget(ctx, plate)
	if err != nil {
		return err
	}
	for _, a := range s.evaluate(record) {
		if a.Kind == string(advisory.KindInspectionDue) || a.Kind == string(advisory.KindInspectionExpired) {
			s.dispatchNotice(ctx, record, fmt.Sprintf("Vehicle %s: %s", record.Plate, a.Message))
			return nil
		}
	}
	return fmt.Errorf("vehicle %s has no inspection advisory", record.Plate)
}

func (s *IntakeServiceImpl) noticeTarget(ctx context.Context, plate string) (*secondary.VehicleRecord, error) {
	if s.notifier == nil {
		return nil, fmt.Errorf("no notification gateway configured")
	}
	canonical := intake.NormalizePlate(plate)
	record, err := s.records.GetByPlate(ctx, canonical)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, fmt.Errorf("vehicle %s: %w", canonical, primary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up plate: %w", err)
	}
	if record.Contact == "" {
		return nil, fmt.Errorf("vehicle %s has no contact handle", record.Plate)
	}
	return record, nil
}

// dispatchNotice sends in a goroutine with a short timeout so the caller is
// never blocked on the gateway. Request cancellation does not abort an
// in-flight send.
func (s *IntakeServiceImpl) dispatchNotice(ctx context.Context, record *secondary.VehicleRecord, message string) {
	recipient := record.Contact
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Send(sendCtx, recipient, message); err != nil {
			log.Printf("notify: send to %s failed: %v", recipient, err)
		}
	}()
	s.recordActivity(ctx, "NOTIFY", fmt.Sprintf("Notice sent for %s", record.Plate))
}

// recordActivity appends to the ledger best-effort. The ledger is
// observability, not bookkeeping: a failed append never fails the operation.
func (s *IntakeServiceImpl) recordActivity(ctx context.Context, kind, description string) {
	entry := &secondary.ActivityRecord{Kind: kind, Description: description, CreatedAt: s.now().UTC()}
	if err := s.activity.Append(ctx, entry); err != nil {
		log.Printf("activity: append failed: %v", err)
	}
}

func (s *IntakeServiceImpl) lockPlate(plate string) func() {
	s.plateMu.Lock()
	lock, ok := s.plateLocks[plate]
	if !ok {
		lock = &sync.Mutex{}
		s.plateLocks[plate] = lock
	}
	s.plateMu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (s *IntakeServiceImpl) evaluate(record *secondary.VehicleRecord) []primary.Advisory {
	results := advisory.Evaluate(advisory.Vehicle{
		Notes:          record.Notes,
		Mileage:        record.Mileage,
		NextInspection: record.NextInspection,
	}, s.now())

	out := make([]primary.Advisory, len(results))
	for i, a := range results {
		out[i] = primary.Advisory{Kind: string(a.Kind), Message: a.Message, Severity: string(a.Severity)}
	}
	return out
}

func (s *IntakeServiceImpl) mirrorSnapshot(record *secondary.VehicleRecord) *secondary.MirrorRecord {
	return &secondary.MirrorRecord{
		ShopID:         s.shopID,
		Plate:          record.Plate,
		OwnerName:      record.OwnerName,
		Contact:        record.Contact,
		Notes:          record.Notes,
		Status:         record.Status,
		Mileage:        record.Mileage,
		NextInspection: record.NextInspection,
		UpdatedAt:      record.UpdatedAt,
	}
}

func toVehicle(record *secondary.VehicleRecord) *primary.Vehicle {
	return &primary.Vehicle{
		ID:             record.ID,
		Plate:          record.Plate,
		OwnerName:      record.OwnerName,
		Contact:        record.Contact,
		Notes:          record.Notes,
		Status:         record.Status,
		Mileage:        record.Mileage,
		NextInspection: record.NextInspection,
		UpdatedAt:      record.UpdatedAt,
	}
}
