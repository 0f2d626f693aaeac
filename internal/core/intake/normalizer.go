// Package intake contains the pure normalization logic for raw intake input.
// This is part of the Functional Core - no I/O, only pure functions.
package intake

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// Source identifies the channel a raw intake came through.
type Source string

const (
	// SourceWeb is a form submission from the admin panel.
	SourceWeb Source = "web"
	// SourceOCR is text recognized from a plate photo.
	SourceOCR Source = "ocr"
	// SourceChat is a free-form chat message ("PLATE some notes").
	SourceChat Source = "chat"
	// SourceImport is a bulk import row.
	SourceImport Source = "import"
)

// Status is the workshop state of a vehicle record.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusDelivered  Status = "delivered"
)

// minScannedPlateLen is the shortest plate accepted from OCR or chat input.
// Shorter results are treated as garbled reads and dropped by the caller.
const minScannedPlateLen = 4

var (
	// ErrEmptyPlate means the input had no usable plate at all.
	ErrEmptyPlate = errors.New("plate is empty")
	// ErrPlateTooShort means a scanned plate was too short to be trusted.
	ErrPlateTooShort = errors.New("plate too short after filtering")
)

// RawIntake is unvalidated input as delivered by a collaborator (form fields,
// OCR text, chat message). All fields are optional except Plate.
type RawIntake struct {
	Plate          string
	OwnerName      string
	Contact        string
	Notes          string
	Status         string
	Mileage        string
	NextInspection string
	Source         Source
}

// IntakeEvent is a canonicalized intake, safe to fold into a vehicle record.
type IntakeEvent struct {
	Plate          string
	OwnerName      string
	Contact        string
	Notes          string
	Status         Status
	Mileage        *int
	NextInspection string
	Source         Source
}

// Normalize canonicalizes a raw intake. For OCR and chat sources the plate is
// filtered to alphanumerics first; plates shorter than the minimum are
// rejected with ErrPlateTooShort so the caller can drop them silently.
func Normalize(raw RawIntake) (IntakeEvent, error) {
	var plate string
	if raw.Source == SourceOCR || raw.Source == SourceChat {
		plate = FilterPlateText(raw.Plate)
		if plate != "" && len(plate) < minScannedPlateLen {
			return IntakeEvent{}, ErrPlateTooShort
		}
	} else {
		plate = NormalizePlate(raw.Plate)
	}
	if plate == "" {
		return IntakeEvent{}, ErrEmptyPlate
	}

	return IntakeEvent{
		Plate:          plate,
		OwnerName:      strings.TrimSpace(raw.OwnerName),
		Contact:        NormalizeContact(raw.Contact),
		Notes:          strings.TrimSpace(raw.Notes),
		Status:         ParseStatus(raw.Status),
		Mileage:        ParseMileage(raw.Mileage),
		NextInspection: strings.TrimSpace(raw.NextInspection),
		Source:         raw.Source,
	}, nil
}

// NormalizePlate returns the canonical form of a typed plate: surrounding
// whitespace trimmed, internal whitespace removed, uppercased.
func NormalizePlate(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// NormalizeContact strips all whitespace from a phone/messaging handle and
// otherwise keeps it as given. See DESIGN.md for the canonical-form decision.
func NormalizeContact(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// FilterPlateText reduces OCR or chat text to the characters that can appear
// on a plate: letters and digits, uppercased. Everything else is noise.
func FilterPlateText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// ParseStatus maps a free-form status string to a Status, defaulting to
// in_progress for blank or unknown values.
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusDone:
		return StatusDone
	case StatusDelivered:
		return StatusDelivered
	default:
		return StatusInProgress
	}
}

// ParseMileage extracts an odometer reading from a free-form string by
// stripping every non-digit character first. Inputs with no digits yield nil;
// that is a documented policy, not an error.
func ParseMileage(s string) *int {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return nil
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return nil
	}
	return &n
}

// ParseChatMessage splits a chat message into a raw intake: the first token
// is taken as the plate, the remainder as notes. Messages with no notes get a
// default check-in note so the record shows how it arrived.
func ParseChatMessage(text string) RawIntake {
	fields := strings.Fields(text)
	raw := RawIntake{Source: SourceChat}
	if len(fields) == 0 {
		return raw
	}
	raw.Plate = fields[0]
	if len(fields) > 1 {
		raw.Notes = strings.Join(fields[1:], " ")
	} else {
		raw.Notes = "Checked in via chat"
	}
	return raw
}
