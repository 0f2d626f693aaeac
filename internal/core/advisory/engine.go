// Package advisory contains the pure rule engine that inspects a vehicle
// record and produces maintenance/inspection advisories.
// This is part of the Functional Core - no I/O, only pure functions.
package advisory

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Kind identifies the rule that produced an advisory.
type Kind string

const (
	KindInspectionDue     Kind = "inspection_due"
	KindInspectionExpired Kind = "inspection_expired"
	KindMileageThreshold  Kind = "mileage_threshold"
	KindKeywordSuggestion Kind = "keyword_suggestion"
	// KindAllClear is the synthetic advisory returned when no rule fires, so
	// callers can distinguish "nothing to report" from "not evaluated".
	KindAllClear Kind = "all_clear"
)

// Severity ranks an advisory.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Advisory is a generated, non-persisted recommendation. Advisories are
// recomputed from the current record on every evaluation and never stored.
type Advisory struct {
	Kind     Kind
	Message  string
	Severity Severity
}

// Vehicle is the slice of a vehicle record the engine looks at.
// Defined here to avoid import cycles with the port packages.
type Vehicle struct {
	Notes          string
	Mileage        *int
	NextInspection string // "2006-01-02"; malformed values are tolerated
}

const (
	inspectionDateLayout = "2006-01-02"
	// inspectionWindowDays is how far ahead of the inspection date the
	// engine starts warning.
	inspectionWindowDays = 15
	// mileageThresholdKm is the odometer reading above which a major
	// service is suggested.
	mileageThresholdKm = 150000
	// mileageExemptKeyword in the notes means the major service is already
	// on the sheet, so the threshold rule stays quiet.
	mileageExemptKeyword = "timing belt"
	maxSuggestions       = 10
)

// rule inspects a vehicle and returns zero or more advisories.
type rule func(v Vehicle, now time.Time) []Advisory

// rules are evaluated in fixed order: inspection first, then mileage, then
// keyword suggestions. Results are concatenated.
var rules = []rule{inspectionRule, mileageRule, keywordRule}

// Evaluate runs every rule against the vehicle and concatenates the results.
// It is deterministic given the same vehicle and the same now, and never
// returns an empty slice: if nothing fires, a single all-clear advisory is
// returned instead.
func Evaluate(v Vehicle, now time.Time) []Advisory {
	var out []Advisory
	for _, r := range rules {
		out = append(out, r(v, now)...)
	}
	if len(out) == 0 {
		return []Advisory{{
			Kind:     KindAllClear,
			Message:  "No advisories for this vehicle",
			Severity: SeverityInfo,
		}}
	}
	return out
}

// inspectionRule warns when the next inspection date is inside the warning
// window and escalates once it has passed. Malformed dates yield no advisory;
// swallowing them is a documented policy, not an accident.
func inspectionRule(v Vehicle, now time.Time) []Advisory {
	if v.NextInspection == "" {
		return nil
	}
	due, err := time.ParseInLocation(inspectionDateLayout, v.NextInspection, time.UTC)
	if err != nil {
		return nil
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(due.Sub(today).Hours() / 24)

	switch {
	case days < 0:
		return []Advisory{{
			Kind:     KindInspectionExpired,
			Message:  fmt.Sprintf("Inspection expired: %s overdue", dayCount(-days)),
			Severity: SeverityCritical,
		}}
	case days <= inspectionWindowDays:
		return []Advisory{{
			Kind:     KindInspectionDue,
			Message:  fmt.Sprintf("Inspection due in %s", dayCount(days)),
			Severity: SeverityWarning,
		}}
	default:
		return nil
	}
}

// mileageRule suggests a major service above the odometer threshold unless
// the notes show it is already being handled.
func mileageRule(v Vehicle, now time.Time) []Advisory {
	if v.Mileage == nil || *v.Mileage <= mileageThresholdKm {
		return nil
	}
	if strings.Contains(foldText(v.Notes), mileageExemptKeyword) {
		return nil
	}
	return []Advisory{{
		Kind:     KindMileageThreshold,
		Message:  fmt.Sprintf("Mileage %d km exceeds %d km: schedule major service (timing belt, fluids)", *v.Mileage, mileageThresholdKm),
		Severity: SeverityWarning,
	}}
}

// serviceLine maps note keywords to a suggested workshop service line.
type serviceLine struct {
	category   string
	keywords   []string
	suggestion string
}

// serviceLines is the fixed suggestion table. Keywords cover the languages
// that show up in real shop notes. Table order is the tie-break; one
// suggestion per category, first match wins.
var serviceLines = []serviceLine{
	{"oil", []string{"oil", "aceite"}, "Oil and filter change"},
	{"brakes", []string{"brake", "pads", "freno", "pastillas"}, "Brake system inspection"},
	{"battery", []string{"battery", "bateria", "wont start", "won't start"}, "Battery check / replacement"},
	{"tires", []string{"tire", "tyre", "wheel", "puncture", "neumatic", "rueda"}, "Tire inspection and pressure adjustment"},
	{"diagnostic", []string{"obd", "dtc", "check engine", "warning light", "diagnos", "testigo"}, "OBD diagnostic scan and report"},
}

// keywordRule scans the notes against the service-line table. Matching is
// case- and accent-insensitive so handwritten notes match regardless of how
// they were typed.
func keywordRule(v Vehicle, now time.Time) []Advisory {
	notes := foldText(v.Notes)
	if notes == "" {
		return nil
	}
	var out []Advisory
	for _, line := range serviceLines {
		if len(out) >= maxSuggestions {
			break
		}
		for _, kw := range line.keywords {
			if strings.Contains(notes, kw) {
				out = append(out, Advisory{
					Kind:     KindKeywordSuggestion,
					Message:  line.suggestion,
					Severity: SeverityInfo,
				})
				break
			}
		}
	}
	return out
}

// foldCase strips diacritics so "batería" matches "bateria".
var foldCase = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldText lowercases and removes diacritics for keyword comparison.
func foldText(s string) string {
	folded, _, err := transform.String(foldCase, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// dayCount formats a day count with the right plural.
func dayCount(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
