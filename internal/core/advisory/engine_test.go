package advisory

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// fixedNow keeps every test deterministic.
var fixedNow = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func dateOffset(days int) string {
	return fixedNow.AddDate(0, 0, days).Format("2006-01-02")
}

func intPtr(n int) *int { return &n }

func kinds(advisories []Advisory) []Kind {
	out := make([]Kind, len(advisories))
	for i, a := range advisories {
		out[i] = a.Kind
	}
	return out
}

func TestEvaluate_AllClear(t *testing.T) {
	got := Evaluate(Vehicle{}, fixedNow)
	if len(got) != 1 {
		t.Fatalf("expected exactly one advisory, got %d", len(got))
	}
	if got[0].Kind != KindAllClear || got[0].Severity != SeverityInfo {
		t.Errorf("expected all_clear/info, got %+v", got[0])
	}
}

func TestEvaluate_InspectionBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		date     string
		wantKind Kind
		wantSev  Severity
		wantMsg  string
	}{
		{"due at window edge", dateOffset(15), KindInspectionDue, SeverityWarning, "15 days"},
		{"due today", dateOffset(0), KindInspectionDue, SeverityWarning, "0 days"},
		{"expired one day", dateOffset(-1), KindInspectionExpired, SeverityCritical, "1 day overdue"},
		{"expired ten days", dateOffset(-10), KindInspectionExpired, SeverityCritical, "10 days overdue"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Evaluate(Vehicle{NextInspection: c.date}, fixedNow)
			if got[0].Kind != c.wantKind {
				t.Fatalf("expected %s, got %s", c.wantKind, got[0].Kind)
			}
			if got[0].Severity != c.wantSev {
				t.Errorf("expected severity %s, got %s", c.wantSev, got[0].Severity)
			}
			if !strings.Contains(got[0].Message, c.wantMsg) {
				t.Errorf("expected message to carry %q, got %q", c.wantMsg, got[0].Message)
			}
		})
	}
}

func TestEvaluate_InspectionOutsideWindow(t *testing.T) {
	got := Evaluate(Vehicle{NextInspection: dateOffset(16)}, fixedNow)
	if got[0].Kind != KindAllClear {
		t.Errorf("expected all_clear one day past the window, got %s", got[0].Kind)
	}
}

func TestEvaluate_MalformedDateSwallowed(t *testing.T) {
	got := Evaluate(Vehicle{NextInspection: "next tuesday"}, fixedNow)
	if got[0].Kind != KindAllClear {
		t.Errorf("expected malformed date to yield no advisory, got %s", got[0].Kind)
	}
}

func TestEvaluate_MileageBoundary(t *testing.T) {
	got := Evaluate(Vehicle{Mileage: intPtr(150000)}, fixedNow)
	if got[0].Kind != KindAllClear {
		t.Errorf("150000 km must not trigger, got %s", got[0].Kind)
	}

	got = Evaluate(Vehicle{Mileage: intPtr(150001)}, fixedNow)
	if got[0].Kind != KindMileageThreshold || got[0].Severity != SeverityWarning {
		t.Errorf("150001 km must trigger mileage_threshold/warning, got %+v", got[0])
	}
}

func TestEvaluate_MileageExemptKeyword(t *testing.T) {
	v := Vehicle{Mileage: intPtr(200000), Notes: "Timing BELT replaced last visit"}
	for _, a := range Evaluate(v, fixedNow) {
		if a.Kind == KindMileageThreshold {
			t.Errorf("exempt keyword in notes must suppress the mileage rule")
		}
	}
}

func TestEvaluate_KeywordSuggestions(t *testing.T) {
	v := Vehicle{Notes: "customer reports OIL leak, brake pads worn, check engine light on"}
	got := Evaluate(v, fixedNow)

	want := []string{
		"Oil and filter change",
		"Brake system inspection",
		"OBD diagnostic scan and report",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d suggestions, got %d: %v", len(want), len(got), got)
	}
	for i, a := range got {
		if a.Kind != KindKeywordSuggestion || a.Severity != SeverityInfo {
			t.Errorf("suggestion %d: expected keyword_suggestion/info, got %+v", i, a)
		}
		if a.Message != want[i] {
			t.Errorf("suggestion %d: expected %q (table order), got %q", i, want[i], a.Message)
		}
	}
}

func TestEvaluate_KeywordAccentInsensitive(t *testing.T) {
	got := Evaluate(Vehicle{Notes: "cambiar batería"}, fixedNow)
	if got[0].Kind != KindKeywordSuggestion || got[0].Message != "Battery check / replacement" {
		t.Errorf("accented keyword must match, got %+v", got[0])
	}
}

func TestEvaluate_OnePerCategory(t *testing.T) {
	got := Evaluate(Vehicle{Notes: "tire tyre wheel puncture"}, fixedNow)
	if len(got) != 1 {
		t.Errorf("expected one suggestion per category, got %d", len(got))
	}
}

func TestEvaluate_RuleOrder(t *testing.T) {
	v := Vehicle{
		NextInspection: dateOffset(3),
		Mileage:        intPtr(180000),
		Notes:          "oil change requested",
	}
	got := kinds(Evaluate(v, fixedNow))
	want := []Kind{KindInspectionDue, KindMileageThreshold, KindKeywordSuggestion}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected fixed rule order %v, got %v", want, got)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	v := Vehicle{
		NextInspection: dateOffset(5),
		Mileage:        intPtr(151000),
		Notes:          "oil and brakes",
	}
	first := Evaluate(v, fixedNow)
	second := Evaluate(v, fixedNow)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("evaluation must be deterministic:\nfirst:  %v\nsecond: %v", first, second)
	}
}
