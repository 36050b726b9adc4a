package validation

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-invitekit/pkg/catalog"
)

var testNow = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

func stepFields() []catalog.FieldDefinition {
	return []catalog.FieldDefinition{
		{Key: "coupleNames", Type: catalog.FieldTypeShortText, Label: "Couple names", Required: true},
		{Key: "eventDate", Type: catalog.FieldTypeDate, Label: "Wedding date", Required: true},
		{Key: "rsvpDeadline", Type: catalog.FieldTypeDate, Label: "RSVP deadline"},
	}
}

func TestValidateStep_RequiredFields(t *testing.T) {
	errs := ValidateStep(stepFields(), map[string]any{}, testNow)

	want := map[string]string{
		"coupleNames": "Couple names is required",
		"eventDate":   "Wedding date is required",
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateStep_WhitespaceCountsAsEmpty(t *testing.T) {
	data := map[string]any{"coupleNames": "   "}
	errs := ValidateStep(stepFields(), data, testNow)

	if errs["coupleNames"] != "Couple names is required" {
		t.Fatalf("expected whitespace value flagged, got %v", errs)
	}
}

func TestValidateStep_PastDateRejected(t *testing.T) {
	data := map[string]any{
		"coupleNames": "Dana & Riley",
		"eventDate":   "2020-01-01",
	}
	errs := ValidateStep(stepFields(), data, testNow)

	if errs["eventDate"] != "Date must be in the future" {
		t.Fatalf("expected past date flagged, got %v", errs)
	}
}

// "Today" follows the host clock's calendar day, not the UTC day of the
// instant; a host past midnight in UTC+13 must see yesterday's UTC date as
// past even though the absolute instant still falls on that UTC day.
func TestValidateStep_TodayUsesLocalCalendarDay(t *testing.T) {
	plus13 := time.FixedZone("UTC+13", 13*60*60)
	now := time.Date(2026, time.March, 2, 1, 0, 0, 0, plus13)

	data := map[string]any{
		"coupleNames": "Dana & Riley",
		"eventDate":   "2026-03-01",
	}
	errs := ValidateStep(stepFields(), data, now)
	if errs["eventDate"] != "Date must be in the future" {
		t.Fatalf("expected yesterday flagged for an ahead-of-UTC host, got %v", errs)
	}

	data["eventDate"] = "2026-03-02"
	errs = ValidateStep(stepFields(), data, now)
	if _, ok := errs["eventDate"]; ok {
		t.Fatalf("expected the host's current day accepted, got %v", errs)
	}
}

func TestValidateStep_UnparsableDateSkipsFutureCheck(t *testing.T) {
	data := map[string]any{
		"coupleNames": "Dana & Riley",
		"eventDate":   "sometime in June",
	}
	errs := ValidateStep(stepFields(), data, testNow)

	if _, flagged := errs["eventDate"]; flagged {
		t.Fatalf("unparsable date should not be flagged as past: %v", errs)
	}
}

func TestValidateStep_RSVPDeadlineRule(t *testing.T) {
	cases := []struct {
		name     string
		event    string
		deadline string
		wantErr  bool
	}{
		{name: "deadline before event", event: "2026-06-15", deadline: "2026-06-01", wantErr: false},
		{name: "deadline equals event", event: "2026-06-15", deadline: "2026-06-15", wantErr: true},
		{name: "deadline after event", event: "2026-06-15", deadline: "2026-06-20", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := map[string]any{
				"coupleNames":  "Dana & Riley",
				"eventDate":    tc.event,
				"rsvpDeadline": tc.deadline,
			}
			errs := ValidateStep(stepFields(), data, testNow)

			got, flagged := errs["rsvpDeadline"]
			if flagged != tc.wantErr {
				t.Fatalf("flagged=%v, want %v (errs=%v)", flagged, tc.wantErr, errs)
			}
			if tc.wantErr && got != "RSVP deadline must be before the event date" {
				t.Fatalf("unexpected message %q", got)
			}
		})
	}
}

func TestValidateStep_DeadlineRuleNeedsBothValues(t *testing.T) {
	data := map[string]any{
		"coupleNames": "Dana & Riley",
		"eventDate":   "2026-06-15",
	}
	errs := ValidateStep(stepFields(), data, testNow)

	if _, flagged := errs["rsvpDeadline"]; flagged {
		t.Fatalf("deadline rule should not fire without a deadline: %v", errs)
	}
}

func TestValidateStep_FirstDateFieldAnchorsDeadlineRule(t *testing.T) {
	fields := []catalog.FieldDefinition{
		{Key: "partyDate", Type: catalog.FieldTypeDate, Label: "Party date"},
		{Key: "backupDate", Type: catalog.FieldTypeDate, Label: "Backup date"},
		{Key: "rsvpDeadline", Type: catalog.FieldTypeDate, Label: "RSVP deadline"},
	}
	data := map[string]any{
		"partyDate":    "2026-06-15",
		"backupDate":   "2026-08-01",
		"rsvpDeadline": "2026-06-20",
	}

	errs := ValidateStep(fields, data, testNow)
	if errs["rsvpDeadline"] == "" {
		t.Fatalf("expected deadline compared against the first date field: %v", errs)
	}
}

func TestStateApply_ClearsFixedKeysWithinScope(t *testing.T) {
	state := NewState()
	keys := []string{"coupleNames", "eventDate"}

	state.Apply(keys, map[string]string{"coupleNames": "Couple names is required"})
	if msg, ok := state.Error("coupleNames"); !ok || msg == "" {
		t.Fatalf("expected error recorded")
	}

	// The follow-up pass fixes the field; the scoped key clears.
	state.Apply(keys, map[string]string{})
	if _, ok := state.Error("coupleNames"); ok {
		t.Fatalf("expected error cleared on clean pass")
	}
	if state.HasErrors() {
		t.Fatalf("expected no residual errors")
	}
}

func TestStateTouch(t *testing.T) {
	state := NewState()
	if state.IsTouched("eventDate") {
		t.Fatalf("fresh state should have no touched fields")
	}
	state.TouchAll([]string{"eventDate"})
	if !state.IsTouched("eventDate") {
		t.Fatalf("expected field touched")
	}
}
