package field

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-invitekit/pkg/catalog"
)

var galleryDef = catalog.FieldDefinition{
	Key:  "galleryImages",
	Type: catalog.FieldTypeImageSet,
	Max:  3,
}

var scheduleDef = catalog.FieldDefinition{
	Key:  "daySchedule",
	Type: catalog.FieldTypeScheduleList,
}

func TestAppendImage_StopsAtTheBound(t *testing.T) {
	data := map[string]any{}

	for _, ref := range []string{"a", "b", "c", "overflow"} {
		AppendImage(data, galleryDef, ref)
	}

	got := Images(data, galleryDef.Key)
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("images mismatch (-want +got):\n%s", diff)
	}
}

func TestClampImages_BoundsBulkWrites(t *testing.T) {
	got := ClampImages(galleryDef, []string{"a", "", "b", "c", "d"})
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("images mismatch (-want +got):\n%s", diff)
	}

	if got := ClampImages(galleryDef, nil); len(got) != 0 {
		t.Fatalf("ClampImages(nil) = %v, want empty", got)
	}
}

func TestRemoveImage_ReindexesRemainder(t *testing.T) {
	data := map[string]any{"galleryImages": []string{"a", "b", "c"}}

	RemoveImage(data, galleryDef, 1)
	if diff := cmp.Diff([]string{"a", "c"}, Images(data, galleryDef.Key)); diff != "" {
		t.Fatalf("images mismatch (-want +got):\n%s", diff)
	}

	// Out-of-range indexes are ignored.
	RemoveImage(data, galleryDef, 9)
	RemoveImage(data, galleryDef, -1)
	if got := Images(data, galleryDef.Key); len(got) != 2 {
		t.Fatalf("unexpected removal: %v", got)
	}
}

func TestSetImage_EmptyReferenceClears(t *testing.T) {
	def := catalog.FieldDefinition{Key: "heroImage", Type: catalog.FieldTypeSingleImage}
	data := map[string]any{}

	SetImage(data, def, "blob:one")
	if String(data, "heroImage") != "blob:one" {
		t.Fatalf("expected reference stored")
	}
	SetImage(data, def, "blob:two")
	if String(data, "heroImage") != "blob:two" {
		t.Fatalf("expected replacement to overwrite")
	}
	SetImage(data, def, "")
	if _, present := data["heroImage"]; present {
		t.Fatalf("expected empty reference to clear the field")
	}
}

func TestScheduleEditors(t *testing.T) {
	data := map[string]any{}

	AddScheduleEntry(data, scheduleDef, ScheduleEntry{Time: "15:00", Title: "Ceremony"})
	AddScheduleEntry(data, scheduleDef, ScheduleEntry{Time: "18:00", Title: "Dinner"})
	UpdateScheduleEntry(data, scheduleDef, 1, ScheduleEntry{Time: "18:30", Title: "Dinner"})
	RemoveScheduleEntry(data, scheduleDef, 0)

	want := []ScheduleEntry{{Time: "18:30", Title: "Dinner"}}
	if diff := cmp.Diff(want, Schedule(data, scheduleDef.Key)); diff != "" {
		t.Fatalf("schedule mismatch (-want +got):\n%s", diff)
	}
}

func TestSchedule_CoercesDecodedEntries(t *testing.T) {
	data := map[string]any{
		"daySchedule": []any{
			map[string]any{"time": "15:00", "title": "Ceremony", "description": "Main hall"},
			"not-an-entry",
		},
	}

	got := Schedule(data, "daySchedule")
	want := []ScheduleEntry{{Time: "15:00", Title: "Ceremony", Description: "Main hall"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("schedule mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitizeRich_StripsScriptsKeepsFormatting(t *testing.T) {
	in := `<p>We <b>met</b> at a bus stop.<script>alert("x")</script></p>`
	out := SanitizeRich(in)

	if strings.Contains(out, "script") || strings.Contains(out, "alert") {
		t.Fatalf("script survived sanitization: %q", out)
	}
	if !strings.Contains(out, "<b>met</b>") {
		t.Fatalf("formatting lost: %q", out)
	}
}
