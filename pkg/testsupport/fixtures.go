// Package testsupport provides shared fixtures for authoring pipeline tests.
package testsupport

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-invitekit/pkg/catalog"
)

// Template returns a compact wedding template exercising every wizard step.
// Tests mutate nothing on it; copies are cheap because fields are values.
func Template() catalog.TemplateDefinition {
	return catalog.TemplateDefinition{
		Slug:     "garden-party",
		Category: catalog.CategoryWedding,
		Name:     "Garden Party",
		Fields: []catalog.FieldDefinition{
			{Key: "coupleNames", Type: catalog.FieldTypeShortText, Label: "Couple Names", Required: true, Section: catalog.SectionBasic, MaxLength: 120},
			{Key: "eventDate", Type: catalog.FieldTypeDate, Label: "Event Date", Required: true, Section: catalog.SectionBasic},
			{Key: "venueName", Type: catalog.FieldTypeShortText, Label: "Venue Name", Required: true, Section: catalog.SectionVenue},
			{Key: "ourStory", Type: catalog.FieldTypeLongText, Label: "Our Story", Section: catalog.SectionStory, MaxLength: 2000},
			{Key: "galleryImages", Type: catalog.FieldTypeImageSet, Label: "Gallery", Section: catalog.SectionGallery, Max: 6},
			{Key: "daySchedule", Type: catalog.FieldTypeScheduleList, Label: "Schedule", Section: catalog.SectionSchedule},
			{Key: "rsvpDeadline", Type: catalog.FieldTypeDate, Label: "RSVP Deadline", Required: true, Section: catalog.SectionRSVP},
			{Key: "showGuestList", Type: catalog.FieldTypeBoolean, Label: "Show Guest List", Section: catalog.SectionSettings},
		},
		SupportedSections: []catalog.Section{
			catalog.SectionBasic, catalog.SectionVenue, catalog.SectionStory,
			catalog.SectionGallery, catalog.SectionSchedule, catalog.SectionRSVP,
			catalog.SectionSettings,
		},
	}
}

// FilledData returns a data bag that satisfies Template's required fields
// with event dates safely in the future relative to the fixed test clock.
func FilledData() map[string]any {
	return map[string]any{
		"coupleNames":  "Dana & Riley",
		"eventDate":    "2027-06-15",
		"venueName":    "Rosewood Hall",
		"rsvpDeadline": "2027-06-01",
	}
}

// Registry returns a registry holding only the fixture template.
func Registry(t *testing.T) *catalog.Registry {
	t.Helper()

	reg := catalog.NewRegistry()
	if err := reg.Register(Template()); err != nil {
		t.Fatalf("register fixture template: %v", err)
	}
	return reg
}

// Diff fails the test with a readable diff when got differs from want.
func Diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()

	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
