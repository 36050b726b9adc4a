package catalog

import (
	"testing"
	"testing/fstest"
)

const catalogDoc = `
templates:
  - slug: harvest-moon
    category: wedding
    name: Harvest Moon
    supportedSections: [basic, rsvp]
    fields:
      - key: coupleNames
        type: short-text
        label: Couple names
        required: true
        section: basic
        maxLength: 120
      - key: eventDate
        type: date
        label: Wedding date
        required: true
        section: basic
      - key: rsvpDeadline
        type: date
        label: RSVP deadline
        section: rsvp
`

func TestLoadYAML_RegistersTemplates(t *testing.T) {
	reg := NewRegistry()
	if err := LoadYAML(reg, []byte(catalogDoc)); err != nil {
		t.Fatalf("load yaml: %v", err)
	}

	def, err := reg.LookupBySlug("harvest-moon")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if def.Category != CategoryWedding {
		t.Fatalf("expected wedding category, got %q", def.Category)
	}
	if len(def.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(def.Fields))
	}

	field, ok := def.Field("coupleNames")
	if !ok {
		t.Fatalf("expected coupleNames field")
	}
	if !field.Required || field.MaxLength != 120 {
		t.Fatalf("field constraints lost in parse: %+v", field)
	}
	if !def.SupportsSection(SectionRSVP) {
		t.Fatalf("expected rsvp in supported sections")
	}
}

func TestLoadYAML_RejectsEmptyDocuments(t *testing.T) {
	reg := NewRegistry()
	if err := LoadYAML(reg, []byte("templates: []")); err == nil {
		t.Fatalf("expected empty document to fail")
	}
	if err := LoadYAML(reg, []byte("{{ not yaml")); err == nil {
		t.Fatalf("expected malformed document to fail")
	}
}

func TestLoadFS_WalksCatalogFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"catalogs/extra.yaml": {Data: []byte(catalogDoc)},
		"catalogs/notes.txt":  {Data: []byte("ignored")},
	}

	reg := NewRegistry()
	if err := LoadFS(reg, fsys); err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if !reg.Has("harvest-moon") {
		t.Fatalf("expected template from catalog file")
	}
}

func TestLoadFS_DuplicateSlugFails(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte(catalogDoc)},
		"b.yaml": {Data: []byte(catalogDoc)},
	}

	reg := NewRegistry()
	if err := LoadFS(reg, fsys); err == nil {
		t.Fatalf("expected duplicate slug across files to fail")
	}
}
