package catalog

import "testing"

func TestBuiltin_TemplatesAreWellFormed(t *testing.T) {
	reg := Builtin()
	if reg.Len() == 0 {
		t.Fatalf("expected builtin templates")
	}

	for _, slug := range reg.Slugs() {
		def, err := reg.LookupBySlug(slug)
		if err != nil {
			t.Fatalf("lookup %q: %v", slug, err)
		}

		t.Run(slug, func(t *testing.T) {
			seen := make(map[string]struct{}, len(def.Fields))
			for _, field := range def.Fields {
				if _, dup := seen[field.Key]; dup {
					t.Fatalf("duplicate field key %q", field.Key)
				}
				seen[field.Key] = struct{}{}

				if !field.Type.Known() {
					t.Fatalf("field %q has unknown type %q", field.Key, field.Type)
				}
				if field.Label == "" {
					t.Fatalf("field %q has no label", field.Key)
				}
				if !def.SupportsSection(field.Section) {
					t.Fatalf("field %q routed to unsupported section %q", field.Key, field.Section)
				}
			}
		})
	}
}

func TestBuiltin_CoversEveryFieldType(t *testing.T) {
	reg := Builtin()

	seen := make(map[FieldType]bool)
	for _, slug := range reg.Slugs() {
		def, err := reg.LookupBySlug(slug)
		if err != nil {
			t.Fatalf("lookup %q: %v", slug, err)
		}
		for _, field := range def.Fields {
			seen[field.Type] = true
		}
	}

	for _, ft := range []FieldType{
		FieldTypeShortText, FieldTypeLongText, FieldTypeDate, FieldTypeTime,
		FieldTypeNumber, FieldTypeURL, FieldTypeBoolean, FieldTypeSingleImage,
		FieldTypeImageSet, FieldTypeScheduleList,
	} {
		if !seen[ft] {
			t.Fatalf("no builtin template exercises field type %q", ft)
		}
	}
}
