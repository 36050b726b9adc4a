package catalog

// FieldType enumerates the editor kinds a template field can declare.
type FieldType string

const (
	FieldTypeShortText    FieldType = "short-text"
	FieldTypeLongText     FieldType = "long-text"
	FieldTypeDate         FieldType = "date"
	FieldTypeTime         FieldType = "time"
	FieldTypeNumber       FieldType = "number"
	FieldTypeURL          FieldType = "url"
	FieldTypeBoolean      FieldType = "boolean"
	FieldTypeSingleImage  FieldType = "single-image"
	FieldTypeImageSet     FieldType = "image-set"
	FieldTypeScheduleList FieldType = "schedule-list"
)

// Known reports whether the type is part of the closed editor set. Unknown
// types are skipped by the field engine rather than rejected, so a newer
// catalog can carry types an older authoring build does not understand.
func (t FieldType) Known() bool {
	switch t {
	case FieldTypeShortText, FieldTypeLongText, FieldTypeDate, FieldTypeTime,
		FieldTypeNumber, FieldTypeURL, FieldTypeBoolean, FieldTypeSingleImage,
		FieldTypeImageSet, FieldTypeScheduleList:
		return true
	}
	return false
}

// Category groups templates by occasion.
type Category string

const (
	CategoryWedding    Category = "wedding"
	CategoryBirthday   Category = "birthday"
	CategoryBabyShower Category = "baby-shower"
	CategoryCorporate  Category = "corporate"
)

// Section is the logical grouping label that places a field into a wizard
// step.
type Section string

const (
	SectionBasic    Section = "basic"
	SectionVenue    Section = "venue"
	SectionStory    Section = "story"
	SectionGallery  Section = "gallery"
	SectionSchedule Section = "schedule"
	SectionRSVP     Section = "rsvp"
	SectionSettings Section = "settings"
)

// Sections returns every section in wizard presentation order.
func Sections() []Section {
	return []Section{
		SectionBasic, SectionVenue, SectionStory, SectionGallery,
		SectionSchedule, SectionRSVP, SectionSettings,
	}
}

// FieldDefinition describes one editable property of an invitation. Instances
// are owned by their TemplateDefinition and are read-only during authoring.
type FieldDefinition struct {
	Key         string    `json:"key" yaml:"key"`
	Type        FieldType `json:"type" yaml:"type"`
	Label       string    `json:"label" yaml:"label"`
	Required    bool      `json:"required" yaml:"required"`
	Section     Section   `json:"section" yaml:"section"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`

	// MaxLength bounds short-text and long-text values. Zero means unbounded.
	MaxLength int `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`

	// Max bounds image-set entries. Zero falls back to the engine default.
	Max int `json:"max,omitempty" yaml:"max,omitempty"`
}

// TemplateDefinition is an immutable, registry-owned catalog entry. The slug
// is the unique lookup key; Fields preserve authoring order.
type TemplateDefinition struct {
	Slug              string            `json:"slug" yaml:"slug"`
	Category          Category          `json:"category" yaml:"category"`
	Name              string            `json:"name" yaml:"name"`
	Description       string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields            []FieldDefinition `json:"fields" yaml:"fields"`
	SupportedSections []Section         `json:"supportedSections,omitempty" yaml:"supportedSections,omitempty"`
	Premium           bool              `json:"premium,omitempty" yaml:"premium,omitempty"`
	PriceCents        int               `json:"priceCents,omitempty" yaml:"priceCents,omitempty"`
}

// Field returns the definition for key, preserving the lookup-by-value
// convention renderers rely on.
func (d TemplateDefinition) Field(key string) (FieldDefinition, bool) {
	for _, field := range d.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// SupportsSection reports whether the template declared the section.
func (d TemplateDefinition) SupportsSection(section Section) bool {
	for _, s := range d.SupportedSections {
		if s == section {
			return true
		}
	}
	return false
}
