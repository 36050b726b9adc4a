package catalog

// Built-in catalog entries. Definitions live in code so the registry stays
// resolvable without I/O; YAML documents can extend a registry at wiring time
// via LoadYAML.

// Builtin returns a registry preloaded with the stock template catalog.
func Builtin() *Registry {
	reg := NewRegistry()
	for _, def := range builtinTemplates() {
		reg.MustRegister(def)
	}
	return reg
}

func builtinTemplates() []TemplateDefinition {
	return []TemplateDefinition{
		{
			Slug:        "royal-gold",
			Category:    CategoryWedding,
			Name:        "Royal Gold",
			Description: "Gilded serif layout with a full story and gallery spread.",
			Premium:     true,
			PriceCents:  2900,
			SupportedSections: []Section{
				SectionBasic, SectionVenue, SectionStory, SectionGallery,
				SectionSchedule, SectionRSVP, SectionSettings,
			},
			Fields: []FieldDefinition{
				{Key: "coupleNames", Type: FieldTypeShortText, Label: "Couple names", Required: true, Section: SectionBasic, MaxLength: 120},
				{Key: "eventDate", Type: FieldTypeDate, Label: "Wedding date", Required: true, Section: SectionBasic},
				{Key: "eventTime", Type: FieldTypeTime, Label: "Ceremony time", Section: SectionBasic},
				{Key: "heroImage", Type: FieldTypeSingleImage, Label: "Cover photo", Section: SectionBasic},
				{Key: "venueName", Type: FieldTypeShortText, Label: "Venue name", Required: true, Section: SectionVenue, MaxLength: 160},
				{Key: "venueAddress", Type: FieldTypeLongText, Label: "Venue address", Section: SectionVenue, MaxLength: 400},
				{Key: "venueMapUrl", Type: FieldTypeURL, Label: "Map link", Section: SectionVenue, Placeholder: "https://maps.example.com/..."},
				{Key: "ourStory", Type: FieldTypeLongText, Label: "Our story", Section: SectionStory, MaxLength: 2000},
				{Key: "galleryImages", Type: FieldTypeImageSet, Label: "Gallery", Section: SectionGallery, Max: 8},
				{Key: "daySchedule", Type: FieldTypeScheduleList, Label: "Day schedule", Section: SectionSchedule},
				{Key: "rsvpDeadline", Type: FieldTypeDate, Label: "RSVP deadline", Section: SectionRSVP},
				{Key: "maxGuests", Type: FieldTypeNumber, Label: "Guests per invite", Section: SectionRSVP},
				{Key: "showGuestList", Type: FieldTypeBoolean, Label: "Show guest list", Section: SectionSettings},
			},
		},
		{
			Slug:        "eternal-bloom",
			Category:    CategoryWedding,
			Name:        "Eternal Bloom",
			Description: "Floral watercolor layout with a lighter field set.",
			SupportedSections: []Section{
				SectionBasic, SectionVenue, SectionGallery, SectionRSVP, SectionSettings,
			},
			Fields: []FieldDefinition{
				{Key: "coupleNames", Type: FieldTypeShortText, Label: "Couple names", Required: true, Section: SectionBasic, MaxLength: 120},
				{Key: "eventDate", Type: FieldTypeDate, Label: "Wedding date", Required: true, Section: SectionBasic},
				{Key: "greeting", Type: FieldTypeLongText, Label: "Greeting", Section: SectionBasic, MaxLength: 500},
				{Key: "venueName", Type: FieldTypeShortText, Label: "Venue name", Required: true, Section: SectionVenue, MaxLength: 160},
				{Key: "venueMapUrl", Type: FieldTypeURL, Label: "Map link", Section: SectionVenue},
				{Key: "galleryImages", Type: FieldTypeImageSet, Label: "Gallery", Section: SectionGallery, Max: 6},
				{Key: "rsvpDeadline", Type: FieldTypeDate, Label: "RSVP deadline", Section: SectionRSVP},
				{Key: "showGuestList", Type: FieldTypeBoolean, Label: "Show guest list", Section: SectionSettings},
			},
		},
		{
			Slug:        "confetti-pop",
			Category:    CategoryBirthday,
			Name:        "Confetti Pop",
			Description: "Bright single-page birthday card.",
			SupportedSections: []Section{
				SectionBasic, SectionVenue, SectionSchedule, SectionRSVP, SectionSettings,
			},
			Fields: []FieldDefinition{
				{Key: "celebrantName", Type: FieldTypeShortText, Label: "Birthday person", Required: true, Section: SectionBasic, MaxLength: 80},
				{Key: "age", Type: FieldTypeNumber, Label: "Turning age", Section: SectionBasic},
				{Key: "partyDate", Type: FieldTypeDate, Label: "Party date", Required: true, Section: SectionBasic},
				{Key: "partyTime", Type: FieldTypeTime, Label: "Party time", Section: SectionBasic},
				{Key: "heroImage", Type: FieldTypeSingleImage, Label: "Photo", Section: SectionBasic},
				{Key: "venueName", Type: FieldTypeShortText, Label: "Where", Required: true, Section: SectionVenue, MaxLength: 160},
				{Key: "venueMapUrl", Type: FieldTypeURL, Label: "Map link", Section: SectionVenue},
				{Key: "partySchedule", Type: FieldTypeScheduleList, Label: "Plan", Section: SectionSchedule},
				{Key: "rsvpDeadline", Type: FieldTypeDate, Label: "RSVP deadline", Section: SectionRSVP},
				{Key: "allowPlusOnes", Type: FieldTypeBoolean, Label: "Allow plus-ones", Section: SectionSettings},
			},
		},
		{
			Slug:        "little-star",
			Category:    CategoryBabyShower,
			Name:        "Little Star",
			Description: "Soft pastel baby shower page.",
			SupportedSections: []Section{
				SectionBasic, SectionVenue, SectionGallery, SectionRSVP,
			},
			Fields: []FieldDefinition{
				{Key: "parentNames", Type: FieldTypeShortText, Label: "Parents-to-be", Required: true, Section: SectionBasic, MaxLength: 120},
				{Key: "showerDate", Type: FieldTypeDate, Label: "Shower date", Required: true, Section: SectionBasic},
				{Key: "note", Type: FieldTypeLongText, Label: "Welcome note", Section: SectionBasic, MaxLength: 600},
				{Key: "venueName", Type: FieldTypeShortText, Label: "Venue", Required: true, Section: SectionVenue, MaxLength: 160},
				{Key: "galleryImages", Type: FieldTypeImageSet, Label: "Photos", Section: SectionGallery, Max: 4},
				{Key: "rsvpDeadline", Type: FieldTypeDate, Label: "RSVP deadline", Section: SectionRSVP},
			},
		},
	}
}
