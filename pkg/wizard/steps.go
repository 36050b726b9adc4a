package wizard

import "github.com/goliatone/go-invitekit/pkg/catalog"

// Step is one page of the authoring wizard. The terminal review step carries
// no sections; it hosts the live preview and the slug picker instead.
type Step struct {
	Key      string
	Title    string
	Sections []catalog.Section
}

// Steps returns the fixed wizard step table. Every template shares the same
// four steps; templates simply leave unused sections empty.
func Steps() []Step {
	return []Step{
		{Key: "basic", Title: "Basics", Sections: []catalog.Section{catalog.SectionBasic}},
		{Key: "venue", Title: "Venue & Story", Sections: []catalog.Section{catalog.SectionVenue, catalog.SectionStory}},
		{Key: "media", Title: "Media & RSVP", Sections: []catalog.Section{
			catalog.SectionGallery, catalog.SectionSchedule, catalog.SectionRSVP, catalog.SectionSettings,
		}},
		{Key: "review", Title: "Review & Publish"},
	}
}

// StepCount returns the number of wizard steps.
func StepCount() int {
	return len(Steps())
}

// Plan partitions a template's fields across the wizard steps, preserving
// field-definition order inside each step.
type Plan struct {
	steps    []Step
	fields   [][]catalog.FieldDefinition
	unrouted []catalog.FieldDefinition
}

// NewPlan builds the step plan for a template definition.
func NewPlan(def catalog.TemplateDefinition) Plan {
	steps := Steps()
	plan := Plan{
		steps:  steps,
		fields: make([][]catalog.FieldDefinition, len(steps)),
	}

	index := make(map[catalog.Section]int, 8)
	for i, step := range steps {
		for _, section := range step.Sections {
			index[section] = i
		}
	}

	for _, fieldDef := range def.Fields {
		i, ok := index[fieldDef.Section]
		if !ok {
			// A section no step claims is a latent catalog bug, not a
			// runtime error. Surface it through Unrouted.
			plan.unrouted = append(plan.unrouted, fieldDef)
			continue
		}
		plan.fields[i] = append(plan.fields[i], fieldDef)
	}

	return plan
}

// Step returns the step descriptor at index.
func (p Plan) Step(index int) (Step, bool) {
	if index < 0 || index >= len(p.steps) {
		return Step{}, false
	}
	return p.steps[index], true
}

// StepFields returns the fields assigned to the step at index, in definition
// order. The review step always returns nil.
func (p Plan) StepFields(index int) []catalog.FieldDefinition {
	if index < 0 || index >= len(p.fields) {
		return nil
	}
	return p.fields[index]
}

// AllFields returns every routed field in step order.
func (p Plan) AllFields() []catalog.FieldDefinition {
	var out []catalog.FieldDefinition
	for _, fields := range p.fields {
		out = append(out, fields...)
	}
	return out
}

// Unrouted returns fields whose section no wizard step claims.
func (p Plan) Unrouted() []catalog.FieldDefinition {
	return p.unrouted
}
