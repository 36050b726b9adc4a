package validation

import (
	"strings"

	"github.com/goliatone/go-invitekit/pkg/catalog"
	"github.com/goliatone/go-invitekit/pkg/field"
)

// PublishReport is the outcome of the stricter full-schema pass that gates
// publishing.
type PublishReport struct {
	// MissingLabels lists the labels of required fields left empty, in field
	// definition order.
	MissingLabels []string

	// SlugMissing is set when no public slug was chosen. It blocks publish
	// independently of field validation.
	SlugMissing bool
}

// Ok reports whether publish may proceed.
func (r PublishReport) Ok() bool {
	return len(r.MissingLabels) == 0 && !r.SlugMissing
}

// Message renders the report into a single user-facing line. Empty when the
// report is clean.
func (r PublishReport) Message() string {
	if r.Ok() {
		return ""
	}
	if len(r.MissingLabels) > 0 {
		return "Please fill in: " + strings.Join(r.MissingLabels, ", ")
	}
	return "Choose a URL for your invite before publishing"
}

// ValidatePublish scans the entire template's fields, not just the current
// step, for required fields with empty values, and checks that a slug was
// chosen.
func ValidatePublish(def catalog.TemplateDefinition, data map[string]any, slug string) PublishReport {
	var report PublishReport
	for _, fieldDef := range def.Fields {
		if fieldDef.Required && field.IsEmpty(data, fieldDef.Key) {
			report.MissingLabels = append(report.MissingLabels, fieldDef.Label)
		}
	}
	report.SlugMissing = strings.TrimSpace(slug) == ""
	return report
}
