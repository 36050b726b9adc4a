package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-invitekit/pkg/catalog"
	"github.com/goliatone/go-invitekit/pkg/field"
)

const (
	// DateLayout is the wire format for date field values.
	DateLayout = "2006-01-02"

	rsvpDeadlineKey = "rsvpDeadline"

	msgDateInFuture  = "Date must be in the future"
	msgRSVPTooLate   = "RSVP deadline must be before the event date"
	msgRequiredGlyph = "%s is required"
)

// ValidateStep runs the step-scoped pass over the supplied fields: required
// presence, future-dated dates, and the RSVP deadline cross-field rule. The
// pass is pure and synchronous given (fields, data, now); it knows nothing
// about network state.
func ValidateStep(fields []catalog.FieldDefinition, data map[string]any, now time.Time) map[string]string {
	errs := make(map[string]string)
	// "Today" is the host's calendar day, compared against the UTC-midnight
	// parse of date values.
	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	for _, def := range fields {
		if def.Required && field.IsEmpty(data, def.Key) {
			errs[def.Key] = fmt.Sprintf(msgRequiredGlyph, def.Label)
			continue
		}
		if def.Type == catalog.FieldTypeDate {
			value := field.String(data, def.Key)
			if value == "" {
				continue
			}
			parsed, err := time.Parse(DateLayout, value)
			if err != nil {
				continue
			}
			if parsed.Before(today) {
				errs[def.Key] = msgDateInFuture
			}
		}
	}

	applyDeadlineRule(fields, data, errs)

	return errs
}

// applyDeadlineRule attaches an error to rsvpDeadline when the step carries
// both an event date and a deadline and the deadline does not precede it. The
// event date is the first field in definition order whose key contains "Date"
// other than rsvpDeadline; later date-like fields in the same step are
// ignored.
func applyDeadlineRule(fields []catalog.FieldDefinition, data map[string]any, errs map[string]string) {
	var eventKey, deadlineKey string
	for _, def := range fields {
		switch {
		case def.Key == rsvpDeadlineKey:
			deadlineKey = def.Key
		case eventKey == "" && strings.Contains(def.Key, "Date"):
			eventKey = def.Key
		}
	}
	if eventKey == "" || deadlineKey == "" {
		return
	}

	eventValue := field.String(data, eventKey)
	deadlineValue := field.String(data, deadlineKey)
	if eventValue == "" || deadlineValue == "" {
		return
	}

	eventDate, err := time.Parse(DateLayout, eventValue)
	if err != nil {
		return
	}
	deadline, err := time.Parse(DateLayout, deadlineValue)
	if err != nil {
		return
	}

	if !deadline.Before(eventDate) {
		errs[deadlineKey] = msgRSVPTooLate
	}
}

// Keys returns the field keys covered by a step pass, the scope State.Apply
// expects.
func Keys(fields []catalog.FieldDefinition) []string {
	keys := make([]string, 0, len(fields))
	for _, def := range fields {
		keys = append(keys, def.Key)
	}
	return keys
}
