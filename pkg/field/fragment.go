package field

import (
	"github.com/goliatone/go-invitekit/pkg/catalog"
)

// DefaultImageSetMax bounds image-set fields whose definition omits Max.
const DefaultImageSetMax = 10

// Control names the editor affordance a fragment asks the UI to mount.
type Control string

const (
	ControlText     Control = "text"
	ControlTextArea Control = "textarea"
	ControlDate     Control = "date"
	ControlTime     Control = "time"
	ControlNumber   Control = "number"
	ControlURL      Control = "url"
	ControlToggle   Control = "toggle"
	ControlImage    Control = "image"
	ControlImageSet Control = "image-set"
	ControlSchedule Control = "schedule"
)

// Fragment is the editor intent produced for one field: which control to
// mount, the normalized current value, and the constraints worth displaying.
type Fragment struct {
	Field   catalog.FieldDefinition
	Control Control

	// Exactly one of the value slots is populated, matching Control.
	Text     string
	Bool     bool
	Number   float64
	Images   []string
	Schedule []ScheduleEntry

	// HasNumber distinguishes an explicit zero from an unset number.
	HasNumber bool

	MaxLength int
	Max       int
}

// Build dispatches on the field type and returns the editor fragment for the
// current value in data. Unknown field types return ok=false so a newer
// catalog never crashes an older authoring session; callers skip the field.
func Build(def catalog.FieldDefinition, data map[string]any) (Fragment, bool) {
	frag := Fragment{Field: def, MaxLength: def.MaxLength}

	switch def.Type {
	case catalog.FieldTypeShortText:
		frag.Control = ControlText
		frag.Text = String(data, def.Key)
	case catalog.FieldTypeLongText:
		frag.Control = ControlTextArea
		frag.Text = String(data, def.Key)
	case catalog.FieldTypeDate:
		frag.Control = ControlDate
		frag.Text = String(data, def.Key)
	case catalog.FieldTypeTime:
		frag.Control = ControlTime
		frag.Text = String(data, def.Key)
	case catalog.FieldTypeNumber:
		frag.Control = ControlNumber
		frag.Number, frag.HasNumber = Number(data, def.Key)
	case catalog.FieldTypeURL:
		frag.Control = ControlURL
		frag.Text = String(data, def.Key)
	case catalog.FieldTypeBoolean:
		frag.Control = ControlToggle
		frag.Bool = Bool(data, def.Key)
	case catalog.FieldTypeSingleImage:
		frag.Control = ControlImage
		frag.Text = String(data, def.Key)
	case catalog.FieldTypeImageSet:
		frag.Control = ControlImageSet
		frag.Images = Images(data, def.Key)
		frag.Max = imageSetMax(def)
	case catalog.FieldTypeScheduleList:
		frag.Control = ControlSchedule
		frag.Schedule = Schedule(data, def.Key)
	default:
		return Fragment{}, false
	}

	return frag, true
}

func imageSetMax(def catalog.FieldDefinition) int {
	if def.Max > 0 {
		return def.Max
	}
	return DefaultImageSetMax
}
