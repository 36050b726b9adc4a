package draft

import (
	"time"

	"github.com/goliatone/go-invitekit/pkg/catalog"
)

// Status is the publication status of an invite.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// InviteDraft is the mutable authoring subject. Data is the dynamically typed
// bag keyed by field key; its values follow each field's declared type. The
// subsystem never deletes an invite.
type InviteDraft struct {
	ID               string           `json:"id"`
	TemplateSlug     string           `json:"templateSlug"`
	TemplateCategory catalog.Category `json:"templateCategory"`
	Slug             string           `json:"slug,omitempty"`
	Status           Status           `json:"status"`
	Data             map[string]any   `json:"data"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// New starts a fresh draft for the given template. The slug stays empty until
// the host picks one; the ID is assigned by the store on first save.
func New(def catalog.TemplateDefinition) InviteDraft {
	return InviteDraft{
		TemplateSlug:     def.Slug,
		TemplateCategory: def.Category,
		Status:           StatusDraft,
		Data:             make(map[string]any),
	}
}

// CloneData returns a shallow copy of the data bag, the shape handed to the
// decoupled preview pipeline.
func (d InviteDraft) CloneData() map[string]any {
	out := make(map[string]any, len(d.Data))
	for key, value := range d.Data {
		out[key] = value
	}
	return out
}
