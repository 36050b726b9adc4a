package draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-invitekit/pkg/catalog"
)

// ErrInviteNotFound reports a lookup for an invite the store does not hold.
var ErrInviteNotFound = errors.New("draft: invite not found")

// SlugConflictError reports a publish attempt against a slug another invite
// already owns. Availability is knowable before committing, so this is a
// validation-class error rather than a persistence failure.
type SlugConflictError struct {
	Slug string
}

func (e SlugConflictError) Error() string {
	return fmt.Sprintf("draft: slug %q is already taken", e.Slug)
}

// NewInvite carries the fields required to create an invite record.
type NewInvite struct {
	TemplateSlug     string
	TemplateCategory catalog.Category
	Slug             string
	Data             map[string]any
	Status           Status
}

// InviteUpdate is a partial update; nil members leave the stored value
// untouched.
type InviteUpdate struct {
	Data   map[string]any
	Status *Status
	Slug   *string
}

// Store is the persistence collaborator contract. The authoring pipeline owns
// only this interface; implementations live behind it.
type Store interface {
	GetInvite(ctx context.Context, id string) (InviteDraft, error)
	CreateInvite(ctx context.Context, invite NewInvite) (string, error)
	UpdateInvite(ctx context.Context, id string, update InviteUpdate) (InviteDraft, error)

	// CheckSlugAvailability reports whether candidate is free. excludeID, when
	// non-empty, exempts that invite so re-publishing under its own slug stays
	// available.
	CheckSlugAvailability(ctx context.Context, candidate string, excludeID string) (bool, error)
}
