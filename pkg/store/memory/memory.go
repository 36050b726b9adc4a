// Package memory provides the in-process draft.Store used by tests, the CLI
// default, and examples.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-invitekit/pkg/draft"
)

// Store is a mutex-guarded in-memory invite store.
type Store struct {
	mu      sync.RWMutex
	invites map[string]draft.InviteDraft
	now     func() time.Time
}

var _ draft.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock injects a deterministic clock for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates an empty store.
func New(options ...Option) *Store {
	s := &Store{
		invites: make(map[string]draft.InviteDraft),
		now:     time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// GetInvite returns the invite under id.
func (s *Store) GetInvite(_ context.Context, id string) (draft.InviteDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invite, ok := s.invites[id]
	if !ok {
		return draft.InviteDraft{}, draft.ErrInviteNotFound
	}
	return cloneInvite(invite), nil
}

// CreateInvite stores a new invite and returns its generated id.
func (s *Store) CreateInvite(_ context.Context, invite draft.NewInvite) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := invite.Status
	if status == "" {
		status = draft.StatusDraft
	}

	now := s.now()
	id := uuid.NewString()
	s.invites[id] = draft.InviteDraft{
		ID:               id,
		TemplateSlug:     invite.TemplateSlug,
		TemplateCategory: invite.TemplateCategory,
		Slug:             invite.Slug,
		Status:           status,
		Data:             cloneBag(invite.Data),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return id, nil
}

// UpdateInvite applies a partial update and returns the stored invite.
func (s *Store) UpdateInvite(_ context.Context, id string, update draft.InviteUpdate) (draft.InviteDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invite, ok := s.invites[id]
	if !ok {
		return draft.InviteDraft{}, draft.ErrInviteNotFound
	}

	if update.Data != nil {
		invite.Data = cloneBag(update.Data)
	}
	if update.Status != nil {
		invite.Status = *update.Status
	}
	if update.Slug != nil {
		invite.Slug = *update.Slug
	}
	invite.UpdatedAt = s.now()

	s.invites[id] = invite
	return cloneInvite(invite), nil
}

// CheckSlugAvailability scans stored invites for a slug owner other than
// excludeID.
func (s *Store) CheckSlugAvailability(_ context.Context, candidate string, excludeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if candidate == "" {
		return false, nil
	}
	for id, invite := range s.invites {
		if invite.Slug == candidate && id != excludeID {
			return false, nil
		}
	}
	return true, nil
}

// FindBySlug returns the published invite under slug, the lookup the public
// page serves.
func (s *Store) FindBySlug(_ context.Context, slug string) (draft.InviteDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, invite := range s.invites {
		if invite.Slug == slug && invite.Status == draft.StatusPublished {
			return cloneInvite(invite), nil
		}
	}
	return draft.InviteDraft{}, draft.ErrInviteNotFound
}

// Len reports the number of stored invites.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.invites)
}

func cloneInvite(invite draft.InviteDraft) draft.InviteDraft {
	invite.Data = cloneBag(invite.Data)
	return invite
}

func cloneBag(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for key, value := range data {
		out[key] = value
	}
	return out
}
