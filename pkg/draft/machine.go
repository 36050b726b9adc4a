package draft

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// State names a node of the authoring state machine.
type State string

const (
	// StateEditing covers every wizard step, including review.
	StateEditing State = "editing"
	// StateSaving is an in-flight draft save. Status never changes here.
	StateSaving State = "saving"
	// StatePublishPending means publish validation passed and the host has
	// been asked to confirm.
	StatePublishPending State = "publish-pending"
	// StateConfirming is the explicit confirmation prompt; publishing feels
	// irreversible enough to warrant one.
	StateConfirming State = "confirming"
	// StatePublishing is the in-flight publish persistence call.
	StatePublishing State = "publishing"
	// StatePublished is the terminal state for re-publishing an already
	// published invite.
	StatePublished State = "published"
	// StatePublishedNew is the terminal state for a first publish; callers
	// redirect to a success destination.
	StatePublishedNew State = "published-new"
)

// Event names a state machine input.
type Event string

const (
	EventSaveRequested    Event = "save-requested"
	EventSaveFinished     Event = "save-finished"
	EventSaveFailed       Event = "save-failed"
	EventPublishRequested Event = "publish-requested"
	EventConfirmAsked     Event = "confirm-asked"
	EventConfirmed        Event = "confirmed"
	EventCancelled        Event = "cancelled"
	EventPublishSucceeded Event = "publish-succeeded"
	EventPublishCreated   Event = "publish-created"
	EventPublishFailed    Event = "publish-failed"
)

// transitions is the pure transition table. Anything absent is an illegal
// input for that state.
var transitions = map[State]map[Event]State{
	StateEditing: {
		EventSaveRequested:    StateSaving,
		EventPublishRequested: StatePublishPending,
	},
	StateSaving: {
		EventSaveFinished: StateEditing,
		EventSaveFailed:   StateEditing,
	},
	StatePublishPending: {
		EventConfirmAsked: StateConfirming,
		EventCancelled:    StateEditing,
	},
	StateConfirming: {
		EventConfirmed: StatePublishing,
		EventCancelled: StateEditing,
	},
	StatePublishing: {
		EventPublishSucceeded: StatePublished,
		EventPublishCreated:   StatePublishedNew,
		EventPublishFailed:    StateEditing,
	},
}

// Next resolves the pure transition for (state, event). ok is false for
// inputs the table does not permit.
func Next(state State, event Event) (State, bool) {
	row, ok := transitions[state]
	if !ok {
		return state, false
	}
	next, ok := row[event]
	if !ok {
		return state, false
	}
	return next, true
}

// Terminal reports whether a state ends the authoring flow.
func Terminal(state State) bool {
	return state == StatePublished || state == StatePublishedNew
}

// Machine drives the draft/publish lifecycle against a Store. All persistence
// effects run between transitions; a failing call always lands the machine
// back in StateEditing with the draft's persisted fields untouched.
type Machine struct {
	store Store
	log   *zap.Logger
	state State
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithLogger injects a structured logger. The default is a nop logger so
// library callers stay silent.
func WithLogger(log *zap.Logger) MachineOption {
	return func(m *Machine) {
		if log != nil {
			m.log = log
		}
	}
}

// NewMachine constructs a machine in StateEditing.
func NewMachine(store Store, options ...MachineOption) (*Machine, error) {
	if store == nil {
		return nil, fmt.Errorf("draft: store is required")
	}
	m := &Machine{
		store: store,
		log:   zap.NewNop(),
		state: StateEditing,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m, nil
}

// State returns the current machine state.
func (m *Machine) State() State {
	return m.state
}

func (m *Machine) fire(event Event) error {
	next, ok := Next(m.state, event)
	if !ok {
		return fmt.Errorf("draft: event %q not permitted in state %q", event, m.state)
	}
	m.log.Debug("state transition",
		zap.String("from", string(m.state)),
		zap.String("event", string(event)),
		zap.String("to", string(next)),
	)
	m.state = next
	return nil
}

// SaveDraft persists the draft's data without touching its status. It is
// idempotent and may run from any step; validation never gates it. A fresh
// draft (no ID yet) is created in draft status, otherwise only data is
// updated. On failure the machine returns to editing and the draft keeps its
// pre-call fields.
func (m *Machine) SaveDraft(ctx context.Context, d *InviteDraft) error {
	if d == nil {
		return fmt.Errorf("draft: draft is required")
	}
	if err := m.fire(EventSaveRequested); err != nil {
		return err
	}

	if d.ID == "" {
		id, err := m.store.CreateInvite(ctx, NewInvite{
			TemplateSlug:     d.TemplateSlug,
			TemplateCategory: d.TemplateCategory,
			Slug:             d.Slug,
			Data:             d.CloneData(),
			Status:           StatusDraft,
		})
		if err != nil {
			_ = m.fire(EventSaveFailed)
			m.log.Warn("draft save failed", zap.Error(err))
			return fmt.Errorf("draft: save: %w", err)
		}
		d.ID = id
		return m.fire(EventSaveFinished)
	}

	if _, err := m.store.UpdateInvite(ctx, d.ID, InviteUpdate{Data: d.CloneData()}); err != nil {
		_ = m.fire(EventSaveFailed)
		m.log.Warn("draft save failed", zap.String("invite_id", d.ID), zap.Error(err))
		return fmt.Errorf("draft: save: %w", err)
	}
	return m.fire(EventSaveFinished)
}

// RequestPublish moves the machine into the confirmation prompt. Callers run
// publish validation first; the machine assumes the pass already succeeded.
func (m *Machine) RequestPublish() error {
	if err := m.fire(EventPublishRequested); err != nil {
		return err
	}
	return m.fire(EventConfirmAsked)
}

// Cancel abandons a pending or prompted publish and returns to editing.
func (m *Machine) Cancel() error {
	return m.fire(EventCancelled)
}

// ConfirmPublish runs the publish persistence flow: a final slug availability
// check, then create-or-update depending on whether the invite was published
// before. A slug conflict or store failure lands back in editing with no
// partial status or slug change.
func (m *Machine) ConfirmPublish(ctx context.Context, d *InviteDraft) error {
	if d == nil {
		return fmt.Errorf("draft: draft is required")
	}
	if err := m.fire(EventConfirmed); err != nil {
		return err
	}

	available, err := m.store.CheckSlugAvailability(ctx, d.Slug, d.ID)
	if err != nil {
		_ = m.fire(EventPublishFailed)
		m.log.Warn("slug availability check failed", zap.String("slug", d.Slug), zap.Error(err))
		return fmt.Errorf("draft: publish: %w", err)
	}
	if !available {
		_ = m.fire(EventPublishFailed)
		return SlugConflictError{Slug: d.Slug}
	}

	firstPublish := d.ID == "" || d.Status != StatusPublished

	if d.ID == "" {
		id, err := m.store.CreateInvite(ctx, NewInvite{
			TemplateSlug:     d.TemplateSlug,
			TemplateCategory: d.TemplateCategory,
			Slug:             d.Slug,
			Data:             d.CloneData(),
			Status:           StatusPublished,
		})
		if err != nil {
			_ = m.fire(EventPublishFailed)
			m.log.Warn("publish failed", zap.Error(err))
			return fmt.Errorf("draft: publish: %w", err)
		}
		d.ID = id
	} else {
		status := StatusPublished
		slug := d.Slug
		if _, err := m.store.UpdateInvite(ctx, d.ID, InviteUpdate{
			Data:   d.CloneData(),
			Status: &status,
			Slug:   &slug,
		}); err != nil {
			_ = m.fire(EventPublishFailed)
			m.log.Warn("publish failed", zap.String("invite_id", d.ID), zap.Error(err))
			return fmt.Errorf("draft: publish: %w", err)
		}
	}

	d.Status = StatusPublished
	m.log.Info("invite published",
		zap.String("invite_id", d.ID),
		zap.String("slug", d.Slug),
		zap.Bool("first_publish", firstPublish),
	)

	if firstPublish {
		return m.fire(EventPublishCreated)
	}
	return m.fire(EventPublishSucceeded)
}
