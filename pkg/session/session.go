// Package session composes the authoring pipeline: catalog definition, step
// plan, field engine, validation state, draft state machine, debounced
// preview, and renderer resolution, behind one mutable authoring session.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-invitekit/pkg/catalog"
	"github.com/goliatone/go-invitekit/pkg/draft"
	"github.com/goliatone/go-invitekit/pkg/field"
	"github.com/goliatone/go-invitekit/pkg/kv"
	"github.com/goliatone/go-invitekit/pkg/preview"
	"github.com/goliatone/go-invitekit/pkg/render"
	"github.com/goliatone/go-invitekit/pkg/validation"
	"github.com/goliatone/go-invitekit/pkg/wizard"
)

// SlugStatus reports the latest slug negotiation outcome.
type SlugStatus struct {
	Candidate string
	Available bool
	Known     bool
}

// Option configures a Session.
type Option func(*Session)

// WithStore injects the persistence collaborator. Required for save and
// publish; a session without a store can still edit and preview.
func WithStore(store draft.Store) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithResolver injects the renderer resolver used for live preview.
func WithResolver(resolver *render.Resolver) Option {
	return func(s *Session) {
		s.resolver = resolver
	}
}

// WithScheduler overrides the timer scheduler; tests pass a FakeScheduler.
func WithScheduler(sched preview.Scheduler) Option {
	return func(s *Session) {
		if sched != nil {
			s.sched = sched
		}
	}
}

// WithClock injects the validation clock.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger injects a structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithKV injects the key-value capability for resume positions.
func WithKV(store kv.Store) Option {
	return func(s *Session) {
		if store != nil {
			s.kvs = store
		}
	}
}

// WithDebounce overrides the preview debounce window.
func WithDebounce(window time.Duration) Option {
	return func(s *Session) {
		if window > 0 {
			s.window = window
		}
	}
}

// WithOnNotice registers the aggregate notification callback surfaced when a
// step transition or publish is blocked.
func WithOnNotice(fn func(string)) Option {
	return func(s *Session) {
		s.onNotice = fn
	}
}

// Session is one host's authoring flow over a single invite draft. It owns
// the data bag exclusively; renderers only ever see the debounced preview
// copy.
type Session struct {
	def  catalog.TemplateDefinition
	plan wizard.Plan
	pos  *wizard.Position

	invite  draft.InviteDraft
	vstate  *validation.State
	machine *draft.Machine

	pipeline  *preview.Pipeline
	slugCheck *preview.SlugChecker

	// slugMu guards slug: onSlugResult runs on the scheduler's timer
	// goroutine while the host reads and replaces candidates.
	slugMu sync.Mutex
	slug   SlugStatus

	store    draft.Store
	resolver *render.Resolver
	kvs      kv.Store
	sched    preview.Scheduler
	now      func() time.Time
	window   time.Duration
	log      *zap.Logger
	onNotice func(string)

	closed bool
}

// New starts an authoring session for a fresh draft of the given template.
func New(def catalog.TemplateDefinition, options ...Option) (*Session, error) {
	s := &Session{
		def:    def,
		plan:   wizard.NewPlan(def),
		pos:    wizard.NewPosition(wizard.StepCount()),
		invite: draft.New(def),
		vstate: validation.NewState(),
		sched:  preview.NewTimerScheduler(),
		now:    time.Now,
		window: preview.DefaultWindow,
		log:    zap.NewNop(),
		kvs:    kv.NewMemory(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if unrouted := s.plan.Unrouted(); len(unrouted) > 0 {
		keys := make([]string, 0, len(unrouted))
		for _, f := range unrouted {
			keys = append(keys, f.Key)
		}
		s.log.Warn("template declares unreachable fields",
			zap.String("template", def.Slug),
			zap.Strings("keys", keys),
		)
	}

	if s.store != nil {
		machine, err := draft.NewMachine(s.store, draft.WithLogger(s.log))
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		s.machine = machine
		s.slugCheck = preview.NewSlugChecker(s.sched, s.store.CheckSlugAvailability, s.onSlugResult)
	}

	s.pipeline = preview.NewPipeline(s.sched, preview.WithWindow(s.window))
	s.pipeline.Update(s.invite.CloneData())

	return s, nil
}

// Load hydrates the session from a persisted invite, restoring the resume
// position when the kv capability remembers one.
func (s *Session) Load(ctx context.Context, id string) error {
	if s.store == nil {
		return fmt.Errorf("session: no store configured")
	}
	invite, err := s.store.GetInvite(ctx, id)
	if err != nil {
		return fmt.Errorf("session: load invite: %w", err)
	}
	if invite.TemplateSlug != s.def.Slug {
		return fmt.Errorf("session: invite %q belongs to template %q, session has %q",
			id, invite.TemplateSlug, s.def.Slug)
	}

	s.invite = invite
	if s.invite.Data == nil {
		s.invite.Data = make(map[string]any)
	}
	if s.invite.Slug != "" {
		s.slugMu.Lock()
		s.slug = SlugStatus{Candidate: s.invite.Slug}
		s.slugMu.Unlock()
	}
	if raw, ok := s.kvs.Get(resumeKey(id)); ok {
		if step, err := strconv.Atoi(raw); err == nil {
			s.pos.Seek(step)
		}
	}
	s.pipeline.Update(s.invite.CloneData())
	return nil
}

// Definition returns the immutable template definition.
func (s *Session) Definition() catalog.TemplateDefinition {
	return s.def
}

// Invite returns a copy of the current draft.
func (s *Session) Invite() draft.InviteDraft {
	out := s.invite
	out.Data = s.invite.CloneData()
	return out
}

// Step returns the current step descriptor and index.
func (s *Session) Step() (wizard.Step, int) {
	step, _ := s.plan.Step(s.pos.Current())
	return step, s.pos.Current()
}

// Fragments returns the editor fragments for the current step, skipping
// fields with unknown types.
func (s *Session) Fragments() []field.Fragment {
	fields := s.plan.StepFields(s.pos.Current())
	out := make([]field.Fragment, 0, len(fields))
	for _, def := range fields {
		if frag, ok := field.Build(def, s.invite.Data); ok {
			out = append(out, frag)
		}
	}
	return out
}

// Validation exposes the current validation state.
func (s *Session) Validation() *validation.State {
	return s.vstate
}

// SetField writes a value into the data bag and feeds the debounced preview.
// Unknown keys are ignored; the catalog owns the field set.
func (s *Session) SetField(key string, value any) {
	if s.closed {
		return
	}
	def, ok := s.def.Field(key)
	if !ok {
		s.log.Debug("ignoring unknown field", zap.String("key", key))
		return
	}
	if def.Type == catalog.FieldTypeImageSet {
		if refs, ok := value.([]string); ok {
			value = field.ClampImages(def, refs)
		}
	}
	if value == nil {
		delete(s.invite.Data, key)
	} else {
		s.invite.Data[key] = value
	}
	s.pipeline.Update(s.invite.CloneData())
}

// AppendImage, RemoveImage, AddScheduleEntry, UpdateScheduleEntry and
// RemoveScheduleEntry delegate to the field editors and refresh the preview.

func (s *Session) AppendImage(key, ref string) {
	s.withField(key, func(def catalog.FieldDefinition) {
		field.AppendImage(s.invite.Data, def, ref)
	})
}

func (s *Session) RemoveImage(key string, index int) {
	s.withField(key, func(def catalog.FieldDefinition) {
		field.RemoveImage(s.invite.Data, def, index)
	})
}

func (s *Session) AddScheduleEntry(key string, entry field.ScheduleEntry) {
	s.withField(key, func(def catalog.FieldDefinition) {
		field.AddScheduleEntry(s.invite.Data, def, entry)
	})
}

func (s *Session) UpdateScheduleEntry(key string, index int, entry field.ScheduleEntry) {
	s.withField(key, func(def catalog.FieldDefinition) {
		field.UpdateScheduleEntry(s.invite.Data, def, index, entry)
	})
}

func (s *Session) RemoveScheduleEntry(key string, index int) {
	s.withField(key, func(def catalog.FieldDefinition) {
		field.RemoveScheduleEntry(s.invite.Data, def, index)
	})
}

func (s *Session) withField(key string, apply func(catalog.FieldDefinition)) {
	if s.closed {
		return
	}
	def, ok := s.def.Field(key)
	if !ok {
		return
	}
	apply(def)
	s.pipeline.Update(s.invite.CloneData())
}

// Next validates the current step and advances on a clean pass. A failing
// pass merges errors into the validation state, marks the step's fields
// touched, surfaces one aggregate notification, and leaves the position
// unchanged.
func (s *Session) Next() error {
	fields := s.plan.StepFields(s.pos.Current())

	err := s.pos.Advance(func(int) bool {
		errs := validation.ValidateStep(fields, s.invite.Data, s.now())
		s.vstate.Apply(validation.Keys(fields), errs)
		if len(errs) > 0 {
			s.vstate.TouchAll(validation.Keys(fields))
			return false
		}
		return true
	})
	if err != nil {
		s.notify("Please fix the highlighted fields before continuing")
		return err
	}

	s.rememberPosition()
	return nil
}

// Back moves one step toward the start without validating.
func (s *Session) Back() {
	s.pos.Back()
	s.rememberPosition()
}

// IsReview reports whether the session sits on the terminal review step.
func (s *Session) IsReview() bool {
	return s.pos.IsReview()
}

// SaveDraft persists the draft without status changes. Callable from any
// step; no validation gates it.
func (s *Session) SaveDraft(ctx context.Context) error {
	if s.machine == nil {
		return fmt.Errorf("session: no store configured")
	}
	if err := s.machine.SaveDraft(ctx, &s.invite); err != nil {
		s.notify("Could not save your draft, please try again")
		return err
	}
	s.rememberPosition()
	return nil
}

// SetSlugCandidate normalizes the candidate and schedules a debounced
// availability check. The result lands in SlugStatus once the candidate
// settles; a newer candidate supersedes an in-flight check.
func (s *Session) SetSlugCandidate(ctx context.Context, candidate string) string {
	normalized := draft.NormalizeSlug(candidate)
	s.slugMu.Lock()
	s.slug = SlugStatus{Candidate: normalized}
	s.slugMu.Unlock()
	s.invite.Slug = normalized
	if s.slugCheck != nil && normalized != "" {
		s.slugCheck.Submit(ctx, normalized, s.invite.ID)
	}
	return normalized
}

// Slug returns the latest slug negotiation status.
func (s *Session) Slug() SlugStatus {
	s.slugMu.Lock()
	defer s.slugMu.Unlock()
	return s.slug
}

// MachineState exposes the lifecycle state for UI affordances.
func (s *Session) MachineState() draft.State {
	if s.machine == nil {
		return draft.StateEditing
	}
	return s.machine.State()
}

// RequestPublish runs the strict full-schema pass. A clean report moves the
// machine into the confirmation prompt; a dirty one surfaces the aggregate
// message and leaves the machine editing.
func (s *Session) RequestPublish() (validation.PublishReport, error) {
	report := validation.ValidatePublish(s.def, s.invite.Data, s.invite.Slug)
	if !report.Ok() {
		s.notify(report.Message())
		return report, nil
	}
	if s.machine == nil {
		return report, fmt.Errorf("session: no store configured")
	}
	return report, s.machine.RequestPublish()
}

// CancelPublish abandons the confirmation prompt.
func (s *Session) CancelPublish() error {
	if s.machine == nil {
		return nil
	}
	return s.machine.Cancel()
}

// ConfirmPublish commits the publish. The slug conflict case surfaces as a
// validation-class notice; transient store failures as a retryable one. In
// both cases the draft keeps its pre-call status.
func (s *Session) ConfirmPublish(ctx context.Context) error {
	if s.machine == nil {
		return fmt.Errorf("session: no store configured")
	}
	err := s.machine.ConfirmPublish(ctx, &s.invite)
	if err != nil {
		var conflict draft.SlugConflictError
		if errors.As(err, &conflict) {
			s.slugMu.Lock()
			s.slug.Known = true
			s.slug.Available = false
			s.slugMu.Unlock()
			s.notify(fmt.Sprintf("The URL %q is already taken, pick another", conflict.Slug))
		} else {
			s.notify("Publishing failed, please try again")
		}
		return err
	}
	return nil
}

// PreviewData returns the debounced preview snapshot.
func (s *Session) PreviewData() map[string]any {
	return s.pipeline.Snapshot()
}

// RenderPreview resolves the template's renderer and renders the debounced
// snapshot in preview mode.
func (s *Session) RenderPreview(ctx context.Context) ([]byte, error) {
	if s.resolver == nil {
		return nil, fmt.Errorf("session: no resolver configured")
	}
	renderer, err := s.resolver.Resolve(s.def.Category, s.def.Slug)
	if err != nil {
		return nil, fmt.Errorf("session: resolve renderer: %w", err)
	}
	return renderer.Render(ctx, render.Context{
		Config:    s.def,
		Data:      s.PreviewData(),
		IsPreview: true,
		InviteID:  s.invite.ID,
	})
}

// Close cancels the preview and slug timers. Safe to call twice; a closed
// session ignores further edits.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.pipeline.Close()
	if s.slugCheck != nil {
		s.slugCheck.Close()
	}
}

func (s *Session) onSlugResult(result preview.SlugResult) {
	if result.Err != nil {
		s.log.Warn("slug availability check failed",
			zap.String("candidate", result.Candidate),
			zap.Error(result.Err),
		)
		return
	}
	s.slugMu.Lock()
	defer s.slugMu.Unlock()

	// Drop results for candidates the host has since replaced.
	if result.Candidate != s.slug.Candidate {
		return
	}
	s.slug.Known = true
	s.slug.Available = result.Available
}

func (s *Session) notify(msg string) {
	if s.onNotice != nil && msg != "" {
		s.onNotice(msg)
	}
}

func (s *Session) rememberPosition() {
	if s.invite.ID == "" {
		return
	}
	s.kvs.Set(resumeKey(s.invite.ID), strconv.Itoa(s.pos.Current()))
}

func resumeKey(id string) string {
	return "invitekit:resume:" + id
}
