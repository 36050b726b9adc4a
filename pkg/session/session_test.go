package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-invitekit/pkg/draft"
	"github.com/goliatone/go-invitekit/pkg/kv"
	"github.com/goliatone/go-invitekit/pkg/preview"
	"github.com/goliatone/go-invitekit/pkg/render"
	"github.com/goliatone/go-invitekit/pkg/store/memory"
	"github.com/goliatone/go-invitekit/pkg/testsupport"
	"github.com/goliatone/go-invitekit/pkg/wizard"
)

var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	session *Session
	store   *memory.Store
	sched   *preview.FakeScheduler
	kvs     *kv.Memory
	notices *[]string
}

func newHarness(t *testing.T, extra ...Option) harness {
	t.Helper()

	store := memory.New()
	sched := preview.NewFakeScheduler()
	kvs := kv.NewMemory()
	notices := &[]string{}

	options := []Option{
		WithStore(store),
		WithScheduler(sched),
		WithClock(func() time.Time { return testNow }),
		WithKV(kvs),
		WithOnNotice(func(msg string) { *notices = append(*notices, msg) }),
	}
	options = append(options, extra...)

	s, err := New(testsupport.Template(), options...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(s.Close)

	return harness{session: s, store: store, sched: sched, kvs: kvs, notices: notices}
}

func fill(s *Session, data map[string]any) {
	for key, value := range data {
		s.SetField(key, value)
	}
}

// walkToReview drives a fully filled session past every gated step.
func walkToReview(t *testing.T, s *Session) {
	t.Helper()
	for !s.IsReview() {
		if err := s.Next(); err != nil {
			_, index := s.Step()
			t.Fatalf("Next() at step %d error = %v", index, err)
		}
	}
}

func TestNextBlockedOnEmptyStep(t *testing.T) {
	h := newHarness(t)

	err := h.session.Next()
	if !errors.Is(err, wizard.ErrStepBlocked) {
		t.Fatalf("Next() error = %v, want ErrStepBlocked", err)
	}
	if _, index := h.session.Step(); index != 0 {
		t.Fatalf("step = %d, want position unchanged at 0", index)
	}

	state := h.session.Validation()
	if msg, ok := state.Error("coupleNames"); !ok || msg != "Couple Names is required" {
		t.Fatalf("Error(coupleNames) = %q, %v", msg, ok)
	}
	if !state.IsTouched("coupleNames") || !state.IsTouched("eventDate") {
		t.Fatal("blocked advance should mark the step's fields touched")
	}

	want := []string{"Please fix the highlighted fields before continuing"}
	if diff := cmp.Diff(want, *h.notices); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
}

func TestNextClearsErrorsOnFix(t *testing.T) {
	h := newHarness(t)

	if err := h.session.Next(); err == nil {
		t.Fatal("Next() on empty step should block")
	}

	fill(h.session, map[string]any{"coupleNames": "Dana & Riley", "eventDate": "2027-06-15"})
	if err := h.session.Next(); err != nil {
		t.Fatalf("Next() after fixing fields error = %v", err)
	}
	if _, ok := h.session.Validation().Error("coupleNames"); ok {
		t.Fatal("error should clear once the field passes")
	}
	if _, index := h.session.Step(); index != 1 {
		t.Fatalf("step = %d, want 1", index)
	}
}

func TestWalkToReview(t *testing.T) {
	h := newHarness(t)
	fill(h.session, testsupport.FilledData())

	walkToReview(t, h.session)

	step, index := h.session.Step()
	if index != wizard.StepCount()-1 || step.Key != "review" {
		t.Fatalf("step = %q at %d, want review at %d", step.Key, index, wizard.StepCount()-1)
	}

	h.session.Back()
	if h.session.IsReview() {
		t.Fatal("Back() from review should leave review")
	}
}

func TestSetFieldUnknownKeyIgnored(t *testing.T) {
	h := newHarness(t)

	h.session.SetField("noSuchField", "value")
	if _, ok := h.session.Invite().Data["noSuchField"]; ok {
		t.Fatal("unknown field key must not land in the data bag")
	}
}

func TestPreviewDebounce(t *testing.T) {
	h := newHarness(t)

	h.session.SetField("coupleNames", "D")
	h.session.SetField("coupleNames", "Da")
	h.session.SetField("coupleNames", "Dana & Riley")

	if got := h.session.PreviewData()["coupleNames"]; got != nil {
		t.Fatalf("preview updated before the quiet period: %v", got)
	}

	h.sched.Advance(preview.DefaultWindow)

	if got := h.session.PreviewData()["coupleNames"]; got != "Dana & Riley" {
		t.Fatalf("preview[coupleNames] = %v, want final edit", got)
	}
}

func TestSaveDraftAssignsID(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	fill(h.session, testsupport.FilledData())
	if err := h.session.SaveDraft(ctx); err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}

	invite := h.session.Invite()
	if invite.ID == "" {
		t.Fatal("SaveDraft() should assign an ID")
	}
	if invite.Status != draft.StatusDraft {
		t.Fatalf("invite.Status = %q, want draft", invite.Status)
	}

	stored, err := h.store.GetInvite(ctx, invite.ID)
	if err != nil {
		t.Fatalf("GetInvite() error = %v", err)
	}
	if diff := cmp.Diff(invite.Data, stored.Data); diff != "" {
		t.Fatalf("stored data mismatch (-want +got):\n%s", diff)
	}
}

func TestSlugCandidateAvailability(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	got := h.session.SetSlugCandidate(ctx, "Dana & Riley")
	if got != "dana-riley" {
		t.Fatalf("SetSlugCandidate() = %q, want dana-riley", got)
	}
	if status := h.session.Slug(); status.Known {
		t.Fatal("availability should be unknown before the check settles")
	}

	h.sched.Advance(preview.DefaultSlugCheckWindow)

	status := h.session.Slug()
	if !status.Known || !status.Available {
		t.Fatalf("slug status = %+v, want known and available", status)
	}
}

func TestSlugCandidateTaken(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.store.CreateInvite(ctx, draft.NewInvite{TemplateSlug: "other", Slug: "dana-riley"}); err != nil {
		t.Fatalf("CreateInvite() error = %v", err)
	}

	h.session.SetSlugCandidate(ctx, "dana-riley")
	h.sched.Advance(preview.DefaultSlugCheckWindow)

	status := h.session.Slug()
	if !status.Known || status.Available {
		t.Fatalf("slug status = %+v, want known and unavailable", status)
	}
}

// Slug results arrive on the wall-clock scheduler's timer goroutine while
// the host keeps reading and replacing candidates; this test exists to fail
// under the race detector if that handoff loses its synchronization.
func TestSlugStatusWithTimerScheduler(t *testing.T) {
	store := memory.New()
	s, err := New(testsupport.Template(),
		WithStore(store),
		WithClock(func() time.Time { return testNow }),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	s.SetSlugCandidate(ctx, "first-pick")
	s.SetSlugCandidate(ctx, "dana-riley")

	deadline := time.Now().Add(5 * time.Second)
	for {
		status := s.Slug()
		if status.Known {
			if status.Candidate != "dana-riley" || !status.Available {
				t.Fatalf("slug status = %+v, want dana-riley available", status)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("slug availability never settled")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSetFieldClampsImageSet(t *testing.T) {
	h := newHarness(t)

	refs := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg", "f.jpg", "g.jpg", "h.jpg"}
	h.session.SetField("galleryImages", refs)

	got, _ := h.session.Invite().Data["galleryImages"].([]string)
	if len(got) != 6 {
		t.Fatalf("stored %d images, want the bound of 6", len(got))
	}
	if diff := cmp.Diff(refs[:6], got); diff != "" {
		t.Fatalf("stored images mismatch (-want +got):\n%s", diff)
	}
}

func TestRapidSlugEditsDeliverOnlyLatest(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.session.SetSlugCandidate(ctx, "first-pick")
	h.sched.Advance(preview.DefaultSlugCheckWindow / 2)
	h.session.SetSlugCandidate(ctx, "second-pick")
	h.sched.Advance(preview.DefaultSlugCheckWindow)

	status := h.session.Slug()
	if status.Candidate != "second-pick" {
		t.Fatalf("candidate = %q, want second-pick", status.Candidate)
	}
	if !status.Known || !status.Available {
		t.Fatalf("slug status = %+v, want settled result for the latest candidate", status)
	}
}

func TestRequestPublishDirtyReport(t *testing.T) {
	h := newHarness(t)

	fill(h.session, map[string]any{"coupleNames": "Dana & Riley"})

	report, err := h.session.RequestPublish()
	if err != nil {
		t.Fatalf("RequestPublish() error = %v", err)
	}
	if report.Ok() {
		t.Fatal("report should flag the missing required fields")
	}
	if h.session.MachineState() != draft.StateEditing {
		t.Fatalf("machine state = %q, want editing", h.session.MachineState())
	}

	want := "Please fill in: Event Date, Venue Name, RSVP Deadline"
	if len(*h.notices) != 1 || (*h.notices)[0] != want {
		t.Fatalf("notices = %v, want [%q]", *h.notices, want)
	}
}

func TestRequestPublishMissingSlug(t *testing.T) {
	h := newHarness(t)

	fill(h.session, testsupport.FilledData())

	report, err := h.session.RequestPublish()
	if err != nil {
		t.Fatalf("RequestPublish() error = %v", err)
	}
	if !report.SlugMissing {
		t.Fatal("report should flag the missing slug")
	}
	if len(*h.notices) != 1 || (*h.notices)[0] != "Choose a URL for your invite before publishing" {
		t.Fatalf("notices = %v", *h.notices)
	}
}

func TestPublishFlow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	fill(h.session, testsupport.FilledData())
	h.session.SetSlugCandidate(ctx, "dana-riley")

	report, err := h.session.RequestPublish()
	if err != nil {
		t.Fatalf("RequestPublish() error = %v", err)
	}
	if !report.Ok() {
		t.Fatalf("report = %+v, want clean", report)
	}
	if h.session.MachineState() != draft.StateConfirming {
		t.Fatalf("machine state = %q, want confirming", h.session.MachineState())
	}

	if err := h.session.ConfirmPublish(ctx); err != nil {
		t.Fatalf("ConfirmPublish() error = %v", err)
	}

	invite := h.session.Invite()
	if invite.Status != draft.StatusPublished {
		t.Fatalf("invite.Status = %q, want published", invite.Status)
	}
	if h.session.MachineState() != draft.StatePublishedNew {
		t.Fatalf("machine state = %q, want published-new", h.session.MachineState())
	}

	stored, err := h.store.FindBySlug(ctx, "dana-riley")
	if err != nil {
		t.Fatalf("FindBySlug() error = %v", err)
	}
	if stored.ID != invite.ID {
		t.Fatalf("published invite ID = %q, want %q", stored.ID, invite.ID)
	}
}

func TestCancelPublishReturnsToEditing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	fill(h.session, testsupport.FilledData())
	h.session.SetSlugCandidate(ctx, "dana-riley")

	if _, err := h.session.RequestPublish(); err != nil {
		t.Fatalf("RequestPublish() error = %v", err)
	}
	if err := h.session.CancelPublish(); err != nil {
		t.Fatalf("CancelPublish() error = %v", err)
	}
	if h.session.MachineState() != draft.StateEditing {
		t.Fatalf("machine state = %q, want editing", h.session.MachineState())
	}
	if h.session.Invite().Status != draft.StatusDraft {
		t.Fatalf("invite.Status = %q, want draft untouched", h.session.Invite().Status)
	}
}

func TestConfirmPublishSlugConflict(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.store.CreateInvite(ctx, draft.NewInvite{TemplateSlug: "other", Slug: "dana-riley"}); err != nil {
		t.Fatalf("CreateInvite() error = %v", err)
	}

	fill(h.session, testsupport.FilledData())
	h.session.SetSlugCandidate(ctx, "dana-riley")
	if _, err := h.session.RequestPublish(); err != nil {
		t.Fatalf("RequestPublish() error = %v", err)
	}

	err := h.session.ConfirmPublish(ctx)
	var conflict draft.SlugConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("ConfirmPublish() error = %v, want SlugConflictError", err)
	}

	status := h.session.Slug()
	if !status.Known || status.Available {
		t.Fatalf("slug status = %+v, want known and unavailable", status)
	}
	if h.session.MachineState() != draft.StateEditing {
		t.Fatalf("machine state = %q, want editing for retry", h.session.MachineState())
	}
	if h.session.Invite().Status != draft.StatusDraft {
		t.Fatalf("invite.Status = %q, want draft untouched", h.session.Invite().Status)
	}

	want := `The URL "dana-riley" is already taken, pick another`
	last := (*h.notices)[len(*h.notices)-1]
	if last != want {
		t.Fatalf("notice = %q, want %q", last, want)
	}
}

func TestLoadRestoresDraftAndPosition(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	fill(h.session, testsupport.FilledData())
	if err := h.session.SaveDraft(ctx); err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}
	if err := h.session.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	id := h.session.Invite().ID

	resumed, err := New(testsupport.Template(),
		WithStore(h.store),
		WithScheduler(preview.NewFakeScheduler()),
		WithKV(h.kvs),
		WithClock(func() time.Time { return testNow }),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer resumed.Close()

	if err := resumed.Load(ctx, id); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, index := resumed.Step(); index != 1 {
		t.Fatalf("resumed step = %d, want 1", index)
	}
	if diff := cmp.Diff(testsupport.FilledData(), resumed.Invite().Data); diff != "" {
		t.Fatalf("resumed data mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsTemplateMismatch(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	id, err := h.store.CreateInvite(ctx, draft.NewInvite{TemplateSlug: "some-other-template"})
	if err != nil {
		t.Fatalf("CreateInvite() error = %v", err)
	}

	if err := h.session.Load(ctx, id); err == nil {
		t.Fatal("Load() should reject an invite from a different template")
	}
}

func TestRenderPreviewUsesResolver(t *testing.T) {
	resolver := render.NewResolver(render.WithMode(render.ModeDevelopment))
	def := testsupport.Template()
	rendered := &recordingRenderer{}
	if err := resolver.Register(def.Category, def.Slug, func() (render.Renderer, error) {
		return rendered, nil
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	h := newHarness(t, WithResolver(resolver))
	ctx := context.Background()

	h.session.SetField("coupleNames", "Dana & Riley")
	h.sched.Advance(preview.DefaultWindow)

	out, err := h.session.RenderPreview(ctx)
	if err != nil {
		t.Fatalf("RenderPreview() error = %v", err)
	}
	if string(out) != "rendered" {
		t.Fatalf("RenderPreview() = %q", out)
	}
	if !rendered.last.IsPreview {
		t.Fatal("preview renders must set IsPreview")
	}
	if got := rendered.last.Data["coupleNames"]; got != "Dana & Riley" {
		t.Fatalf("renderer saw data %v, want the debounced snapshot", rendered.last.Data)
	}
}

func TestCloseStopsTimers(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.session.SetField("coupleNames", "Dana")
	h.session.SetSlugCandidate(ctx, "dana-riley")
	h.session.Close()

	if got := h.sched.Pending(); got != 0 {
		t.Fatalf("Pending() = %d after Close, want 0", got)
	}

	h.session.SetField("coupleNames", "ignored")
	h.sched.Advance(preview.DefaultWindow)
	if got := h.session.PreviewData()["coupleNames"]; got != nil {
		t.Fatalf("closed session still updated the preview: %v", got)
	}
}

type recordingRenderer struct {
	last render.Context
}

func (r *recordingRenderer) Name() string { return "recording" }

func (r *recordingRenderer) ContentType() string { return "text/plain" }

func (r *recordingRenderer) Render(_ context.Context, rctx render.Context) ([]byte, error) {
	r.last = rctx
	return []byte("rendered"), nil
}
