package preview

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestPipeline_CoalescesRapidEdits(t *testing.T) {
	sched := NewFakeScheduler()
	flushes := 0
	p := NewPipeline(sched, WithOnFlush(func(map[string]any) { flushes++ }))
	defer p.Close()

	// Five keystrokes inside one window.
	for i, value := range []string{"D", "Da", "Dan", "Dana", "Dana & Riley"} {
		sched.Advance(50 * time.Millisecond)
		_ = i
		p.Update(map[string]any{"coupleNames": value})
	}
	if flushes != 0 {
		t.Fatalf("flush fired before the window elapsed")
	}
	if len(p.Snapshot()) != 0 {
		t.Fatalf("snapshot updated early: %v", p.Snapshot())
	}

	sched.Advance(DefaultWindow)

	if flushes != 1 {
		t.Fatalf("expected exactly one flush, got %d", flushes)
	}
	want := map[string]any{"coupleNames": "Dana & Riley"}
	if diff := cmp.Diff(want, p.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestPipeline_QuietEditsFlushSeparately(t *testing.T) {
	sched := NewFakeScheduler()
	var flushed []map[string]any
	p := NewPipeline(sched, WithOnFlush(func(data map[string]any) { flushed = append(flushed, data) }))
	defer p.Close()

	p.Update(map[string]any{"venueName": "Rosewood Hall"})
	sched.Advance(DefaultWindow)
	p.Update(map[string]any{"venueName": "Oak Barn"})
	sched.Advance(DefaultWindow)

	if len(flushed) != 2 {
		t.Fatalf("expected two flushes, got %d", len(flushed))
	}
	if flushed[1]["venueName"] != "Oak Barn" {
		t.Fatalf("second flush carries wrong data: %v", flushed[1])
	}
}

func TestPipeline_SnapshotIsolatedFromLaterEdits(t *testing.T) {
	sched := NewFakeScheduler()
	p := NewPipeline(sched)
	defer p.Close()

	source := map[string]any{"coupleNames": "Dana & Riley"}
	p.Update(source)
	sched.Advance(DefaultWindow)

	// Mutating the caller's map after the fact must not leak into the
	// snapshot.
	source["coupleNames"] = "changed"
	if p.Snapshot()["coupleNames"] != "Dana & Riley" {
		t.Fatalf("snapshot shares storage with the edited bag")
	}
}

func TestPipeline_CloseCancelsPendingFlush(t *testing.T) {
	sched := NewFakeScheduler()
	flushes := 0
	p := NewPipeline(sched, WithOnFlush(func(map[string]any) { flushes++ }))

	p.Update(map[string]any{"coupleNames": "Dana"})
	p.Close()
	sched.Advance(DefaultWindow)

	if flushes != 0 {
		t.Fatalf("flush fired after close")
	}
	if sched.Pending() != 0 {
		t.Fatalf("expected no live timers after close, got %d", sched.Pending())
	}
}
