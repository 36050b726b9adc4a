package preview

import (
	"sort"
	"sync"
	"time"
)

// FakeScheduler is a deterministic Scheduler driven by a virtual clock.
// Callbacks fire, in schedule order, when Advance moves the clock past their
// deadline. Tests own the goroutine; callbacks run inline on Advance.
type FakeScheduler struct {
	mu      sync.Mutex
	now     time.Time
	nextSeq int
	pending []*fakeEntry
}

type fakeEntry struct {
	sched     *FakeScheduler
	at        time.Time
	seq       int
	fn        func()
	cancelled bool
	fired     bool
}

// NewFakeScheduler starts a virtual clock at an arbitrary fixed instant.
func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{now: time.Unix(0, 0)}
}

// ScheduleAfter records a callback due after d on the virtual clock.
func (s *FakeScheduler) ScheduleAfter(d time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &fakeEntry{
		sched: s,
		at:    s.now.Add(d),
		seq:   s.nextSeq,
		fn:    fn,
	}
	s.nextSeq++
	s.pending = append(s.pending, entry)
	return entry
}

// Advance moves the virtual clock forward and fires every due callback in
// deadline order.
func (s *FakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	due := s.takeDueLocked()
	s.mu.Unlock()

	for _, entry := range due {
		entry.fn()
	}
}

// Pending reports how many callbacks are armed.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, entry := range s.pending {
		if !entry.cancelled && !entry.fired {
			count++
		}
	}
	return count
}

func (s *FakeScheduler) takeDueLocked() []*fakeEntry {
	var due []*fakeEntry
	var rest []*fakeEntry
	for _, entry := range s.pending {
		switch {
		case entry.cancelled:
		case !entry.at.After(s.now):
			entry.fired = true
			due = append(due, entry)
		default:
			rest = append(rest, entry)
		}
	}
	s.pending = rest

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	return due
}

func (e *fakeEntry) Cancel() bool {
	e.sched.mu.Lock()
	defer e.sched.mu.Unlock()

	if e.fired || e.cancelled {
		return false
	}
	e.cancelled = true
	return true
}
