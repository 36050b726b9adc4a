package preview

import (
	"context"
	"sync"
	"time"
)

// DefaultSlugCheckWindow debounces slug-availability lookups while the host
// is still typing a candidate.
const DefaultSlugCheckWindow = 400 * time.Millisecond

// AvailabilityFunc is the slug-availability collaborator signature, matching
// the persistence contract.
type AvailabilityFunc func(ctx context.Context, candidate string, excludeID string) (bool, error)

// SlugResult is delivered to the checker's callback once a candidate settles.
type SlugResult struct {
	Candidate string
	Available bool
	Err       error
}

// SlugCheckerOption configures a SlugChecker.
type SlugCheckerOption func(*SlugChecker)

// WithCheckWindow overrides the debounce window.
func WithCheckWindow(window time.Duration) SlugCheckerOption {
	return func(c *SlugChecker) {
		if window > 0 {
			c.window = window
		}
	}
}

// SlugChecker debounces availability lookups and suppresses stale results: a
// newer candidate invalidates any in-flight check for an older one.
type SlugChecker struct {
	mu       sync.Mutex
	sched    Scheduler
	window   time.Duration
	check    AvailabilityFunc
	onResult func(SlugResult)
	pending  Handle
	gen      int
	closed   bool
}

// NewSlugChecker constructs a checker delivering results to onResult.
func NewSlugChecker(sched Scheduler, check AvailabilityFunc, onResult func(SlugResult), options ...SlugCheckerOption) *SlugChecker {
	c := &SlugChecker{
		sched:    sched,
		window:   DefaultSlugCheckWindow,
		check:    check,
		onResult: onResult,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Submit schedules an availability check for candidate after the quiet
// period. Submitting again restarts the timer and invalidates any result
// still in flight for an earlier candidate.
func (c *SlugChecker) Submit(ctx context.Context, candidate string, excludeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.gen++
	gen := c.gen
	if c.pending != nil {
		c.pending.Cancel()
	}
	c.pending = c.sched.ScheduleAfter(c.window, func() {
		c.run(ctx, gen, candidate, excludeID)
	})
}

// Close cancels any pending check and drops future results.
func (c *SlugChecker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.pending != nil {
		c.pending.Cancel()
		c.pending = nil
	}
}

func (c *SlugChecker) run(ctx context.Context, gen int, candidate string, excludeID string) {
	c.mu.Lock()
	stale := c.closed || gen != c.gen
	c.mu.Unlock()
	if stale {
		return
	}

	available, err := c.check(ctx, candidate, excludeID)

	c.mu.Lock()
	stale = c.closed || gen != c.gen
	c.mu.Unlock()
	if stale {
		return
	}

	if c.onResult != nil {
		c.onResult(SlugResult{Candidate: candidate, Available: available, Err: err})
	}
}
