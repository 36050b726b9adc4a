package preview

import (
	"sync"
	"time"
)

// DefaultWindow is the quiet period an edit must survive before the preview
// snapshot updates. Long enough to coalesce keystrokes, short enough to feel
// immediate.
const DefaultWindow = 300 * time.Millisecond

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithWindow overrides the debounce window.
func WithWindow(window time.Duration) PipelineOption {
	return func(p *Pipeline) {
		if window > 0 {
			p.window = window
		}
	}
}

// WithOnFlush registers a callback invoked with each new snapshot. The
// mounted renderer re-reads the preview here rather than on every keystroke.
func WithOnFlush(fn func(map[string]any)) PipelineOption {
	return func(p *Pipeline) {
		p.onFlush = fn
	}
}

// Pipeline maintains the debounced previewData copy of the edited data bag.
// Intermediate edits inside the window coalesce; the final edit always lands.
type Pipeline struct {
	mu       sync.Mutex
	sched    Scheduler
	window   time.Duration
	onFlush  func(map[string]any)
	pending  Handle
	latest   map[string]any
	snapshot map[string]any
	closed   bool
}

// NewPipeline constructs a pipeline over the given scheduler.
func NewPipeline(sched Scheduler, options ...PipelineOption) *Pipeline {
	p := &Pipeline{
		sched:    sched,
		window:   DefaultWindow,
		snapshot: make(map[string]any),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// Update records an edited copy of the data bag and restarts the quiet-period
// timer. The snapshot is untouched until the window elapses without another
// edit.
func (p *Pipeline) Update(data map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	p.latest = cloneBag(data)
	if p.pending != nil {
		p.pending.Cancel()
	}
	p.pending = p.sched.ScheduleAfter(p.window, p.flush)
}

// Snapshot returns the current previewData copy. Safe to hand to a renderer;
// the pipeline never mutates a returned map.
func (p *Pipeline) Snapshot() map[string]any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// Close cancels any pending flush. Called on unmount so a stale timer never
// reaches a dead view.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.pending != nil {
		p.pending.Cancel()
		p.pending = nil
	}
}

func (p *Pipeline) flush() {
	p.mu.Lock()
	if p.closed || p.latest == nil {
		p.mu.Unlock()
		return
	}
	p.snapshot = p.latest
	p.latest = nil
	p.pending = nil
	snapshot := p.snapshot
	onFlush := p.onFlush
	p.mu.Unlock()

	if onFlush != nil {
		onFlush(snapshot)
	}
}

func cloneBag(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for key, value := range data {
		out[key] = value
	}
	return out
}
