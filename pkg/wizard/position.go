package wizard

import "errors"

// ErrStepBlocked reports an Advance attempt whose gate rejected the current
// step. The position is left unchanged.
var ErrStepBlocked = errors.New("wizard: current step has validation errors")

// Gate decides whether the current step may be left. It runs synchronously
// before the position mutates.
type Gate func(step int) bool

// Position tracks the current wizard step. Forward movement is permitted only
// when the gate reports the current step clean; backward movement is always
// allowed.
type Position struct {
	current int
	count   int
}

// NewPosition starts a position at step zero for the given step count.
func NewPosition(count int) *Position {
	if count <= 0 {
		count = StepCount()
	}
	return &Position{count: count}
}

// Current returns the active step index.
func (p *Position) Current() int {
	return p.current
}

// IsFirst reports whether the position is at the first step.
func (p *Position) IsFirst() bool {
	return p.current == 0
}

// IsReview reports whether the position is at the terminal review step.
func (p *Position) IsReview() bool {
	return p.current == p.count-1
}

// Advance moves forward one step when the gate passes. A failing gate returns
// ErrStepBlocked without mutating the position; advancing past the terminal
// step is a no-op.
func (p *Position) Advance(gate Gate) error {
	if p.IsReview() {
		return nil
	}
	if gate != nil && !gate(p.current) {
		return ErrStepBlocked
	}
	p.current++
	return nil
}

// Back moves one step toward the start. Backing out of the first step is a
// no-op; no validation gates backward movement.
func (p *Position) Back() {
	if p.current > 0 {
		p.current--
	}
}

// Seek jumps directly to a step, clamping into range. Used to restore a
// resumed session; callers remain responsible for gating any later Advance.
func (p *Position) Seek(step int) {
	if step < 0 {
		step = 0
	}
	if step >= p.count {
		step = p.count - 1
	}
	p.current = step
}
