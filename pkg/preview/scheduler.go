package preview

import "time"

// Handle is a cancellable scheduled callback.
type Handle interface {
	// Cancel stops the callback if it has not fired. It reports whether the
	// cancellation won the race.
	Cancel() bool
}

// Scheduler abstracts deferred execution so debounce flows can run against a
// virtual clock in tests instead of ambient timer APIs.
type Scheduler interface {
	ScheduleAfter(d time.Duration, fn func()) Handle
}

// TimerScheduler is the production Scheduler over time.AfterFunc.
type TimerScheduler struct{}

// NewTimerScheduler returns the wall-clock scheduler.
func NewTimerScheduler() TimerScheduler {
	return TimerScheduler{}
}

// ScheduleAfter arms a timer for fn.
func (TimerScheduler) ScheduleAfter(d time.Duration, fn func()) Handle {
	return timerHandle{timer: time.AfterFunc(d, fn)}
}

type timerHandle struct {
	timer *time.Timer
}

func (h timerHandle) Cancel() bool {
	return h.timer.Stop()
}
