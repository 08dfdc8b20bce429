// Package autoplay provides the repeating timer that advances the
// testimonial slider.
//
// A Timer owns at most one scheduled callback. Reset cancels whatever is
// pending before scheduling the next tick, so a manual navigation restarts
// the full interval instead of continuing an earlier countdown. Stop cancels
// unconditionally and is final.
package autoplay

import (
	"sync"
	"time"
)

// Stopper cancels a scheduled callback.
type Stopper interface {
	Stop() bool
}

// Clock schedules callbacks. The real clock wraps time.AfterFunc; tests use
// a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// RealClock returns a Clock backed by the time package.
func RealClock() Clock {
	return realClock{}
}

// Timer fires a callback every interval until stopped.
type Timer struct {
	clock    Clock
	interval time.Duration
	onTick   func(epoch uint64)

	mu         sync.Mutex
	pending    Stopper
	generation uint64
	epoch      uint64
	stopped    bool
	cancels    int
}

// New creates a stopped-until-reset timer. onTick runs on the clock's
// goroutine with the epoch of the Reset that armed it; callers that own
// single-threaded state should only enqueue work from it.
func New(clock Clock, interval time.Duration, onTick func(epoch uint64)) *Timer {
	if clock == nil {
		clock = RealClock()
	}
	return &Timer{
		clock:    clock,
		interval: interval,
		onTick:   onTick,
	}
}

// Reset cancels the pending tick, if any, and schedules a new one a full
// interval from now. It returns the new epoch; every tick until the next
// Reset carries it. It is a no-op after Stop and returns the last epoch.
func (t *Timer) Reset() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return t.epoch
	}
	t.cancelLocked()
	t.epoch++
	t.scheduleLocked()
	return t.epoch
}

// Stop cancels the pending tick. The timer cannot be restarted.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
	t.cancelLocked()
}

// Active returns the number of scheduled ticks: 0 or 1.
func (t *Timer) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != nil {
		return 1
	}
	return 0
}

// Cancels returns how many scheduled ticks were cancelled so far.
func (t *Timer) Cancels() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cancels
}

func (t *Timer) cancelLocked() {
	if t.pending == nil {
		return
	}
	t.pending.Stop()
	t.pending = nil
	t.cancels++
	// Invalidate a callback that already started racing with the cancel.
	t.generation++
}

func (t *Timer) scheduleLocked() {
	gen := t.generation
	t.pending = t.clock.AfterFunc(t.interval, func() { t.fire(gen) })
}

func (t *Timer) fire(gen uint64) {
	t.mu.Lock()
	if t.stopped || gen != t.generation {
		t.mu.Unlock()
		return
	}
	// Re-arm first so the timer keeps repeating even if the tick does not
	// lead to a Reset.
	t.pending = nil
	t.generation++
	t.scheduleLocked()
	epoch := t.epoch
	t.mu.Unlock()

	if t.onTick != nil {
		t.onTick(epoch)
	}
}
