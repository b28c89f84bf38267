package session

import (
	"sync"
	"time"
)

// Timer is the handle of a scheduled callback.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer runs fn once after delay has passed without another Trigger.
// At most one timer is outstanding. A timer that fires after it has been
// superseded or cancelled does nothing.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	after AfterFunc
	fn    func()
	timer Timer
	gen   uint64
}

func NewDebouncer(delay time.Duration, after AfterFunc, fn func()) *Debouncer {
	if after == nil {
		after = realAfterFunc
	}
	return &Debouncer{delay: delay, after: after, fn: fn}
}

// Trigger cancels any scheduled run and schedules a new one.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	gen := d.gen
	d.timer = d.after(d.delay, func() { d.fire(gen) })
}

// Cancel drops the scheduled run and reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopLocked()
}

// Pending reports whether a run is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) stopLocked() bool {
	d.gen++
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	return true
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}
