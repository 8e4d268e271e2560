// Package debounce turns bursts of activity into a single idle signal.
package debounce

import (
	"sync"
	"time"
)

// DefaultPeriod is the quiet period used when none is configured.
const DefaultPeriod = 2 * time.Second

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithAfterFunc replaces the scheduler, mainly for tests.
func WithAfterFunc(af AfterFunc) Option {
	return func(d *Debouncer) {
		d.after = af
	}
}

// Debouncer calls fn once after period has passed without a Notify.
// At most one callback is pending at any time.
type Debouncer struct {
	period time.Duration
	fn     func()
	after  AfterFunc

	mu       sync.Mutex
	timer    Timer
	gen      uint64
	disposed bool
}

// New creates a Debouncer. A non-positive period uses DefaultPeriod.
func New(period time.Duration, fn func(), opts ...Option) *Debouncer {
	if period <= 0 {
		period = DefaultPeriod
	}
	d := &Debouncer{
		period: period,
		fn:     fn,
		after:  realAfterFunc,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Period returns the quiet period.
func (d *Debouncer) Period() time.Duration {
	return d.period
}

// Notify cancels the pending callback and schedules a new one.
// It does nothing after Dispose.
func (d *Debouncer) Notify() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed {
		return
	}
	d.stopLocked()
	d.gen++
	gen := d.gen
	d.timer = d.after(d.period, func() { d.fire(gen) })
}

// Pending reports whether a callback is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Dispose cancels the pending callback. No callback runs afterwards,
// even one whose timer had already expired but not yet been delivered.
func (d *Debouncer) Dispose() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.disposed = true
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.disposed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	// fn runs outside the lock so it may call Notify or Dispose.
	d.fn()
}
