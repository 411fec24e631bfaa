// Package simclock provides an injectable clock and timer scheduler so
// components driven by wall-clock timers can be tested deterministically.
package simclock

import "time"

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the call
	// stopped the timer before it fired. Stopping an already-fired or
	// already-stopped timer is a no-op.
	Stop() bool
}

// Clock abstracts time observation and delayed execution.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Real is a Clock backed by the system clock and runtime timers.
type Real struct{}

// NewReal returns the production clock.
func NewReal() Real { return Real{} }

// Now returns the current UTC time.
func (Real) Now() time.Time { return time.Now().UTC() }

// AfterFunc schedules fn on a runtime timer.
func (Real) AfterFunc(d time.Duration, fn func()) Timer {
	return realTimer{t: time.AfterFunc(d, fn)}
}

type realTimer struct {
	t *time.Timer
}

func (rt realTimer) Stop() bool { return rt.t.Stop() }
