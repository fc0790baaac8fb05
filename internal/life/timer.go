// Package life implements the countdown that bounds a single attempt.
package life

// expiryEpsilon absorbs float drift so that N steps of 1/N seconds
// summing to the full duration expire on the last step.
const expiryEpsilon = 1e-9

// DefaultDuration is the length of one life in seconds.
const DefaultDuration = 10.0

// Timer counts one life down to zero. It is a value plus a comparison;
// it never drives state transitions itself.
type Timer struct {
	duration  float64
	remaining float64
	expired   bool
}

// NewTimer creates a timer armed with the given duration.
// Non-positive durations fall back to DefaultDuration.
func NewTimer(duration float64) *Timer {
	if duration <= 0 {
		duration = DefaultDuration
	}
	t := &Timer{duration: duration}
	t.Reset()
	return t
}

// Reset rearms the timer to its full duration.
func (t *Timer) Reset() {
	t.remaining = t.duration
	t.expired = false
}

// Tick subtracts dt seconds. It returns true exactly once, on the tick that
// takes the timer to zero. After that the timer stays at zero.
func (t *Timer) Tick(dt float64) bool {
	if t.expired || dt <= 0 {
		return false
	}
	t.remaining -= dt
	if t.remaining <= expiryEpsilon {
		t.remaining = 0
		t.expired = true
		return true
	}
	return false
}

// Extend adds seconds to the current life. Expired timers are not revived.
func (t *Timer) Extend(seconds float64) {
	if t.expired || seconds <= 0 {
		return
	}
	t.remaining += seconds
}

// Remaining returns the seconds left, never negative.
func (t *Timer) Remaining() float64 { return t.remaining }

// Duration returns the full length of a life.
func (t *Timer) Duration() float64 { return t.duration }

// Expired reports whether the timer has fired.
func (t *Timer) Expired() bool { return t.expired }

// Elapsed returns how long the current life has lasted, bonus time included.
func (t *Timer) Elapsed(bonus float64) float64 {
	e := t.duration + bonus - t.remaining
	if e < 0 {
		return 0
	}
	return e
}

// Fraction returns remaining/duration clamped to [0, 1], for drawing a bar.
func (t *Timer) Fraction() float64 {
	f := t.remaining / t.duration
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
