package life

import "testing"

func TestTimerExpiresAfterFullDuration(t *testing.T) {
	timer := NewTimer(10)
	fired := 0
	firedAt := -1

	for i := 0; i < 600; i++ {
		if timer.Tick(1.0 / 60.0) {
			fired++
			firedAt = i
		}
	}

	if fired != 1 {
		t.Errorf("Tick fired %d times, expected 1", fired)
	}
	if firedAt != 599 {
		t.Errorf("Tick fired on step %d, expected 599", firedAt)
	}
	if timer.Remaining() != 0 {
		t.Errorf("Remaining() = %v, expected 0", timer.Remaining())
	}
}

func TestTimerNoNegativeCarryOver(t *testing.T) {
	timer := NewTimer(1)

	if !timer.Tick(5) {
		t.Fatal("large tick should expire the timer")
	}
	if timer.Remaining() != 0 {
		t.Errorf("Remaining() = %v, expected 0", timer.Remaining())
	}
	if timer.Tick(1) {
		t.Error("expired timer should not fire again")
	}
	if timer.Remaining() != 0 {
		t.Errorf("Remaining() after extra tick = %v, expected 0", timer.Remaining())
	}
}

func TestTimerReset(t *testing.T) {
	timer := NewTimer(10)
	timer.Tick(10)
	timer.Reset()

	if timer.Expired() {
		t.Error("Reset should clear expiry")
	}
	if timer.Remaining() != 10 {
		t.Errorf("Remaining() = %v, expected 10", timer.Remaining())
	}
	if timer.Fraction() != 1 {
		t.Errorf("Fraction() = %v, expected 1", timer.Fraction())
	}
}

func TestTimerExtend(t *testing.T) {
	timer := NewTimer(10)
	timer.Tick(8)
	timer.Extend(10)

	if timer.Remaining() != 12 {
		t.Errorf("Remaining() = %v, expected 12", timer.Remaining())
	}
	if timer.Fraction() != 1 {
		t.Errorf("Fraction() should clamp to 1, got %v", timer.Fraction())
	}
	if e := timer.Elapsed(10); e != 8 {
		t.Errorf("Elapsed(10) = %v, expected 8", e)
	}

	timer.Tick(20)
	timer.Extend(5)
	if timer.Remaining() != 0 {
		t.Error("Extend should not revive an expired timer")
	}
}

func TestTimerIgnoresNonPositiveInput(t *testing.T) {
	timer := NewTimer(0)
	if timer.Duration() != DefaultDuration {
		t.Errorf("Duration() = %v, expected %v", timer.Duration(), DefaultDuration)
	}
	if timer.Tick(0) || timer.Tick(-1) {
		t.Error("non-positive dt should not fire")
	}
	if timer.Remaining() != DefaultDuration {
		t.Errorf("non-positive dt changed Remaining() to %v", timer.Remaining())
	}
}
