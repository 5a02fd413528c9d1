package countdown

import "testing"

func TestTimer_CountsToExpiry(t *testing.T) {
	timer := New(3)
	if timer.State() != Stopped {
		t.Fatalf("new timer state = %v, want stopped", timer.State())
	}
	if !timer.Start() {
		t.Fatal("Start() = false on a fresh timer")
	}

	expirations := 0
	for i := 0; i < 3; i++ {
		if timer.Tick() {
			expirations++
		}
	}

	if expirations != 1 {
		t.Errorf("expired %d times, want 1", expirations)
	}
	if timer.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", timer.Remaining())
	}
	if timer.State() != Expired {
		t.Errorf("State() = %v, want expired", timer.State())
	}

	// A fourth tick is a no-op.
	if timer.Tick() {
		t.Error("Tick() after expiry reported expiry again")
	}
	if timer.Remaining() != 0 {
		t.Errorf("Remaining() after extra tick = %d, want 0", timer.Remaining())
	}
}

func TestTimer_ExpiresOnExactTick(t *testing.T) {
	timer := New(60)
	timer.Start()

	for i := 1; i < 60; i++ {
		if timer.Tick() {
			t.Fatalf("expired early at tick %d", i)
		}
		if want := 60 - i; timer.Remaining() != want {
			t.Fatalf("after tick %d Remaining() = %d, want %d", i, timer.Remaining(), want)
		}
	}
	if !timer.Tick() {
		t.Fatal("tick 60 did not expire the timer")
	}
}

func TestTimer_StopIsNotExpiry(t *testing.T) {
	timer := New(10)
	timer.Start()
	timer.Tick()
	timer.Stop()

	if timer.State() != Stopped {
		t.Errorf("State() = %v, want stopped", timer.State())
	}
	if timer.Tick() {
		t.Error("Tick() on stopped timer reported expiry")
	}
	if timer.Remaining() != 9 {
		t.Errorf("Remaining() = %d, want 9", timer.Remaining())
	}
	if timer.Start() {
		t.Error("Start() after Stop() should not restart the timer")
	}
}

func TestTimer_TickBeforeStart(t *testing.T) {
	timer := New(5)
	if timer.Tick() {
		t.Error("Tick() before Start() reported expiry")
	}
	if timer.Remaining() != 5 {
		t.Errorf("Remaining() = %d, want 5", timer.Remaining())
	}
}

func TestTimer_NonPositiveDuration(t *testing.T) {
	timer := New(0)
	timer.Start()
	if timer.State() != Expired {
		t.Errorf("State() = %v, want expired", timer.State())
	}
	if timer.Tick() {
		t.Error("Tick() on expired timer reported expiry")
	}
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		Stopped:   "stopped",
		Running:   "running",
		Expired:   "expired",
		State(42): "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
