package schedule

import (
	"testing"
	"time"
)

// chanDispatcher queues callbacks so the test goroutine can run them, the
// way a bubbletea Update loop would.
func chanDispatcher() (Dispatcher, chan func()) {
	ch := make(chan func(), 16)
	return func(run func()) { ch <- run }, ch
}

func TestLoop_AfterDispatches(t *testing.T) {
	dispatch, ch := chanDispatcher()
	loop := NewLoop(dispatch)
	defer loop.Close()

	fired := false
	loop.After(10*time.Millisecond, func() { fired = true })

	select {
	case run := <-ch:
		run()
	case <-time.After(2 * time.Second):
		t.Fatal("callback was never dispatched")
	}

	if !fired {
		t.Error("callback did not run")
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", loop.Pending())
	}
}

func TestLoop_CancelAfterDispatch(t *testing.T) {
	dispatch, ch := chanDispatcher()
	loop := NewLoop(dispatch)
	defer loop.Close()

	fired := false
	task := loop.After(5*time.Millisecond, func() { fired = true })

	var run func()
	select {
	case run = <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("callback was never dispatched")
	}

	// The dispatch is in flight; cancelling now must still win.
	task.Cancel()
	run()

	if fired {
		t.Error("cancelled callback ran after dispatch")
	}
}

func TestLoop_Every(t *testing.T) {
	dispatch, ch := chanDispatcher()
	loop := NewLoop(dispatch)
	defer loop.Close()

	ticks := 0
	task := loop.Every(5*time.Millisecond, func() { ticks++ })

	deadline := time.After(2 * time.Second)
	for ticks < 3 {
		select {
		case run := <-ch:
			run()
		case <-deadline:
			t.Fatalf("only %d ticks before deadline", ticks)
		}
	}

	task.Cancel()
	before := ticks

	// Drain anything already queued; none of it may run.
	drain := time.After(30 * time.Millisecond)
	for done := false; !done; {
		select {
		case run := <-ch:
			run()
		case <-drain:
			done = true
		}
	}

	if ticks != before {
		t.Errorf("ticks advanced after Cancel: %d -> %d", before, ticks)
	}
}

func TestLoop_Close(t *testing.T) {
	dispatch, ch := chanDispatcher()
	loop := NewLoop(dispatch)

	fired := false
	loop.After(5*time.Millisecond, func() { fired = true })
	loop.Close()

	if loop.Pending() != 0 {
		t.Errorf("Pending() after Close = %d, want 0", loop.Pending())
	}

	loop.After(time.Millisecond, func() { fired = true })

	select {
	case run := <-ch:
		run()
	case <-time.After(30 * time.Millisecond):
	}

	if fired {
		t.Error("task ran after Close")
	}
}

func TestEvery_PanicsOnNonPositive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero interval")
		}
	}()
	NewManual().Every(0, func() {})
}
