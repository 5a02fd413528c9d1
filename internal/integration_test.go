// Package internal contains integration tests that run the flow controller
// on the wall-clock scheduler, with a goroutine standing in for the TUI
// event loop.
package internal

import (
	"testing"
	"time"

	"github.com/Iron-Ham/mathmaster/internal/event"
	"github.com/Iron-Ham/mathmaster/internal/flow"
	"github.com/Iron-Ham/mathmaster/internal/problem"
	"github.com/Iron-Ham/mathmaster/internal/schedule"
	"github.com/Iron-Ham/mathmaster/internal/session"
)

// eventLoop serializes scheduler callbacks the way the bubbletea program does.
type eventLoop struct {
	tasks chan func()
	done  chan struct{}
}

func newEventLoop(t *testing.T) *eventLoop {
	t.Helper()
	l := &eventLoop{tasks: make(chan func()), done: make(chan struct{})}
	t.Cleanup(func() { close(l.done) })
	return l
}

func (l *eventLoop) dispatch(run func()) {
	select {
	case l.tasks <- run:
	case <-l.done:
	}
}

// runUntil executes dispatched callbacks until cond holds or timeout passes.
func (l *eventLoop) runUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.After(timeout)
	for !cond() {
		select {
		case run := <-l.tasks:
			run()
		case <-deadline:
			t.Fatalf("condition not met within %v", timeout)
		}
	}
}

// recorder collects event types. Handlers run on the goroutine driving the
// controller, which is always the test goroutine here.
type recorder struct {
	types []string
}

func (r *recorder) record(e event.Event) {
	r.types = append(r.types, e.EventType())
}

func (r *recorder) count(eventType string) int {
	n := 0
	for _, got := range r.types {
		if got == eventType {
			n++
		}
	}
	return n
}

func newController(t *testing.T, settings flow.Settings) (*flow.Controller, *eventLoop, *schedule.Loop, *recorder) {
	t.Helper()
	el := newEventLoop(t)
	loop := schedule.NewLoop(el.dispatch)
	t.Cleanup(loop.Close)

	ctrl, err := flow.New(flow.Options{
		Scheduler: loop,
		Generator: problem.NewGenerator(problem.NewSequenceSource(3, 4)),
		Settings:  settings,
	})
	if err != nil {
		t.Fatalf("flow.New() error = %v", err)
	}
	rec := &recorder{}
	ctrl.Bus().Subscribe(event.Wildcard, rec.record)
	return ctrl, el, loop, rec
}

func TestPracticeFeedbackOnWallClock(t *testing.T) {
	ctrl, el, loop, rec := newController(t, flow.Settings{FeedbackDelay: 20 * time.Millisecond})

	if err := ctrl.StartPractice(5); err != nil {
		t.Fatalf("StartPractice() error = %v", err)
	}
	snap, _ := ctrl.Snapshot()
	if snap.Problem != (problem.Problem{A: 5, B: 3}) {
		t.Fatalf("first problem = %v, want 5 × 3", snap.Problem)
	}

	ctrl.SubmitDigit('1')
	ctrl.SubmitDigit('5')
	snap, _ = ctrl.Snapshot()
	if snap.Feedback != session.Correct {
		t.Fatalf("feedback = %v, want correct", snap.Feedback)
	}

	el.runUntil(t, 2*time.Second, func() bool {
		snap, _ := ctrl.Snapshot()
		return snap.Feedback == session.Neutral
	})
	snap, _ = ctrl.Snapshot()
	if snap.Problem != (problem.Problem{A: 5, B: 4}) || snap.Input != "" {
		t.Errorf("after feedback: problem=%v input=%q", snap.Problem, snap.Input)
	}
	if loop.Pending() != 0 {
		t.Errorf("pending tasks = %d, want 0", loop.Pending())
	}
	if got := rec.count(event.TypeScoreChanged); got != 1 {
		t.Errorf("score.changed events = %d, want 1", got)
	}
}

func TestProCountdownOnWallClock(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a one second countdown")
	}
	ctrl, el, loop, rec := newController(t, flow.Settings{InitialTime: time.Second})

	if err := ctrl.StartPro(); err != nil {
		t.Fatalf("StartPro() error = %v", err)
	}

	el.runUntil(t, 5*time.Second, func() bool {
		return ctrl.Screen() == flow.ScreenGameOver
	})

	if got := rec.count(event.TypeGameOver); got != 1 {
		t.Errorf("game.over events = %d, want 1", got)
	}
	if loop.Pending() != 0 {
		t.Errorf("pending tasks after game over = %d, want 0", loop.Pending())
	}
}

func TestAbandonCancelsWallClockTasks(t *testing.T) {
	ctrl, _, loop, rec := newController(t, flow.Settings{FeedbackDelay: time.Hour})

	if err := ctrl.StartPro(); err != nil {
		t.Fatalf("StartPro() error = %v", err)
	}
	// 3 × 4 = 12; a wrong two-digit answer schedules the reset.
	ctrl.SubmitDigit('1')
	ctrl.SubmitDigit('3')
	if loop.Pending() != 2 {
		t.Fatalf("pending tasks = %d, want tick and reset", loop.Pending())
	}

	ctrl.Abandon()
	if loop.Pending() != 0 {
		t.Errorf("pending tasks after abandon = %d, want 0", loop.Pending())
	}
	if got := rec.count(event.TypeSessionStopped); got != 1 {
		t.Errorf("session.stopped events = %d, want 1", got)
	}
	if ctrl.Screen() != flow.ScreenMenu {
		t.Errorf("screen = %v, want menu", ctrl.Screen())
	}
}
