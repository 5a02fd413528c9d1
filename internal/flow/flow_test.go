package flow

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/mathmaster/internal/errors"
	"github.com/Iron-Ham/mathmaster/internal/event"
	"github.com/Iron-Ham/mathmaster/internal/logging"
	"github.com/Iron-Ham/mathmaster/internal/problem"
	"github.com/Iron-Ham/mathmaster/internal/schedule"
)

type harness struct {
	ctrl   *Controller
	clock  *schedule.Manual
	events []event.Event
}

func newHarness(t *testing.T, settings Settings, operands ...int) *harness {
	t.Helper()
	h := &harness{clock: schedule.NewManual()}

	var gen *problem.Generator
	if len(operands) > 0 {
		gen = problem.NewGenerator(problem.NewSequenceSource(operands...))
	}

	n := 0
	bus := event.NewBus(nil)
	bus.SubscribeAll(func(e event.Event) { h.events = append(h.events, e) })

	ctrl, err := New(Options{
		Scheduler: h.clock,
		Bus:       bus,
		Generator: gen,
		Settings:  settings,
		NewID: func() string {
			n++
			return fmt.Sprintf("s-%d", n)
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.ctrl = ctrl
	return h
}

func (h *harness) types() []string {
	out := make([]string, len(h.events))
	for i, e := range h.events {
		out[i] = e.EventType()
	}
	return out
}

func (h *harness) count(eventType string) int {
	n := 0
	for _, e := range h.events {
		if e.EventType() == eventType {
			n++
		}
	}
	return n
}

func TestNew_RequiresScheduler(t *testing.T) {
	_, err := New(Options{})
	if !errors.Is(err, errors.ErrNoScheduler) {
		t.Errorf("New() error = %v, want ErrNoScheduler", err)
	}
}

func TestScreen_String(t *testing.T) {
	tests := map[Screen]string{
		ScreenMenu:     "menu",
		ScreenPractice: "practice",
		ScreenPro:      "pro",
		ScreenGameOver: "gameover",
		Screen(42):     "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Screen(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}

func TestController_StartPractice(t *testing.T) {
	h := newHarness(t, Settings{}, 6)

	if h.ctrl.Screen() != ScreenMenu {
		t.Fatalf("initial screen = %v, want menu", h.ctrl.Screen())
	}
	if _, ok := h.ctrl.Snapshot(); ok {
		t.Error("menu should have no session snapshot")
	}

	if err := h.ctrl.StartPractice(7); err != nil {
		t.Fatalf("StartPractice() error = %v", err)
	}
	if h.ctrl.Screen() != ScreenPractice {
		t.Errorf("screen = %v, want practice", h.ctrl.Screen())
	}

	snap, ok := h.ctrl.Snapshot()
	if !ok {
		t.Fatal("expected a session snapshot")
	}
	if snap.Problem != (problem.Problem{A: 7, B: 6}) {
		t.Errorf("problem = %v, want 7 × 6", snap.Problem)
	}
	if snap.ID != "s-1" {
		t.Errorf("session ID = %q, want s-1", snap.ID)
	}

	h.ctrl.SubmitDigit('4')
	h.ctrl.SubmitDigit('2')
	if h.ctrl.FinalScore() != 1 {
		t.Errorf("FinalScore() = %d, want 1", h.ctrl.FinalScore())
	}

	want := []string{
		event.TypeSessionStarted,
		event.TypeScreenChanged,
		event.TypeAnswerCommitted,
		event.TypeScoreChanged,
	}
	if got := h.types(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestController_StartPracticeInvalidTable(t *testing.T) {
	h := newHarness(t, Settings{})

	err := h.ctrl.StartPractice(13)
	if err == nil {
		t.Fatal("StartPractice(13) should fail")
	}
	if !errors.Is(err, errors.ErrInvalidTable) {
		t.Errorf("error = %v, want ErrInvalidTable", err)
	}
	var verr *errors.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("error should wrap a *ValidationError: %T", err)
	}
	if h.ctrl.Screen() != ScreenMenu {
		t.Errorf("screen = %v, want menu", h.ctrl.Screen())
	}
	if len(h.events) != 0 {
		t.Errorf("no events expected, got %v", h.types())
	}
}

func TestController_ProGameOver(t *testing.T) {
	h := newHarness(t, Settings{InitialTime: 3 * time.Second}, 2, 3)

	if err := h.ctrl.StartPro(); err != nil {
		t.Fatalf("StartPro() error = %v", err)
	}
	if h.ctrl.Screen() != ScreenPro {
		t.Fatalf("screen = %v, want pro", h.ctrl.Screen())
	}

	h.ctrl.SubmitDigit('6')
	h.clock.Advance(3 * time.Second)

	if h.ctrl.Screen() != ScreenGameOver {
		t.Fatalf("screen = %v, want gameover", h.ctrl.Screen())
	}
	if h.ctrl.FinalScore() != 1 {
		t.Errorf("FinalScore() = %d, want 1", h.ctrl.FinalScore())
	}
	if h.ctrl.LastMode() != problem.ModePro {
		t.Errorf("LastMode() = %v, want pro", h.ctrl.LastMode())
	}
	if h.count(event.TypeGameOver) != 1 {
		t.Errorf("game over events = %d, want 1", h.count(event.TypeGameOver))
	}
	if h.count(event.TypeSessionStopped) != 0 {
		t.Error("natural expiry should not publish session.stopped")
	}

	// Input on the game-over screen goes nowhere.
	h.ctrl.SubmitDigit('1')
	if _, ok := h.ctrl.Snapshot(); ok {
		t.Error("game-over screen should have no live snapshot")
	}

	h.ctrl.PlayAgain()
	if h.ctrl.Screen() != ScreenMenu {
		t.Errorf("screen after PlayAgain = %v, want menu", h.ctrl.Screen())
	}
	if h.clock.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", h.clock.Pending())
	}
}

func TestController_Abandon(t *testing.T) {
	h := newHarness(t, Settings{InitialTime: 10 * time.Second})

	if err := h.ctrl.StartPro(); err != nil {
		t.Fatal(err)
	}
	h.clock.Advance(2 * time.Second)
	h.ctrl.Abandon()

	if h.ctrl.Screen() != ScreenMenu {
		t.Errorf("screen = %v, want menu", h.ctrl.Screen())
	}
	if h.clock.Pending() != 0 {
		t.Errorf("Pending() after Abandon = %d, want 0", h.clock.Pending())
	}

	h.clock.Advance(time.Minute)
	if h.count(event.TypeGameOver) != 0 {
		t.Error("abandoned session must not reach game over")
	}

	var stopped event.SessionStoppedEvent
	for _, e := range h.events {
		if s, ok := e.(event.SessionStoppedEvent); ok {
			stopped = s
		}
	}
	if stopped.Reason != ReasonAbandoned {
		t.Errorf("stop reason = %q, want %q", stopped.Reason, ReasonAbandoned)
	}
}

func TestController_StartReplacesSession(t *testing.T) {
	h := newHarness(t, Settings{InitialTime: 5 * time.Second})

	if err := h.ctrl.StartPro(); err != nil {
		t.Fatal(err)
	}
	if err := h.ctrl.StartPractice(3); err != nil {
		t.Fatal(err)
	}

	if h.ctrl.Screen() != ScreenPractice {
		t.Errorf("screen = %v, want practice", h.ctrl.Screen())
	}
	// Only the pro session had a tick task, and it is gone.
	if h.clock.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", h.clock.Pending())
	}
	h.clock.Advance(time.Minute)
	if h.ctrl.Screen() != ScreenPractice {
		t.Error("the replaced pro session ended the practice session")
	}

	for _, e := range h.events {
		if s, ok := e.(event.SessionStoppedEvent); ok {
			if s.SessionID != "s-1" || s.Reason != ReasonReplaced {
				t.Errorf("stopped event = %+v, want s-1 replaced", s)
			}
		}
	}
}

func TestController_Shutdown(t *testing.T) {
	h := newHarness(t, Settings{})
	if err := h.ctrl.StartPro(); err != nil {
		t.Fatal(err)
	}

	h.ctrl.Shutdown()
	h.ctrl.Shutdown()

	if h.clock.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", h.clock.Pending())
	}
	if h.count(event.TypeSessionStopped) != 1 {
		t.Errorf("session.stopped events = %d, want 1", h.count(event.TypeSessionStopped))
	}
}

func TestController_SettingsApplyToNextSession(t *testing.T) {
	h := newHarness(t, Settings{InitialTime: 5 * time.Second})

	if err := h.ctrl.StartPro(); err != nil {
		t.Fatal(err)
	}
	h.ctrl.SetSettings(Settings{InitialTime: 20 * time.Second})

	snap, _ := h.ctrl.Snapshot()
	if snap.TimeRemaining != 5 {
		t.Errorf("running session TimeRemaining = %d, want 5", snap.TimeRemaining)
	}

	h.ctrl.Abandon()
	if err := h.ctrl.StartPro(); err != nil {
		t.Fatal(err)
	}
	snap, _ = h.ctrl.Snapshot()
	if snap.TimeRemaining != 20 {
		t.Errorf("new session TimeRemaining = %d, want 20", snap.TimeRemaining)
	}
}

func TestLogEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriterLogger(&buf, logging.LevelDebug)

	bus := event.NewBus(logger)
	id := LogEvents(bus, logger)
	if id == "" {
		t.Fatal("LogEvents should return a subscription ID")
	}

	bus.Publish(event.NewSessionStartedEvent("s-1", "pro", 0, 60))
	bus.Publish(event.NewGameOverEvent("s-1", "pro", 12))

	out := buf.String()
	for _, want := range []string{`"msg":"session started"`, `"msg":"game over"`, `"final_score":12`, `"component":"events"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}
