// Package countdown implements the pro-mode session clock.
//
// A Timer only counts; it does not own a goroutine or a ticker. The owner
// drives it with one Tick per elapsed second, which keeps the decrement and
// the expiry transition on the owner's event loop.
package countdown

import "time"

// DefaultDuration is the length of a pro session.
const DefaultDuration = 60 * time.Second

// State is the lifecycle state of a Timer.
type State int

const (
	// Stopped is the initial state, and the state after an early teardown.
	Stopped State = iota
	// Running means ticks decrement the remaining time.
	Running
	// Expired is terminal: the remaining time reached zero.
	Expired
)

// String returns a lowercase name for the state.
func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Timer counts whole seconds down to zero.
type Timer struct {
	initial   int
	remaining int
	state     State
	started   bool
}

// New creates a stopped timer that will run for seconds.
func New(seconds int) *Timer {
	return &Timer{initial: seconds, remaining: seconds}
}

// Start moves a fresh timer to Running. It returns false if the timer has
// already been started, since a session clock is never restarted.
func (t *Timer) Start() bool {
	if t.started {
		return false
	}
	t.started = true
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = Expired
		return true
	}
	t.state = Running
	return true
}

// Tick consumes one second. It returns true only on the tick that expires
// the timer; ticks outside Running change nothing and return false.
func (t *Timer) Tick() bool {
	if t.state != Running {
		return false
	}
	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = Expired
		return true
	}
	return false
}

// Stop halts a running timer without expiring it.
func (t *Timer) Stop() {
	if t.state == Running {
		t.state = Stopped
	}
}

// Remaining returns the whole seconds left.
func (t *Timer) Remaining() int { return t.remaining }

// Initial returns the configured duration in seconds.
func (t *Timer) Initial() int { return t.initial }

// State returns the current state.
func (t *Timer) State() State { return t.state }
