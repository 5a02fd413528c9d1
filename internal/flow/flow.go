// Package flow switches between the menu, the two game modes, and the
// game-over screen. It owns at most one session at a time and publishes a
// game event for every transition.
package flow

import (
	"time"

	"github.com/google/uuid"

	"github.com/Iron-Ham/mathmaster/internal/errors"
	"github.com/Iron-Ham/mathmaster/internal/event"
	"github.com/Iron-Ham/mathmaster/internal/logging"
	"github.com/Iron-Ham/mathmaster/internal/problem"
	"github.com/Iron-Ham/mathmaster/internal/schedule"
	"github.com/Iron-Ham/mathmaster/internal/session"
)

// Screen is the currently visible screen.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenPractice
	ScreenPro
	ScreenGameOver
)

// String returns the screen name used in events and logs.
func (s Screen) String() string {
	switch s {
	case ScreenMenu:
		return "menu"
	case ScreenPractice:
		return "practice"
	case ScreenPro:
		return "pro"
	case ScreenGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// InGame reports whether a session is running on this screen.
func (s Screen) InGame() bool {
	return s == ScreenPractice || s == ScreenPro
}

// Reasons reported in SessionStoppedEvent.
const (
	ReasonAbandoned = "abandoned"
	ReasonReplaced  = "replaced"
	ReasonShutdown  = "shutdown"
)

// Settings are the tunables applied to newly started sessions.
type Settings struct {
	// InitialTime is the pro countdown length. Zero means 60 seconds.
	InitialTime time.Duration
	// FeedbackDelay is the verdict display window. Zero means 800ms.
	FeedbackDelay time.Duration
}

// Options configures a Controller.
type Options struct {
	Scheduler schedule.Scheduler
	Bus       *event.Bus
	Logger    *logging.Logger
	// Generator is shared by every session. Nil means a random generator.
	Generator *problem.Generator
	Settings  Settings
	// NewID generates session IDs. Nil means uuid.NewString.
	NewID func() string
}

// Controller drives screen transitions. Like the sessions it owns, it must
// be used from a single goroutine.
type Controller struct {
	sched    schedule.Scheduler
	bus      *event.Bus
	logger   *logging.Logger
	gen      *problem.Generator
	settings Settings
	newID    func() string

	screen     Screen
	current    *session.Session
	table      int
	finalScore int
	lastMode   problem.Mode
}

// New creates a Controller showing the menu.
func New(opts Options) (*Controller, error) {
	if opts.Scheduler == nil {
		return nil, errors.NewValidationError("a scheduler is required").
			WithField("scheduler").WithCause(errors.ErrNoScheduler)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	bus := opts.Bus
	if bus == nil {
		bus = event.NewBus(logger)
	}
	gen := opts.Generator
	if gen == nil {
		gen = problem.NewGenerator(nil)
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	return &Controller{
		sched:    opts.Scheduler,
		bus:      bus,
		logger:   logger,
		gen:      gen,
		settings: opts.Settings,
		newID:    newID,
		screen:   ScreenMenu,
	}, nil
}

// StartPractice begins an untimed session on table, stopping any session
// already running.
func (c *Controller) StartPractice(table int) error {
	return c.start(problem.ModePractice, table)
}

// StartPro begins a timed session with random operands.
func (c *Controller) StartPro() error {
	return c.start(problem.ModePro, 0)
}

func (c *Controller) start(mode problem.Mode, table int) error {
	id := c.newID()
	logger := c.logger.WithSession(id)

	s, err := session.New(session.Options{
		ID:            id,
		Mode:          mode,
		Table:         table,
		InitialTime:   c.settings.InitialTime,
		FeedbackDelay: c.settings.FeedbackDelay,
		Generator:     c.gen,
		Scheduler:     c.sched,
		Logger:        c.logger,
		Listener:      c.listener(id, mode),
	})
	if err != nil {
		logger.Warn("cannot start session", "mode", mode.String(), "table", table, "error", err.Error())
		return errors.NewSessionError("cannot start session", err).WithSessionID(id).WithMode(mode.String())
	}

	c.stopCurrent(ReasonReplaced)
	c.current = s
	c.table = table
	c.lastMode = mode
	c.finalScore = 0

	s.Start()

	snap := s.Snapshot()
	c.bus.Publish(event.NewSessionStartedEvent(id, mode.String(), snap.Table, snap.TimeLimit))
	if mode == problem.ModePro {
		c.setScreen(ScreenPro)
	} else {
		c.setScreen(ScreenPractice)
	}
	return nil
}

func (c *Controller) listener(id string, mode problem.Mode) session.Listener {
	return session.Listener{
		OnScoreChanged: func(score int) {
			c.finalScore = score
			c.bus.Publish(event.NewScoreChangedEvent(id, score))
		},
		OnAnswer: func(p problem.Problem, input string, correct bool) {
			c.bus.Publish(event.NewAnswerCommittedEvent(id, p.String(), input, correct))
		},
		OnGameOver: func(final int) {
			// A stale session cannot reach here: Stop cancels its tick task.
			c.finalScore = final
			c.bus.Publish(event.NewGameOverEvent(id, mode.String(), final))
			c.setScreen(ScreenGameOver)
		},
	}
}

// Abandon leaves a running session (or the game-over screen) for the menu.
// It never fires a game over.
func (c *Controller) Abandon() {
	c.stopCurrent(ReasonAbandoned)
	c.setScreen(ScreenMenu)
}

// PlayAgain returns from the game-over screen to the menu.
func (c *Controller) PlayAgain() {
	if c.screen != ScreenGameOver {
		return
	}
	c.current = nil
	c.setScreen(ScreenMenu)
}

// Shutdown stops any running session. The controller stays usable.
func (c *Controller) Shutdown() {
	c.stopCurrent(ReasonShutdown)
}

func (c *Controller) stopCurrent(reason string) {
	if c.current == nil {
		return
	}
	s := c.current
	c.current = nil
	if !s.Active() {
		return
	}
	s.Stop()
	c.bus.Publish(event.NewSessionStoppedEvent(s.ID(), s.Score(), reason))
}

func (c *Controller) setScreen(to Screen) {
	if c.screen == to {
		return
	}
	from := c.screen
	c.screen = to
	c.bus.Publish(event.NewScreenChangedEvent(from.String(), to.String()))
}

// SubmitDigit forwards a digit to the running session.
func (c *Controller) SubmitDigit(d rune) {
	if c.current != nil && c.screen.InGame() {
		c.current.SubmitDigit(d)
	}
}

// DeleteLastDigit forwards a delete to the running session.
func (c *Controller) DeleteLastDigit() {
	if c.current != nil && c.screen.InGame() {
		c.current.DeleteLastDigit()
	}
}

// ClearInput forwards a clear to the running session.
func (c *Controller) ClearInput() {
	if c.current != nil && c.screen.InGame() {
		c.current.ClearInput()
	}
}

// Snapshot returns the render state of the running session. ok is false
// when no session is on screen.
func (c *Controller) Snapshot() (snap session.Snapshot, ok bool) {
	if c.current == nil || !c.screen.InGame() {
		return session.Snapshot{}, false
	}
	return c.current.Snapshot(), true
}

// Screen returns the visible screen.
func (c *Controller) Screen() Screen { return c.screen }

// FinalScore returns the score of the most recent session.
func (c *Controller) FinalScore() int { return c.finalScore }

// LastMode returns the mode of the most recent session.
func (c *Controller) LastMode() problem.Mode { return c.lastMode }

// Table returns the table of the most recent practice session.
func (c *Controller) Table() int { return c.table }

// Bus returns the event bus transitions are published on.
func (c *Controller) Bus() *event.Bus { return c.bus }

// Settings returns the tunables applied to new sessions.
func (c *Controller) Settings() Settings { return c.settings }

// SetSettings replaces the tunables. Running sessions keep the values they
// started with.
func (c *Controller) SetSettings(s Settings) { c.settings = s }
