// Package session implements the multiplication drill state machine.
//
// A Session owns the current problem, the player's input buffer, the score,
// and (in pro mode) the countdown. It is driven entirely by method calls from
// a single goroutine: input events from the UI and callbacks from its
// Scheduler. Callbacks the scheduler runs are the only source of delayed
// state changes, and every one of them is cancelled before the session
// becomes inactive.
//
// Input is evaluated eagerly. Each digit is judged as soon as it is typed:
// a buffer whose value equals the product is correct, a buffer that is as long
// as the product but wrong is incorrect, and anything else is still pending.
package session

import (
	"time"

	"github.com/Iron-Ham/mathmaster/internal/answer"
	"github.com/Iron-Ham/mathmaster/internal/countdown"
	"github.com/Iron-Ham/mathmaster/internal/errors"
	"github.com/Iron-Ham/mathmaster/internal/logging"
	"github.com/Iron-Ham/mathmaster/internal/problem"
	"github.com/Iron-Ham/mathmaster/internal/schedule"
)

// DefaultFeedbackDelay is how long a verdict stays on screen.
const DefaultFeedbackDelay = 800 * time.Millisecond

// tickInterval drives the pro countdown.
const tickInterval = time.Second

// State is the lifecycle state of a session.
type State int

const (
	// Inactive is the state before Start and after expiry or Stop.
	Inactive State = iota
	// Active accepts input.
	Active
)

// String returns a lowercase name for the state.
func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Feedback is the verdict currently shown for the input buffer.
type Feedback int

const (
	// Neutral means no verdict yet.
	Neutral Feedback = iota
	// Correct locks input until the next problem appears.
	Correct
	// Incorrect shows the miss until the buffer is reset.
	Incorrect
)

// String returns a lowercase name for the feedback.
func (f Feedback) String() string {
	switch f {
	case Neutral:
		return "neutral"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

// Listener receives outbound notifications. Nil fields are skipped.
// Callbacks run synchronously on the goroutine driving the session.
type Listener struct {
	// OnScoreChanged is called after every increment with the new score.
	OnScoreChanged func(score int)
	// OnGameOver is called once when the pro countdown reaches zero.
	OnGameOver func(finalScore int)
	// OnAnswer is called when the buffer reaches a verdict.
	OnAnswer func(p problem.Problem, input string, correct bool)
}

// Options configures a Session.
type Options struct {
	// ID identifies the session in logs and events.
	ID string
	// Mode is practice or pro.
	Mode problem.Mode
	// Table is the fixed operand in practice mode. Ignored in pro mode.
	Table int
	// InitialTime is the pro countdown length, truncated to whole seconds.
	// Zero means countdown.DefaultDuration.
	InitialTime time.Duration
	// FeedbackDelay is the verdict display window. Zero means DefaultFeedbackDelay.
	FeedbackDelay time.Duration
	// Generator draws problems. Nil uses a randomly seeded generator.
	Generator *problem.Generator
	// Scheduler runs the countdown and feedback tasks. Required.
	Scheduler schedule.Scheduler
	// Listener receives score and game-over notifications.
	Listener Listener
	// Logger receives session diagnostics. Nil discards them.
	Logger *logging.Logger
}

// Snapshot is the render state of a session.
type Snapshot struct {
	ID            string
	Mode          problem.Mode
	Table         int
	Problem       problem.Problem
	Input         string
	Feedback      Feedback
	Score         int
	Timed         bool
	TimeRemaining int
	TimeLimit     int
	Active        bool
}

// Session is a single drill run. It is not safe for concurrent use.
type Session struct {
	id       string
	mode     problem.Mode
	table    int
	delay    time.Duration
	gen      *problem.Generator
	sched    schedule.Scheduler
	listener Listener
	logger   *logging.Logger

	state    State
	started  bool
	problem  problem.Problem
	input    string
	feedback Feedback
	score    int
	timer    *countdown.Timer

	tickTask     schedule.Task
	feedbackTask schedule.Task
}

// New validates opts and returns an inactive session. Call Start to begin.
func New(opts Options) (*Session, error) {
	if !opts.Mode.Valid() {
		return nil, errors.NewValidationError("unknown game mode").
			WithField("mode").WithValue(string(opts.Mode)).WithCause(errors.ErrInvalidMode)
	}
	if opts.Mode == problem.ModePractice && !problem.ValidTable(opts.Table) {
		return nil, errors.NewValidationError("table must be between 1 and 12").
			WithField("table").WithValue(opts.Table).WithCause(errors.ErrInvalidTable)
	}
	if opts.Scheduler == nil {
		return nil, errors.NewValidationError("a scheduler is required").
			WithField("scheduler").WithCause(errors.ErrNoScheduler)
	}

	initial := opts.InitialTime
	if initial == 0 {
		initial = countdown.DefaultDuration
	}
	seconds := int(initial / time.Second)
	if opts.Mode == problem.ModePro && seconds <= 0 {
		return nil, errors.NewValidationError("time limit must be at least one second").
			WithField("initial_time").WithValue(opts.InitialTime.String()).WithCause(errors.ErrInvalidTime)
	}

	delay := opts.FeedbackDelay
	if delay <= 0 {
		delay = DefaultFeedbackDelay
	}

	gen := opts.Generator
	if gen == nil {
		gen = problem.NewGenerator(nil)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	s := &Session{
		id:       opts.ID,
		mode:     opts.Mode,
		delay:    delay,
		gen:      gen,
		sched:    opts.Scheduler,
		listener: opts.Listener,
		logger:   logger.WithSession(opts.ID).WithMode(opts.Mode.String()).WithComponent("session"),
	}
	if opts.Mode == problem.ModePro {
		s.timer = countdown.New(seconds)
	} else {
		s.table = opts.Table
	}
	return s, nil
}

// Start draws the first problem and, in pro mode, starts the countdown.
// A session starts at most once; later calls are no-ops.
func (s *Session) Start() {
	if s.started {
		return
	}
	s.started = true
	s.state = Active
	s.score = 0
	s.nextProblem()

	if s.timer != nil {
		s.timer.Start()
		s.tickTask = s.sched.Every(tickInterval, s.Tick)
		s.logger.Info("session started", "time_limit", s.timer.Initial())
		return
	}
	s.logger.Info("session started", "table", s.table)
}

// SubmitDigit appends d to the input and evaluates it. It is ignored while
// a verdict is on screen, when the session is inactive, and for non-digits.
func (s *Session) SubmitDigit(d rune) {
	if s.state != Active || s.feedback != Neutral {
		return
	}
	if d < '0' || d > '9' {
		return
	}

	s.input += string(d)

	switch answer.Evaluate(s.input, s.problem) {
	case answer.Correct:
		s.feedback = Correct
		s.score++
		s.logger.Debug("answer correct", "problem", s.problem.String(), "input", s.input, "score", s.score)
		s.notifyAnswer(true)
		if s.listener.OnScoreChanged != nil {
			s.listener.OnScoreChanged(s.score)
		}
		// The listener may have stopped us.
		if s.state == Active {
			s.feedbackTask = s.sched.After(s.delay, s.advance)
		}
	case answer.Incorrect:
		s.feedback = Incorrect
		s.logger.Debug("answer incorrect", "problem", s.problem.String(), "input", s.input)
		s.notifyAnswer(false)
		if s.state == Active {
			s.feedbackTask = s.sched.After(s.delay, s.retry)
		}
	}
}

// DeleteLastDigit removes the last typed digit and clears any miss verdict.
// It is ignored while a correct answer is on screen.
func (s *Session) DeleteLastDigit() {
	if s.state != Active || s.feedback == Correct {
		return
	}
	if s.input != "" {
		s.input = s.input[:len(s.input)-1]
	}
	s.resetFeedback()
}

// ClearInput empties the buffer and clears any miss verdict. It is ignored
// while a correct answer is on screen. Repeated calls are harmless.
func (s *Session) ClearInput() {
	if s.state != Active || s.feedback == Correct {
		return
	}
	s.input = ""
	s.resetFeedback()
}

// Tick consumes one second of a pro session. When the clock reaches zero
// the session ends and OnGameOver fires exactly once.
func (s *Session) Tick() {
	if s.state != Active || s.timer == nil {
		return
	}
	if !s.timer.Tick() {
		return
	}

	s.cancelTasks()
	s.state = Inactive
	s.logger.Info("time up", "final_score", s.score)
	if s.listener.OnGameOver != nil {
		s.listener.OnGameOver(s.score)
	}
}

// Stop tears the session down. Outstanding tasks are cancelled before the
// state changes, and OnGameOver is never fired. Stop is idempotent.
func (s *Session) Stop() {
	s.cancelTasks()
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.state == Active {
		s.logger.Info("session stopped", "score", s.score)
	}
	s.state = Inactive
	s.started = true
}

// Snapshot returns the current render state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:       s.id,
		Mode:     s.mode,
		Table:    s.table,
		Problem:  s.problem,
		Input:    s.input,
		Feedback: s.feedback,
		Score:    s.score,
		Active:   s.state == Active,
	}
	if s.timer != nil {
		snap.Timed = true
		snap.TimeRemaining = s.timer.Remaining()
		snap.TimeLimit = s.timer.Initial()
	}
	return snap
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Mode returns the game mode.
func (s *Session) Mode() problem.Mode { return s.mode }

// Score returns the number of correct answers so far.
func (s *Session) Score() int { return s.score }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Active reports whether the session accepts input.
func (s *Session) Active() bool { return s.state == Active }

// advance runs when the correct-answer window closes.
func (s *Session) advance() {
	s.feedbackTask = nil
	if s.state != Active {
		return
	}
	s.nextProblem()
}

// retry runs when the miss window closes: same problem, empty buffer.
func (s *Session) retry() {
	s.feedbackTask = nil
	if s.state != Active {
		return
	}
	s.input = ""
	s.feedback = Neutral
}

func (s *Session) nextProblem() {
	s.problem = s.gen.Next(s.mode, s.table)
	s.input = ""
	s.feedback = Neutral
}

func (s *Session) resetFeedback() {
	s.feedback = Neutral
	if s.feedbackTask != nil {
		s.feedbackTask.Cancel()
		s.feedbackTask = nil
	}
}

func (s *Session) cancelTasks() {
	if s.tickTask != nil {
		s.tickTask.Cancel()
		s.tickTask = nil
	}
	if s.feedbackTask != nil {
		s.feedbackTask.Cancel()
		s.feedbackTask = nil
	}
}

func (s *Session) notifyAnswer(correct bool) {
	if s.listener.OnAnswer != nil {
		s.listener.OnAnswer(s.problem, s.input, correct)
	}
}
