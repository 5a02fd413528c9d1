package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeSessionStarted  = "session.started"
	TypeScoreChanged    = "score.changed"
	TypeAnswerCommitted = "answer.committed"
	TypeGameOver        = "game.over"
	TypeSessionStopped  = "session.stopped"
	TypeScreenChanged   = "screen.changed"
)

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Session Lifecycle Events
// -----------------------------------------------------------------------------

// SessionStartedEvent is emitted when a drill session begins.
type SessionStartedEvent struct {
	baseEvent
	SessionID string
	Mode      string
	Table     int // practice only, 0 in pro
	TimeLimit int // seconds, pro only
}

// NewSessionStartedEvent creates a SessionStartedEvent.
func NewSessionStartedEvent(sessionID, mode string, table, timeLimit int) SessionStartedEvent {
	return SessionStartedEvent{
		baseEvent: newBaseEvent(TypeSessionStarted),
		SessionID: sessionID,
		Mode:      mode,
		Table:     table,
		TimeLimit: timeLimit,
	}
}

// SessionStoppedEvent is emitted when a session is torn down before (or
// instead of) a game over, e.g. when the player returns to the menu.
type SessionStoppedEvent struct {
	baseEvent
	SessionID string
	Score     int
	Reason    string // "abandoned", "replaced", "shutdown"
}

// NewSessionStoppedEvent creates a SessionStoppedEvent.
func NewSessionStoppedEvent(sessionID string, score int, reason string) SessionStoppedEvent {
	return SessionStoppedEvent{
		baseEvent: newBaseEvent(TypeSessionStopped),
		SessionID: sessionID,
		Score:     score,
		Reason:    reason,
	}
}

// GameOverEvent is emitted exactly once when a pro session runs out of time.
type GameOverEvent struct {
	baseEvent
	SessionID  string
	Mode       string
	FinalScore int
}

// NewGameOverEvent creates a GameOverEvent.
func NewGameOverEvent(sessionID, mode string, finalScore int) GameOverEvent {
	return GameOverEvent{
		baseEvent:  newBaseEvent(TypeGameOver),
		SessionID:  sessionID,
		Mode:       mode,
		FinalScore: finalScore,
	}
}

// -----------------------------------------------------------------------------
// Gameplay Events
// -----------------------------------------------------------------------------

// ScoreChangedEvent is emitted on every score increment.
type ScoreChangedEvent struct {
	baseEvent
	SessionID string
	Score     int
}

// NewScoreChangedEvent creates a ScoreChangedEvent.
func NewScoreChangedEvent(sessionID string, score int) ScoreChangedEvent {
	return ScoreChangedEvent{
		baseEvent: newBaseEvent(TypeScoreChanged),
		SessionID: sessionID,
		Score:     score,
	}
}

// AnswerCommittedEvent is emitted when the input buffer reaches a verdict.
type AnswerCommittedEvent struct {
	baseEvent
	SessionID string
	Problem   string // e.g. "7 × 6"
	Input     string
	Correct   bool
}

// NewAnswerCommittedEvent creates an AnswerCommittedEvent.
func NewAnswerCommittedEvent(sessionID, problem, input string, correct bool) AnswerCommittedEvent {
	return AnswerCommittedEvent{
		baseEvent: newBaseEvent(TypeAnswerCommitted),
		SessionID: sessionID,
		Problem:   problem,
		Input:     input,
		Correct:   correct,
	}
}

// -----------------------------------------------------------------------------
// UI Events
// -----------------------------------------------------------------------------

// ScreenChangedEvent is emitted when the flow controller switches screens.
type ScreenChangedEvent struct {
	baseEvent
	From string
	To   string
}

// NewScreenChangedEvent creates a ScreenChangedEvent.
func NewScreenChangedEvent(from, to string) ScreenChangedEvent {
	return ScreenChangedEvent{
		baseEvent: newBaseEvent(TypeScreenChanged),
		From:      from,
		To:        to,
	}
}
