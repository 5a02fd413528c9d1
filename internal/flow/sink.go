package flow

import (
	"github.com/Iron-Ham/mathmaster/internal/event"
	"github.com/Iron-Ham/mathmaster/internal/logging"
)

// LogEvents subscribes a handler that writes every game event to logger.
// It returns the subscription ID.
func LogEvents(bus *event.Bus, logger *logging.Logger) string {
	log := logger.WithComponent("events")
	return bus.SubscribeAll(func(e event.Event) {
		switch ev := e.(type) {
		case event.SessionStartedEvent:
			log.Info("session started", "session_id", ev.SessionID, "mode", ev.Mode, "table", ev.Table, "time_limit", ev.TimeLimit)
		case event.SessionStoppedEvent:
			log.Info("session stopped", "session_id", ev.SessionID, "score", ev.Score, "reason", ev.Reason)
		case event.GameOverEvent:
			log.Info("game over", "session_id", ev.SessionID, "mode", ev.Mode, "final_score", ev.FinalScore)
		case event.ScoreChangedEvent:
			log.Debug("score changed", "session_id", ev.SessionID, "score", ev.Score)
		case event.AnswerCommittedEvent:
			log.Debug("answer committed", "session_id", ev.SessionID, "problem", ev.Problem, "input", ev.Input, "correct", ev.Correct)
		case event.ScreenChangedEvent:
			log.Debug("screen changed", "from", ev.From, "to", ev.To)
		default:
			log.Debug("event", "type", e.EventType())
		}
	})
}
