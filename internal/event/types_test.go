package event

import (
	"testing"
	"time"
)

func TestEventTypes(t *testing.T) {
	before := time.Now()

	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{"session started", NewSessionStartedEvent("s", "pro", 0, 60), TypeSessionStarted},
		{"session stopped", NewSessionStoppedEvent("s", 3, "abandoned"), TypeSessionStopped},
		{"game over", NewGameOverEvent("s", "pro", 9), TypeGameOver},
		{"score changed", NewScoreChangedEvent("s", 1), TypeScoreChanged},
		{"answer committed", NewAnswerCommittedEvent("s", "7 × 6", "42", true), TypeAnswerCommitted},
		{"screen changed", NewScreenChangedEvent("menu", "practice"), TypeScreenChanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.EventType(); got != tt.want {
				t.Errorf("EventType() = %q, want %q", got, tt.want)
			}
			if tt.event.Timestamp().Before(before) {
				t.Error("Timestamp() should be set at construction")
			}
		})
	}
}

func TestGameOverEvent_Fields(t *testing.T) {
	e := NewGameOverEvent("s-9", "pro", 17)
	if e.SessionID != "s-9" || e.Mode != "pro" || e.FinalScore != 17 {
		t.Errorf("unexpected fields: %+v", e)
	}
}
