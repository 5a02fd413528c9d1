// Package event provides a pub-sub event bus for game events in mathmaster.
//
// The flow controller publishes an event for every session transition. The
// TUI and the log sink subscribe to them without the session core knowing
// who is listening.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Types
//
//   - [SessionStartedEvent]: a practice or pro session began
//   - [ScoreChangedEvent]: a correct answer raised the score
//   - [AnswerCommittedEvent]: the input reached a verdict
//   - [GameOverEvent]: the pro countdown reached zero
//   - [SessionStoppedEvent]: a session was torn down without a game over
//   - [ScreenChangedEvent]: the visible screen changed
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. Handlers are called synchronously
// on the publishing goroutine and protected against panics.
//
// # Basic Usage
//
//	bus := event.NewBus(logger)
//
//	bus.Subscribe(event.TypeGameOver, func(e event.Event) {
//	    over := e.(event.GameOverEvent)
//	    fmt.Println("final score", over.FinalScore)
//	})
//
//	bus.SubscribeAll(func(e event.Event) {
//	    logger.Debug("event", "type", e.EventType())
//	})
//
//	bus.Publish(event.NewGameOverEvent("s-1", "pro", 12))
//
// Event types follow the pattern "category.action".
package event
