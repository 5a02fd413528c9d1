package schedule

import (
	"sync"
	"sync/atomic"
	"time"
)

// Dispatcher hands a callback to the goroutine that owns the scheduled state.
// In the TUI it posts a message to the bubbletea program.
type Dispatcher func(run func())

// Loop schedules tasks on the wall clock and runs them through a Dispatcher.
//
// One-shot tasks use time.AfterFunc. Periodic tasks use a time.Ticker, which
// keeps its phase aligned to the start time and drops ticks for a slow
// receiver instead of queueing them, so a periodic task never runs more than
// once per elapsed period.
//
// Loop methods may be called from any goroutine.
type Loop struct {
	dispatch Dispatcher

	mu     sync.Mutex
	tasks  map[*loopTask]struct{}
	closed bool
}

// NewLoop creates a Loop that runs due callbacks with dispatch.
func NewLoop(dispatch Dispatcher) *Loop {
	return &Loop{
		dispatch: dispatch,
		tasks:    make(map[*loopTask]struct{}),
	}
}

// After runs fn once after d.
func (l *Loop) After(d time.Duration, fn func()) Task {
	t := &loopTask{loop: l, fn: fn, once: true}
	if !l.track(t) {
		return t
	}
	t.timer = time.AfterFunc(d, func() {
		l.dispatch(t.run)
	})
	return t
}

// Every runs fn every d until the task is cancelled.
func (l *Loop) Every(d time.Duration, fn func()) Task {
	if d <= 0 {
		panic("schedule: non-positive interval for Every")
	}
	t := &loopTask{loop: l, fn: fn, done: make(chan struct{})}
	if !l.track(t) {
		return t
	}
	t.ticker = time.NewTicker(d)
	go t.tickLoop()
	return t
}

// Pending returns the number of tasks that have not finished or been cancelled.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Close cancels every outstanding task. Tasks scheduled after Close never run.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	tasks := make([]*loopTask, 0, len(l.tasks))
	for t := range l.tasks {
		tasks = append(tasks, t)
	}
	l.mu.Unlock()

	for _, t := range tasks {
		t.Cancel()
	}
}

// track registers t. It returns false, leaving t cancelled, if the loop is closed.
func (l *Loop) track(t *loopTask) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		t.cancelled.Store(true)
		return false
	}
	l.tasks[t] = struct{}{}
	return true
}

func (l *Loop) untrack(t *loopTask) {
	l.mu.Lock()
	delete(l.tasks, t)
	l.mu.Unlock()
}

type loopTask struct {
	loop *Loop
	fn   func()
	once bool

	timer  *time.Timer
	ticker *time.Ticker
	done   chan struct{}

	cancelled atomic.Bool
	stopOnce  sync.Once
}

// run executes on the dispatcher's goroutine.
func (t *loopTask) run() {
	if t.cancelled.Load() {
		return
	}
	if t.once {
		t.cancelled.Store(true)
		t.loop.untrack(t)
	}
	t.fn()
}

func (t *loopTask) tickLoop() {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			if t.cancelled.Load() {
				return
			}
			t.loop.dispatch(t.run)
		}
	}
}

// Cancel stops the task. A dispatch already in flight becomes a no-op.
func (t *loopTask) Cancel() {
	t.cancelled.Store(true)
	t.stopOnce.Do(func() {
		if t.timer != nil {
			t.timer.Stop()
		}
		if t.ticker != nil {
			t.ticker.Stop()
		}
		if t.done != nil {
			close(t.done)
		}
		t.loop.untrack(t)
	})
}
