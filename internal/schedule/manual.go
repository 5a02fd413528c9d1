package schedule

import "time"

// Manual is a Scheduler driven by a virtual clock. Nothing runs until
// Advance is called; callbacks then run synchronously, in due order, on the
// caller's goroutine. Tasks due at the same instant run in scheduling order.
//
// Manual is not safe for concurrent use.
type Manual struct {
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

// NewManual creates a Manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// After schedules fn to run once d after the current virtual time.
func (m *Manual) After(d time.Duration, fn func()) Task {
	return m.add(d, 0, fn)
}

// Every schedules fn to run every d.
func (m *Manual) Every(d time.Duration, fn func()) Task {
	if d <= 0 {
		panic("schedule: non-positive interval for Every")
	}
	return m.add(d, d, fn)
}

func (m *Manual) add(d, period time.Duration, fn func()) *manualTask {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTask{m: m, due: m.now + d, period: period, fn: fn, seq: m.seq}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d, running every task that falls due.
// Tasks scheduled by callbacks during Advance run too if they fall due
// before the new time.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		m.now = t.due
		if t.period > 0 {
			m.seq++
			t.due += t.period
			t.seq = m.seq
		} else {
			m.remove(t)
		}
		t.fn()
	}
	m.now = target
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration { return m.now }

// Pending returns the number of outstanding tasks.
func (m *Manual) Pending() int { return len(m.tasks) }

func (m *Manual) nextDue(limit time.Duration) *manualTask {
	var best *manualTask
	for _, t := range m.tasks {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (m *Manual) remove(t *manualTask) {
	for i, other := range m.tasks {
		if other == t {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}

type manualTask struct {
	m      *Manual
	due    time.Duration
	period time.Duration
	fn     func()
	seq    uint64
}

// Cancel removes the task from its scheduler.
func (t *manualTask) Cancel() {
	t.m.remove(t)
}
