// Package scheduler provides interval schedulers for countdown widgets:
// a simulated-time one for tests and dry runs, and a real-time event loop.
package scheduler

import "time"

// Manual runs intervals against a simulated clock. Nothing happens until
// Advance is called; callbacks then fire one at a time in time order.
type Manual struct {
	now    time.Time
	nextID int
	timers map[int]*manualTimer
}

type manualTimer struct {
	id    int
	every time.Duration
	next  time.Time
	fn    func()
}

// NewManual starts simulated time at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start, timers: make(map[int]*manualTimer)}
}

// Now is the simulated time, so Manual also serves as a countdown.Clock.
func (m *Manual) Now() time.Time { return m.now }

// Every registers fn to run each d of simulated time.
func (m *Manual) Every(d time.Duration, fn func()) func() {
	if d <= 0 {
		return func() {}
	}
	m.nextID++
	id := m.nextID
	m.timers[id] = &manualTimer{id: id, every: d, next: m.now.Add(d), fn: fn}
	return func() { delete(m.timers, id) }
}

// Advance moves simulated time forward by d, firing every interval that
// falls due on the way. Intervals registered by a callback take part if
// they come due before the end of the window.
func (m *Manual) Advance(d time.Duration) {
	end := m.now.Add(d)
	for {
		t := m.due(end)
		if t == nil {
			break
		}
		m.now = t.next
		t.next = t.next.Add(t.every)
		t.fn()
	}
	m.now = end
}

// Step advances to the next due interval within limit and fires it.
// It reports false when nothing is due.
func (m *Manual) Step(limit time.Duration) bool {
	t := m.due(m.now.Add(limit))
	if t == nil {
		return false
	}
	m.now = t.next
	t.next = t.next.Add(t.every)
	t.fn()
	return true
}

func (m *Manual) due(end time.Time) *manualTimer {
	var best *manualTimer
	for _, t := range m.timers {
		if t.next.After(end) {
			continue
		}
		if best == nil || t.next.Before(best.next) || (t.next.Equal(best.next) && t.id < best.id) {
			best = t
		}
	}
	return best
}

// Pending is the number of registered intervals.
func (m *Manual) Pending() int { return len(m.timers) }
