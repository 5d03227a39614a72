package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg fires one registered interval.
type tickMsg struct {
	id int
}

type interval struct {
	every time.Duration
	fn    func()
}

// Scheduler runs countdown intervals on the bubbletea update loop, so
// widget callbacks never race with View. Intervals registered outside a
// tick are queued until Flush hands them to the program.
type Scheduler struct {
	nextID  int
	active  map[int]interval
	pending []tea.Cmd
}

func NewScheduler() *Scheduler {
	return &Scheduler{active: make(map[int]interval)}
}

func (s *Scheduler) Every(d time.Duration, fn func()) func() {
	if d <= 0 {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.active[id] = interval{every: d, fn: fn}
	s.pending = append(s.pending, tick(id, d))
	return func() { delete(s.active, id) }
}

func tick(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{id: id} })
}

// Handle runs the interval behind msg and re-arms it unless the callback
// cancelled it. Ticks for cancelled intervals are dropped.
func (s *Scheduler) Handle(msg tickMsg) tea.Cmd {
	iv, ok := s.active[msg.id]
	if !ok {
		return nil
	}
	iv.fn()
	if _, still := s.active[msg.id]; !still {
		return nil
	}
	return tick(msg.id, iv.every)
}

// Flush returns the ticks queued since the last call.
func (s *Scheduler) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Active is the number of live intervals.
func (s *Scheduler) Active() int { return len(s.active) }
