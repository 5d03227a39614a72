package tui

import (
	"log"

	"github.com/idilsaglam/countdown/internal/countdown"
)

// Options configure a program.
type Options struct {
	Defaults  countdown.Options  // process-wide widget defaults
	Overrides []countdown.Option // explicit options, applied last
	Clock     countdown.Clock    // nil means the wall clock
	Logger    *log.Logger
}

// session is the state shared by a model and the widget callbacks it
// schedules. Models are copied by value; the session is not.
type session struct {
	reg    *countdown.Registry
	sched  *Scheduler
	clock  countdown.Clock
	opts   Options
	status string
}

func newSession(opts Options) *session {
	if opts.Clock == nil {
		opts.Clock = countdown.RealClock{}
	}
	sched := NewScheduler()
	host := countdown.Host{Scheduler: sched, Clock: opts.Clock, Logger: opts.Logger}
	return &session{
		reg:   countdown.NewRegistry(host, opts.Defaults),
		sched: sched,
		clock: opts.Clock,
		opts:  opts,
	}
}

func toggle(w *countdown.Widget) {
	if w.State() == countdown.Running {
		w.Stop()
		return
	}
	w.Start()
}

func stateSymbol(w *countdown.Widget) string {
	switch {
	case w == nil:
		return "?"
	case w.Inert():
		return "!"
	}
	switch w.State() {
	case countdown.Running:
		return symRunning()
	case countdown.Ended:
		return symDone()
	case countdown.Destroyed:
		return "✖"
	}
	return symIdle()
}
