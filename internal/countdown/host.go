package countdown

import (
	"log"
	"time"
)

// Element is the slice of a document the widget needs: marker lookup,
// text read/write, attribute reads and inner-content snapshots.
type Element interface {
	// Find returns descendants carrying the marker attribute, in document order.
	Find(marker string) []Element
	Text() string
	SetText(s string)
	Attr(name string) (string, bool)
	InnerHTML() string
	SetInnerHTML(s string)
}

// Scheduler registers a repeating callback. Callbacks for one scheduler
// must never run concurrently. The returned cancel func is idempotent.
type Scheduler interface {
	Every(d time.Duration, fn func()) (cancel func())
}

// Clock abstracts time progression so widgets can run on simulated time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Host bundles the collaborators a widget borrows from its environment.
type Host struct {
	Scheduler Scheduler
	Clock     Clock
	Logger    *log.Logger // nil disables transition logging
}

func (h Host) clock() Clock {
	if h.Clock == nil {
		return RealClock{}
	}
	return h.Clock
}

func (h Host) logf(format string, v ...any) {
	if h.Logger != nil {
		h.Logger.Printf(format, v...)
	}
}
