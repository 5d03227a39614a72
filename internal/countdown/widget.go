// Package countdown binds a target instant to a document element and
// re-renders the time left on a repeating tick until the instant passes.
//
// A widget either writes each unit into slots marked data-days,
// data-hours, data-minutes and data-seconds, or, when none exist, renders
// a single fallback template such as "%d d, %h h, %m m, %s s".
package countdown

import (
	"strconv"
	"strings"
	"time"
)

// State is the widget lifecycle.
type State int

const (
	Idle State = iota
	Running
	Ended
	Destroyed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Ended:
		return "ended"
	case Destroyed:
		return "destroyed"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Slot markers looked up under the widget element.
const (
	MarkerDays    = "data-days"
	MarkerHours   = "data-hours"
	MarkerMinutes = "data-minutes"
	MarkerSeconds = "data-seconds"
)

const (
	normalPeriod = time.Second
	fastPeriod   = 100 * time.Millisecond
)

// Widget is a countdown attached to one element. It is driven entirely
// by its Scheduler and is not safe for concurrent use.
type Widget struct {
	el   Element
	host Host
	opts Options

	target  time.Time
	content string
	slots   map[Unit][]Element
	found   bool

	state  State
	rem    Remaining
	cancel func()
	fired  bool
}

// New initializes a widget on el. When opts.Date is zero the element's
// text is parsed as the target. An unparseable target leaves the widget
// inert: nothing is rendered and every operation is a no-op.
func New(el Element, host Host, opts Options) *Widget {
	w := &Widget{el: el, host: host, opts: opts}
	content := el.InnerHTML()
	target := opts.Date
	if target.IsZero() {
		t, ok := ParseTarget(el.Text())
		if !ok {
			host.logf("countdown: inert widget, no valid target in %q", strings.TrimSpace(el.Text()))
			return w
		}
		target = t
	}
	w.target = target
	w.content = content
	w.find()
	if opts.AutoStart {
		w.Start()
	}
	return w
}

func (w *Widget) find() {
	w.slots = map[Unit][]Element{
		Days:    w.el.Find(MarkerDays),
		Hours:   w.el.Find(MarkerHours),
		Minutes: w.el.Find(MarkerMinutes),
		Seconds: w.el.Find(MarkerSeconds),
	}
	n := 0
	for _, els := range w.slots {
		n += len(els)
	}
	w.found = n > 0
}

// Inert reports whether the widget was created without a usable target.
func (w *Widget) Inert() bool { return w.target.IsZero() }

func (w *Widget) State() State         { return w.state }
func (w *Widget) Remaining() Remaining { return w.rem }
func (w *Widget) Target() time.Time    { return w.target }
func (w *Widget) Options() Options     { return w.opts }

// Slotted reports whether per-unit slots were discovered.
func (w *Widget) Slotted() bool { return w.found }

// ready recomputes the remaining time from the clock. When less than one
// tick is left the widget ends instead.
func (w *Widget) ready() bool {
	diff := w.target.UnixMilli() - w.host.clock().Now().UnixMilli()
	w.rem = Decompose(diff)
	if diff <= 0 || w.rem.Zero(w.opts.Fast) {
		w.End()
		return false
	}
	return true
}

// Start begins ticking. It does nothing unless the widget is Idle. With
// less than one tick period left (1s, or 100ms in fast mode) the widget
// ends at once.
func (w *Widget) Start() {
	if w.Inert() || w.state != Idle {
		return
	}
	if !w.ready() {
		return
	}
	w.state = Running
	w.host.logf("countdown: start %s, %s left", w.target.Format(time.RFC3339), w.rem)
	w.Reset()

	period, tick := normalPeriod, w.update
	if w.opts.Fast {
		period, tick = fastPeriod, w.fastUpdate
	}
	w.cancel = w.host.Scheduler.Every(period, tick)
}

// Stop cancels the timer and keeps the last rendered values.
func (w *Widget) Stop() {
	if w.state != Running {
		return
	}
	w.stopTimer()
	w.state = Idle
	w.host.logf("countdown: stop with %s left", w.rem)
}

func (w *Widget) stopTimer() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

// End forces expiry: the timer is cancelled, zeros are rendered and the
// end callback runs. The callback runs at most once per widget.
func (w *Widget) End() {
	if w.Inert() || w.state == Ended || w.state == Destroyed {
		return
	}
	w.stopTimer()
	w.rem = Remaining{}
	w.state = Ended
	w.Reset()
	w.host.logf("countdown: ended %s", w.target.Format(time.RFC3339))
	if !w.fired {
		w.fired = true
		if w.opts.End != nil {
			w.opts.End()
		}
	}
}

// Destroy stops the widget for good and restores the element's original
// content. Calling it again is harmless.
func (w *Widget) Destroy() {
	if w.Inert() || w.state == Destroyed {
		return
	}
	w.stopTimer()
	w.slots = nil
	w.found = false
	w.el.SetInnerHTML(w.content)
	w.state = Destroyed
	w.host.logf("countdown: destroyed")
}

// Reset re-renders every unit from the current state.
func (w *Widget) Reset() {
	if w.Inert() || w.state == Destroyed {
		return
	}
	if !w.found {
		w.output(noUnit)
		return
	}
	for u := Days; u >= Seconds; u-- {
		w.output(u)
	}
}

func (w *Widget) update() {
	if w.state != Running {
		return
	}
	u, ok := w.rem.Tick()
	if !ok || w.rem.Zero(false) {
		w.End()
		return
	}
	w.outputFrom(u)
}

func (w *Widget) fastUpdate() {
	if w.state != Running {
		return
	}
	u, ok := w.rem.FastTick()
	if !ok || w.rem.Zero(true) {
		w.End()
		return
	}
	w.outputFrom(u)
}

// outputFrom renders u and every unit below it that was reset by a borrow.
func (w *Widget) outputFrom(u Unit) {
	if !w.found || u == Deciseconds {
		w.output(u)
		return
	}
	for ; u >= Seconds; u-- {
		w.output(u)
	}
}

// NearEvent reports whether now + daysBefore days is past target.
func NearEvent(now, target time.Time, daysBefore int) bool {
	return now.Add(time.Duration(daysBefore) * 24 * time.Hour).After(target)
}

func (w *Widget) farFromEvent() bool {
	return !NearEvent(w.host.clock().Now(), w.target, w.opts.DaysBefore)
}

// output writes one unit. Far from the event, with every unit nonzero and
// no slots, the whole template is rebuilt instead. Inside the DaysBefore
// window a slotless widget therefore keeps whatever it last showed.
func (w *Widget) output(u Unit) {
	if w.farFromEvent() && w.rem.allNonZero() && !w.found {
		w.el.SetText(w.template())
		return
	}
	switch u {
	case Deciseconds, Seconds:
		setText(w.slots[Seconds], w.secondsText())
	case Minutes:
		setText(w.slots[Minutes], strconv.Itoa(w.rem.Minutes))
	case Hours:
		setText(w.slots[Hours], strconv.Itoa(w.rem.Hours))
	case Days:
		setText(w.slots[Days], strconv.Itoa(w.rem.Days))
	}
}

func setText(els []Element, s string) {
	for _, el := range els {
		el.SetText(s)
	}
}

// secondsText is "S.D" while running in fast mode, "S" otherwise.
func (w *Widget) secondsText() string {
	if w.state == Running && w.opts.Fast {
		return strconv.Itoa(w.rem.Seconds) + "." + strconv.Itoa(w.rem.Deciseconds)
	}
	return strconv.Itoa(w.rem.Seconds)
}

// Template renders the fallback text for the current remaining time,
// whether or not the element currently shows it.
func (w *Widget) Template() string { return w.template() }

func (w *Widget) template() string {
	s := w.opts.Text
	s = strings.Replace(s, "%d", w.pad(w.rem.Days, strconv.Itoa(w.rem.Days)), 1)
	s = strings.Replace(s, "%h", w.pad(w.rem.Hours, strconv.Itoa(w.rem.Hours)), 1)
	s = strings.Replace(s, "%m", w.pad(w.rem.Minutes, strconv.Itoa(w.rem.Minutes)), 1)
	s = strings.Replace(s, "%s", w.pad(w.rem.Seconds, w.secondsText()), 1)
	return s
}

// pad prefixes a zero when padding is on and n is a single digit.
func (w *Widget) pad(n int, text string) string {
	if w.opts.Pad && n < 10 {
		return "0" + text
	}
	return text
}
