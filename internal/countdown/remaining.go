package countdown

import "fmt"

// Unit names one component of a Remaining value, smallest first.
type Unit int

const (
	Deciseconds Unit = iota
	Seconds
	Minutes
	Hours
	Days
)

// noUnit asks output for the template path only.
const noUnit Unit = -1

func (u Unit) String() string {
	switch u {
	case Deciseconds:
		return "deciseconds"
	case Seconds:
		return "seconds"
	case Minutes:
		return "minutes"
	case Hours:
		return "hours"
	case Days:
		return "days"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

const (
	decisecondMs = 100
	secondMs     = 1000
	minuteMs     = 60 * secondMs
	hourMs       = 60 * minuteMs
	dayMs        = 24 * hourMs
)

// Remaining is the time left until a target, split into display units.
// Hours are 0-23, minutes and seconds 0-59, deciseconds 0-9.
type Remaining struct {
	Days        int
	Hours       int
	Minutes     int
	Seconds     int
	Deciseconds int
}

// Decompose splits a millisecond count into units by floor division.
// Negative counts decompose to zero. Milliseconds rather than a
// time.Duration so targets centuries away do not overflow.
func Decompose(ms int64) Remaining {
	if ms <= 0 {
		return Remaining{}
	}
	return Remaining{
		Days:        int(ms / dayMs),
		Hours:       int(ms % dayMs / hourMs),
		Minutes:     int(ms % hourMs / minuteMs),
		Seconds:     int(ms % minuteMs / secondMs),
		Deciseconds: int(ms % secondMs / decisecondMs),
	}
}

// millis is the inverse of Decompose, accurate to 100ms.
func (r Remaining) millis() int64 {
	return int64(r.Days)*dayMs + int64(r.Hours)*hourMs + int64(r.Minutes)*minuteMs +
		int64(r.Seconds)*secondMs + int64(r.Deciseconds)*decisecondMs
}

// Tick removes one second, borrowing from larger units. It returns the
// largest unit that changed. When the days unit would go negative r is
// zeroed and ok is false.
func (r *Remaining) Tick() (changed Unit, ok bool) {
	if r.Seconds--; r.Seconds >= 0 {
		return Seconds, true
	}
	r.Seconds = 59
	if r.Minutes--; r.Minutes >= 0 {
		return Minutes, true
	}
	r.Minutes = 59
	if r.Hours--; r.Hours >= 0 {
		return Hours, true
	}
	r.Hours = 23
	if r.Days--; r.Days >= 0 {
		return Days, true
	}
	*r = Remaining{}
	return Days, false
}

// FastTick removes one decisecond, borrowing into Tick when needed.
func (r *Remaining) FastTick() (changed Unit, ok bool) {
	if r.Deciseconds--; r.Deciseconds >= 0 {
		return Deciseconds, true
	}
	r.Deciseconds = 9
	return r.Tick()
}

// Zero reports whether nothing is left at the given granularity.
func (r Remaining) Zero(fast bool) bool {
	whole := r.Days == 0 && r.Hours == 0 && r.Minutes == 0 && r.Seconds == 0
	if fast {
		return whole && r.Deciseconds == 0
	}
	return whole
}

// allNonZero is the unit half of the near-event gate.
func (r Remaining) allNonZero() bool {
	return r.Days != 0 && r.Hours != 0 && r.Minutes != 0 && r.Seconds != 0
}

func (r Remaining) String() string {
	return fmt.Sprintf("%dd %02dh %02dm %02d.%ds", r.Days, r.Hours, r.Minutes, r.Seconds, r.Deciseconds)
}
