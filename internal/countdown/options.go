package countdown

import (
	"strconv"
	"strings"
	"time"
)

// DefaultText is the fallback template used when no unit slots exist.
const DefaultText = "%d d, %h h, %m m, %s s"

// Options configure one widget. A zero Date means "read it from the
// element's content".
type Options struct {
	Date       time.Time
	AutoStart  bool
	Fast       bool
	End        func()
	Text       string
	Pad        bool
	DaysBefore int
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		AutoStart:  true,
		Text:       DefaultText,
		Pad:        true,
		DaysBefore: 7,
	}
}

// Option overrides one field; used for explicit per-call configuration.
type Option func(*Options)

func WithDate(t time.Time) Option    { return func(o *Options) { o.Date = t } }
func WithAutoStart(v bool) Option    { return func(o *Options) { o.AutoStart = v } }
func WithFast(v bool) Option         { return func(o *Options) { o.Fast = v } }
func WithEnd(fn func()) Option       { return func(o *Options) { o.End = fn } }
func WithText(s string) Option       { return func(o *Options) { o.Text = s } }
func WithPad(v bool) Option          { return func(o *Options) { o.Pad = v } }
func WithDaysBefore(days int) Option { return func(o *Options) { o.DaysBefore = days } }

// Apply returns a copy of o with opts applied in order.
func (o Options) Apply(opts ...Option) Options {
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Element attributes recognised as configuration.
const (
	AttrDate       = "data-date"
	AttrAutoStart  = "data-auto-start"
	AttrFast       = "data-fast"
	AttrText       = "data-text"
	AttrPad        = "data-pad"
	AttrDaysBefore = "data-days-before"
)

// attrAliases are older unhyphenated spellings still found in markup.
var attrAliases = map[string]string{
	AttrAutoStart:  "data-autostart",
	AttrDaysBefore: "data-daysbefore",
}

func lookupAttr(el Element, name string) (string, bool) {
	if v, ok := el.Attr(name); ok {
		return strings.TrimSpace(v), true
	}
	if alias, ok := attrAliases[name]; ok {
		if v, ok := el.Attr(alias); ok {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// withAttrs layers element-supplied configuration over o. Malformed
// values are skipped and reported through logf.
func withAttrs(o Options, el Element, logf func(string, ...any)) Options {
	if v, ok := lookupAttr(el, AttrDate); ok {
		if t, ok := ParseTarget(v); ok {
			o.Date = t
		} else {
			logf("countdown: ignoring %s=%q: not a date", AttrDate, v)
		}
	}
	boolAttr := func(name string, dst *bool) {
		v, ok := lookupAttr(el, name)
		if !ok {
			return
		}
		if v == "" {
			// bare attribute, e.g. <span data-fast>
			*dst = true
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			logf("countdown: ignoring %s=%q: %v", name, v, err)
			return
		}
		*dst = b
	}
	boolAttr(AttrAutoStart, &o.AutoStart)
	boolAttr(AttrFast, &o.Fast)
	boolAttr(AttrPad, &o.Pad)
	if v, ok := lookupAttr(el, AttrText); ok && v != "" {
		o.Text = v
	}
	if v, ok := lookupAttr(el, AttrDaysBefore); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			logf("countdown: ignoring %s=%q: %v", AttrDaysBefore, v, err)
		} else {
			o.DaysBefore = n
		}
	}
	return o
}
