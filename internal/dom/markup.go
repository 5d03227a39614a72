package dom

import (
	"fmt"
	"time"

	"golang.org/x/net/html"

	"github.com/idilsaglam/countdown/internal/countdown"
)

// NewCountdownPage builds a small page with one countdown element for
// target and returns it with that element. With slots the element gets
// per-unit spans and a data-date attribute; without, the target is the
// element's text and the fallback template takes over once a widget runs.
func NewCountdownPage(title string, target time.Time, slots bool) (*Document, Element, error) {
	date := html.EscapeString(target.Format(time.RFC3339))
	var body string
	if slots {
		body = fmt.Sprintf(`<p %s %s="%s"><span %s>0</span>d <span %s>0</span>h <span %s>0</span>m <span %s>0</span>s</p>`,
			countdown.DefaultMarker, countdown.AttrDate, date,
			countdown.MarkerDays, countdown.MarkerHours, countdown.MarkerMinutes, countdown.MarkerSeconds)
	} else {
		body = fmt.Sprintf(`<p %s>%s</p>`, countdown.DefaultMarker, date)
	}
	doc, err := ParseString(fmt.Sprintf(`<html><body><h1>%s</h1>%s</body></html>`, html.EscapeString(title), body))
	if err != nil {
		return nil, Element{}, err
	}
	els := doc.Root().FindElements(countdown.DefaultMarker)
	if len(els) == 0 {
		return nil, Element{}, fmt.Errorf("countdown page for %q: no countdown element", title)
	}
	return doc, els[0], nil
}
