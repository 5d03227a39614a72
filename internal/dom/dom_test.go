package dom

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/countdown/internal/countdown"
)

const sample = `<html><head><title>t</title><style>p{}</style></head><body>
<h1>Countdowns</h1>
<div countdown data-date="2027-01-01T00:00:00Z">
  <span data-days>1</span> days <span data-DAYS>again</span>
  <div><span data-seconds>9</span></div>
</div>
<p>Before<br>after   the   break</p>
<script>var x = 1;</script>
</body></html>`

func TestFindReturnsDescendantsInDocumentOrder(t *testing.T) {
	doc, err := ParseString(sample)
	require.NoError(t, err)

	roots := doc.Root().FindElements("COUNTDOWN")
	require.Len(t, roots, 1)
	root := roots[0]
	require.Empty(t, root.Find("countdown"), "an element is not its own descendant")

	days := root.FindElements("data-days")
	require.Len(t, days, 2)
	require.Equal(t, "1", days[0].Text())
	require.Equal(t, "again", days[1].Text())

	secs := root.Find("data-seconds")
	require.Len(t, secs, 1)
	require.Equal(t, "9", secs[0].Text())
}

func TestElementsCompareByNode(t *testing.T) {
	doc, err := ParseString(sample)
	require.NoError(t, err)
	a := doc.Root().Find("countdown")[0]
	b := doc.Root().Find("countdown")[0]
	require.True(t, a == b)

	seen := map[countdown.Element]bool{a: true}
	require.True(t, seen[b])
}

func TestAttr(t *testing.T) {
	doc, err := ParseString(sample)
	require.NoError(t, err)
	el := doc.Root().FindElements("countdown")[0]

	v, ok := el.Attr("DATA-DATE")
	require.True(t, ok)
	require.Equal(t, "2027-01-01T00:00:00Z", v)

	v, ok = el.Attr("countdown")
	require.True(t, ok)
	require.Empty(t, v)

	_, ok = el.Attr("data-fast")
	require.False(t, ok)
}

func TestSetTextAndInnerHTML(t *testing.T) {
	doc, err := ParseString(`<p id="x">a <b>bold</b> move</p>`)
	require.NoError(t, err)
	el := doc.Root().FindElements("id")[0]

	before := el.InnerHTML()
	require.Equal(t, `a <b>bold</b> move`, before)
	require.Equal(t, "a bold move", el.Text())

	el.SetText("<3 days>")
	require.Equal(t, "<3 days>", el.Text())
	require.Equal(t, "&lt;3 days&gt;", el.InnerHTML())

	el.SetInnerHTML(before)
	require.Equal(t, before, el.InnerHTML())
	require.Equal(t, "a bold move", el.Text())
}

func TestLines(t *testing.T) {
	doc, err := ParseString(sample)
	require.NoError(t, err)
	require.Equal(t, []string{
		"Countdowns",
		"1 days again",
		"9",
		"Before",
		"after the break",
	}, doc.Lines())
	require.Equal(t, strings.Join(doc.Lines(), "\n"), doc.Text())
}

func TestRender(t *testing.T) {
	doc, err := ParseString(`<p countdown>soon</p>`)
	require.NoError(t, err)
	doc.Body().FindElements("countdown")[0].SetText("1 d")

	var b strings.Builder
	require.NoError(t, doc.Render(&b))
	require.Contains(t, b.String(), `<p countdown="">1 d</p>`)
}

func TestNewCountdownPage(t *testing.T) {
	target := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	doc, el, err := NewCountdownPage("New <Year>", target, true)
	require.NoError(t, err)
	v, ok := el.Attr(countdown.AttrDate)
	require.True(t, ok)
	require.Equal(t, "2027-01-01T00:00:00Z", v)
	for _, m := range []string{countdown.MarkerDays, countdown.MarkerHours, countdown.MarkerMinutes, countdown.MarkerSeconds} {
		require.Len(t, el.Find(m), 1, m)
	}
	require.Equal(t, "New <Year>", doc.Lines()[0])

	_, el, err = NewCountdownPage("plain", target, false)
	require.NoError(t, err)
	require.Equal(t, "2027-01-01T00:00:00Z", el.Text())
	require.Empty(t, el.Find(countdown.MarkerDays))
}
