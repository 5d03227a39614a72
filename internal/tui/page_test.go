package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/countdown/internal/countdown"
	"github.com/idilsaglam/countdown/internal/dom"
	"github.com/idilsaglam/countdown/internal/scheduler"
)

const launchPage = `<html><body>
<h1>Launch week</h1>
<p countdown data-date="2026-10-19T12:01:30Z">Liftoff in <span data-minutes>-</span>m <span data-seconds>-</span>s</p>
<p countdown data-date="2026-10-19T13:00:00Z" data-auto-start="false">Party <span data-hours>-</span>h</p>
<p>See you there.</p>
</body></html>`

func newTestPage(t *testing.T) (pageModel, *dom.Document) {
	t.Helper()
	doc, err := dom.ParseString(launchPage)
	require.NoError(t, err)
	clk := scheduler.NewManual(now)
	return newPageModel(doc, "launch.html", Options{Defaults: countdown.DefaultOptions(), Clock: clk}), doc
}

func TestPageAttachesEveryCountdown(t *testing.T) {
	m, doc := newTestPage(t)
	require.Equal(t, 2, m.s.reg.Len())
	require.Equal(t, 1, m.s.sched.Active())
	require.Equal(t, []string{
		"Launch week",
		"Liftoff in 1m 30s",
		"Party -h",
		"See you there.",
	}, doc.Lines())

	view := m.View()
	require.Contains(t, view, "launch.html")
	require.Contains(t, view, "Liftoff in 1m 30s")
}

func TestPageKeysDriveAllWidgets(t *testing.T) {
	m, doc := newTestPage(t)
	var tm tea.Model = m

	tm = press(t, tm, tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, "stopped", m.s.status)
	require.Zero(t, m.s.sched.Active())

	tm = press(t, tm, tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, "running", m.s.status)
	require.Equal(t, 2, m.s.sched.Active())
	require.Equal(t, "Party 1h", doc.Lines()[2])

	tm = press(t, tm, runes("e"))
	require.Equal(t, "2 of 2 countdowns reached", m.s.status)
	for _, w := range m.s.reg.Widgets() {
		require.Equal(t, countdown.Ended, w.State())
	}

	tm = press(t, tm, runes("x"))
	require.Equal(t, "Liftoff in -m -s", doc.Lines()[1])
	require.Contains(t, tm.View(), "original content restored")
}

func TestPageWithoutCountdowns(t *testing.T) {
	doc, err := dom.ParseString(`<p>nothing here</p>`)
	require.NoError(t, err)
	m := newPageModel(doc, "empty.html", Options{Defaults: countdown.DefaultOptions()})
	require.Zero(t, m.s.reg.Len())
	require.Contains(t, m.View(), "no [countdown] elements")
}
