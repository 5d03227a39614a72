package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/countdown/internal/config"
	"github.com/idilsaglam/countdown/internal/countdown"
	"github.com/idilsaglam/countdown/internal/model"
	"github.com/idilsaglam/countdown/internal/scheduler"
	"github.com/idilsaglam/countdown/internal/store/jsonstore"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{Config: config.Config{
		Countdown: config.CountdownConfig{
			Text:       countdown.DefaultText,
			Pad:        true,
			AutoStart:  true,
			DaysBefore: 7,
		},
		Store: config.StoreConfig{Dir: t.TempDir()},
	}}
}

func TestRunExitCodes(t *testing.T) {
	opt := testOptions(t)

	require.Equal(t, 2, Run(nil, opt))
	require.Equal(t, 0, Run([]string{"help"}, opt))
	require.Equal(t, 2, Run([]string{"ad"}, opt))
	require.Equal(t, 2, Run([]string{"rm"}, opt))
	require.Equal(t, 2, Run([]string{"page", "a.html", "b.html"}, opt))
	require.Equal(t, 2, Run([]string{"simulate", "launch"}, opt))
	require.Equal(t, 2, Run([]string{"simulate", "launch", "soon"}, opt))
	require.Equal(t, 1, Run([]string{"page", "/does/not/exist.html"}, opt))
}

func TestRunAddRemove(t *testing.T) {
	opt := testOptions(t)

	require.Equal(t, 0, Run([]string{"add", "-fast", "-text", "%d!", "launch", "2030-01-02T03:04:05Z"}, opt))
	require.Equal(t, 2, Run([]string{"add", "Launch", "2031-01-01"}, opt), "duplicate name")
	require.Equal(t, 2, Run([]string{"add", "party", "not", "a", "date"}, opt))
	require.Equal(t, 2, Run([]string{"add", "party"}, opt))
	require.Equal(t, 2, Run([]string{"add", "-bogus", "party", "2031-01-01"}, opt))

	st, err := jsonstore.Open(opt.Config.Store.Dir)
	require.NoError(t, err)
	ev, err := st.Find("launch")
	require.NoError(t, err)
	require.True(t, ev.Fast)
	require.Equal(t, "%d!", ev.Text)
	require.True(t, time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC).Equal(ev.Date))

	require.Equal(t, 0, Run([]string{"show", "launch"}, opt))
	require.Equal(t, 0, Run([]string{"show", "1"}, opt))
	require.Equal(t, 2, Run([]string{"show", "lunch"}, opt))

	require.Equal(t, 2, Run([]string{"rm", "lunch"}, opt))
	require.Equal(t, 0, Run([]string{"rm", "launch"}, opt))
	require.Equal(t, 2, Run([]string{"rm", "launch"}, opt))

	events, err := st.Load()
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestRunSimulateDate(t *testing.T) {
	opt := testOptions(t)
	target := time.Now().Add(90 * time.Second).UTC().Format(time.RFC3339)
	require.Equal(t, 0, Run([]string{"simulate", target, "2m"}, opt))
}

func TestAttachEventPicksLayout(t *testing.T) {
	opt := testOptions(t)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	clk := scheduler.NewManual(now)
	host := countdown.Host{Scheduler: clk, Clock: clk}

	far := model.Event{Name: "far", Date: now.Add(30*24*time.Hour + time.Hour + time.Minute + time.Second)}
	_, el, w, err := attachEvent(far, host, opt)
	require.NoError(t, err)
	require.False(t, w.Slotted())
	require.Equal(t, "30 d, 01 h, 01 m, 01 s", el.Text())

	near := model.Event{Name: "near", Date: now.Add(2 * time.Hour)}
	_, el, w, err = attachEvent(near, host, opt)
	require.NoError(t, err)
	require.True(t, w.Slotted())
	require.Equal(t, "0d 2h 0m 0s", el.Text())

	opt.Overrides = []countdown.Option{countdown.WithDaysBefore(0)}
	_, _, w, err = attachEvent(near, host, opt)
	require.NoError(t, err)
	require.False(t, w.Slotted())
	require.Zero(t, w.Options().DaysBefore)
}

func TestSimulateFrames(t *testing.T) {
	opt := testOptions(t)
	start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	run := func(ev model.Event, d time.Duration) ([]string, bool) {
		clk := scheduler.NewManual(start)
		host := countdown.Host{Scheduler: clk, Clock: clk}
		ended := false
		_, el, _, err := attachEvent(ev, host, opt, countdown.WithEnd(func() { ended = true }))
		require.NoError(t, err)
		return simulate(clk, el, d, &ended), ended
	}

	lines, ended := run(model.Event{Name: "soon", Date: start.Add(3500 * time.Millisecond)}, time.Minute)
	require.True(t, ended)
	require.Equal(t, []string{
		"[+0s] 0d 0h 0m 3s",
		"[+1s] 0d 0h 0m 2s",
		"[+2s] 0d 0h 0m 1s",
		"[+3s] 0d 0h 0m 0s",
	}, lines)

	lines, ended = run(model.Event{Name: "later", Date: start.Add(time.Hour)}, 2500*time.Millisecond)
	require.False(t, ended)
	require.Equal(t, []string{
		"[+0s] 0d 1h 0m 0s",
		"[+1s] 0d 0h 59m 59s",
		"[+2s] 0d 0h 59m 58s",
	}, lines)

	lines, ended = run(model.Event{Name: "fast", Date: start.Add(300 * time.Millisecond), Fast: true}, time.Second)
	require.True(t, ended)
	require.Equal(t, []string{
		"[+0s] 0d 0h 0m 0.3s",
		"[+100ms] 0d 0h 0m 0.2s",
		"[+200ms] 0d 0h 0m 0.1s",
		"[+300ms] 0d 0h 0m 0s",
	}, lines)
}

func TestHelpExamplesRun(t *testing.T) {
	opt := testOptions(t)
	t.Setenv("COUNTDOWN_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	for _, ex := range examples {
		if ex.live {
			continue
		}
		require.Equal(t, 0, Run(ex.args, opt), "countdown %s", quoteArgs(ex.args))
	}
}

func TestQuoteArgs(t *testing.T) {
	require.Equal(t, `simulate "in 90s" 2m`, quoteArgs([]string{"simulate", "in 90s", "2m"}))
}

func TestParseDate(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	got, ok := parseDate("in 90s", now)
	require.True(t, ok)
	require.Equal(t, now.Add(90*time.Second), got)

	got, ok = parseDate("2h30m", now)
	require.True(t, ok)
	require.Equal(t, now.Add(150*time.Minute), got)

	got, ok = parseDate("2030-01-02T03:04:05Z", now)
	require.True(t, ok)
	require.True(t, time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC).Equal(got))

	for _, bad := range []string{"in -5s", "in 0s", "in a while", ""} {
		_, ok = parseDate(bad, now)
		require.False(t, ok, bad)
	}
}

func TestRunRelativeDates(t *testing.T) {
	opt := testOptions(t)
	require.Equal(t, 0, Run([]string{"simulate", "in 90s", "2m"}, opt))
	require.Equal(t, 0, Run([]string{"show", "in 3h"}, opt))
	require.Equal(t, 2, Run([]string{"simulate", "in -90s", "2m"}, opt))

	require.Equal(t, 0, Run([]string{"add", "tea", "in", "4m"}, opt))
	st, err := jsonstore.Open(opt.Config.Store.Dir)
	require.NoError(t, err)
	ev, err := st.Find("tea")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(4*time.Minute), ev.Date, 5*time.Second)
}

func TestRunConfig(t *testing.T) {
	opt := testOptions(t)
	opt.Config.UI.Theme = "mono"
	path := filepath.Join(t.TempDir(), "countdown", "config.toml")
	t.Setenv("COUNTDOWN_CONFIG", path)

	require.Equal(t, 0, Run([]string{"config"}, opt))
	require.NoFileExists(t, path)
	require.Equal(t, 2, Run([]string{"config", "extra"}, opt))

	require.Equal(t, 0, Run([]string{"config", "-init"}, opt))
	require.FileExists(t, path)
	loaded, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, opt.Config, loaded)

	require.Equal(t, 1, Run([]string{"config", "-init"}, opt), "existing file is kept")
}
