package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/idilsaglam/countdown/internal/config"
	"github.com/idilsaglam/countdown/internal/countdown"
	"github.com/idilsaglam/countdown/internal/dom"
	"github.com/idilsaglam/countdown/internal/model"
	"github.com/idilsaglam/countdown/internal/scheduler"
	"github.com/idilsaglam/countdown/internal/store/jsonstore"
	"github.com/idilsaglam/countdown/internal/tui"
	"github.com/idilsaglam/countdown/internal/ui"
)

// Options carry root-level settings into every subcommand.
type Options struct {
	Config    config.Config
	Overrides []countdown.Option // from explicitly set root flags
	Logger    *log.Logger        // nil discards diagnostics
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Logger
}

var subcommands = []string{"help", "add", "ls", "rm", "show", "watch", "page", "simulate", "config"}

// examples are printed by PrintHelp. Live ones need a terminal or run in
// real time until the event.
var examples = []struct {
	args []string
	live bool
}{
	{args: []string{"add", "launch", "2026-12-24 18:00"}},
	{args: []string{"add", "tea", "in 4m"}},
	{args: []string{"show", "launch"}},
	{args: []string{"ls"}, live: true},
	{args: []string{"-fast", "watch", "launch"}, live: true},
	{args: []string{"simulate", "in 90s", "2m"}},
	{args: []string{"config", "-init"}},
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "add":
		return doAdd(a, opt)

	case "ls":
		return doList(opt)

	case "rm":
		if len(a) == 0 {
			ui.Fail("usage: countdown rm <name|index>")
			return 2
		}
		return doRemove(strings.Join(a, " "), opt)

	case "show":
		if len(a) == 0 {
			ui.Fail("usage: countdown show <name|index|date>")
			return 2
		}
		return doShow(strings.Join(a, " "), opt)

	case "watch":
		if len(a) == 0 {
			ui.Fail("usage: countdown watch <name|index|date>")
			return 2
		}
		return doWatch(strings.Join(a, " "), opt)

	case "page":
		if len(a) != 1 {
			ui.Fail("usage: countdown page <file.html>")
			return 2
		}
		return doPage(a[0], opt)

	case "simulate":
		if len(a) < 2 {
			ui.Fail("usage: countdown simulate <name|index|date> <duration>")
			return 2
		}
		return doSimulate(strings.Join(a[:len(a)-1], " "), a[len(a)-1], opt)

	case "config":
		return doConfig(a, opt)
	}

	ui.Fail("unknown subcommand: " + cmd)
	if s, ok := closest(cmd, subcommands); ok {
		ui.Hint("did you mean `countdown " + s + "`?")
	}
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`countdown - live countdowns in the terminal

Usage:
  countdown [flags] <subcommand> [args]

Subcommands:
  add [-fast] [-text FMT] <name> <date...>   Save an event
  ls                                        Live list of saved events (interactive TUI)
  rm <name|index>                           Remove a saved event
  show <name|index|date>                    Print the countdown once
  watch <name|index|date>                   Print the countdown live until it ends (Ctrl-C stops)
  page <file.html>                          Show an HTML page with live [countdown] elements
  simulate <name|index|date> <duration>     Run on simulated time and print every frame
  config [-init]                            Show settings; -init writes them to the config file

Dates are absolute ("2026-12-24 18:00", RFC 3339, ...) or offsets like "in 90s".

Flags:
  -fast -pad -text -days-before -auto-start   override widget defaults
  -theme classic|neon|mono  -dir DIR  -debug FILE

Template tokens: %%d days, %%h hours, %%m minutes, %%s seconds

Examples:
`)
	for _, ex := range examples {
		fmt.Println("  countdown " + quoteArgs(ex.args))
	}
}

func quoteArgs(args []string) string {
	out := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsAny(a, " \t\"") {
			a = strconv.Quote(a)
		}
		out[i] = a
	}
	return strings.Join(out, " ")
}

// parseDate reads an offset from now ("in 90s", "2h30m") or an absolute
// date.
func parseDate(raw string, now time.Time) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimPrefix(s, "in "))
	if d, err := time.ParseDuration(s); err == nil {
		if d <= 0 {
			return time.Time{}, false
		}
		return now.Add(d), true
	}
	return countdown.ParseTarget(raw)
}

func openStore(opt Options) (*jsonstore.Store, error) {
	return jsonstore.Open(opt.Config.Store.Dir)
}

// -------------- subcommand impls ----------------

func doAdd(args []string, opt Options) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fast := fs.Bool("fast", false, "tick ten times per second for this event")
	text := fs.String("text", "", "fallback template for this event")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	a := fs.Args()
	if len(a) < 2 {
		ui.Fail("usage: countdown add [-fast] [-text FMT] <name> <date...>")
		return 2
	}
	name, rawDate := a[0], strings.Join(a[1:], " ")
	date, ok := parseDate(rawDate, time.Now())
	if !ok {
		ui.Fail("add: not a date: " + rawDate)
		return 2
	}

	st, err := openStore(opt)
	if err != nil {
		ui.Fail("store: " + err.Error())
		return 1
	}
	ev, err := st.Add(model.Event{Name: name, Date: date, Text: *text, Fast: *fast})
	if errors.Is(err, jsonstore.ErrDuplicate) {
		ui.Fail("add: " + err.Error())
		ui.Hint("Hint: remove it first with `countdown rm " + name + "`")
		return 2
	}
	if err != nil {
		ui.Fail("add: " + err.Error())
		return 1
	}
	if !ev.Date.After(time.Now()) {
		ui.Hint("note: " + ev.Date.Format(time.RFC1123) + " is already in the past")
	}
	ui.OK("added " + ev.Name)
	return 0
}

func doList(opt Options) int {
	st, err := openStore(opt)
	if err != nil {
		ui.Fail("store: " + err.Error())
		return 1
	}
	events, err := st.Load()
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	if len(events) == 0 {
		fmt.Println(ui.Current().Muted.Render("no events"))
		fmt.Println("Tip: add one with `countdown add launch \"2026-12-24 18:00\"`")
		return 0
	}
	if err := tui.RunList(events, tui.Options{
		Defaults:  opt.Config.Defaults(),
		Overrides: opt.Overrides,
		Logger:    opt.Logger,
	}); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func doRemove(ref string, opt Options) int {
	st, err := openStore(opt)
	if err != nil {
		ui.Fail("store: " + err.Error())
		return 1
	}
	ev, err := st.Remove(ref)
	if errors.Is(err, jsonstore.ErrNotFound) {
		ui.Fail("rm: " + err.Error())
		suggestEvent(st, ref)
		return 2
	}
	if err != nil {
		ui.Fail("rm: " + err.Error())
		return 1
	}
	ui.OK("removed " + ev.Name)
	return 0
}

func suggestEvent(st *jsonstore.Store, ref string) {
	events, err := st.Load()
	if err != nil {
		return
	}
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Name)
	}
	if s, ok := closest(ref, names); ok {
		ui.Hint("did you mean " + s + "?")
		return
	}
	ui.Hint("Hint: run `countdown ls` to see saved events")
}

// resolve finds a saved event by name or index, or reads ref as a date or
// an offset from now.
func resolve(ref string, opt Options) (model.Event, int) {
	st, err := openStore(opt)
	if err != nil {
		ui.Fail("store: " + err.Error())
		return model.Event{}, 1
	}
	ev, err := st.Find(ref)
	if err == nil {
		return ev, 0
	}
	if !errors.Is(err, jsonstore.ErrNotFound) {
		ui.Fail("load: " + err.Error())
		return model.Event{}, 1
	}
	if date, ok := parseDate(ref, time.Now()); ok {
		return model.Event{Name: ref, Date: date}, 0
	}
	ui.Fail(err.Error())
	suggestEvent(st, ref)
	return model.Event{}, 2
}

// attachEvent builds a page for ev and attaches a widget on host. Events
// far from their date use the fallback template, near ones get slots.
func attachEvent(ev model.Event, host countdown.Host, opt Options, extra ...countdown.Option) (*dom.Document, dom.Element, *countdown.Widget, error) {
	reg := countdown.NewRegistry(host, opt.Config.Defaults())
	opts := append(ev.Options(), opt.Overrides...)
	opts = append(opts, extra...)
	resolved := reg.Defaults().Apply(opts...)

	now := countdown.RealClock{}.Now()
	if host.Clock != nil {
		now = host.Clock.Now()
	}
	slots := countdown.NearEvent(now, ev.Date, resolved.DaysBefore)
	doc, el, err := dom.NewCountdownPage(ev.Name, ev.Date, slots)
	if err != nil {
		return nil, dom.Element{}, nil, err
	}
	return doc, el, reg.Attach(el, opts...), nil
}

func doShow(ref string, opt Options) int {
	ev, code := resolve(ref, opt)
	if code != 0 {
		return code
	}
	clock := scheduler.NewManual(time.Now())
	host := countdown.Host{Scheduler: clock, Clock: clock, Logger: opt.logger()}
	_, el, w, err := attachEvent(ev, host, opt, countdown.WithAutoStart(true))
	if err != nil {
		ui.Fail("show: " + err.Error())
		return 1
	}
	defer w.Stop()

	// Template widgets skip frames the page would not redraw; a one-shot
	// summary always shows the full template.
	line := strings.TrimSpace(el.Text())
	if !w.Slotted() {
		line = w.Template()
	}
	t := ui.Current()
	lines := []string{
		t.Title.Render(ev.Name),
		t.Muted.Render(w.Target().Format(time.RFC1123)),
		"",
		line,
	}
	if span := ev.Span(); span > 0 {
		lines = append(lines, "", t.Muted.Render(ui.ProgressBar(clock.Now().Sub(ev.CreatedAt).Seconds(), span.Seconds(), 28)))
	}
	if w.State() == countdown.Ended {
		lines = append(lines, t.Success.Render(t.SymDone+" reached"))
	}
	fmt.Println(ui.Panel(lines))
	return 0
}

func doWatch(ref string, opt Options) int {
	ev, code := resolve(ref, opt)
	if code != 0 {
		return code
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := scheduler.NewLoop()
	host := countdown.Host{Scheduler: loop, Logger: opt.logger()}
	_, el, w, err := attachEvent(ev, host, opt, countdown.WithAutoStart(true), countdown.WithEnd(cancel))
	if err != nil {
		ui.Fail("watch: " + err.Error())
		return 1
	}

	last := ""
	render := func() {
		line := strings.TrimSpace(el.Text())
		if line != last {
			fmt.Printf("\r%s  %s\033[K", ui.Current().Accent.Render(ev.Name), line)
			last = line
		}
	}
	render()
	stopRender := loop.Every(100*time.Millisecond, render)
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		ui.Fail("watch: " + err.Error())
	}
	stopRender()
	render()
	w.Stop()
	loop.Wait()
	fmt.Println()

	if w.State() == countdown.Ended {
		ui.OK(ev.Name + " reached")
	}
	return 0
}

func doPage(path string, opt Options) int {
	f, err := os.Open(path)
	if err != nil {
		ui.Fail("page: " + err.Error())
		return 1
	}
	defer f.Close()
	doc, err := dom.Parse(f)
	if err != nil {
		ui.Fail("page: " + err.Error())
		return 1
	}
	if err := tui.RunPage(doc, filepath.Base(path), tui.Options{
		Defaults:  opt.Config.Defaults(),
		Overrides: opt.Overrides,
		Logger:    opt.Logger,
	}); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func doSimulate(ref, rawDur string, opt Options) int {
	d, err := time.ParseDuration(rawDur)
	if err != nil || d <= 0 {
		ui.Fail("simulate: not a positive duration: " + rawDur)
		return 2
	}
	ev, code := resolve(ref, opt)
	if code != 0 {
		return code
	}
	start := time.Now()
	clock := scheduler.NewManual(start)
	host := countdown.Host{Scheduler: clock, Clock: clock, Logger: opt.logger()}
	ended := false
	_, el, w, err := attachEvent(ev, host, opt, countdown.WithAutoStart(true), countdown.WithEnd(func() { ended = true }))
	if err != nil {
		ui.Fail("simulate: " + err.Error())
		return 1
	}
	for _, line := range simulate(clock, el, d, &ended) {
		fmt.Println(line)
	}
	if w.State() == countdown.Ended {
		ui.OK(fmt.Sprintf("%s reached after %s", ev.Name, clock.Now().Sub(start).Round(100*time.Millisecond)))
	}
	return 0
}

// simulate advances clock until d has passed or the countdown ends and
// returns one line per visible change.
func simulate(clock *scheduler.Manual, el dom.Element, d time.Duration, ended *bool) []string {
	start := clock.Now()
	last := strings.TrimSpace(el.Text())
	lines := []string{fmt.Sprintf("[+%s] %s", time.Duration(0), last)}
	for !*ended {
		left := d - clock.Now().Sub(start)
		if left <= 0 || !clock.Step(left) {
			break
		}
		if text := strings.TrimSpace(el.Text()); text != last {
			last = text
			lines = append(lines, fmt.Sprintf("[+%s] %s", clock.Now().Sub(start), text))
		}
	}
	return lines
}

func doConfig(args []string, opt Options) int {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	initFile := fs.Bool("init", false, "write the current settings to the config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		ui.Fail("usage: countdown config [-init]")
		return 2
	}
	path := config.Path()
	if *initFile {
		if _, err := os.Stat(path); err == nil {
			ui.Fail("config: " + path + " already exists")
			ui.Hint("Hint: edit it directly, or remove it and run `countdown config -init` again")
			return 1
		}
		if err := config.Save(opt.Config); err != nil {
			ui.Fail("config: " + err.Error())
			return 1
		}
		ui.OK("wrote " + path)
		return 0
	}

	c := opt.Config
	t := ui.Current()
	fmt.Println(ui.Panel([]string{
		t.Title.Render("Settings"),
		t.Muted.Render(path),
		"",
		fmt.Sprintf("text         %q", c.Countdown.Text),
		fmt.Sprintf("pad          %v", c.Countdown.Pad),
		fmt.Sprintf("fast         %v", c.Countdown.Fast),
		fmt.Sprintf("auto_start   %v", c.Countdown.AutoStart),
		fmt.Sprintf("days_before  %d", c.Countdown.DaysBefore),
		fmt.Sprintf("theme        %s", c.UI.Theme),
		fmt.Sprintf("store dir    %s", c.Store.Dir),
	}))
	return 0
}
