package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/countdown/internal/cli"
	"github.com/idilsaglam/countdown/internal/config"
	"github.com/idilsaglam/countdown/internal/countdown"
	"github.com/idilsaglam/countdown/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root flags (apply to every subcommand). Widget flags only override
	// the configured defaults when given explicitly.
	fast := flag.Bool("fast", false, "tick ten times per second")
	pad := flag.Bool("pad", true, "zero-pad template values")
	text := flag.String("text", countdown.DefaultText, "fallback template")
	daysBefore := flag.Int("days-before", 7, "switch to per-unit slots this many days before the target")
	autoStart := flag.Bool("auto-start", true, "start widgets as soon as they attach")
	theme := flag.String("theme", "", "classic, neon or mono")
	dir := flag.String("dir", "", "directory holding countdowns.json")
	debug := flag.String("debug", "", "write diagnostics to this file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		ui.Fail("config: " + err.Error())
		return 1
	}

	logger := log.New(io.Discard, "", 0)
	if *debug != "" {
		f, err := tea.LogToFile(*debug, "countdown")
		if err != nil {
			ui.Fail("debug log: " + err.Error())
			return 1
		}
		defer f.Close()
		logger = log.Default()
	}

	var overrides []countdown.Option
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fast":
			overrides = append(overrides, countdown.WithFast(*fast))
		case "pad":
			overrides = append(overrides, countdown.WithPad(*pad))
		case "text":
			overrides = append(overrides, countdown.WithText(*text))
		case "days-before":
			overrides = append(overrides, countdown.WithDaysBefore(*daysBefore))
		case "auto-start":
			overrides = append(overrides, countdown.WithAutoStart(*autoStart))
		case "theme":
			cfg.UI.Theme = *theme
		case "dir":
			cfg.Store.Dir = *dir
		}
	})
	ui.SetTheme(cfg.UI.Theme)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		return 2
	}

	code := cli.Run(args, cli.Options{
		Config:    cfg,
		Overrides: overrides,
		Logger:    logger,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
