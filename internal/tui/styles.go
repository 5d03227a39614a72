package tui

import "github.com/idilsaglam/countdown/internal/ui"

func symRunning() string { t := ui.Current(); return t.Accent.Render(t.SymRunning) }
func symDone() string    { t := ui.Current(); return t.Success.Render(t.SymDone) }
func symIdle() string    { t := ui.Current(); return t.Pending.Render(t.SymIdle) }

func muted(s string) string  { return ui.Current().Muted.Render(s) }
func title(s string) string  { return ui.Current().Title.Render(s) }
func accent(s string) string { return ui.Current().Accent.Render(s) }
