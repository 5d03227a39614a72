package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/countdown/internal/countdown"
	"github.com/idilsaglam/countdown/internal/dom"
	"github.com/idilsaglam/countdown/internal/ui"
)

// pageModel renders an HTML page whose [countdown] elements are live.
type pageModel struct {
	s    *session
	doc  *dom.Document
	name string
	keys keyMap
	help help.Model
}

// RunPage attaches a widget to every countdown element in doc and shows
// the page until the user quits.
func RunPage(doc *dom.Document, name string, opts Options) error {
	p := tea.NewProgram(newPageModel(doc, name, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newPageModel(doc *dom.Document, name string, opts Options) pageModel {
	s := newSession(opts)
	m := pageModel{s: s, doc: doc, name: name, keys: newKeyMap(), help: help.New()}
	ended := 0
	end := countdown.WithEnd(func() {
		ended++
		s.status = fmt.Sprintf("%d of %d countdowns reached", ended, s.reg.Len())
	})
	overrides := append(append([]countdown.Option{}, opts.Overrides...), end)
	s.reg.AttachAll(doc.Body(), countdown.DefaultMarker, overrides...)
	if s.reg.Len() == 0 {
		s.status = "no [countdown] elements on this page"
	}
	return m
}

func (m pageModel) Init() tea.Cmd { return m.s.sched.Flush() }

func (m pageModel) anyRunning() bool {
	for _, w := range m.s.reg.Widgets() {
		if w.State() == countdown.Running {
			return true
		}
	}
	return false
}

func (m pageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, m.s.sched.Handle(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Toggle):
			if m.anyRunning() {
				m.s.reg.Each((*countdown.Widget).Stop)
				m.s.status = "stopped"
			} else {
				m.s.reg.Each((*countdown.Widget).Start)
				m.s.status = "running"
			}
		case key.Matches(msg, m.keys.End):
			m.s.reg.Each((*countdown.Widget).End)
		case key.Matches(msg, m.keys.Reset):
			m.s.reg.Each((*countdown.Widget).Reset)
		case key.Matches(msg, m.keys.Destroy):
			m.s.reg.Each((*countdown.Widget).Destroy)
			m.s.status = "original content restored"
		}
		return m, m.s.sched.Flush()
	}
	return m, nil
}

func (m pageModel) View() string {
	lines := []string{title(m.name), ""}
	lines = append(lines, m.doc.Lines()...)
	if m.s.status != "" {
		lines = append(lines, "", accent(m.s.status))
	}
	lines = append(lines, "", m.help.View(m.keys))
	return ui.Panel(lines)
}
