package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/countdown/internal/countdown"
	"github.com/idilsaglam/countdown/internal/dom"
	"github.com/idilsaglam/countdown/internal/model"
	"github.com/idilsaglam/countdown/internal/ui"
)

// row is one saved event rendered into its own small page.
type row struct {
	ev  model.Event
	doc *dom.Document
	el  dom.Element
}

// listItem adapts a row to bubbles/list.Item
type listItem struct {
	idx   int
	name  string
	line  string
	state string
}

func (i listItem) Title() string       { return i.state + " " + i.name }
func (i listItem) Description() string { return i.line }
func (i listItem) FilterValue() string { return i.name }

type listModel struct {
	s    *session
	rows []row
	list list.Model
	keys keyMap
}

// RunList shows every saved event with a live countdown.
func RunList(events []model.Event, opts Options) error {
	m, err := newListModel(events, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newListModel(events []model.Event, opts Options) (listModel, error) {
	s := newSession(opts)
	m := listModel{s: s, keys: newKeyMap()}
	for _, ev := range events {
		doc, el, err := dom.NewCountdownPage(ev.Name, ev.Date, true)
		if err != nil {
			return listModel{}, err
		}
		m.rows = append(m.rows, row{ev: ev, doc: doc, el: el})
	}
	for i := range m.rows {
		m.attach(i)
	}

	l := list.New(m.items(), list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("%s   %s %d", "Countdowns", accent("Total"), len(events))
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("event", "events")
	l.AdditionalShortHelpKeys = func() []key.Binding { return m.keys.widgetKeys() }
	l.AdditionalFullHelpKeys = func() []key.Binding { return m.keys.widgetKeys() }
	m.list = l
	return m, nil
}

func (m listModel) attach(i int) *countdown.Widget {
	r := m.rows[i]
	name := r.ev.Name
	opts := append(r.ev.Options(), m.s.opts.Overrides...)
	opts = append(opts, countdown.WithEnd(func() {
		m.s.status = fmt.Sprintf("%s reached at %s", name, m.s.clock.Now().Format(time.Kitchen))
	}))
	return m.s.reg.Attach(r.el, opts...)
}

func (m listModel) widget(i int) *countdown.Widget {
	w, _ := m.s.reg.Lookup(m.rows[i].el)
	return w
}

func (m listModel) items() []list.Item {
	out := make([]list.Item, 0, len(m.rows))
	for i, r := range m.rows {
		w := m.widget(i)
		line := strings.TrimSpace(r.el.Text())
		if span := r.ev.Span(); span > 0 {
			elapsed := m.s.clock.Now().Sub(r.ev.CreatedAt)
			line += "  " + muted(ui.ProgressBar(elapsed.Seconds(), span.Seconds(), 16))
		}
		out = append(out, listItem{idx: i, name: r.ev.Name, line: line, state: stateSymbol(w)})
	}
	return out
}

func (m listModel) selected() (int, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return 0, false
	}
	return it.idx, true
}

// Init hands the intervals of auto-started widgets to the program.
func (m listModel) Init() tea.Cmd { return m.s.sched.Flush() }

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		cmd := m.s.sched.Handle(msg)
		return m, tea.Batch(cmd, m.list.SetItems(m.items()))

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		i, ok := m.selected()
		if !ok {
			break
		}
		handled := true
		switch {
		case key.Matches(msg, m.keys.Toggle):
			toggle(m.widget(i))
		case key.Matches(msg, m.keys.End):
			m.widget(i).End()
		case key.Matches(msg, m.keys.Reset):
			m.widget(i).Reset()
		case key.Matches(msg, m.keys.Destroy):
			if m.widget(i).State() == countdown.Destroyed {
				m.s.reg.Detach(m.rows[i].el)
				m.attach(i)
				m.s.status = m.rows[i].ev.Name + " reattached"
			} else {
				m.widget(i).Destroy()
				m.s.status = m.rows[i].ev.Name + " destroyed"
			}
		default:
			handled = false
		}
		if handled {
			return m, tea.Batch(m.s.sched.Flush(), m.list.SetItems(m.items()))
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m listModel) View() string {
	content := m.list.View()
	if m.s.status != "" {
		content += "\n" + title(m.s.status)
	}
	return ui.Panel([]string{content})
}
