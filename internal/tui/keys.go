package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle  key.Binding
	End     key.Binding
	Reset   key.Binding
	Destroy key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Toggle:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start/stop")),
		End:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end now")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "redraw")),
		Destroy: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "destroy/reattach")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp and FullHelp implement help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.End, k.Destroy, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.End, k.Reset},
		{k.Destroy, k.Help, k.Quit},
	}
}

// widgetKeys are the bindings the list adds to its own help.
func (k keyMap) widgetKeys() []key.Binding {
	return []key.Binding{k.Toggle, k.End, k.Reset, k.Destroy}
}
