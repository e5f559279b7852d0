package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit    key.Binding
	Forward   key.Binding
	Back      key.Binding
	Star      key.Binding
	StarNth   key.Binding
	Export    key.Binding
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Brainstorm topic"),
		),
		Forward: key.NewBinding(
			key.WithKeys("right", "l", " ", "space"),
			key.WithHelp("→/l/space", "Next idea"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "Previous idea"),
		),
		Star: key.NewBinding(
			key.WithKeys("s", "*"),
			key.WithHelp("s", "Star idea"),
		),
		StarNth: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Star by number"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Export stars"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "New topic"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle cheatsheet"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
	}
}

// deckBindings is the order the cheatsheet lists bindings in.
func (k keyMap) deckBindings() []key.Binding {
	return []key.Binding{k.Forward, k.Back, k.Star, k.StarNth, k.Export, k.Reset, k.Help, k.Quit}
}
