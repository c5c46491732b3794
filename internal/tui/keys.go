package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Up      key.Binding
	Down    key.Binding
	Edit    key.Binding
	Add     key.Binding
	Delete  key.Binding
	Earlier key.Binding
	Later   key.Binding
	Shorter key.Binding
	Longer  key.Binding
	Reload  key.Binding
	Help    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTab: key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("→/tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←", "previous tab")),
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Edit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add element")),
		Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete element")),
		Earlier: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "start a year earlier")),
		Later:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "start a year later")),
		Shorter: key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "end a year earlier")),
		Longer:  key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "end a year later")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload plan")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Up, k.Down},
		{k.Edit, k.Add, k.Delete, k.Back},
		{k.Earlier, k.Later, k.Shorter, k.Longer},
		{k.Reload, k.Help, k.Quit},
	}
}
