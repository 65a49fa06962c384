package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the page reacts to
type KeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Enter     key.Binding
	Escape    key.Binding
	Search    key.Binding
	Clear     key.Binding
	Detail    key.Binding
	Pager     key.Binding
	Help      key.Binding
	Close     key.Binding
	Quit      key.Binding
}

// Keys is the page key map
var Keys = KeyMap{
	NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
	Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Home:      key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "first result")),
	End:       key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "last result")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select / search")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close menu")),
	Search:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "search")),
	Clear:     key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear")),
	Detail:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "details")),
	Pager:     key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "pager")),
	Help:      key.NewBinding(key.WithKeys("f1", "?"), key.WithHelp("f1", "help")),
	Close:     key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc/q", "close")),
	Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Search, k.Clear, k.Detail, k.Pager, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Enter, k.Escape},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Search, k.Clear, k.Detail, k.Pager},
		{k.Help, k.Close, k.Quit},
	}
}
