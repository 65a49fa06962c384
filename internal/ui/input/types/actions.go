package types

import tea "github.com/charmbracelet/bubbletea"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Focus actions
type FocusAction struct {
	Direction string // "next" or "prev"
}

func (a FocusAction) Type() string { return "focus" }

// MenuKeyAction is a navigation key for the open dropdown menu
type MenuKeyAction struct {
	Key string // "up", "down", "enter", "esc"
}

func (a MenuKeyAction) Type() string { return "menu_key" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// EditAction forwards a key to the focused text input
type EditAction struct {
	Msg tea.KeyMsg
}

func (a EditAction) Type() string { return "edit" }

// Command actions
type SearchAction struct{}

func (a SearchAction) Type() string { return "search" }

type ClearAction struct{}

func (a ClearAction) Type() string { return "clear" }

type OpenPagerAction struct {
	Content string // "results" or "help"
}

func (a OpenPagerAction) Type() string { return "open_pager" }

type ScrollHelpAction struct {
	Delta int
}

func (a ScrollHelpAction) Type() string { return "scroll_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
