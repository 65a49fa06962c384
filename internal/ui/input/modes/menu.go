package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"npisearch/internal/ui/input/types"
)

// MenuMode sits on top of FormMode while a dropdown menu is open and takes
// the navigation keys away from the text input.
type MenuMode struct{}

func NewMenuMode() *MenuMode {
	return &MenuMode{}
}

func (m *MenuMode) Name() string {
	return "menu"
}

func (m *MenuMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *MenuMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *MenuMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := types.Keys

	switch {
	case key.Matches(msg, k.Up):
		return []types.Action{types.MenuKeyAction{Key: "up"}}, true
	case key.Matches(msg, k.Down):
		return []types.Action{types.MenuKeyAction{Key: "down"}}, true
	case key.Matches(msg, k.Enter):
		return []types.Action{types.MenuKeyAction{Key: "enter"}}, true
	case key.Matches(msg, k.Escape):
		return []types.Action{types.MenuKeyAction{Key: "esc"}}, true
	}
	return nil, false
}
