package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"npisearch/internal/ui/input/types"
)

type HelpMode struct{}

func NewHelpMode() *HelpMode {
	return &HelpMode{}
}

func (m *HelpMode) Name() string {
	return "help"
}

func (m *HelpMode) Enter(ctx types.Context) []types.Action {
	return []types.Action{types.ScrollHelpAction{Delta: 0}}
}

func (m *HelpMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *HelpMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := types.Keys

	switch {
	case key.Matches(msg, k.Quit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, k.Close), key.Matches(msg, k.Help):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeForm}}, true
	case key.Matches(msg, k.Up):
		return []types.Action{types.ScrollHelpAction{Delta: -1}}, true
	case key.Matches(msg, k.Down):
		return []types.Action{types.ScrollHelpAction{Delta: 1}}, true
	case key.Matches(msg, k.Pager), msg.String() == "p":
		return []types.Action{types.OpenPagerAction{Content: "help"}}, true
	}
	// Swallow everything else so nothing leaks into the form
	return nil, true
}
