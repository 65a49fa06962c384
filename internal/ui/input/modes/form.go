package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"npisearch/internal/ui/input/types"
)

// FormMode is the default mode: keys edit the focused field unless they are
// page commands.
type FormMode struct{}

func NewFormMode() *FormMode {
	return &FormMode{}
}

func (m *FormMode) Name() string {
	return "form"
}

func (m *FormMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *FormMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *FormMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := types.Keys

	switch {
	case key.Matches(msg, k.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, k.NextField):
		return []types.Action{types.FocusAction{Direction: "next"}}, true

	case key.Matches(msg, k.PrevField):
		return []types.Action{types.FocusAction{Direction: "prev"}}, true

	case key.Matches(msg, k.Search), key.Matches(msg, k.Enter):
		return []types.Action{types.SearchAction{}}, true

	case key.Matches(msg, k.Clear):
		return []types.Action{types.ClearAction{}}, true

	case key.Matches(msg, k.Detail):
		if ctx.ResultCount() > 0 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeDetail}}, true
		}
		return nil, true

	case key.Matches(msg, k.Pager):
		if ctx.HasResults() {
			return []types.Action{types.OpenPagerAction{Content: "results"}}, true
		}
		return nil, true

	case msg.Type == tea.KeyF1:
		// "?" is text here
		return []types.Action{types.ChangeModeAction{Mode: types.ModeHelp}}, true
	}

	// Up/down walk the result cards while no menu is open
	switch {
	case key.Matches(msg, k.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, k.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case key.Matches(msg, k.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case key.Matches(msg, k.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case key.Matches(msg, k.Home):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case key.Matches(msg, k.End):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	}

	return nil, false
}
