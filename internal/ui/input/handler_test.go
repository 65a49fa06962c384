package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"npisearch/internal/domain"
	"npisearch/internal/ui/form"
	"npisearch/internal/ui/input/types"
	"npisearch/internal/ui/state"
)

func newContext(menuOpen bool) *ModelContext {
	layout := form.NewLayout()
	layout.Add(form.NewDropdownField("specialty", "Specialty"))
	layout.Add(form.NewField("city", "City", form.KindText))
	layout.FocusAt(0)
	return &ModelContext{
		Form:     layout,
		State:    state.NewAppState(),
		OpenMenu: func(string) bool { return menuOpen },
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMenuKeysWinWhileMenuOpen(t *testing.T) {
	h := New()
	ctx := newContext(true)

	for _, k := range []string{"up", "down", "enter", "esc"} {
		actions := h.HandleKey(keyMsg(k), ctx)
		require.Len(t, actions, 1, k)
		assert.Equal(t, types.MenuKeyAction{Key: k}, actions[0])
	}
}

func TestFormKeysWhenMenuClosed(t *testing.T) {
	h := New()
	ctx := newContext(false)

	assert.Equal(t, []types.Action{types.SearchAction{}}, h.HandleKey(keyMsg("enter"), ctx))
	assert.Equal(t, []types.Action{types.SearchAction{}}, h.HandleKey(keyMsg("ctrl+s"), ctx))
	assert.Equal(t, []types.Action{types.FocusAction{Direction: "next"}}, h.HandleKey(keyMsg("tab"), ctx))
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "down"}}, h.HandleKey(keyMsg("down"), ctx))
	assert.Equal(t, []types.Action{types.QuitAction{}}, h.HandleKey(keyMsg("ctrl+c"), ctx))
}

func TestTypingBecomesEdit(t *testing.T) {
	h := New()
	ctx := newContext(true)

	msg := keyMsg("c")
	actions := h.HandleKey(msg, ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.EditAction{Msg: msg}, actions[0])

	// "?" is text in the form
	actions = h.HandleKey(keyMsg("?"), ctx)
	require.Len(t, actions, 1)
	assert.IsType(t, types.EditAction{}, actions[0])
	assert.Equal(t, types.ModeForm, h.CurrentMode())
}

func TestHelpModeRoundTrip(t *testing.T) {
	h := New()
	ctx := newContext(false)

	actions := h.HandleKey(keyMsg("f1"), ctx)
	assert.Equal(t, types.ModeHelp, h.CurrentMode())
	assert.Equal(t, []types.Action{types.ScrollHelpAction{Delta: 0}}, actions)

	assert.Equal(t, []types.Action{types.ScrollHelpAction{Delta: 1}}, h.HandleKey(keyMsg("down"), ctx))
	assert.Empty(t, h.HandleKey(keyMsg("x"), ctx), "help swallows other keys")

	h.HandleKey(keyMsg("?"), ctx)
	assert.Equal(t, types.ModeForm, h.CurrentMode())
}

func TestDetailNeedsResults(t *testing.T) {
	h := New()
	ctx := newContext(false)

	h.HandleKey(keyMsg("ctrl+d"), ctx)
	assert.Equal(t, types.ModeForm, h.CurrentMode())

	ctx.State.SetResults(1, domain.ResultPage{Count: 1, Cards: []domain.Card{{Name: "A"}}})
	h.HandleKey(keyMsg("ctrl+d"), ctx)
	assert.Equal(t, types.ModeDetail, h.CurrentMode())

	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "up"}}, h.HandleKey(keyMsg("up"), ctx))

	h.HandleKey(keyMsg("esc"), ctx)
	assert.Equal(t, types.ModeForm, h.CurrentMode())
}

func TestContextMenuOpenOnlyForDropdownFocus(t *testing.T) {
	ctx := newContext(true)
	assert.True(t, ctx.MenuOpen())

	ctx.Form.FocusID("city")
	assert.False(t, ctx.FocusedIsDropdown())
	assert.False(t, ctx.MenuOpen())
}
