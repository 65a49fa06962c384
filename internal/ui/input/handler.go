package input

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"npisearch/internal/ui/input/modes"
	"npisearch/internal/ui/input/types"
)

// Handler routes keys to the active mode and turns them into actions
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
}

func New() *Handler {
	h := &Handler{
		currentMode: types.ModeForm,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	// Register all mode handlers
	h.modes[types.ModeForm] = modes.NewFormMode()
	h.modes[types.ModeMenu] = modes.NewMenuMode()
	h.modes[types.ModeHelp] = modes.NewHelpMode()
	h.modes[types.ModeDetail] = modes.NewDetailMode()

	return h
}

// HandleKey returns the actions for msg. Keys no mode consumes become an
// EditAction for the focused field.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) []types.Action {
	var actions []types.Action
	consumed := false

	// An open menu gets first pick while the form is active
	if h.currentMode == types.ModeForm && ctx.MenuOpen() {
		actions, consumed = h.modes[types.ModeMenu].HandleKey(msg, ctx)
	}
	if !consumed {
		handler := h.modes[h.currentMode]
		if handler == nil {
			return nil
		}
		actions, consumed = handler.HandleKey(msg, ctx)
	}

	if !consumed {
		if h.currentMode == types.ModeForm {
			return []types.Action{types.EditAction{Msg: msg}}
		}
		return nil
	}

	var allActions []types.Action
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.switchMode(changeMode.Mode, ctx)...)
			continue
		}
		allActions = append(allActions, action)
	}
	return allActions
}

func (h *Handler) switchMode(mode types.Mode, ctx types.Context) []types.Action {
	if mode == h.currentMode {
		return nil
	}
	var out []types.Action
	if cur := h.modes[h.currentMode]; cur != nil {
		out = append(out, cur.Exit(ctx)...)
	}
	log.Printf("input: %s -> %s", h.currentMode, mode)
	h.currentMode = mode
	if next := h.modes[mode]; next != nil {
		out = append(out, next.Enter(ctx)...)
	}
	return out
}

// CurrentMode returns the active mode. ModeMenu is never current; it is
// layered over ModeForm.
func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeForm
	}
	return h.currentMode
}

// ChangeMode switches modes outside of key handling
func (h *Handler) ChangeMode(mode types.Mode, ctx types.Context) []types.Action {
	return h.switchMode(mode, ctx)
}

func (h *Handler) RegisterMode(mode types.Mode, handler types.ModeHandler) {
	h.modes[mode] = handler
}

// Reset returns to the form
func (h *Handler) Reset() {
	h.currentMode = types.ModeForm
}
