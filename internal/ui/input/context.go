package input

import (
	"npisearch/internal/ui/form"
	"npisearch/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Form  *form.Layout
	State *state.AppState
	// OpenMenu reports whether the dropdown bound to a field has its menu open
	OpenMenu func(fieldID string) bool
}

// FocusedFieldID returns the id of the field holding focus
func (c *ModelContext) FocusedFieldID() string {
	if f := c.Form.Focused(); f != nil {
		return f.ID
	}
	return ""
}

// FocusedIsDropdown reports whether the focused field hosts a dropdown
func (c *ModelContext) FocusedIsDropdown() bool {
	f := c.Form.Focused()
	return f != nil && f.Kind == form.KindDropdown
}

// MenuOpen reports whether the focused field's menu is open
func (c *ModelContext) MenuOpen() bool {
	if c.OpenMenu == nil || !c.FocusedIsDropdown() {
		return false
	}
	return c.OpenMenu(c.FocusedFieldID())
}

// HasResults reports whether the results area shows a search outcome
func (c *ModelContext) HasResults() bool {
	return c.State.HasResults
}

// ResultCount returns the number of cards on screen
func (c *ModelContext) ResultCount() int {
	return len(c.State.Page.Cards)
}
