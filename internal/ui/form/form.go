// Package form models the search page layout: named input fields, the
// regions a dropdown field carries, and selected-item display areas.
package form

import (
	"github.com/charmbracelet/bubbles/textinput"
)

// Kind marks what a field hosts
type Kind int

const (
	KindText Kind = iota
	KindDropdown
)

// Region is a named sub-area of a dropdown field
type Region string

const (
	RegionMenu      Region = "menu"
	RegionGrid      Region = "grid"
	RegionNoResults Region = "no-results"
)

// DropdownRegions are the regions every dropdown field carries
var DropdownRegions = []Region{RegionMenu, RegionGrid, RegionNoResults}

// NothingSelected is shown in a display area with no selection
const NothingSelected = "No item selected"

// Host locates fields and displays by id
type Host interface {
	Field(id string) (*Field, bool)
	Display(id string) (*Display, bool)
}

// Field is one labelled text input
type Field struct {
	ID      string
	Label   string
	Kind    Kind
	Input   textinput.Model
	regions map[Region]bool
}

// NewField creates a field with the given regions
func NewField(id, label string, kind Kind, regions ...Region) *Field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 128
	ti.Width = 32

	f := &Field{
		ID:      id,
		Label:   label,
		Kind:    kind,
		Input:   ti,
		regions: make(map[Region]bool, len(regions)),
	}
	for _, r := range regions {
		f.regions[r] = true
	}
	return f
}

// NewDropdownField creates a dropdown field carrying all required regions
func NewDropdownField(id, label string) *Field {
	return NewField(id, label, KindDropdown, DropdownRegions...)
}

// HasRegion reports whether the field carries region r
func (f *Field) HasRegion(r Region) bool {
	return f.regions[r]
}

func (f *Field) Value() string { return f.Input.Value() }

// SetValue replaces the text and moves the caret to the end
func (f *Field) SetValue(v string) {
	f.Input.SetValue(v)
	f.Input.CursorEnd()
}

func (f *Field) SetPlaceholder(p string) { f.Input.Placeholder = p }
func (f *Field) Focused() bool           { return f.Input.Focused() }

// Display shows a committed dropdown choice outside the field
type Display struct {
	ID       string
	Title    string
	Subtitle string
	Empty    bool
}

// SetItem shows title and an optional subtitle
func (d *Display) SetItem(title, subtitle string) {
	d.Title = title
	d.Subtitle = subtitle
	d.Empty = false
}

// Reset shows the nothing-selected placeholder
func (d *Display) Reset() {
	d.Title = NothingSelected
	d.Subtitle = ""
	d.Empty = true
}
