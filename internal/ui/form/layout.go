package form

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Layout is the ordered set of fields on the page and the focus among them
type Layout struct {
	fields   []*Field
	byID     map[string]*Field
	displays map[string]*Display
	focus    int
}

var _ Host = (*Layout)(nil)

// NewLayout creates an empty layout
func NewLayout() *Layout {
	return &Layout{
		byID:     make(map[string]*Field),
		displays: make(map[string]*Display),
	}
}

// Add appends a field in tab order
func (l *Layout) Add(f *Field) *Field {
	l.fields = append(l.fields, f)
	l.byID[f.ID] = f
	return f
}

// AddDisplay registers a selected-item display area
func (l *Layout) AddDisplay(id string) *Display {
	d := &Display{ID: id}
	d.Reset()
	l.displays[id] = d
	return d
}

func (l *Layout) Field(id string) (*Field, bool) {
	f, ok := l.byID[id]
	return f, ok
}

func (l *Layout) Display(id string) (*Display, bool) {
	d, ok := l.displays[id]
	return d, ok
}

// Fields returns the fields in tab order
func (l *Layout) Fields() []*Field {
	return l.fields
}

// Focused returns the field holding focus
func (l *Layout) Focused() *Field {
	if len(l.fields) == 0 {
		return nil
	}
	return l.fields[l.focus]
}

// FocusIndex returns the tab position of the focused field
func (l *Layout) FocusIndex() int {
	return l.focus
}

// FocusNext moves focus forward, wrapping at the end
func (l *Layout) FocusNext() tea.Cmd {
	if len(l.fields) == 0 {
		return nil
	}
	return l.FocusAt((l.focus + 1) % len(l.fields))
}

// FocusPrev moves focus backward, wrapping at the start
func (l *Layout) FocusPrev() tea.Cmd {
	if len(l.fields) == 0 {
		return nil
	}
	return l.FocusAt((l.focus - 1 + len(l.fields)) % len(l.fields))
}

// FocusID focuses the field with the given id
func (l *Layout) FocusID(id string) tea.Cmd {
	for i, f := range l.fields {
		if f.ID == id {
			return l.FocusAt(i)
		}
	}
	return nil
}

// FocusAt focuses the field at position i
func (l *Layout) FocusAt(i int) tea.Cmd {
	if i < 0 || i >= len(l.fields) {
		return nil
	}
	for _, f := range l.fields {
		f.Input.Blur()
	}
	l.focus = i
	return l.fields[i].Input.Focus()
}

// Values returns the raw text of every field keyed by id
func (l *Layout) Values() map[string]string {
	out := make(map[string]string, len(l.fields))
	for _, f := range l.fields {
		out[f.ID] = f.Value()
	}
	return out
}
