package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// MaxMenuRows caps how many dropdown rows are drawn at once
const MaxMenuRows = 8

// FieldView is one form field ready for rendering
type FieldView struct {
	ID       string
	Label    string
	Input    string // rendered text input
	Focused  bool
	Dropdown bool
	Inert    bool // dropdown failed to attach
	Loading  bool

	// Menu, only for open dropdowns
	Open          bool
	Rows          []RowView
	RowOffset     int // index of Rows[0] in the full rendered list
	TotalRows     int
	ShowNoResults bool
	NoResultsText string

	Display *DisplayView
}

// RowView is one dropdown row
type RowView struct {
	Title       string
	Subtitle    string
	HasSubtitle bool
	Active      bool
	Selected    bool
}

// DisplayView is a selected-item display area
type DisplayView struct {
	Title    string
	Subtitle string
	Empty    bool
}

// FormRenderer renders the search form
type FormRenderer struct {
	styles *Styles
}

// NewFormRenderer creates a new form renderer
func NewFormRenderer(styles *Styles) *FormRenderer {
	return &FormRenderer{styles: styles}
}

// RenderForm renders every field in tab order
func (fr *FormRenderer) RenderForm(fields []FieldView, width int) string {
	var blocks []string
	for _, f := range fields {
		blocks = append(blocks, fr.RenderField(f, width))
	}
	return strings.Join(blocks, "\n")
}

// RenderField renders one field with its menu and display area
func (fr *FormRenderer) RenderField(f FieldView, width int) string {
	label := fr.styles.Label.Render(f.Label)
	if f.Focused {
		label = fr.styles.LabelFocused.Render(f.Label)
	}

	inputStyle := fr.styles.Input
	if f.Focused {
		inputStyle = fr.styles.InputFocused
	}
	boxWidth := min(40, max(20, width-20))
	input := zone.Mark(FieldZoneID(f.ID), inputStyle.Width(boxWidth).Render(f.Input))

	line := lipgloss.JoinHorizontal(lipgloss.Center, label, input)
	switch {
	case f.Inert:
		line = lipgloss.JoinHorizontal(lipgloss.Center, line, " ", fr.styles.StatusError.Render("unavailable"))
	case f.Loading:
		line = lipgloss.JoinHorizontal(lipgloss.Center, line, " ", fr.styles.StatusLoading.Render("loading..."))
	}

	parts := []string{line}
	if f.Open {
		parts = append(parts, fr.renderMenu(f, boxWidth))
	}
	if f.Display != nil {
		parts = append(parts, fr.renderDisplay(*f.Display))
	}
	return strings.Join(parts, "\n")
}

func (fr *FormRenderer) renderMenu(f FieldView, width int) string {
	if f.ShowNoResults {
		return zone.Mark(MenuZoneID(f.ID), fr.styles.Menu.Render(
			fr.styles.NoResults.Width(width).Render(f.NoResultsText)))
	}

	var rows []string
	if f.RowOffset > 0 {
		rows = append(rows, fr.styles.Scroll.Render(fmt.Sprintf(" ↑ %d more", f.RowOffset)))
	}
	for i, r := range f.Rows {
		style := fr.styles.MenuRow
		if r.Active {
			style = fr.styles.MenuActive
		}
		text := r.Title
		if r.HasSubtitle {
			sub := r.Subtitle
			if !r.Active {
				sub = fr.styles.MenuSubtitle.Render(sub)
			}
			text = r.Title + "  " + sub
		}
		if r.Selected {
			text += " ✓"
		}
		rows = append(rows, zone.Mark(RowZoneID(f.ID, f.RowOffset+i), style.Width(width).Render(text)))
	}
	if below := f.TotalRows - f.RowOffset - len(f.Rows); below > 0 {
		rows = append(rows, fr.styles.Scroll.Render(fmt.Sprintf(" ↓ %d more", below)))
	}
	return zone.Mark(MenuZoneID(f.ID), fr.styles.Menu.Render(strings.Join(rows, "\n")))
}

func (fr *FormRenderer) renderDisplay(d DisplayView) string {
	if d.Empty {
		return fr.styles.DisplayEmpty.Render(d.Title)
	}
	if d.Subtitle != "" {
		return fr.styles.Display.Render(fmt.Sprintf("✓ %s (%s)", d.Title, d.Subtitle))
	}
	return fr.styles.Display.Render("✓ " + d.Title)
}
