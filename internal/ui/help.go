package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"npisearch/internal/ui/input/types"
)

type helpSection struct {
	title    string
	bindings []key.Binding
	notes    []string
}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys types.KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys types.KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

func (r *HelpRenderer) sections() []helpSection {
	k := r.keys
	return []helpSection{
		{
			title:    "Form",
			bindings: []key.Binding{k.NextField, k.PrevField, k.Search, k.Clear},
			notes:    []string{"Enter searches when no menu is open"},
		},
		{
			title:    "Dropdowns",
			bindings: []key.Binding{k.Up, k.Down, k.Enter, k.Escape},
			notes:    []string{"Type to filter; a click on a row selects it"},
		},
		{
			title:    "Results",
			bindings: []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End, k.Detail, k.Pager},
		},
		{
			title:    "Other",
			bindings: []key.Binding{k.Help, k.Close, k.Quit},
		},
	}
}

// RenderHelpContent renders the help information with colors
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("npisearch Help"))
	help.WriteString("\n")

	for _, s := range r.sections() {
		help.WriteString(sectionStyle.Render(s.title))
		help.WriteString("\n")
		for _, b := range s.bindings {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
		}
		for _, n := range s.notes {
			help.WriteString("  " + noteStyle.Render(n) + "\n")
		}
	}

	return strings.TrimRight(help.String(), "\n")
}
