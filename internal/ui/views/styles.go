package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	InfoBox       lipgloss.Style
	HelpBox       lipgloss.Style

	// Form
	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Menu         lipgloss.Style
	MenuRow      lipgloss.Style
	MenuActive   lipgloss.Style
	MenuSubtitle lipgloss.Style
	NoResults    lipgloss.Style
	Display      lipgloss.Style
	DisplayEmpty lipgloss.Style

	// Results
	CardName      lipgloss.Style
	CardKind      lipgloss.Style
	CardSpecialty lipgloss.Style
	CardAddress   lipgloss.Style
	CardCursor    lipgloss.Style
	ResultsError  lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Help:          lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2).
			MaxHeight(100), // Will be dynamically adjusted
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("62")),

		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12),
		LabelFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true).Width(12),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Menu: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, true, true).
			BorderForeground(lipgloss.Color("99")).
			MarginLeft(12),
		MenuRow:      lipgloss.NewStyle().Padding(0, 1),
		MenuActive:   lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")),
		MenuSubtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		NoResults:    lipgloss.NewStyle().Padding(0, 1).Italic(true).Foreground(lipgloss.Color("241")),
		Display:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")).MarginLeft(12),
		DisplayEmpty: lipgloss.NewStyle().Faint(true).MarginLeft(12),

		CardName:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		CardKind:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		CardSpecialty: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		CardAddress:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		CardCursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		ResultsError:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	}
}

// KindColor returns the color used for a provider kind badge
func KindColor(kind string) string {
	switch kind {
	case "Individual":
		return "33" // blue
	case "Organization":
		return "78" // green
	default:
		return "241" // gray
	}
}
