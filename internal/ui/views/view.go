package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"npisearch/internal/domain"
	"npisearch/internal/mapview"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Fields []FieldView

	// Progress
	Spinner      string
	Searching    bool
	Locating     bool
	LoadingLists int

	// Results
	HasResults     bool
	Page           domain.ResultPage
	ResultsError   string
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int

	// Map
	MapEnabled bool
	Map        *mapview.Layer
	MapMissed  int
	MapError   string

	StatusMessage string
	StatusIsError bool

	// Popups
	ShowHelp         bool
	HelpContent      string
	HelpScrollOffset int
	ShowDetail       bool
	DetailContent    string

	HelpModel help.Model
	HelpKeys  help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	formRender    *FormRenderer
	resultsRender *ResultsRenderer
	popupRender   *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:        styles,
		formRender:    NewFormRenderer(styles),
		resultsRender: NewResultsRenderer(styles),
		popupRender:   NewPopupRenderer(styles),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// MapHeight is the outer height of the map panel
const MapHeight = 12

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")

	content.WriteString(r.formRender.RenderForm(state.Fields, state.Width))
	content.WriteString("\n\n")

	if state.HasResults {
		body := r.resultsRender.RenderResults(state)
		if state.MapEnabled && len(state.Page.Cards) > 0 {
			if m := r.renderMap(state); m != "" {
				body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m)
			}
		}
		content.WriteString(body)
	} else if !state.Searching {
		content.WriteString(r.styles.Dim.Render("Enter a state, a specialty or a name and press enter to search."))
	}

	// Status and help sit at the bottom
	footer := []string{}
	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		footer = append(footer, style.Render(state.StatusMessage))
	}
	if !state.ShowHelp && !state.ShowDetail && state.HelpKeys != nil {
		footer = append(footer, r.styles.Help.Render(state.HelpModel.View(state.HelpKeys)))
	}

	if len(footer) > 0 {
		currentLines := strings.Count(content.String(), "\n") + 1

		// Account for container padding (1 top, 1 bottom from Padding(1, 2))
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22 // Default terminal height minus padding
		}

		paddingNeeded := availableLines - currentLines - len(footer)
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(strings.Join(footer, "\n"))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	if state.ShowDetail && state.DetailContent != "" {
		detail := ScrollWindow(state.DetailContent, state.Height-4, 0)
		return r.popupRender.RenderPopupOverlay(finalContent, detail, state.Height, state.Width, r.styles.InfoBox)
	}

	if state.ShowHelp {
		helpContent := ScrollWindow(state.HelpContent, state.Height-6, state.HelpScrollOffset)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, state.Height, state.Width, r.styles.HelpBox)
	}

	return finalContent
}

// renderTitle builds the title line with right-aligned progress indicators
func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("npisearch")

	indicators := []string{}
	if state.Searching {
		indicators = append(indicators, fmt.Sprintf("%s Searching", state.Spinner))
	}
	if state.Locating {
		indicators = append(indicators, fmt.Sprintf("%s Locating", state.Spinner))
	}
	if state.LoadingLists > 0 {
		indicators = append(indicators, fmt.Sprintf("%s Loading %d lists", state.Spinner, state.LoadingLists))
	}
	if len(indicators) == 0 {
		return logo
	}

	rightContent := r.styles.Dim.Render(strings.Join(indicators, " | "))

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	availableWidth := termWidth - 4 // Account for main container padding
	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(rightContent)

	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + rightContent
	}
	return logo + "  " + rightContent
}

// renderMap draws the pin layer with its legend underneath
func (r *Renderer) renderMap(state ViewState) string {
	if state.Map == nil {
		return ""
	}
	width := min(48, max(24, state.Width/3))

	var parts []string
	switch {
	case state.Map.Len() > 0:
		parts = append(parts, state.Map.Render(width, MapHeight))
		parts = append(parts, r.styles.Dim.Render(strings.Join(mapview.Legend(state.Map.Markers()), "\n")))
	case state.Locating:
		parts = append(parts, r.styles.Dim.Render("Locating providers..."))
	default:
		parts = append(parts, r.styles.Dim.Render("No locations to show"))
	}
	if state.MapMissed > 0 {
		parts = append(parts, r.styles.Scroll.Render(fmt.Sprintf("%d addresses not found", state.MapMissed)))
	}
	if state.MapError != "" {
		parts = append(parts, r.styles.StatusError.Render(state.MapError))
	}
	return strings.Join(parts, "\n")
}
