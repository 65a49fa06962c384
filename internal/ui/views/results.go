package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"npisearch/internal/domain"
	"npisearch/internal/results"
)

// ResultsRenderer handles rendering of provider cards
type ResultsRenderer struct {
	styles *Styles
}

// NewResultsRenderer creates a new results renderer
func NewResultsRenderer(styles *Styles) *ResultsRenderer {
	return &ResultsRenderer{styles: styles}
}

// RenderResults renders the headline and the visible window of cards
func (rr *ResultsRenderer) RenderResults(state ViewState) string {
	if state.ResultsError != "" {
		return rr.styles.ResultsError.Render(state.ResultsError)
	}

	page := state.Page
	if len(page.Cards) == 0 {
		return rr.styles.Dim.Render(results.NoResultsMessage)
	}

	lines := []string{rr.styles.Highlight.Render(results.Headline(page))}

	height := max(1, state.ViewportHeight)
	offset := max(0, min(state.ViewportOffset, len(page.Cards)-1))
	end := min(len(page.Cards), offset+height)

	if offset > 0 {
		lines = append(lines, rr.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", offset)))
	}
	for i := offset; i < end; i++ {
		card := rr.RenderCard(page.Cards[i], i, i == state.SelectedIndex, state.Width)
		lines = append(lines, zone.Mark(CardZoneID(i), card))
	}
	if below := len(page.Cards) - end; below > 0 {
		lines = append(lines, rr.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}
	return strings.Join(lines, "\n")
}

// RenderCard renders one provider card.
// Layout: name and kind, specialty, other specialties, street, city line.
func (rr *ResultsRenderer) RenderCard(c domain.Card, index int, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = rr.styles.CardCursor.Render("▶ ")
	}

	kind := lipgloss.NewStyle().Foreground(lipgloss.Color(KindColor(string(c.Kind)))).Render(string(c.Kind))
	header := fmt.Sprintf("%s%s  %s", cursor, rr.styles.CardName.Render(c.Name), kind)

	body := []string{header}
	if c.Specialty != "" {
		body = append(body, "  "+rr.styles.CardSpecialty.Render(c.Specialty))
	}
	if others := results.OtherSpecialties(c); others != "" {
		body = append(body, "  "+rr.styles.Dim.Render(truncate(others, width-6)))
	}
	if street := results.StreetLine(c.Address); street != "" {
		body = append(body, "  "+rr.styles.CardAddress.Render(street))
	}
	if city := results.CityLine(c.Address); city != "" {
		body = append(body, "  "+rr.styles.CardAddress.Render(city))
	}

	out := strings.Join(body, "\n")
	if selected {
		out = rr.styles.SelectionBg.Render(out)
	}
	return out
}

func truncate(s string, width int) string {
	if width <= 3 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-3 {
		r = r[:width-3]
	}
	return string(r) + "..."
}
