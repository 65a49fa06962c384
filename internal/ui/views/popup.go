package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay centers a popup over a greyed copy of the main content
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)
	if width <= 0 || height <= 0 {
		return styledPopup
	}

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	x := max(0, (width-modalW)/2)
	y := max(0, (height-modalH)/2)

	base := strings.Split(desaturateANSI(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}
	for i, line := range strings.Split(styledPopup, "\n") {
		row := y + i
		if row >= len(base) {
			break
		}
		base[row] = spliceLine(base[row], line, x)
	}
	return strings.Join(base[:min(len(base), height)], "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	plain := ansiRE.ReplaceAllString(s, "")
	lines := strings.Split(plain, "\n")
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, l := range lines {
		lines[i] = dim.Render(l)
	}
	return strings.Join(lines, "\n")
}

// spliceLine writes overlay onto a greyed base line starting at column x.
// The base is treated as plain text so columns line up.
func spliceLine(base, overlay string, x int) string {
	plain := []rune(ansiRE.ReplaceAllString(base, ""))
	for len(plain) < x {
		plain = append(plain, ' ')
	}
	left := string(plain[:x])
	right := ""
	if end := x + lipgloss.Width(overlay); end < len(plain) {
		right = string(plain[end:])
	}
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return dim.Render(left) + overlay + dim.Render(right)
}

// ScrollWindow cuts content to height lines starting at offset and marks
// hidden lines above and below.
func ScrollWindow(content string, height, offset int) string {
	lines := strings.Split(content, "\n")
	total := len(lines)

	visible := max(5, height)
	if total <= visible {
		return content
	}

	offset = max(0, min(offset, total-visible))
	end := min(total, offset+visible)
	window := append([]string(nil), lines[offset:end]...)

	more := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if offset > 0 {
		window[0] = more.Render("↑ (more above)")
	}
	if end < total {
		window[len(window)-1] = more.Render("↓ (more below)")
	}
	return strings.Join(window, "\n")
}
