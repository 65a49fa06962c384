package results

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"npisearch/internal/domain"
)

// Markdown renders one card as a markdown document
func Markdown(c domain.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Name)
	fmt.Fprintf(&b, "*%s* · NPI `%s`\n\n", c.Kind, c.NPI)

	if c.Specialty != "" {
		b.WriteString("## Specialties\n\n")
		fmt.Fprintf(&b, "- **%s**\n", c.Specialty)
		for _, s := range c.OtherSpecialties {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	if !c.Address.IsZero() {
		b.WriteString("## Address\n\n")
		if c.Address.Purpose != "" {
			fmt.Fprintf(&b, "%s  \n", strings.ToLower(c.Address.Purpose))
		}
		fmt.Fprintf(&b, "%s  \n%s\n", StreetLine(c.Address), CityLine(c.Address))
		if c.Address.Phone != "" {
			fmt.Fprintf(&b, "\nPhone: %s\n", c.Address.Phone)
		}
	}
	return b.String()
}

// PageMarkdown renders a whole result page, one section per card
func PageMarkdown(page domain.ResultPage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", Headline(page))
	for i, c := range page.Cards {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		b.WriteString(strings.Replace(Markdown(c), "# ", "## ", 1))
	}
	return b.String()
}

// Renderer renders card markdown for the terminal
type Renderer struct {
	width int
	tr    *glamour.TermRenderer
}

// NewRenderer creates a renderer wrapping at width
func NewRenderer(width int) *Renderer {
	r := &Renderer{}
	r.SetWidth(width)
	return r
}

// SetWidth rebuilds the renderer when the wrap width changes
func (r *Renderer) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	if width == r.width && r.tr != nil {
		return
	}
	r.width = width
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r.tr = nil
		return
	}
	r.tr = tr
}

// Render returns styled output, falling back to the raw markdown
func (r *Renderer) Render(md string) string {
	if r.tr == nil {
		return md
	}
	out, err := r.tr.Render(md)
	if err != nil {
		return md
	}
	return out
}
