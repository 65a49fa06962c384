package dropdown

import (
	"fmt"
	"strings"

	"npisearch/internal/datasource"
)

// DisplayOrder controls what a committed choice writes into the input
type DisplayOrder int

const (
	// TitleOnly writes the title
	TitleOnly DisplayOrder = iota
	// SubtitleFirst writes "subtitle, title" when a subtitle is present
	SubtitleFirst
)

// ParseDisplayOrder maps the configuration spelling to a DisplayOrder
func ParseDisplayOrder(s string) DisplayOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "subtitle_first", "subtitle-first", "subtitlefirst":
		return SubtitleFirst
	default:
		return TitleOnly
	}
}

// Config describes one typeahead widget
type Config struct {
	InputID           string
	SelectedDisplayID string // optional
	Source            datasource.Source
	Keys              datasource.Keys
	Placeholder       string
	NoResultsText     string
	Fallback          []map[string]any
	DisplayOrder      DisplayOrder
}

// MenuState is the keyboard state of the menu
type MenuState string

const (
	StateClosed      MenuState = "closed"
	StateOpen        MenuState = "open-no-highlight"
	StateHighlighted MenuState = "open-highlighted"
)

// Key is a navigation key the widget may consume
type Key string

const (
	KeyUp     Key = "up"
	KeyDown   Key = "down"
	KeyEnter  Key = "enter"
	KeyEscape Key = "esc"
)

// ConfigError reports a layout the widget cannot bind to
type ConfigError struct {
	InputID string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dropdown %q: %s", e.InputID, e.Reason)
}
