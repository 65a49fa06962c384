package dropdown

import (
	"context"
	"fmt"
	"log"
	"strings"

	"npisearch/internal/datasource"
	"npisearch/internal/domain"
	"npisearch/internal/eventbus"
	"npisearch/internal/ui/form"
	"npisearch/internal/ui/logic"
	"npisearch/internal/ui/services/navigation"
	"npisearch/internal/ui/services/selection"
)

// Service is one typeahead dropdown bound to a form field.
// Until Attach succeeds every operation is a no-op.
type Service struct {
	cfg Config
	bus eventbus.EventBus

	field   *form.Field
	display *form.Display

	items    []domain.Item
	rendered []domain.Item
	open     bool
	attached bool

	nav *navigation.Service
	sel *selection.Service
}

// NewService creates a dropdown. A nil bus discards notifications.
func NewService(cfg Config, bus eventbus.EventBus) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if cfg.Keys == (datasource.Keys{}) {
		cfg.Keys = datasource.DefaultKeys
	}
	if cfg.NoResultsText == "" {
		cfg.NoResultsText = "No matching results found"
	}

	s := &Service{
		cfg: cfg,
		bus: bus,
		nav: navigation.NewHighlightService(),
		sel: selection.NewService(),
	}
	s.nav.SetCountFunction(func() int { return len(s.rendered) })
	return s
}

// Attach binds the widget to its input field and required regions
func (s *Service) Attach(host form.Host) error {
	field, ok := host.Field(s.cfg.InputID)
	if !ok {
		return &ConfigError{InputID: s.cfg.InputID, Reason: "input field not found"}
	}
	if field.Kind != form.KindDropdown {
		return &ConfigError{InputID: s.cfg.InputID, Reason: "field is not a dropdown container"}
	}

	var missing []string
	for _, r := range form.DropdownRegions {
		if !field.HasRegion(r) {
			missing = append(missing, string(r))
		}
	}
	if len(missing) > 0 {
		return &ConfigError{
			InputID: s.cfg.InputID,
			Reason:  fmt.Sprintf("required regions not found: %s", strings.Join(missing, ", ")),
		}
	}

	s.field = field
	if s.cfg.SelectedDisplayID != "" {
		if d, ok := host.Display(s.cfg.SelectedDisplayID); ok {
			s.display = d
			s.display.Reset()
		}
	}
	if s.cfg.Placeholder != "" {
		s.field.SetPlaceholder(s.cfg.Placeholder)
	}

	s.attached = true
	return nil
}

// Fetch resolves the configured source without touching widget state.
// It is safe to call off the UI goroutine; hand the result to SetItems.
func (s *Service) Fetch(ctx context.Context, fetcher datasource.Fetcher) ([]domain.Item, error) {
	return datasource.Load(ctx, s.cfg.Source, s.cfg.Keys, s.cfg.Fallback, fetcher)
}

// SetItems installs the candidate list. loadErr is the reason the fallback was used, if any.
func (s *Service) SetItems(items []domain.Item, loadErr error) {
	if !s.attached {
		return
	}
	s.items = items
	s.Close()

	s.bus.Publish(domain.ItemsLoadedEvent{
		Source:   s.Name(),
		Count:    len(items),
		Fallback: loadErr != nil,
		Err:      loadErr,
	})
}

// Load fetches and installs the candidate list
func (s *Service) Load(ctx context.Context, fetcher datasource.Fetcher) error {
	if !s.attached {
		return nil
	}
	items, err := s.Fetch(ctx, fetcher)
	s.SetItems(items, err)
	return err
}

// Filter matches query against the loaded items
func (s *Service) Filter(query string) []domain.Item {
	return logic.FilterItems(s.items, query)
}

// Render shows filtered as the grid, or the no-results text when empty
func (s *Service) Render(filtered []domain.Item) {
	if !s.attached {
		return
	}
	s.rendered = filtered
	s.nav.Reset()
}

// HandleInput reacts to the field's text changing
func (s *Service) HandleInput(value string) {
	if !s.attached {
		return
	}
	if strings.TrimSpace(value) == "" {
		s.Close()
		return
	}
	s.Render(s.Filter(value))
	s.Open()
}

// Focus reopens the menu for a non-empty query when the field regains focus
func (s *Service) Focus() {
	if !s.attached {
		return
	}
	if v := s.field.Value(); strings.TrimSpace(v) != "" {
		s.Render(s.Filter(v))
		s.Open()
	}
}

// HandleKey runs the keyboard state machine. It reports whether the key was
// consumed, in which case the field must not see it.
func (s *Service) HandleKey(k Key) bool {
	if !s.attached || !s.open {
		return false
	}

	switch k {
	case KeyDown:
		s.nav.Navigate(navigation.DirectionDown)
	case KeyUp:
		s.nav.Navigate(navigation.DirectionUp)
	case KeyEnter:
		if s.nav.HasCursor() {
			s.Select(s.rendered[s.nav.GetCursor()])
		}
	case KeyEscape:
		s.Close()
	default:
		return false
	}
	return true
}

// HandlePointerOutside closes the menu after a click elsewhere on the page
func (s *Service) HandlePointerOutside() {
	s.Close()
}

// ActivateRow commits the rendered row at index, as a pointer click does
func (s *Service) ActivateRow(index int) bool {
	if !s.attached || !s.open || index < 0 || index >= len(s.rendered) {
		return false
	}
	s.Select(s.rendered[index])
	return true
}

// Select commits item as the selection and notifies subscribers
func (s *Service) Select(item domain.Item) {
	if !s.attached {
		return
	}

	s.sel.Select(item.Key())
	if s.display != nil {
		s.display.SetItem(item.Title, item.Subtitle)
	}
	s.field.SetValue(s.displayValue(item))
	s.Close()

	log.Printf("dropdown %s: selected %q (id %s)", s.Name(), item.Title, item.Key())
	s.bus.Publish(domain.ItemSelectedEvent{
		Source:   s.Name(),
		ID:       item.ID,
		Title:    item.Title,
		Subtitle: item.Subtitle,
		Original: item.Original,
	})
}

// SelectedItem returns the loaded item matching the recorded selection.
// A selection whose id is no longer loaded counts as none.
func (s *Service) SelectedItem() (domain.Item, bool) {
	if !s.sel.HasSelection() {
		return domain.Item{}, false
	}
	id, _ := s.sel.Selected()
	for _, item := range s.items {
		if item.Key() == id {
			return item, true
		}
	}
	return domain.Item{}, false
}

// IsSelected reports whether item is the committed selection
func (s *Service) IsSelected(item domain.Item) bool {
	return s.sel.IsSelected(item.Key())
}

// Clear drops the selection, empties the input and closes the menu
func (s *Service) Clear() {
	if !s.attached {
		return
	}
	s.sel.Clear()
	if s.display != nil {
		s.display.Reset()
	}
	s.field.SetValue("")
	s.Close()

	s.bus.Publish(domain.SelectionClearedEvent{Source: s.Name()})
}

// Open shows the menu
func (s *Service) Open() {
	if s.attached {
		s.open = true
	}
}

// Close hides the menu and drops the highlight
func (s *Service) Close() {
	s.open = false
	s.nav.Reset()
}

func (s *Service) displayValue(item domain.Item) string {
	if s.cfg.DisplayOrder == SubtitleFirst && item.HasSubtitle {
		return item.Subtitle + ", " + item.Title
	}
	return item.Title
}

// Name identifies the widget in notifications
func (s *Service) Name() string { return s.cfg.InputID }

func (s *Service) Config() Config                  { return s.cfg }
func (s *Service) Attached() bool                  { return s.attached }
func (s *Service) IsOpen() bool                    { return s.open }
func (s *Service) Items() []domain.Item            { return s.items }
func (s *Service) Rendered() []domain.Item         { return s.rendered }
func (s *Service) ActiveIndex() int                { return s.nav.GetCursor() }
func (s *Service) Field() *form.Field              { return s.field }
func (s *Service) Display() *form.Display          { return s.display }
func (s *Service) Navigation() *navigation.Service { return s.nav }

// ShowGrid reports whether the grid region is visible
func (s *Service) ShowGrid() bool { return s.open && len(s.rendered) > 0 }

// ShowNoResults reports whether the no-results region is visible
func (s *Service) ShowNoResults() bool { return s.open && len(s.rendered) == 0 }

// State returns the keyboard state
func (s *Service) State() MenuState {
	switch {
	case !s.open:
		return StateClosed
	case s.nav.HasCursor():
		return StateHighlighted
	default:
		return StateOpen
	}
}
