package dropdown

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"npisearch/internal/datasource"
	"npisearch/internal/domain"
	"npisearch/internal/eventbus"
	"npisearch/internal/ui/form"
)

// recordingBus captures published events synchronously
type recordingBus struct {
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) { b.events = append(b.events, e) }
func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}

func (b *recordingBus) ofType(t eventbus.EventType) []eventbus.DomainEvent {
	var out []eventbus.DomainEvent
	for _, e := range b.events {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

type failingFetcher struct{}

func (failingFetcher) Fetch(context.Context, string) ([]byte, error) {
	return nil, &datasource.StatusError{URL: "http://x", StatusCode: 500}
}

func specialtyConfig() Config {
	return Config{
		InputID:           "specialty",
		SelectedDisplayID: "selected-specialty",
		Source: datasource.Source{Inline: []map[string]any{
			{"id": 1, "title": "Cardiology"},
			{"id": 2, "title": "Neurology"},
		}},
		Keys:        datasource.DefaultKeys,
		Placeholder: "Medical specialties",
	}
}

func newAttached(t *testing.T, cfg Config) (*Service, *form.Layout, *recordingBus) {
	t.Helper()
	layout := form.NewLayout()
	layout.Add(form.NewDropdownField(cfg.InputID, "Field"))
	if cfg.SelectedDisplayID != "" {
		layout.AddDisplay(cfg.SelectedDisplayID)
	}
	bus := &recordingBus{}
	s := NewService(cfg, bus)
	require.NoError(t, s.Attach(layout))
	require.NoError(t, s.Load(context.Background(), nil))
	return s, layout, bus
}

func typeText(s *Service, text string) {
	s.Field().SetValue(text)
	s.HandleInput(text)
}

func TestTypeCardioThenEnterSelects(t *testing.T) {
	s, layout, bus := newAttached(t, specialtyConfig())

	typeText(s, "cardio")
	require.Len(t, s.Rendered(), 1)
	assert.Equal(t, "1", s.Rendered()[0].Key())
	assert.Equal(t, StateOpen, s.State())

	assert.True(t, s.HandleKey(KeyDown))
	assert.Equal(t, StateHighlighted, s.State())
	assert.True(t, s.HandleKey(KeyEnter))

	item, ok := s.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, "1", item.Key())
	assert.Equal(t, "Cardiology", s.Field().Value())
	assert.Equal(t, StateClosed, s.State())

	d, _ := layout.Display("selected-specialty")
	assert.Equal(t, "Cardiology", d.Title)
	assert.False(t, d.Empty)

	selected := bus.ofType(eventbus.EventItemSelected)
	require.Len(t, selected, 1)
	ev := selected[0].(domain.ItemSelectedEvent)
	assert.Equal(t, "specialty", ev.Source)
	assert.Equal(t, 1, ev.ID)
	assert.Equal(t, "Cardiology", ev.Title)
	assert.Equal(t, "Cardiology", ev.Original["title"])
}

func TestAttachFailuresLeaveWidgetInert(t *testing.T) {
	cases := map[string]*form.Layout{
		"missing input": form.NewLayout(),
		"not a dropdown": func() *form.Layout {
			l := form.NewLayout()
			l.Add(form.NewField("specialty", "Specialty", form.KindText, form.DropdownRegions...))
			return l
		}(),
		"missing regions": func() *form.Layout {
			l := form.NewLayout()
			l.Add(form.NewField("specialty", "Specialty", form.KindDropdown, form.RegionMenu))
			return l
		}(),
	}

	for name, layout := range cases {
		t.Run(name, func(t *testing.T) {
			bus := &recordingBus{}
			s := NewService(specialtyConfig(), bus)

			err := s.Attach(layout)
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "specialty", cfgErr.InputID)
			assert.False(t, s.Attached())

			assert.NoError(t, s.Load(context.Background(), nil))
			assert.Empty(t, s.Items())
			s.HandleInput("cardio")
			assert.False(t, s.IsOpen())
			assert.False(t, s.HandleKey(KeyDown))
			s.Select(domain.Item{ID: 1, Title: "x"})
			s.Clear()
			_, ok := s.SelectedItem()
			assert.False(t, ok)
			assert.Empty(t, bus.events)
		})
	}
}

func TestMissingRegionsNamed(t *testing.T) {
	l := form.NewLayout()
	l.Add(form.NewField("specialty", "Specialty", form.KindDropdown, form.RegionMenu))
	err := NewService(specialtyConfig(), nil).Attach(l)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grid, no-results")
}

func TestSelectedDisplayIsOptional(t *testing.T) {
	cfg := specialtyConfig()
	l := form.NewLayout()
	l.Add(form.NewDropdownField("specialty", "Specialty"))
	s := NewService(cfg, nil)
	require.NoError(t, s.Attach(l))
	require.NoError(t, s.Load(context.Background(), nil))
	assert.Nil(t, s.Display())

	typeText(s, "neuro")
	assert.True(t, s.ActivateRow(0))
	item, ok := s.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, "Neurology", item.Title)
}

func TestAttachSetsPlaceholder(t *testing.T) {
	s, _, _ := newAttached(t, specialtyConfig())
	assert.Equal(t, "Medical specialties", s.Field().Input.Placeholder)
}

func TestLoadFallbackPublishesCause(t *testing.T) {
	cfg := specialtyConfig()
	cfg.Source = datasource.Source{URL: "http://registry.invalid/specialties.json"}
	cfg.Fallback = []map[string]any{{"id": 7, "title": "General Practice"}}

	l := form.NewLayout()
	l.Add(form.NewDropdownField("specialty", "Specialty"))
	bus := &recordingBus{}
	s := NewService(cfg, bus)
	require.NoError(t, s.Attach(l))

	err := s.Load(context.Background(), failingFetcher{})
	require.Error(t, err)
	require.Len(t, s.Items(), 1)
	assert.Equal(t, "General Practice", s.Items()[0].Title)

	loaded := bus.ofType(eventbus.EventItemsLoaded)
	require.Len(t, loaded, 1)
	ev := loaded[0].(domain.ItemsLoadedEvent)
	assert.True(t, ev.Fallback)
	assert.Equal(t, 1, ev.Count)
}

func TestKeyboardClampsAndResets(t *testing.T) {
	cfg := specialtyConfig()
	cfg.Source.Inline = []map[string]any{
		{"id": 1, "title": "Cardiology"},
		{"id": 2, "title": "Pediatric Cardiology"},
		{"id": 3, "title": "Neurology"},
	}
	s, _, _ := newAttached(t, cfg)

	assert.False(t, s.HandleKey(KeyDown), "closed menu does not consume keys")

	typeText(s, "cardio")
	require.Len(t, s.Rendered(), 2)

	assert.True(t, s.HandleKey(KeyUp))
	assert.Equal(t, -1, s.ActiveIndex())

	for i := 0; i < 4; i++ {
		s.HandleKey(KeyDown)
	}
	assert.Equal(t, 1, s.ActiveIndex(), "clamped, no wrap")

	s.HandleKey(KeyUp)
	s.HandleKey(KeyUp)
	assert.Equal(t, -1, s.ActiveIndex())
	assert.Equal(t, StateOpen, s.State())

	s.HandleKey(KeyDown)
	typeText(s, "cardiology")
	assert.Equal(t, -1, s.ActiveIndex(), "new filtered set drops the highlight")

	assert.True(t, s.HandleKey(KeyEnter), "enter without highlight is swallowed")
	_, ok := s.SelectedItem()
	assert.False(t, ok)
	assert.True(t, s.IsOpen())

	s.HandleKey(KeyDown)
	assert.True(t, s.HandleKey(KeyEscape))
	assert.Equal(t, StateClosed, s.State())
	assert.Equal(t, -1, s.ActiveIndex())
}

func TestClearingInputCloses(t *testing.T) {
	s, _, _ := newAttached(t, specialtyConfig())
	typeText(s, "neuro")
	assert.True(t, s.IsOpen())

	typeText(s, "   ")
	assert.False(t, s.IsOpen())
}

func TestNoResultsRegion(t *testing.T) {
	s, _, _ := newAttached(t, specialtyConfig())
	typeText(s, "zzz")
	assert.True(t, s.IsOpen())
	assert.True(t, s.ShowNoResults())
	assert.False(t, s.ShowGrid())

	typeText(s, "neuro")
	assert.True(t, s.ShowGrid())
	assert.False(t, s.ShowNoResults())
}

func TestFocusReopensForExistingText(t *testing.T) {
	s, _, _ := newAttached(t, specialtyConfig())
	typeText(s, "neuro")
	s.HandlePointerOutside()
	assert.False(t, s.IsOpen())

	s.Focus()
	assert.True(t, s.IsOpen())
	assert.Len(t, s.Rendered(), 1)
}

func TestClearSelection(t *testing.T) {
	s, layout, bus := newAttached(t, specialtyConfig())
	typeText(s, "neuro")
	s.HandleKey(KeyDown)
	s.HandleKey(KeyEnter)

	s.Clear()
	_, ok := s.SelectedItem()
	assert.False(t, ok)
	assert.Equal(t, "", s.Field().Value())
	assert.False(t, s.IsOpen())

	d, _ := layout.Display("selected-specialty")
	assert.Equal(t, form.NothingSelected, d.Title)
	assert.Len(t, bus.ofType(eventbus.EventSelectionCleared), 1)
}

func TestReopenedMenuMarksCommittedRow(t *testing.T) {
	s, _, _ := newAttached(t, specialtyConfig())
	typeText(s, "neuro")
	s.HandleKey(KeyDown)
	s.HandleKey(KeyEnter)

	typeText(s, "o")
	require.Len(t, s.Rendered(), 2)
	var marked []string
	for _, item := range s.Rendered() {
		if s.IsSelected(item) {
			marked = append(marked, item.Title)
		}
	}
	assert.Equal(t, []string{"Neurology"}, marked)

	s.Clear()
	typeText(s, "o")
	for _, item := range s.Rendered() {
		assert.False(t, s.IsSelected(item))
	}
}

func TestSelectionSurvivesReloadByID(t *testing.T) {
	s, _, _ := newAttached(t, specialtyConfig())
	typeText(s, "neuro")
	s.HandleKey(KeyDown)
	s.HandleKey(KeyEnter)

	// Same ids in a different order, numeric ids now decoded as floats
	s.SetItems([]domain.Item{
		{ID: 2.0, Title: "Neurology (renamed)"},
		{ID: 1.0, Title: "Cardiology"},
	}, nil)

	item, ok := s.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, "Neurology (renamed)", item.Title)

	s.SetItems([]domain.Item{{ID: 1, Title: "Cardiology"}}, nil)
	_, ok = s.SelectedItem()
	assert.False(t, ok, "unknown id reads as no selection")
}

func TestSubtitleFirstDisplay(t *testing.T) {
	cfg := Config{
		InputID: "specialty",
		Source: datasource.Source{Inline: []map[string]any{
			{"id": "207RC0000X", "specialty": "Cardiovascular Disease", "classification": "Internal Medicine"},
			{"id": "208D00000X", "specialty": "General Practice"},
		}},
		Keys:         datasource.Keys{ID: "id", Title: "specialty", Subtitle: "classification"},
		DisplayOrder: SubtitleFirst,
	}
	s, _, _ := newAttached(t, cfg)

	typeText(s, "internal")
	require.Len(t, s.Rendered(), 1)
	s.ActivateRow(0)
	assert.Equal(t, "Internal Medicine, Cardiovascular Disease", s.Field().Value())

	typeText(s, "general")
	s.ActivateRow(0)
	assert.Equal(t, "General Practice", s.Field().Value())
}

func TestActivateRowBounds(t *testing.T) {
	s, _, _ := newAttached(t, specialtyConfig())
	assert.False(t, s.ActivateRow(0), "closed menu")
	typeText(s, "neuro")
	assert.False(t, s.ActivateRow(3))
	assert.False(t, s.ActivateRow(-1))
}

func TestParseDisplayOrder(t *testing.T) {
	assert.Equal(t, SubtitleFirst, ParseDisplayOrder("subtitle_first"))
	assert.Equal(t, TitleOnly, ParseDisplayOrder("title"))
	assert.Equal(t, TitleOnly, ParseDisplayOrder(""))
}
