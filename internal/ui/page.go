package ui

import (
	"fmt"
	"log"
	"strings"

	"npisearch/internal/config"
	"npisearch/internal/datasource"
	"npisearch/internal/domain"
	"npisearch/internal/eventbus"
	"npisearch/internal/mapview"
	"npisearch/internal/npi"
	"npisearch/internal/ui/form"
	"npisearch/internal/ui/services/dropdown"
	"npisearch/internal/ui/services/search"
)

// Text field ids on the search form
const (
	FieldCity      = "city"
	FieldZip       = "zip"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
)

var textFields = []struct {
	id, label string
}{
	{FieldCity, "City"},
	{FieldZip, "ZIP"},
	{FieldFirstName, "First name"},
	{FieldLastName, "Last name"},
}

// Deps are the collaborators a page talks to
type Deps struct {
	Bus      eventbus.EventBus
	Searcher search.Searcher
	Geocoder search.Geocoder // nil disables the map
	Fetcher  datasource.Fetcher
}

// Page owns everything one search page needs: the form, its dropdowns, the
// event bus, the search flow and the marker layer.
type Page struct {
	Config    *config.Config
	Bus       eventbus.EventBus
	Form      *form.Layout
	Dropdowns []*dropdown.Service
	Search    *search.Service
	Layer     *mapview.Layer
	Fetcher   datasource.Fetcher

	byName map[string]*dropdown.Service
}

// NewPage builds the form from cfg and attaches one dropdown per declaration.
// A dropdown that cannot attach stays inert; its error is logged, published
// and returned, and the rest of the page keeps working.
func NewPage(cfg *config.Config, deps Deps) (*Page, []error) {
	bus := deps.Bus
	if bus == nil {
		bus = eventbus.NullBus{}
	}

	p := &Page{
		Config:  cfg,
		Bus:     bus,
		Form:    form.NewLayout(),
		Fetcher: deps.Fetcher,
		byName:  make(map[string]*dropdown.Service),
	}

	for _, dc := range cfg.Dropdowns {
		if _, exists := p.Form.Field(dc.InputID); !exists && dc.InputID != "" {
			p.Form.Add(form.NewDropdownField(dc.InputID, fieldLabel(dc)))
		}
		if dc.SelectedDisplayID != "" {
			p.Form.AddDisplay(dc.SelectedDisplayID)
		}
	}
	for _, tf := range textFields {
		if _, exists := p.Form.Field(tf.id); !exists {
			p.Form.Add(form.NewField(tf.id, tf.label, form.KindText))
		}
	}

	var errs []error
	for _, dc := range cfg.Dropdowns {
		ddCfg, err := DropdownConfig(dc)
		if err != nil {
			log.Printf("dropdown %s: %v", dc.Name, err)
			errs = append(errs, err)
		}
		if dc.Param != "" && !npi.IsCriterion(dc.Param) {
			err := fmt.Errorf("dropdown %s: unknown search param %q", dc.Name, dc.Param)
			log.Print(err)
			errs = append(errs, err)
		}
		dd := dropdown.NewService(ddCfg, bus)
		if err := dd.Attach(p.Form); err != nil {
			log.Printf("dropdown %s: attach failed: %v", dc.Name, err)
			bus.Publish(domain.WidgetAttachFailedEvent{Source: dc.InputID, Err: err})
			errs = append(errs, err)
		}
		p.Dropdowns = append(p.Dropdowns, dd)
		p.byName[dc.Name] = dd
	}

	var opts []search.Option
	if cfg.Map.Enabled && deps.Geocoder != nil {
		p.Layer = mapview.NewLayer()
		opts = append(opts, search.WithMap(deps.Geocoder, p.Layer))
	}
	p.Search = search.NewService(bus, deps.Searcher, opts...)

	if len(p.Form.Fields()) > 0 {
		p.Form.FocusAt(0)
	}
	return p, errs
}

func fieldLabel(dc config.DropdownConfig) string {
	name := dc.Name
	if name == "" {
		name = dc.InputID
	}
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// DropdownConfig maps a configuration declaration onto a widget config.
// With a source URL the builtin list becomes the fallback; without one the
// builtin list is the inline source.
func DropdownConfig(dc config.DropdownConfig) (dropdown.Config, error) {
	out := dropdown.Config{
		InputID:           dc.InputID,
		SelectedDisplayID: dc.SelectedDisplayID,
		Keys: datasource.Keys{
			ID:       dc.KeyID,
			Title:    dc.KeyTitle,
			Subtitle: dc.KeySubtitle,
		},
		Placeholder:   dc.Placeholder,
		NoResultsText: dc.NoResultsText,
		DisplayOrder:  dropdown.ParseDisplayOrder(dc.DisplayOrder),
	}
	if out.Keys.ID == "" {
		out.Keys.ID = datasource.DefaultKeys.ID
	}
	if out.Keys.Title == "" {
		out.Keys.Title = datasource.DefaultKeys.Title
	}

	switch {
	case dc.SourceURL != "":
		out.Source = datasource.Source{URL: dc.SourceURL, Path: dc.DataPath}
		if dc.Builtin != "" {
			fallback, err := datasource.BuiltinRecords(dc.Builtin, dc.DataPath)
			if err != nil {
				return out, fmt.Errorf("fallback list: %w", err)
			}
			out.Fallback = fallback
		}
	case dc.Builtin != "":
		payload, err := datasource.Builtin(dc.Builtin)
		if err != nil {
			return out, err
		}
		out.Source = datasource.Source{Inline: payload, Path: dc.DataPath}
	}
	return out, nil
}

// Dropdown returns the widget declared under name
func (p *Page) Dropdown(name string) (*dropdown.Service, bool) {
	dd, ok := p.byName[name]
	return dd, ok
}

// DropdownFor returns the widget bound to field id
func (p *Page) DropdownFor(fieldID string) (*dropdown.Service, bool) {
	for _, dd := range p.Dropdowns {
		if dd.Attached() && dd.Config().InputID == fieldID {
			return dd, true
		}
	}
	return nil, false
}

// OpenDropdown returns the widget whose menu is open, if any
func (p *Page) OpenDropdown() (*dropdown.Service, bool) {
	for _, dd := range p.Dropdowns {
		if dd.IsOpen() {
			return dd, true
		}
	}
	return nil, false
}

// Params reads the form into registry search criteria
func (p *Page) Params() npi.SearchParams {
	value := func(id string) string {
		if f, ok := p.Form.Field(id); ok {
			return strings.TrimSpace(f.Value())
		}
		return ""
	}
	params := npi.SearchParams{
		FirstName:  value(FieldFirstName),
		LastName:   value(FieldLastName),
		City:       value(FieldCity),
		PostalCode: value(FieldZip),
		Version:    p.Config.API.Version,
		Limit:      p.Config.API.Limit,
	}
	for _, dc := range p.Config.Dropdowns {
		if dc.Param == "" {
			continue
		}
		if v := value(dc.InputID); v != "" {
			params.Set(dc.Param, v)
		}
	}
	return params
}

// ClearAll resets every dropdown selection and empties the text fields
func (p *Page) ClearAll() {
	for _, dd := range p.Dropdowns {
		dd.Clear()
	}
	for _, f := range p.Form.Fields() {
		if f.Kind == form.KindText {
			f.SetValue("")
		}
	}
}

// CloseMenus closes every open dropdown menu
func (p *Page) CloseMenus() {
	for _, dd := range p.Dropdowns {
		if dd.IsOpen() {
			dd.Close()
		}
	}
}
