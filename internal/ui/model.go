package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"npisearch/internal/results"
	"npisearch/internal/ui/commands"
	"npisearch/internal/ui/handlers"
	"npisearch/internal/ui/input"
	inputtypes "npisearch/internal/ui/input/types"
	"npisearch/internal/ui/services/dropdown"
	"npisearch/internal/ui/services/navigation"
	"npisearch/internal/ui/services/search"
	"npisearch/internal/ui/state"
	"npisearch/internal/ui/viewmodels"
	"npisearch/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	ctx   context.Context
	page  *Page
	state *state.AppState // centralized state

	// UI-specific state not in AppState
	width       int
	height      int
	help        help.Model
	spinner     spinner.Model
	inPagerMode bool // tracks if we're currently in pager mode
	helpContent string
	detailCache struct {
		index, width int
		page         uint64
		content      string
	}

	// Handlers
	resultsNav   *navigation.Service    // cursor over the result cards
	renderer     *views.Renderer        // view renderer
	eventHandler *handlers.EventHandler // event processing handler
	viewModel    *viewmodels.ViewModel  // view model for rendering
	cmdExecutor  *commands.Executor     // command executor
	inputHandler *input.Handler         // input handling
	detail       *results.Renderer      // markdown renderer for provider details
	pager        *PagerOps              // full screen pager

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model for page
func NewModel(ctx context.Context, page *Page) *Model {
	appState := state.NewAppState()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:          ctx,
		page:         page,
		state:        appState,
		help:         help.New(),
		spinner:      sp,
		resultsNav:   navigation.NewService(),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		detail:       results.NewRenderer(60),
		pager:        NewPagerOps(),
		helpContent:  NewHelpRenderer(inputtypes.Keys).RenderHelpContent(),
	}
	m.detailCache.index = -1

	m.resultsNav.SetCountFunction(func() int { return len(m.state.Page.Cards) })
	m.resultsNav.SetViewportHeight(appState.ViewportHeight)

	// Create event handler
	m.eventHandler = handlers.NewEventHandler(appState, page.Search.IsCurrent)

	// Create command executor
	m.cmdExecutor = commands.NewExecutor(ctx, appState, page.Search, page.Fetcher)

	// Create view model
	m.viewModel = viewmodels.NewViewModel(appState, viewmodels.Sources{
		Form:       page.Form,
		DropdownOf: m.widgetFor,
		Search:     page.Search,
	})
	m.viewModel.SetHelp(m.help, inputtypes.Keys)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if m.pager != nil {
		m.pager.SetProgram(p)
	}
}

// State exposes the application state
func (m *Model) State() *state.AppState {
	return m.state
}

// Page returns the page the model drives
func (m *Model) Page() *Page {
	return m.page
}

// Init loads the dropdown lists and starts the spinner
func (m *Model) Init() tea.Cmd {
	var focus tea.Cmd
	if f := m.page.Form.Focused(); f != nil {
		focus = f.Input.Focus()
	}
	return tea.Batch(
		m.cmdExecutor.ExecuteLoadItems(m.page.Dropdowns...),
		focus,
		textinput.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewModel.SetHelp(m.help, inputtypes.Keys)
		m.detail.SetWidth(min(80, msg.Width-10))
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		ctx := &input.ModelContext{
			Form:  m.page.Form,
			State: m.state,
			OpenMenu: func(fieldID string) bool {
				dd, ok := m.page.DropdownFor(fieldID)
				return ok && dd.IsOpen()
			},
		}

		before := m.inputHandler.CurrentMode()
		actions := m.inputHandler.HandleKey(msg, ctx)
		if after := m.inputHandler.CurrentMode(); after != before && after == inputtypes.ModeHelp {
			m.state.HelpScrollOffset = 0
		}

		cmds := []tea.Cmd{}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	mode := m.inputHandler.CurrentMode()
	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetSpinner(m.spinner.View())
	m.viewModel.SetHelpPopup(mode == inputtypes.ModeHelp, m.helpContent)
	if mode == inputtypes.ModeDetail {
		m.viewModel.SetDetailPopup(true, m.detailContent())
	} else {
		m.viewModel.SetDetailPopup(false, "")
	}

	return zone.Scan(m.renderer.Render(m.viewModel.BuildViewState()))
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.QuitAction:
		m.page.Search.Cancel()
		return tea.Quit

	case inputtypes.EditAction:
		return m.editFocused(a.Msg)

	case inputtypes.FocusAction:
		m.page.CloseMenus()
		var cmd tea.Cmd
		if a.Direction == "prev" {
			cmd = m.page.Form.FocusPrev()
		} else {
			cmd = m.page.Form.FocusNext()
		}
		if dd := m.focusedDropdown(); dd != nil {
			dd.Focus()
		}
		return cmd

	case inputtypes.MenuKeyAction:
		if dd := m.focusedDropdown(); dd != nil {
			dd.HandleKey(dropdown.Key(a.Key))
		}

	case inputtypes.SearchAction:
		m.page.CloseMenus()
		return m.cmdExecutor.ExecuteSearch(m.page.Params())

	case inputtypes.ClearAction:
		m.page.Search.Cancel()
		m.page.ClearAll()
		if m.page.Layer != nil {
			m.page.Layer.Clear()
		}
		m.state.ClearResults()
		m.state.Searching = false
		m.resultsNav.Reset()
		m.state.Status("Cleared")

	case inputtypes.NavigateAction:
		m.navigateResults(navigation.Direction(a.Direction))

	case inputtypes.ScrollHelpAction:
		total := strings.Count(m.helpContent, "\n") + 1
		visible := max(5, m.height-6)
		m.state.HelpScrollOffset = max(0, min(m.state.HelpScrollOffset+a.Delta, total-visible))

	case inputtypes.OpenPagerAction:
		return m.openPager(a.Content)

	default:
		log.Printf("processAction: unhandled %T", action)
	}
	return nil
}

// editFocused forwards a key to the focused input and refilters its dropdown
// when the text changed
func (m *Model) editFocused(msg tea.KeyMsg) tea.Cmd {
	f := m.page.Form.Focused()
	if f == nil {
		return nil
	}

	before := f.Value()
	var cmd tea.Cmd
	f.Input, cmd = f.Input.Update(msg)
	if after := f.Value(); after != before {
		if dd := m.focusedDropdown(); dd != nil {
			dd.HandleInput(after)
		}
	}
	return cmd
}

func (m *Model) focusedDropdown() *dropdown.Service {
	f := m.page.Form.Focused()
	if f == nil {
		return nil
	}
	dd, ok := m.page.DropdownFor(f.ID)
	if !ok {
		return nil
	}
	return dd
}

// widgetFor returns the dropdown declared on field id, attached or not
func (m *Model) widgetFor(fieldID string) *dropdown.Service {
	for _, dd := range m.page.Dropdowns {
		if dd.Config().InputID == fieldID {
			return dd
		}
	}
	return nil
}

func (m *Model) navigateResults(dir navigation.Direction) {
	if len(m.state.Page.Cards) == 0 {
		return
	}
	m.resultsNav.Navigate(dir)
	m.syncResultsCursor()
}

func (m *Model) syncResultsCursor() {
	m.state.SelectedIndex = m.resultsNav.GetCursor()
	m.state.ViewportOffset = m.resultsNav.GetViewportOffset()
}

// updateViewportHeight calculates how many cards fit below the form
func (m *Model) updateViewportHeight() {
	// Each field takes 3 lines plus its display area; cards take about 5
	reserved := 8 + 4*len(m.page.Form.Fields())
	m.state.ViewportHeight = max(1, (m.height-reserved)/5)
	m.resultsNav.SetViewportHeight(m.state.ViewportHeight)
	m.syncResultsCursor()
}

func (m *Model) detailContent() string {
	card, ok := m.state.SelectedCard()
	if !ok {
		return ""
	}
	c := &m.detailCache
	if c.index != m.state.SelectedIndex || c.width != m.width || c.page != m.state.Generation {
		c.index, c.width, c.page = m.state.SelectedIndex, m.width, m.state.Generation
		c.content = strings.TrimSpace(m.detail.Render(results.Markdown(card)))
	}
	return c.content
}

// openPager returns a command that shows content in the ov pager
func (m *Model) openPager(content string) tea.Cmd {
	var text string
	switch content {
	case "help":
		text = m.helpContent
	default:
		if !m.state.HasResults || m.state.ResultsError != "" {
			return nil
		}
		text = m.detail.Render(results.PageMarkdown(m.state.Page))
	}

	if !m.pager.Available() {
		m.state.StatusError("Pager unavailable")
		return nil
	}

	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.ShowInPager(text)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerDoneMsg{err: err}
	}
}

func inZone(id string, msg tea.MouseMsg) bool {
	z := zone.Get(id)
	return z != nil && z.InBounds(msg)
}

// handleMouse resolves a click against the zones marked by the last render
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.inputHandler.CurrentMode() != inputtypes.ModeForm {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.navigateResults(navigation.DirectionUp)
		return nil
	case tea.MouseButtonWheelDown:
		m.navigateResults(navigation.DirectionDown)
		return nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
	default:
		return nil
	}

	if dd, ok := m.page.OpenDropdown(); ok {
		id := dd.Config().InputID
		for i := range dd.Rendered() {
			if inZone(views.RowZoneID(id, i), msg) {
				dd.ActivateRow(i)
				return nil
			}
		}
		if !inZone(views.MenuZoneID(id), msg) && !inZone(views.FieldZoneID(id), msg) {
			dd.HandlePointerOutside()
		}
	}

	for i, f := range m.page.Form.Fields() {
		if !inZone(views.FieldZoneID(f.ID), msg) {
			continue
		}
		if m.page.Form.FocusIndex() == i {
			return nil
		}
		m.page.CloseMenus()
		cmd := m.page.Form.FocusAt(i)
		if dd := m.focusedDropdown(); dd != nil {
			dd.Focus()
		}
		return cmd
	}

	for i := range m.state.Page.Cards {
		if inZone(views.CardZoneID(i), msg) {
			m.resultsNav.MoveToIndex(i)
			m.syncResultsCursor()
			return nil
		}
	}
	return nil
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		// Process domain events
		return m, m.eventHandler.HandleEvent(msg.Event)

	case commands.ItemsLoadedMsg:
		if dd := m.widgetFor(msg.InputID); dd != nil {
			dd.SetItems(msg.Items, msg.Err)
		}
		m.state.SetListLoading(msg.InputID, false)
		m.state.ListCounts[msg.InputID] = len(msg.Items)
		return m, nil

	case commands.SearchDoneMsg:
		return m, m.handleSearchDone(msg)

	case commands.MapDoneMsg:
		if errors.Is(msg.Err, search.ErrSuperseded) || errors.Is(msg.Err, context.Canceled) {
			return m, nil
		}
		if !m.page.Search.IsCurrent(msg.Outcome.Generation) {
			return m, nil
		}
		errMsg := ""
		if msg.Err != nil {
			errMsg = fmt.Sprintf("Map unavailable: %v", msg.Err)
		} else if msg.Outcome.Err != nil {
			errMsg = fmt.Sprintf("Geocoding: %v", msg.Outcome.Err)
		}
		m.state.SetMap(len(msg.Outcome.Markers), msg.Outcome.Missed, errMsg)
		return m, nil

	case spinner.TickMsg:
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerDoneMsg:
		if msg.err != nil {
			log.Printf("Pager failed: %v", msg.err)
			m.state.StatusError(fmt.Sprintf("Pager failed: %v", msg.err))
		}
		return m, nil

	case pauseRenderingMsg:
		// Signal that rendering should be paused for external pager
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, m.spinner.Tick

	case handlers.ClearStatusMsg:
		// Clear the status message unless a newer one replaced it
		if m.state.StatusMessage == msg.Message {
			m.state.Status("")
		}
		return m, nil

	default:
		// Blink and other input messages go to the focused field
		if f := m.page.Form.Focused(); f != nil {
			var cmd tea.Cmd
			f.Input, cmd = f.Input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

func (m *Model) handleSearchDone(msg commands.SearchDoneMsg) tea.Cmd {
	if errors.Is(msg.Err, search.ErrSuperseded) || errors.Is(msg.Err, context.Canceled) {
		return nil
	}
	if !m.page.Search.IsCurrent(msg.Outcome.Generation) {
		return nil
	}

	m.resultsNav.Reset()
	if m.page.Layer != nil {
		m.page.Layer.Clear()
	}
	if msg.Err != nil {
		hint := results.ProxyHint(m.page.Config.API.BaseURL)
		m.state.SetResultsError(msg.Outcome.Generation, fmt.Sprintf("Error: %v. %s", msg.Err, hint))
		return nil
	}

	m.state.SetResults(msg.Outcome.Generation, msg.Outcome.Page)
	m.syncResultsCursor()
	return m.cmdExecutor.ExecuteLocate(msg.Outcome)
}
