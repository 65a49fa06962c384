package commands

import (
	"context"
	"errors"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"npisearch/internal/datasource"
	"npisearch/internal/domain"
	"npisearch/internal/npi"
	"npisearch/internal/ui/services/dropdown"
	"npisearch/internal/ui/services/search"
	"npisearch/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Ctx     context.Context
	State   *state.AppState
	Search  *search.Service
	Fetcher datasource.Fetcher
}

// ItemsLoadedMsg carries a fetched candidate list back to the UI goroutine
type ItemsLoadedMsg struct {
	InputID string
	Items   []domain.Item
	Err     error // set when the fallback list was used
}

// SearchDoneMsg carries a finished search
type SearchDoneMsg struct {
	Outcome search.Outcome
	Err     error
}

// MapDoneMsg carries the pin placement for a search
type MapDoneMsg struct {
	Outcome search.MapOutcome
	Err     error
}

// LoadItemsCommand fetches a dropdown's candidate list
type LoadItemsCommand struct {
	ctx *CommandContext
	dd  *dropdown.Service
}

// NewLoadItemsCommand creates a new load command
func NewLoadItemsCommand(ctx *CommandContext, dd *dropdown.Service) *LoadItemsCommand {
	return &LoadItemsCommand{ctx: ctx, dd: dd}
}

// Execute marks the list as loading and fetches it off the UI goroutine.
// Installing the items is left to the receiver of ItemsLoadedMsg.
func (c *LoadItemsCommand) Execute() tea.Cmd {
	if !c.dd.Attached() {
		return nil
	}
	id := c.dd.Name()
	c.ctx.State.SetListLoading(id, true)
	return func() tea.Msg {
		items, err := c.dd.Fetch(c.ctx.Ctx, c.ctx.Fetcher)
		return ItemsLoadedMsg{InputID: id, Items: items, Err: err}
	}
}

// SearchCommand runs a registry search
type SearchCommand struct {
	ctx    *CommandContext
	params npi.SearchParams
}

// NewSearchCommand creates a new search command
func NewSearchCommand(ctx *CommandContext, params npi.SearchParams) *SearchCommand {
	return &SearchCommand{ctx: ctx, params: params}
}

// Execute validates the criteria and issues the search. Missing criteria
// are reported inline without touching the network.
func (c *SearchCommand) Execute() tea.Cmd {
	if c.params.Empty() {
		c.ctx.State.StatusError(npi.ErrNoCriteria.Error())
		return nil
	}
	c.ctx.State.BeginSearch("")
	params := c.params
	return func() tea.Msg {
		out, err := c.ctx.Search.Search(c.ctx.Ctx, params)
		return SearchDoneMsg{Outcome: out, Err: err}
	}
}

// LocateCommand places map pins for a finished search
type LocateCommand struct {
	ctx     *CommandContext
	outcome search.Outcome
}

// NewLocateCommand creates a new locate command
func NewLocateCommand(ctx *CommandContext, outcome search.Outcome) *LocateCommand {
	return &LocateCommand{ctx: ctx, outcome: outcome}
}

// Execute geocodes the outcome's cards when the map is enabled
func (c *LocateCommand) Execute() tea.Cmd {
	if !c.ctx.Search.MapEnabled() || len(c.outcome.Page.Cards) == 0 {
		return nil
	}
	c.ctx.State.Locating = true
	out := c.outcome
	return func() tea.Msg {
		res, err := c.ctx.Search.Locate(out)
		if err != nil && !errors.Is(err, search.ErrSuperseded) {
			log.Printf("locate %d: %v", out.Generation, err)
		}
		return MapDoneMsg{Outcome: res, Err: err}
	}
}
