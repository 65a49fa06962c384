package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"npisearch/internal/datasource"
	"npisearch/internal/npi"
	"npisearch/internal/ui/services/dropdown"
	"npisearch/internal/ui/services/search"
	"npisearch/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(ctx context.Context, state *state.AppState, svc *search.Service, fetcher datasource.Fetcher) *Executor {
	return &Executor{
		ctx: &CommandContext{
			Ctx:     ctx,
			State:   state,
			Search:  svc,
			Fetcher: fetcher,
		},
	}
}

// ExecuteLoadItems creates and executes a load command per dropdown
func (e *Executor) ExecuteLoadItems(dropdowns ...*dropdown.Service) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(dropdowns))
	for _, dd := range dropdowns {
		if cmd := NewLoadItemsCommand(e.ctx, dd).Execute(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// ExecuteSearch creates and executes a search command
func (e *Executor) ExecuteSearch(params npi.SearchParams) tea.Cmd {
	cmd := NewSearchCommand(e.ctx, params)
	return cmd.Execute()
}

// ExecuteLocate creates and executes a locate command
func (e *Executor) ExecuteLocate(outcome search.Outcome) tea.Cmd {
	cmd := NewLocateCommand(e.ctx, outcome)
	return cmd.Execute()
}
