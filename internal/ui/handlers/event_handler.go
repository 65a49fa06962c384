package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"npisearch/internal/eventbus"
	"npisearch/internal/ui/state"
)

// ClearStatusMsg asks the model to drop a transient status message
type ClearStatusMsg struct {
	Message string // only cleared if still showing
}

// StatusTTL is how long transient status messages stay visible
const StatusTTL = 4 * time.Second

// EventHandler handles domain events and updates state
type EventHandler struct {
	state *state.AppState
	// isCurrent reports whether a search generation is the latest one issued
	isCurrent func(gen uint64) bool
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, isCurrent func(gen uint64) bool) *EventHandler {
	if isCurrent == nil {
		isCurrent = func(uint64) bool { return true }
	}
	return &EventHandler{
		state:     appState,
		isCurrent: isCurrent,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ItemSelectedEvent:
		if e.Subtitle != "" {
			return h.transient(fmt.Sprintf("Selected %s: %s (%s)", e.Source, e.Title, e.Subtitle))
		}
		return h.transient(fmt.Sprintf("Selected %s: %s", e.Source, e.Title))

	case eventbus.SelectionClearedEvent:
		log.Printf("selection cleared: %s", e.Source)

	case eventbus.ItemsLoadedEvent:
		h.state.SetListLoading(e.Source, false)
		h.state.ListCounts[e.Source] = e.Count
		if e.Fallback {
			h.state.StatusError(fmt.Sprintf("Could not load %s list, using %d built-in entries", e.Source, e.Count))
		}

	case eventbus.WidgetAttachFailedEvent:
		h.state.StatusError(fmt.Sprintf("Dropdown %s unavailable: %v", e.Source, e.Err))

	case eventbus.SearchStartedEvent:
		if h.isCurrent(e.Generation) {
			h.state.BeginSearch(e.RequestID)
			h.state.Status("Searching...")
		}

	case eventbus.SearchCompletedEvent:
		if h.isCurrent(e.Generation) {
			return h.transient(fmt.Sprintf("Search complete: %d providers", e.Count))
		}

	case eventbus.SearchFailedEvent:
		if errors.Is(e.Err, context.Canceled) || !h.isCurrent(e.Generation) {
			return nil
		}
		h.state.StatusError(fmt.Sprintf("Search failed: %v", e.Err))

	case eventbus.MapUpdatedEvent:
		if !h.isCurrent(e.Generation) {
			return nil
		}
		if e.Missed > 0 {
			return h.transient(fmt.Sprintf("Map: %d pins, %d addresses not found", e.Markers, e.Missed))
		}
		return h.transient(fmt.Sprintf("Map: %d pins", e.Markers))

	case eventbus.ErrorEvent:
		h.state.StatusError(fmt.Sprintf("Error: %s", e.Message))
	}

	return nil
}

// transient shows msg and schedules its removal
func (h *EventHandler) transient(msg string) tea.Cmd {
	h.state.Status(msg)
	return tea.Tick(StatusTTL, func(time.Time) tea.Msg {
		return ClearStatusMsg{Message: msg}
	})
}
