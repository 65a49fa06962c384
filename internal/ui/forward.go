package ui

import (
	"log"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"npisearch/internal/eventbus"
)

// UIEvents are the event types the model reacts to
var UIEvents = []eventbus.EventType{
	eventbus.EventItemSelected,
	eventbus.EventSelectionCleared,
	eventbus.EventItemsLoaded,
	eventbus.EventWidgetAttachFailed,
	eventbus.EventSearchStarted,
	eventbus.EventSearchCompleted,
	eventbus.EventSearchFailed,
	eventbus.EventMapUpdated,
	eventbus.EventError,
}

// ForwardEvents delivers UIEvents from bus to send as EventMsg, in publish
// order. The returned function unsubscribes and stops forwarding.
func ForwardEvents(bus eventbus.EventBus, send func(tea.Msg)) func() {
	eventChan := make(chan eventbus.DomainEvent, 100)
	done := make(chan struct{})

	var unsubs []func()
	for _, t := range UIEvents {
		unsubs = append(unsubs, bus.Subscribe(t, func(e eventbus.DomainEvent) {
			select {
			case eventChan <- e:
			case <-done:
			default:
				// Channel full, drop event
				log.Printf("Event channel full, dropping event %s", e.Type())
			}
		}))
	}

	go func() {
		for {
			select {
			case event := <-eventChan:
				send(EventMsg{Event: event})
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			for _, u := range unsubs {
				u()
			}
			close(done)
		})
	}
}
