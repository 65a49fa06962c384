package search

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"npisearch/internal/domain"
	"npisearch/internal/eventbus"
	"npisearch/internal/mapview"
	"npisearch/internal/npi"
	"npisearch/internal/results"
)

// Service runs provider searches for one page. Starting a search cancels the
// one in flight, and only the most recently issued search may deliver results.
type Service struct {
	mu     sync.Mutex
	state  *State
	cancel context.CancelFunc
	runCtx context.Context

	bus      eventbus.EventBus
	searcher Searcher
	geocoder Geocoder
	layer    *mapview.Layer
	newID    func() string
}

// Option configures a Service
type Option func(*Service)

// WithMap enables pin placement through g onto layer
func WithMap(g Geocoder, layer *mapview.Layer) Option {
	return func(s *Service) {
		s.geocoder = g
		s.layer = layer
	}
}

// WithIDGenerator replaces the request id source
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// NewService creates a new search service
func NewService(bus eventbus.EventBus, searcher Searcher, opts ...Option) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	s := &Service{
		state:    &State{},
		bus:      bus,
		searcher: searcher,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MapEnabled reports whether Locate places pins
func (s *Service) MapEnabled() bool {
	return s.geocoder != nil && s.layer != nil
}

// Layer returns the marker layer, nil when the map is disabled
func (s *Service) Layer() *mapview.Layer {
	return s.layer
}

// Generation returns the id of the most recently issued search
func (s *Service) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Generation
}

// IsCurrent reports whether gen is the most recently issued search
func (s *Service) IsCurrent(gen uint64) bool {
	return s.Generation() == gen
}

// Running reports whether the current search is still in flight
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Running
}

// Cancel aborts the search in flight, if any
func (s *Service) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state.Running = false
}

func (s *Service) begin(parent context.Context, params npi.SearchParams) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.runCtx = ctx
	s.state.Generation++
	s.state.Running = true
	s.state.LastParams = params
	return ctx, s.state.Generation
}

func (s *Service) finish(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Generation != gen {
		return false
	}
	s.state.Running = false
	return true
}

// Search issues a registry query. A result that lost to a newer search is
// reported as ErrSuperseded and publishes nothing.
func (s *Service) Search(ctx context.Context, params npi.SearchParams) (Outcome, error) {
	ctx, gen := s.begin(ctx, params)
	id := s.newID()
	out := Outcome{Generation: gen, RequestID: id, Params: params}

	s.bus.Publish(domain.SearchStartedEvent{Generation: gen, RequestID: id})
	log.Printf("search %d (%s): %+v", gen, id, params)

	resp, err := s.searcher.Search(npi.WithRequestID(ctx, id), params)
	if !s.finish(gen) {
		log.Printf("search %d (%s): superseded, dropping result", gen, id)
		return out, ErrSuperseded
	}
	if err != nil {
		log.Printf("search %d (%s) failed: %v", gen, id, err)
		s.bus.Publish(domain.SearchFailedEvent{Generation: gen, RequestID: id, Err: err})
		return out, err
	}

	out.Page = results.Build(resp)
	log.Printf("search %d (%s): %d cards of %d results", gen, id, len(out.Page.Cards), out.Page.Count)
	s.bus.Publish(domain.SearchCompletedEvent{Generation: gen, RequestID: id, Count: out.Page.Count})
	return out, nil
}

// Locate geocodes the cards of out and refills the marker layer.
// The layer is cleared before any pin is placed.
func (s *Service) Locate(out Outcome) (MapOutcome, error) {
	res := MapOutcome{Generation: out.Generation}
	if !s.MapEnabled() {
		return res, nil
	}

	s.mu.Lock()
	ctx := s.runCtx
	current := s.state.Generation == out.Generation
	if current {
		s.layer.Clear()
	}
	s.mu.Unlock()
	if !current || ctx == nil {
		return res, ErrSuperseded
	}

	addrs := make([]string, len(out.Page.Cards))
	for i, c := range out.Page.Cards {
		if !c.Address.IsZero() {
			addrs[i] = c.Address.OneLine()
		}
	}

	geo, err := s.geocoder.GeocodeAll(ctx, addrs)
	if err != nil {
		if !s.IsCurrent(out.Generation) {
			return res, ErrSuperseded
		}
		return res, err
	}

	for _, g := range geo {
		if !g.Found {
			res.Missed++
			if g.Err != nil && res.Err == nil {
				res.Err = g.Err
			}
			continue
		}
		res.Markers = append(res.Markers, domain.Marker{
			Index: g.Index,
			Label: out.Page.Cards[g.Index].Name,
			Point: g.Point,
		})
	}

	// A newer search may have started while geocoding; its pins win
	s.mu.Lock()
	if s.state.Generation != out.Generation {
		s.mu.Unlock()
		return MapOutcome{Generation: out.Generation}, ErrSuperseded
	}
	s.layer.Replace(res.Markers)
	s.mu.Unlock()

	if res.Err != nil {
		log.Printf("search %d: geocoding: %d of %d addresses without a pin, first error: %v",
			out.Generation, res.Missed, len(addrs), res.Err)
	}
	s.bus.Publish(domain.MapUpdatedEvent{Generation: out.Generation, Markers: len(res.Markers), Missed: res.Missed})
	return res, nil
}
