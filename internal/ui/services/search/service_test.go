package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"npisearch/internal/domain"
	"npisearch/internal/eventbus"
	"npisearch/internal/geocode"
	"npisearch/internal/mapview"
	"npisearch/internal/npi"
)

type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }

func (b *recordingBus) types() []eventbus.EventType {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []eventbus.EventType
	for _, e := range b.events {
		out = append(out, e.Type())
	}
	return out
}

type stubSearcher struct {
	resp *npi.Response
	err  error
	got  []npi.SearchParams
	ids  []string
}

func (s *stubSearcher) Search(ctx context.Context, p npi.SearchParams) (*npi.Response, error) {
	s.got = append(s.got, p)
	s.ids = append(s.ids, npi.RequestIDFromContext(ctx))
	return s.resp, s.err
}

// gatedSearcher blocks each call until released, honouring cancellation
type gatedSearcher struct {
	started chan string
	release chan struct{}
}

func (g *gatedSearcher) Search(ctx context.Context, p npi.SearchParams) (*npi.Response, error) {
	g.started <- p.State
	select {
	case <-g.release:
		return &npi.Response{ResultCount: 1, Results: []npi.Provider{{Basic: npi.Basic{OrganizationName: p.State}}}}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type stubGeocoder struct {
	results []geocode.Result
	err     error
	got     []string
}

func (g *stubGeocoder) GeocodeAll(ctx context.Context, addrs []string) ([]geocode.Result, error) {
	g.got = addrs
	return g.results, g.err
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("req-%d", n)
	}
}

func twoProviders() *npi.Response {
	return &npi.Response{
		ResultCount: 2,
		Results: []npi.Provider{
			{
				Basic:     npi.Basic{FirstName: "ANN", LastName: "SMITH"},
				Addresses: []npi.Address{{AddressPurpose: "LOCATION", Address1: "1 MAIN ST", City: "BOSTON", State: "MA", PostalCode: "02115"}},
			},
			{Basic: npi.Basic{OrganizationName: "CLINIC"}},
		},
	}
}

func TestSearchBuildsPageAndPublishes(t *testing.T) {
	bus := &recordingBus{}
	searcher := &stubSearcher{resp: twoProviders()}
	s := NewService(bus, searcher, WithIDGenerator(sequentialIDs()))

	out, err := s.Search(context.Background(), npi.SearchParams{State: "MA"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), out.Generation)
	assert.Equal(t, "req-1", out.RequestID)
	assert.Equal(t, []string{"req-1"}, searcher.ids)
	require.Len(t, out.Page.Cards, 2)
	assert.Equal(t, "ANN SMITH", out.Page.Cards[0].Name)
	assert.False(t, s.Running())

	assert.Equal(t, []eventbus.EventType{eventbus.EventSearchStarted, eventbus.EventSearchCompleted}, bus.types())
}

func TestSearchFailurePublishes(t *testing.T) {
	bus := &recordingBus{}
	s := NewService(bus, &stubSearcher{err: &npi.HTTPError{Status: 502, StatusText: "Bad Gateway"}})

	_, err := s.Search(context.Background(), npi.SearchParams{State: "MA"})
	var httpErr *npi.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, []eventbus.EventType{eventbus.EventSearchStarted, eventbus.EventSearchFailed}, bus.types())
}

func TestNewerSearchSupersedesOlder(t *testing.T) {
	g := &gatedSearcher{started: make(chan string), release: make(chan struct{})}
	bus := &recordingBus{}
	s := NewService(bus, g)

	type result struct {
		out Outcome
		err error
	}
	first := make(chan result, 1)
	go func() {
		out, err := s.Search(context.Background(), npi.SearchParams{State: "MA"})
		first <- result{out, err}
	}()
	require.Equal(t, "MA", <-g.started)

	second := make(chan result, 1)
	go func() {
		out, err := s.Search(context.Background(), npi.SearchParams{State: "NY"})
		second <- result{out, err}
	}()
	require.Equal(t, "NY", <-g.started)

	r1 := <-first
	assert.ErrorIs(t, r1.err, ErrSuperseded, "older search is cancelled and dropped")

	close(g.release)
	r2 := <-second
	require.NoError(t, r2.err)
	assert.Equal(t, uint64(2), r2.out.Generation)
	assert.Equal(t, "NY", r2.out.Page.Cards[0].Name)

	for _, e := range bus.events {
		if f, ok := e.(domain.SearchFailedEvent); ok {
			t.Fatalf("superseded search published a failure: %v", f.Err)
		}
	}
}

func TestLocatePlacesPinsAfterClearing(t *testing.T) {
	layer := mapview.NewLayer()
	layer.Replace([]domain.Marker{{Index: 7, Label: "stale"}})

	geo := &stubGeocoder{results: []geocode.Result{
		{Index: 0, Found: true, Point: domain.GeoPoint{Lat: 42.3, Lng: -71.1}},
		{Index: 1, Found: false},
	}}
	bus := &recordingBus{}
	s := NewService(bus, &stubSearcher{resp: twoProviders()}, WithMap(geo, layer))
	require.True(t, s.MapEnabled())

	out, err := s.Search(context.Background(), npi.SearchParams{State: "MA"})
	require.NoError(t, err)

	mo, err := s.Locate(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 MAIN ST, BOSTON, MA 02115", ""}, geo.got)
	require.Len(t, mo.Markers, 1)
	assert.Equal(t, 1, mo.Missed)
	assert.Equal(t, "ANN SMITH", mo.Markers[0].Label)

	markers := layer.Markers()
	require.Len(t, markers, 1, "stale pins are cleared first")
	assert.Equal(t, 0, markers[0].Index)
	assert.Contains(t, bus.types(), eventbus.EventMapUpdated)
}

func TestLocateStaleOutcome(t *testing.T) {
	layer := mapview.NewLayer()
	s := NewService(nil, &stubSearcher{resp: twoProviders()}, WithMap(&stubGeocoder{}, layer))

	old, err := s.Search(context.Background(), npi.SearchParams{State: "MA"})
	require.NoError(t, err)
	_, err = s.Search(context.Background(), npi.SearchParams{State: "NY"})
	require.NoError(t, err)

	_, err = s.Locate(old)
	assert.ErrorIs(t, err, ErrSuperseded)
}

// racingGeocoder starts a newer search before returning its results.
type racingGeocoder struct {
	svc     *Service
	results []geocode.Result
}

func (g *racingGeocoder) GeocodeAll(ctx context.Context, addrs []string) ([]geocode.Result, error) {
	if _, err := g.svc.Search(context.Background(), npi.SearchParams{State: "NY"}); err != nil {
		return nil, err
	}
	return g.results, nil
}

func TestLocateSupersededWhileGeocodingLeavesLayerAlone(t *testing.T) {
	layer := mapview.NewLayer()
	geo := &racingGeocoder{results: []geocode.Result{
		{Index: 0, Found: true, Point: domain.GeoPoint{Lat: 42.3, Lng: -71.1}},
	}}
	bus := &recordingBus{}
	s := NewService(bus, &stubSearcher{resp: twoProviders()}, WithMap(geo, layer))
	geo.svc = s

	old, err := s.Search(context.Background(), npi.SearchParams{State: "MA"})
	require.NoError(t, err)

	_, err = s.Locate(old)
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Zero(t, layer.Len(), "a superseded locate must not place pins")
	assert.NotContains(t, bus.types(), eventbus.EventMapUpdated)
}

func TestLocateDisabled(t *testing.T) {
	s := NewService(nil, &stubSearcher{resp: twoProviders()})
	assert.False(t, s.MapEnabled())
	assert.Nil(t, s.Layer())

	out, err := s.Search(context.Background(), npi.SearchParams{State: "MA"})
	require.NoError(t, err)
	mo, err := s.Locate(out)
	require.NoError(t, err)
	assert.Empty(t, mo.Markers)
}

func TestLocateRecordsFirstGeocodeError(t *testing.T) {
	boom := errors.New("boom")
	geo := &stubGeocoder{results: []geocode.Result{
		{Index: 0, Err: boom},
		{Index: 1, Err: errors.New("second")},
	}}
	s := NewService(nil, &stubSearcher{resp: twoProviders()}, WithMap(geo, mapview.NewLayer()))

	out, _ := s.Search(context.Background(), npi.SearchParams{State: "MA"})
	mo, err := s.Locate(out)
	require.NoError(t, err)
	assert.Equal(t, 2, mo.Missed)
	assert.ErrorIs(t, mo.Err, boom)
}

func TestCancelStopsRunningSearch(t *testing.T) {
	g := &gatedSearcher{started: make(chan string), release: make(chan struct{})}
	s := NewService(nil, g)

	done := make(chan error, 1)
	go func() {
		_, err := s.Search(context.Background(), npi.SearchParams{State: "MA"})
		done <- err
	}()
	<-g.started
	assert.True(t, s.Running())

	s.Cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.Running())
}
