package search

import (
	"context"
	"errors"

	"npisearch/internal/domain"
	"npisearch/internal/geocode"
	"npisearch/internal/npi"
)

// ErrSuperseded marks the result of a search that a newer one replaced
var ErrSuperseded = errors.New("search superseded by a newer search")

// Searcher queries the provider registry
type Searcher interface {
	Search(ctx context.Context, params npi.SearchParams) (*npi.Response, error)
}

// Geocoder resolves a batch of addresses
type Geocoder interface {
	GeocodeAll(ctx context.Context, addresses []string) ([]geocode.Result, error)
}

// State holds search state
type State struct {
	Generation uint64 // last issued search
	Running    bool
	LastParams npi.SearchParams
}

// Outcome is the result of one search
type Outcome struct {
	Generation uint64
	RequestID  string
	Params     npi.SearchParams
	Page       domain.ResultPage
}

// MapOutcome is the result of placing pins for one search
type MapOutcome struct {
	Generation uint64
	Markers    []domain.Marker
	Missed     int   // addresses without a match or that failed
	Err        error // first per-address failure, if any
}
