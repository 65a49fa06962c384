package state

import (
	"npisearch/internal/domain"
)

// AppState contains the page state that is not owned by a widget
type AppState struct {
	// Results
	Page          domain.ResultPage
	HasResults    bool   // a search completed since the last clear
	ResultsError  string // inline error shown instead of cards
	SelectedIndex int    // highlighted card
	Generation    uint64 // search whose results are shown

	// Search progress
	Searching bool
	RequestID string

	// Map
	Locating  bool
	MapPins   int
	MapMissed int
	MapError  string

	// Dropdown loading
	LoadingLists map[string]bool // input id -> still loading
	ListCounts   map[string]int  // input id -> loaded items

	// UI state
	ViewportOffset   int // offset for scrolling the card list
	ViewportHeight   int // cards visible at once
	HelpScrollOffset int
	StatusMessage    string
	StatusIsError    bool
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		LoadingLists:   make(map[string]bool),
		ListCounts:     make(map[string]int),
		ViewportHeight: 5, // Default
	}
}

// Status sets the status bar message
func (s *AppState) Status(msg string) {
	s.StatusMessage = msg
	s.StatusIsError = false
}

// StatusError sets the status bar message and flags it as a failure
func (s *AppState) StatusError(msg string) {
	s.StatusMessage = msg
	s.StatusIsError = true
}

// Search lifecycle

// BeginSearch marks a search as in flight
func (s *AppState) BeginSearch(requestID string) {
	s.Searching = true
	s.RequestID = requestID
}

// SetResults shows page as the outcome of search gen
func (s *AppState) SetResults(gen uint64, page domain.ResultPage) {
	s.Searching = false
	s.Locating = false
	s.Generation = gen
	s.Page = page
	s.HasResults = true
	s.ResultsError = ""
	s.SelectedIndex = 0
	s.ViewportOffset = 0
	s.MapPins, s.MapMissed, s.MapError = 0, 0, ""
}

// SetResultsError replaces the cards with an inline error
func (s *AppState) SetResultsError(gen uint64, msg string) {
	s.Searching = false
	s.Locating = false
	s.Generation = gen
	s.Page = domain.ResultPage{}
	s.HasResults = true
	s.ResultsError = msg
	s.SelectedIndex = 0
	s.ViewportOffset = 0
	s.MapPins, s.MapMissed, s.MapError = 0, 0, ""
}

// ClearResults empties the results area
func (s *AppState) ClearResults() {
	s.Page = domain.ResultPage{}
	s.HasResults = false
	s.ResultsError = ""
	s.SelectedIndex = 0
	s.ViewportOffset = 0
	s.Locating = false
	s.MapPins, s.MapMissed, s.MapError = 0, 0, ""
}

// SetMap records the pin placement outcome
func (s *AppState) SetMap(pins, missed int, errMsg string) {
	s.Locating = false
	s.MapPins = pins
	s.MapMissed = missed
	s.MapError = errMsg
}

// SelectedCard returns the highlighted card
func (s *AppState) SelectedCard() (domain.Card, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Page.Cards) {
		return domain.Card{}, false
	}
	return s.Page.Cards[s.SelectedIndex], true
}

// Dropdown list loading

// SetListLoading marks the list of input id as loading or done
func (s *AppState) SetListLoading(id string, loading bool) {
	if loading {
		s.LoadingLists[id] = true
	} else {
		delete(s.LoadingLists, id)
	}
}

// LoadingAny reports whether any dropdown list is still loading
func (s *AppState) LoadingAny() bool {
	return len(s.LoadingLists) > 0
}
