package selection

// Service records at most one committed selection, identified by key.
// It is distinct from the navigation highlight.
type Service struct {
	state *State
}

// NewService creates a new selection service
func NewService() *Service {
	return &Service{state: &State{}}
}

// Select records id as the current selection
func (s *Service) Select(id string) {
	s.state.SelectedID = id
	s.state.Selected = true
}

// Clear resets the selection to none
func (s *Service) Clear() {
	s.state.SelectedID = ""
	s.state.Selected = false
}

// Selected returns the selected id, if any
func (s *Service) Selected() (string, bool) {
	return s.state.SelectedID, s.state.Selected
}

// IsSelected checks whether id is the current selection
func (s *Service) IsSelected(id string) bool {
	return s.state.Selected && s.state.SelectedID == id
}

// HasSelection returns true if anything is selected
func (s *Service) HasSelection() bool {
	return s.state.Selected
}
