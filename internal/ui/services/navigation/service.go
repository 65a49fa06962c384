package navigation

// Service tracks a cursor over a list and the viewport that keeps it visible.
// With allowNone the cursor may rest on NoIndex above the first row;
// moves clamp at both ends and never wrap.
type Service struct {
	state     *State
	allowNone bool
	countFn   func() int // Function to get the current row count
	onChange  func(old, new int)
}

// NewService creates a cursor that always points at a row when there is one
func NewService() *Service {
	return newService(false)
}

// NewHighlightService creates a cursor that starts on NoIndex
func NewHighlightService() *Service {
	return newService(true)
}

func newService(allowNone bool) *Service {
	s := &Service{
		state: &State{
			ViewportHeight: 20, // Default, will be updated
		},
		allowNone: allowNone,
	}
	s.state.Cursor = s.floor()
	return s
}

// SetCountFunction sets the function that reports the row count
func (s *Service) SetCountFunction(fn func() int) {
	s.countFn = fn
}

// OnChange registers a callback for cursor moves
func (s *Service) OnChange(fn func(old, new int)) {
	s.onChange = fn
}

// GetCursor returns current cursor position
func (s *Service) GetCursor() int {
	return s.state.Cursor
}

// HasCursor reports whether the cursor points at a row
func (s *Service) HasCursor() bool {
	return s.state.Cursor >= 0 && s.state.Cursor < s.count()
}

// GetViewportOffset returns current viewport offset
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns current viewport height
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates viewport height
func (s *Service) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.state.ViewportHeight = height
	s.ensureVisible()
}

// Reset moves the cursor back to its resting position and scrolls to the top
func (s *Service) Reset() {
	old := s.state.Cursor
	s.state.Cursor = s.floor()
	s.state.ViewportOffset = 0
	s.changed(old)
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	old := s.state.Cursor
	n := s.count()
	if n == 0 {
		return
	}

	switch direction {
	case DirectionUp:
		s.state.Cursor = s.clampIndex(s.state.Cursor - 1)
	case DirectionDown:
		s.state.Cursor = s.clampIndex(s.state.Cursor + 1)
	case DirectionPageUp:
		s.state.Cursor = s.clampIndex(s.state.Cursor - s.pageSize())
	case DirectionPageDown:
		s.state.Cursor = s.clampIndex(s.state.Cursor + s.pageSize())
	case DirectionHome:
		s.state.Cursor = s.clampIndex(0)
	case DirectionEnd:
		s.state.Cursor = n - 1
	}

	s.ensureVisible()
	s.changed(old)
}

// MoveToIndex moves cursor to specific index
func (s *Service) MoveToIndex(index int) {
	old := s.state.Cursor
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()
	s.changed(old)
}

// Helper methods
func (s *Service) count() int {
	if s.countFn != nil {
		s.state.Count = s.countFn()
	}
	return s.state.Count
}

func (s *Service) floor() int {
	if s.allowNone {
		return NoIndex
	}
	return 0
}

func (s *Service) pageSize() int {
	if s.state.ViewportHeight > 1 {
		return s.state.ViewportHeight - 1
	}
	return 1
}

func (s *Service) clampIndex(index int) int {
	if index < s.floor() {
		return s.floor()
	}
	if last := s.count() - 1; index > last {
		if last < s.floor() {
			return s.floor()
		}
		return last
	}
	return index
}

func (s *Service) ensureVisible() {
	cursor := s.state.Cursor
	if cursor < 0 {
		cursor = 0
	}
	if cursor < s.state.ViewportOffset {
		s.state.ViewportOffset = cursor
	} else if cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = cursor - s.state.ViewportHeight + 1
	}
}

func (s *Service) changed(old int) {
	if s.onChange != nil && old != s.state.Cursor {
		s.onChange(old, s.state.Cursor)
	}
}
