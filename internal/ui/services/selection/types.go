package selection

// State holds the committed choice of one widget
type State struct {
	SelectedID string
	Selected   bool
}
