package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"

	"npisearch/internal/ui/form"
	"npisearch/internal/ui/services/dropdown"
	"npisearch/internal/ui/services/search"
	"npisearch/internal/ui/state"
	"npisearch/internal/ui/views"
)

// Sources are the page parts the view model reads from
type Sources struct {
	Form       *form.Layout
	DropdownOf func(fieldID string) *dropdown.Service
	Search     *search.Service
}

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state            *state.AppState
	sources          Sources
	width            int
	height           int
	help             help.Model
	keys             help.KeyMap
	spinner          string
	helpContent      string
	detailContent    string
	showHelp         bool
	showDetail       bool
	fieldTransformer *FieldTransformer
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, sources Sources) *ViewModel {
	return &ViewModel{
		state:            appState,
		sources:          sources,
		fieldTransformer: NewFieldTransformer(views.MaxMenuRows),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
}

// SetHelp sets the help model and the bindings it lists
func (vm *ViewModel) SetHelp(helpModel help.Model, keys help.KeyMap) {
	vm.help = helpModel
	vm.keys = keys
}

// SetSpinner sets the current spinner frame
func (vm *ViewModel) SetSpinner(frame string) {
	vm.spinner = frame
}

// SetHelpPopup shows or hides the help popup
func (vm *ViewModel) SetHelpPopup(show bool, content string) {
	vm.showHelp = show
	vm.helpContent = content
}

// SetDetailPopup shows or hides the provider detail popup
func (vm *ViewModel) SetDetailPopup(show bool, content string) {
	vm.showDetail = show
	vm.detailContent = content
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	vs := views.ViewState{
		Width:            vm.width,
		Height:           vm.height,
		Spinner:          vm.spinner,
		Searching:        vm.state.Searching,
		Locating:         vm.state.Locating,
		LoadingLists:     len(vm.state.LoadingLists),
		HasResults:       vm.state.HasResults,
		Page:             vm.state.Page,
		ResultsError:     vm.state.ResultsError,
		SelectedIndex:    vm.state.SelectedIndex,
		ViewportOffset:   vm.state.ViewportOffset,
		ViewportHeight:   vm.state.ViewportHeight,
		MapMissed:        vm.state.MapMissed,
		MapError:         vm.state.MapError,
		StatusMessage:    vm.state.StatusMessage,
		StatusIsError:    vm.state.StatusIsError,
		ShowHelp:         vm.showHelp,
		HelpContent:      vm.helpContent,
		HelpScrollOffset: vm.state.HelpScrollOffset,
		ShowDetail:       vm.showDetail,
		DetailContent:    vm.detailContent,
		HelpModel:        vm.help,
		HelpKeys:         vm.keys,
	}

	if svc := vm.sources.Search; svc != nil && svc.MapEnabled() {
		vs.MapEnabled = true
		vs.Map = svc.Layer()
	}

	if vm.sources.Form != nil {
		for _, f := range vm.sources.Form.Fields() {
			var dd *dropdown.Service
			if vm.sources.DropdownOf != nil {
				dd = vm.sources.DropdownOf(f.ID)
			}
			vs.Fields = append(vs.Fields, vm.fieldTransformer.Transform(f, dd, vm.state.LoadingLists[f.ID]))
		}
	}
	return vs
}
