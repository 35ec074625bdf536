package tui

import (
	"github.com/MKhiriev/trip-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

// RootModel routes between the pages shown before a session is open: menu,
// login and registration. It quits once a login succeeds or the user leaves.
type RootModel struct {
	pages   map[string]tea.Model
	current tea.Model

	buildInfo models.BuildInfo
	aboutOpen bool

	quitByUser bool
	resultUser models.User
}

func NewRootModel(pages map[string]tea.Model, startPage string, buildInfo models.BuildInfo) RootModel {
	return RootModel{pages: pages, current: pages[startPage], buildInfo: buildInfo}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := r.handleGlobalKey(msg); handled {
			return r, cmd
		}
	case quitRequested:
		r.quitByUser = true
		return r, tea.Quit
	case NavigateTo:
		return r.navigate(msg)
	case LoginResult:
		if msg.Err == nil {
			r.resultUser = msg.User
			return r, tea.Quit
		}
	}

	if r.current == nil {
		return r, nil
	}
	var cmd tea.Cmd
	r.current, cmd = r.current.Update(msg)
	return r, cmd
}

// handleGlobalKey consumes ctrl+c and the about window keys. While the
// about window is open every key is swallowed.
func (r *RootModel) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch k := msg.String(); {
	case k == "ctrl+c":
		r.quitByUser = true
		return true, tea.Quit
	case r.aboutOpen:
		if k == "esc" || k == "v" {
			r.aboutOpen = false
		}
		return true, nil
	case k == "v" && r.onMenu():
		r.aboutOpen = true
		return true, nil
	}
	return false, nil
}

func (r RootModel) navigate(nav NavigateTo) (tea.Model, tea.Cmd) {
	next, ok := r.pages[nav.Page]
	if !ok {
		return r, nil
	}

	r.aboutOpen = false
	r.current = next
	if nav.Payload != nil {
		return r, emit(nav.Payload)
	}
	return r, next.Init()
}

func (r RootModel) View() string {
	switch {
	case r.aboutOpen:
		return renderBuildInfoWindow(r.buildInfo)
	case r.current == nil:
		return renderPage("TUI", "", "")
	default:
		return r.current.View()
	}
}

func (r RootModel) onMenu() bool {
	_, ok := r.current.(*MenuModel)
	return ok
}
