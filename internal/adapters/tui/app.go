package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"focal/internal/adapters/tui/views"
	"focal/internal/application/tracker"
	"focal/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewProjects
	ViewHelp
)

// App is the main TUI application model
type App struct {
	store ports.ActivityStore
	trk   *tracker.Tracker

	state     ViewState
	dashboard *views.DashboardModel
	projects  *views.ProjectsModel
	help      *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(store ports.ActivityStore, trk *tracker.Tracker) *App {
	return &App{
		store:     store,
		trk:       trk,
		state:     ViewDashboard,
		dashboard: views.NewDashboardModel(store, trk),
		projects:  views.NewProjectsModel(store),
		help:      views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.SetSize(msg.Width, msg.Height)
		a.projects.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToProjectsMsg:
		a.state = ViewProjects
		return a, a.projects.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToDashboardMsg:
		a.state = ViewDashboard
		// Project names or the list itself may have changed.
		return a, a.dashboard.Init()

	// The recorder saved an activity; keep the dashboard current even
	// when another view is showing.
	case views.ActivitySavedMsg:
		var cmd tea.Cmd
		_, cmd = a.dashboard.Update(msg)
		return a, cmd
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewDashboard:
		_, cmd = a.dashboard.Update(msg)
	case ViewProjects:
		_, cmd = a.projects.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewProjects:
		return a.projects.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.dashboard.View()
	}
}
