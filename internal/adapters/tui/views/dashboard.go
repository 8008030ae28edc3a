package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"focal/internal/adapters/tui/styles"
	"focal/internal/application/commands"
	"focal/internal/application/tracker"
	"focal/internal/domain"
	"focal/internal/ports"
)

// refreshEvery is the cadence of the periodic report reload while the
// dashboard is visible.
const refreshEvery = 30 * time.Second

// DashboardKeyMap defines key bindings for the dashboard view
type DashboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	Track    key.Binding
	Flat     key.Binding
	Cycle    key.Binding
	Copy     key.Binding
	Refresh  key.Binding
	Projects key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var DashboardKeys = DashboardKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle"),
	),
	Track: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start/stop"),
	),
	Flat: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "flat view"),
	),
	Cycle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next project"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy report"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Projects: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "projects"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// reportRow is one rendered line of the rollup tree.
type reportRow struct {
	key        string
	label      string
	duration   string
	depth      int
	expandable bool
	expanded   bool
}

// DashboardModel shows today's activity rollup and controls the tracker
type DashboardModel struct {
	ViewState
	store ports.ActivityStore
	trk   *tracker.Tracker

	apps     []domain.AppNode
	flat     []domain.FlatEntry
	projects []domain.Project
	project  int

	rows     []reportRow
	cursor   int
	expanded map[string]bool
	flatMode bool
	ticking  bool
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(store ports.ActivityStore, trk *tracker.Tracker) *DashboardModel {
	return &DashboardModel{
		store:    store,
		trk:      trk,
		expanded: make(map[string]bool),
	}
}

// Init initializes the dashboard. It is also used to refresh when
// returning from another view, so the periodic tick is only scheduled
// once.
func (m *DashboardModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadReport, m.loadProjects}
	if !m.ticking {
		m.ticking = true
		cmds = append(cmds, refreshTick())
	}
	return tea.Batch(cmds...)
}

func refreshTick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

type refreshTickMsg time.Time

type reportLoadedMsg struct {
	apps []domain.AppNode
	flat []domain.FlatEntry
}

type projectsLoadedMsg struct {
	projects []domain.Project
}

type errMsg struct {
	err error
}

// ActivitySavedMsg is sent into the program when the recorder persists an
// activity, so the visible report stays current.
type ActivitySavedMsg struct{}

func (m *DashboardModel) loadReport() tea.Msg {
	ctx := context.Background()
	day := time.Now()

	apps, err := commands.NewDailyReportCommand(m.store, day, nil).Execute(ctx)
	if err != nil {
		return errMsg{err}
	}
	flat, err := commands.NewFlatReportCommand(m.store, day, nil).Execute(ctx)
	if err != nil {
		return errMsg{err}
	}
	return reportLoadedMsg{apps: apps, flat: flat}
}

func (m *DashboardModel) loadProjects() tea.Msg {
	projects, err := commands.NewListProjectsCommand(m.store).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return projectsLoadedMsg{projects: projects}
}

type trackingStoppedMsg struct{}

// Update handles messages for the dashboard
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case reportLoadedMsg:
		m.apps = msg.apps
		m.flat = msg.flat
		// Applications start expanded, content buckets collapsed.
		for _, app := range m.apps {
			if _, seen := m.expanded[app.AppName]; !seen {
				m.expanded[app.AppName] = true
			}
		}
		m.rebuildRows()
		return m, nil

	case projectsLoadedMsg:
		m.setProjects(msg.projects)
		return m, nil

	case refreshTickMsg:
		return m, tea.Batch(m.loadReport, refreshTick())

	case ActivitySavedMsg:
		return m, m.loadReport

	case trackingStoppedMsg:
		m.SetMessage("tracking stopped", false)
		return m, m.loadReport

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.ClearMessage()

	switch {
	case key.Matches(msg, DashboardKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, DashboardKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, DashboardKeys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, DashboardKeys.Left):
		if row := m.selectedRow(); row != nil && row.expandable && row.expanded {
			m.expanded[row.key] = false
			m.rebuildRows()
		}
		return m, nil

	case key.Matches(msg, DashboardKeys.Right):
		if row := m.selectedRow(); row != nil && row.expandable && !row.expanded {
			m.expanded[row.key] = true
			m.rebuildRows()
		}
		return m, nil

	case key.Matches(msg, DashboardKeys.Enter):
		if row := m.selectedRow(); row != nil && row.expandable {
			m.expanded[row.key] = !m.expanded[row.key]
			m.rebuildRows()
		}
		return m, nil

	case key.Matches(msg, DashboardKeys.Track):
		if m.trk.IsTracking() {
			// Stop joins the sampling loop and flushes the open
			// activity, so run it off the update loop.
			return m, func() tea.Msg {
				m.trk.Stop()
				return trackingStoppedMsg{}
			}
		}
		m.trk.Start()
		m.SetMessage("tracking started", false)
		return m, nil

	case key.Matches(msg, DashboardKeys.Flat):
		m.flatMode = !m.flatMode
		m.rebuildRows()
		return m, nil

	case key.Matches(msg, DashboardKeys.Cycle):
		if len(m.projects) > 0 {
			m.project = (m.project + 1) % len(m.projects)
			p := m.projects[m.project]
			m.trk.SetProject(p.ID)
			m.SetMessage(fmt.Sprintf("tracking into %q", p.Name), false)
		}
		return m, nil

	case key.Matches(msg, DashboardKeys.Copy):
		text := RenderReportText(time.Now(), m.apps)
		if err := clipboard.WriteAll(text); err != nil {
			m.SetMessage("clipboard: "+err.Error(), true)
		} else {
			m.SetMessage("report copied to clipboard", false)
		}
		return m, nil

	case key.Matches(msg, DashboardKeys.Refresh):
		return m, tea.Batch(m.loadReport, m.loadProjects)

	case key.Matches(msg, DashboardKeys.Projects):
		return m, func() tea.Msg { return SwitchToProjectsMsg{} }

	case key.Matches(msg, DashboardKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }
	}

	return m, nil
}

// setProjects installs the project list, keeping the tracker's active
// project selected when it is still present.
func (m *DashboardModel) setProjects(projects []domain.Project) {
	var currentID int64
	if len(m.projects) > 0 {
		currentID = m.projects[m.project].ID
	}

	m.projects = projects
	m.project = 0
	for i, p := range projects {
		if currentID != 0 && p.ID == currentID {
			m.project = i
			return
		}
	}
	for i, p := range projects {
		if p.IsDefault() {
			m.project = i
			break
		}
	}
	if len(projects) > 0 {
		m.trk.SetProject(m.projects[m.project].ID)
	}
}

func (m *DashboardModel) selectedRow() *reportRow {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

func (m *DashboardModel) rebuildRows() {
	if m.flatMode {
		m.rows = flatRows(m.flat)
	} else {
		m.rows = treeRows(m.apps, m.expanded)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// treeRows flattens the hierarchical rollup into visible lines, honoring
// the expansion state keyed by "app" and "app/domain".
func treeRows(apps []domain.AppNode, expanded map[string]bool) []reportRow {
	var rows []reportRow
	for _, app := range apps {
		appKey := app.AppName
		rows = append(rows, reportRow{
			key:        appKey,
			label:      app.AppName,
			duration:   app.DurationFormatted,
			depth:      0,
			expandable: len(app.Domains) > 0,
			expanded:   expanded[appKey],
		})
		if !expanded[appKey] {
			continue
		}
		for _, d := range app.Domains {
			domainKey := appKey + "/" + d.Domain
			rows = append(rows, reportRow{
				key:        domainKey,
				label:      d.Domain,
				duration:   d.DurationFormatted,
				depth:      1,
				expandable: len(d.Titles) > 0,
				expanded:   expanded[domainKey],
			})
			if !expanded[domainKey] {
				continue
			}
			for _, t := range d.Titles {
				rows = append(rows, reportRow{
					key:      domainKey + "/" + t.WindowTitle,
					label:    t.WindowTitle,
					duration: t.DurationFormatted,
					depth:    2,
				})
			}
		}
	}
	return rows
}

func flatRows(entries []domain.FlatEntry) []reportRow {
	var rows []reportRow
	for _, e := range entries {
		rows = append(rows, reportRow{
			key:      e.AppName + "/" + e.WindowTitle,
			label:    fmt.Sprintf("%s: %s", e.AppName, e.WindowTitle),
			duration: e.DurationFormatted,
		})
	}
	return rows
}

// RenderReportText renders the rollup as plain text, for the clipboard and
// for non-interactive output.
func RenderReportText(day time.Time, apps []domain.AppNode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Activity on %s\n", day.Format("2006-01-02"))
	if len(apps) == 0 {
		b.WriteString("  (no activity)\n")
		return b.String()
	}
	for _, app := range apps {
		fmt.Fprintf(&b, "%s (%s)\n", app.AppName, app.DurationFormatted)
		for _, d := range app.Domains {
			fmt.Fprintf(&b, "  %s (%s)\n", d.Domain, d.DurationFormatted)
			for _, t := range d.Titles {
				fmt.Fprintf(&b, "    %s (%s)\n", t.WindowTitle, t.DurationFormatted)
			}
		}
	}
	return b.String()
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Focal"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(time.Now().Format("Monday, 2 January 2006")))
	b.WriteString("\n\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(styles.MutedText.Render("No activity recorded today."))
		b.WriteString("\n")
	}

	for i, row := range m.rows {
		b.WriteString(m.renderRow(row, i == m.cursor))
		b.WriteString("\n")
	}

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpBar(
		DashboardKeys.Track, DashboardKeys.Flat, DashboardKeys.Cycle,
		DashboardKeys.Copy, DashboardKeys.Projects, DashboardKeys.Help,
		DashboardKeys.Quit,
	))

	return styles.App.Render(b.String())
}

func (m *DashboardModel) statusLine() string {
	var b strings.Builder

	if m.trk.IsTracking() {
		b.WriteString(styles.Recording.Render("● tracking"))
		if current, ok := m.trk.Current(); ok {
			b.WriteString(styles.MutedText.Render("  " + current.ShortTitle))
		}
	} else {
		b.WriteString(styles.Idle.Render("○ idle"))
	}

	if len(m.projects) > 0 {
		b.WriteString(styles.MutedText.Render("  project: "))
		b.WriteString(styles.InputLabel.Render(m.projects[m.project].Name))
	}

	if m.flatMode {
		b.WriteString(styles.MutedText.Render("  [flat]"))
	}

	return b.String()
}

func (m *DashboardModel) renderRow(row reportRow, selected bool) string {
	indicator := styles.TreeLeaf
	if row.expandable {
		if row.expanded {
			indicator = styles.TreeExpanded
		} else {
			indicator = styles.TreeCollapsed
		}
	}

	line := strings.Repeat("  ", row.depth) + indicator + row.label
	dur := " " + styles.Duration.Render(row.duration)

	if selected {
		return styles.NodeSelected.Render(line) + dur
	}
	switch row.depth {
	case 0:
		return styles.NodeApp.Render(line) + dur
	case 1:
		return styles.NodeDomain.Render(line) + dur
	default:
		return styles.NodeTitle.Render(line) + dur
	}
}

func helpBar(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
