package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"focal/internal/adapters/tui/styles"
	"focal/internal/application/commands"
	"focal/internal/domain"
	"focal/internal/ports"
)

// ProjectsKeyMap defines key bindings for the projects view
type ProjectsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var ProjectsKeys = ProjectsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// FormKeyMap defines key bindings for the project form
type FormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Tab    key.Binding
}

var FormKeys = FormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
}

// DeleteKeyMap defines key bindings for the delete confirmation
type DeleteKeyMap struct {
	Transfer key.Binding
	Purge    key.Binding
	Cancel   key.Binding
}

var DeleteKeys = DeleteKeyMap{
	Transfer: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "transfer activities"),
	),
	Purge: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete activities"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

type projectsMode int

const (
	modeList projectsMode = iota
	modeForm
	modeDelete
)

// ProjectsModel manages the project list, with inline create, edit and
// delete flows.
type ProjectsModel struct {
	ViewState
	store ports.ActivityStore

	projects []domain.Project
	cursor   int
	mode     projectsMode

	// Form state. editID is zero when creating.
	editID       int64
	nameInput    textinput.Model
	descInput    textinput.Model
	focusedField int
}

// NewProjectsModel creates a new projects view model
func NewProjectsModel(store ports.ActivityStore) *ProjectsModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "Project name"
	nameInput.CharLimit = 60

	descInput := textinput.New()
	descInput.Placeholder = "Description (optional)"
	descInput.CharLimit = 200

	return &ProjectsModel{
		store:     store,
		nameInput: nameInput,
		descInput: descInput,
	}
}

// Init initializes the projects view
func (m *ProjectsModel) Init() tea.Cmd {
	m.mode = modeList
	return m.load
}

func (m *ProjectsModel) load() tea.Msg {
	projects, err := commands.NewListProjectsCommand(m.store).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return projectsLoadedMsg{projects: projects}
}

type projectMutatedMsg struct {
	message string
}

// Update handles messages for the projects view
func (m *ProjectsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case projectsLoadedMsg:
		m.projects = msg.projects
		if m.cursor >= len(m.projects) {
			m.cursor = len(m.projects) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case projectMutatedMsg:
		m.mode = modeList
		m.SetMessage(msg.message, false)
		return m, m.load

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeDelete:
			return m.updateDelete(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m *ProjectsModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.ClearMessage()

	switch {
	case key.Matches(msg, ProjectsKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, ProjectsKeys.Back):
		return m, func() tea.Msg { return SwitchToDashboardMsg{} }

	case key.Matches(msg, ProjectsKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, ProjectsKeys.Down):
		if m.cursor < len(m.projects)-1 {
			m.cursor++
		}

	case key.Matches(msg, ProjectsKeys.New):
		m.openForm(nil)
		return m, textinput.Blink

	case key.Matches(msg, ProjectsKeys.Edit):
		if p := m.selected(); p != nil {
			m.openForm(p)
			return m, textinput.Blink
		}

	case key.Matches(msg, ProjectsKeys.Delete):
		if p := m.selected(); p != nil {
			if p.IsDefault() {
				m.SetMessage("the default project cannot be deleted", true)
				return m, nil
			}
			m.mode = modeDelete
		}
	}

	return m, nil
}

func (m *ProjectsModel) openForm(p *domain.Project) {
	m.mode = modeForm
	m.ClearMessage()
	if p != nil {
		m.editID = p.ID
		m.nameInput.SetValue(p.Name)
		m.descInput.SetValue(p.Description)
	} else {
		m.editID = 0
		m.nameInput.SetValue("")
		m.descInput.SetValue("")
	}
	m.focusedField = 0
	m.nameInput.Focus()
	m.descInput.Blur()
}

func (m *ProjectsModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, FormKeys.Cancel):
		m.mode = modeList
		return m, nil

	case key.Matches(msg, FormKeys.Tab):
		m.focusedField = (m.focusedField + 1) % 2
		if m.focusedField == 0 {
			m.nameInput.Focus()
			m.descInput.Blur()
		} else {
			m.descInput.Focus()
			m.nameInput.Blur()
		}
		return m, nil

	case key.Matches(msg, FormKeys.Submit):
		return m, m.submitForm()
	}

	var cmd tea.Cmd
	if m.focusedField == 0 {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

func (m *ProjectsModel) submitForm() tea.Cmd {
	editID := m.editID
	name := strings.TrimSpace(m.nameInput.Value())
	description := strings.TrimSpace(m.descInput.Value())

	return func() tea.Msg {
		ctx := context.Background()

		if editID != 0 {
			cmd := commands.NewUpdateProjectCommand(m.store, editID, name, description)
			if err := cmd.Validate(); err != nil {
				return errMsg{err}
			}
			if err := cmd.Execute(ctx); err != nil {
				return errMsg{err}
			}
			return projectMutatedMsg{message: fmt.Sprintf("updated %q", name)}
		}

		cmd := commands.NewCreateProjectCommand(m.store, name, description)
		if err := cmd.Validate(); err != nil {
			return errMsg{err}
		}
		if _, err := cmd.Execute(ctx); err != nil {
			return errMsg{err}
		}
		return projectMutatedMsg{message: fmt.Sprintf("created %q", name)}
	}
}

func (m *ProjectsModel) updateDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DeleteKeys.Cancel):
		m.mode = modeList
		return m, nil

	case key.Matches(msg, DeleteKeys.Transfer):
		return m, m.deleteSelected(true)

	case key.Matches(msg, DeleteKeys.Purge):
		return m, m.deleteSelected(false)
	}
	return m, nil
}

func (m *ProjectsModel) deleteSelected(transfer bool) tea.Cmd {
	p := m.selected()
	if p == nil {
		m.mode = modeList
		return nil
	}
	id, name := p.ID, p.Name

	return func() tea.Msg {
		cmd := commands.NewDeleteProjectCommand(m.store, id, transfer)
		if err := cmd.Validate(); err != nil {
			return errMsg{err}
		}
		if err := cmd.Execute(context.Background()); err != nil {
			return errMsg{err}
		}
		return projectMutatedMsg{message: fmt.Sprintf("deleted %q", name)}
	}
}

func (m *ProjectsModel) selected() *domain.Project {
	if m.cursor < 0 || m.cursor >= len(m.projects) {
		return nil
	}
	return &m.projects[m.cursor]
}

// Reload refreshes the project list
func (m *ProjectsModel) Reload() tea.Cmd {
	return m.load
}

// View renders the projects view
func (m *ProjectsModel) View() string {
	switch m.mode {
	case modeForm:
		return m.viewForm()
	case modeDelete:
		return m.viewDelete()
	default:
		return m.viewList()
	}
}

func (m *ProjectsModel) viewList() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Projects"))
	b.WriteString("\n\n")

	if len(m.projects) == 0 {
		b.WriteString(styles.MutedText.Render("No projects."))
		b.WriteString("\n")
	}

	for i, p := range m.projects {
		line := p.Name
		if p.Description != "" {
			line += styles.MutedText.Render("  " + p.Description)
		}
		if p.IsDefault() {
			line += styles.MutedText.Render("  (default)")
		}
		if i == m.cursor {
			b.WriteString(styles.NodeSelected.Render("> " + p.Name))
			if p.Description != "" {
				b.WriteString(styles.MutedText.Render("  " + p.Description))
			}
			if p.IsDefault() {
				b.WriteString(styles.MutedText.Render("  (default)"))
			}
		} else {
			b.WriteString("  " + line)
		}
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
		ProjectsKeys.New, ProjectsKeys.Edit, ProjectsKeys.Delete,
		ProjectsKeys.Back, ProjectsKeys.Quit,
	))

	return styles.App.Render(b.String())
}

func (m *ProjectsModel) viewForm() string {
	var b strings.Builder

	title := "New Project"
	if m.editID != 0 {
		title = "Edit Project"
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Name:"))
	b.WriteString("\n")
	if m.focusedField == 0 {
		b.WriteString(styles.InputFocused.Render(m.nameInput.View()))
	} else {
		b.WriteString(styles.InputField.Render(m.nameInput.View()))
	}
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Description:"))
	b.WriteString("\n")
	if m.focusedField == 1 {
		b.WriteString(styles.InputFocused.Render(m.descInput.View()))
	} else {
		b.WriteString(styles.InputField.Render(m.descInput.View()))
	}
	b.WriteString("\n\n")

	if m.Message != "" && m.MessageErr {
		b.WriteString(styles.ErrorMsg.Render(m.Message))
		b.WriteString("\n\n")
	}

	b.WriteString(helpBar(FormKeys.Tab, FormKeys.Submit, FormKeys.Cancel))

	return styles.App.Render(b.String())
}

func (m *ProjectsModel) viewDelete() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete Project"))
	b.WriteString("\n\n")

	if p := m.selected(); p != nil {
		b.WriteString(styles.InputLabel.Render("Deleting:"))
		b.WriteString("\n  ")
		b.WriteString(p.Name)
		b.WriteString("\n\n")
	}

	b.WriteString("What should happen to its recorded activity?")
	b.WriteString("\n\n")
	b.WriteString(helpBar(DeleteKeys.Transfer, DeleteKeys.Purge, DeleteKeys.Cancel))

	return styles.App.Render(b.String())
}
