package components

import (
	"fmt"
	"strings"

	"c4sg/internal/models"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProjectItem represents a project in the list
type ProjectItem struct {
	Project models.Project
}

// FilterValue returns the filter value for the project item
func (i ProjectItem) FilterValue() string {
	return i.Project.Name
}

// Title returns the title for the project item
func (i ProjectItem) Title() string {
	return i.Project.Name
}

// Description returns the description for the project item
func (i ProjectItem) Description() string {
	parts := []string{i.Project.Status.String()}
	if i.Project.IsRemote() {
		parts = append(parts, "Remote")
	}
	if loc := i.Project.Location(); loc != "" {
		parts = append(parts, loc)
	}
	if len(i.Project.Skills) > 0 {
		parts = append(parts, strings.Join(i.Project.Skills, ", "))
	}
	if i.Project.Image != "" {
		parts = append(parts, i.Project.Image)
	}
	return fmt.Sprintf("#%d - %s", i.Project.ID, strings.Join(parts, " - "))
}

// ProjectListModel represents the project list
type ProjectListModel struct {
	List     list.Model
	Projects []models.Project
	Selected *models.Project
}

// NewProjectListModel creates a new project list
func NewProjectListModel(width, height int) ProjectListModel {
	listModel := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	listModel.Title = "Projects"
	listModel.SetShowStatusBar(false)
	listModel.SetShowHelp(false)
	listModel.SetFilteringEnabled(false)
	listModel.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true).
		MarginLeft(2)

	return ProjectListModel{
		List:     listModel,
		Projects: []models.Project{},
	}
}

// SetProjects replaces the projects shown
func (m *ProjectListModel) SetProjects(projects []models.Project) {
	m.Projects = projects

	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = ProjectItem{Project: p}
	}

	m.List.SetItems(items)
	m.List.Select(0)
	m.syncSelected()
}

// SetSize resizes the list
func (m *ProjectListModel) SetSize(width, height int) {
	m.List.SetSize(width, height)
}

// Update handles project list updates
func (m ProjectListModel) Update(msg tea.Msg) (ProjectListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	m.syncSelected()
	return m, cmd
}

func (m *ProjectListModel) syncSelected() {
	if item, ok := m.List.SelectedItem().(ProjectItem); ok {
		p := item.Project
		m.Selected = &p
	} else {
		m.Selected = nil
	}
}

// View renders the project list
func (m ProjectListModel) View() string {
	return m.List.View()
}
