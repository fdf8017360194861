package components

import (
	"testing"

	"c4sg/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestProjectItem(t *testing.T) {
	item := ProjectItem{Project: models.Project{
		ID:         3,
		Name:       "Tutoring",
		Status:     models.ProjectActive,
		RemoteFlag: "Y",
		City:       "Austin",
		State:      "TX",
		Skills:     []string{"Reading", "Math"},
	}}

	require.Equal(t, "Tutoring", item.Title())
	require.Equal(t, "Tutoring", item.FilterValue())
	require.Equal(t, "#3 - Active - Remote - Austin, TX - Reading, Math", item.Description())

	item.Project.Image = "https://img.example.org/3.png"
	require.Equal(t, "#3 - Active - Remote - Austin, TX - Reading, Math - https://img.example.org/3.png", item.Description())

	require.Equal(t, "#4 - Unknown", ProjectItem{Project: models.Project{ID: 4, Name: "Draft"}}.Description())
}

func TestProjectListModel_Selection(t *testing.T) {
	m := NewProjectListModel(80, 20)
	require.Nil(t, m.Selected)

	m.SetProjects([]models.Project{{ID: 1, Name: "One"}, {ID: 2, Name: "Two"}})
	require.NotNil(t, m.Selected)
	require.Equal(t, int64(1), m.Selected.ID)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, int64(2), m.Selected.ID)

	m.SetProjects(nil)
	require.Nil(t, m.Selected)
}
