package projectform

import (
	"testing"

	"c4sg/internal/models"

	"github.com/stretchr/testify/require"
)

func TestFill_WithoutOrganization(t *testing.T) {
	f := Fill(&models.Project{Name: "Tutor", City: "Austin"})
	require.Equal(t, "Tutor", f.ProjectName)
	require.Equal(t, "Austin", f.City)
	require.Empty(t, f.OrganizationName)
}

func TestApply_CreatesOrganizationReference(t *testing.T) {
	p := &models.Project{ID: 1, OrganizationID: 9}
	Form{ProjectName: "Tutor", OrganizationName: "Readers"}.apply(p)

	require.Equal(t, "Tutor", p.Name)
	require.NotNil(t, p.Organization)
	require.Equal(t, int64(9), p.Organization.ID)
	require.Equal(t, "Readers", p.Organization.Name)
}

func TestGetSet(t *testing.T) {
	var f Form
	for _, name := range Fields {
		require.NoError(t, f.Set(name, name+"-value"))
		got, ok := f.Get(name)
		require.True(t, ok)
		require.Equal(t, name+"-value", got)
	}
	require.Error(t, f.Set("bogus", "x"))

	_, ok := f.Get("bogus")
	require.False(t, ok)
}

func TestValidate_ReportsEveryMissingField(t *testing.T) {
	err := validate(newValidator(), Form{})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Equal(t, Fields, verr.Fields)
	require.Contains(t, err.Error(), "projectName")
}
