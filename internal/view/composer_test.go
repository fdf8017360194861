package view_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"c4sg/internal/api"
	"c4sg/internal/api/apitest"
	"c4sg/internal/models"
	"c4sg/internal/view"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// seed creates project 10 of organization 1 (owned by user 50) with two active siblings
// and one pending sibling.
func seed(t *testing.T) (*apitest.Backend, *api.Client) {
	t.Helper()
	backend := apitest.New()
	backend.AddOrganization(models.Organization{
		ID:          1,
		Name:        "Food Rescue",
		Category:    models.CategoryNonprofit,
		WebsiteURL:  "foodrescue.org",
		Description: strings.Repeat("x", 120),
	}, 50)
	backend.AddOrganization(models.Organization{ID: 2, Name: "Other Org"}, 60)
	backend.AddProject(models.Project{ID: 10, Name: "Driver", OrganizationID: 1, Skills: []string{"Driving"}})
	backend.AddProject(models.Project{ID: 11, Name: "Sorter", OrganizationID: 1, Skills: []string{"Logistics", "Excel"}})
	backend.AddProject(models.Project{ID: 12, Name: "Draft", OrganizationID: 1, Status: models.ProjectPending})
	backend.AddProject(models.Project{ID: 20, Name: "Elsewhere", OrganizationID: 2})
	server := backend.Start(t)
	return backend, api.NewClient(server.URL, nil)
}

func newComposer(client *api.Client) *view.Composer {
	return view.NewComposer(client, client, client, quietLogger())
}

func principal(role models.Role, userID int64) models.Principal {
	return models.Principal{Role: role, UserID: userID, Token: "token"}
}

func TestCompose_Anonymous(t *testing.T) {
	_, client := seed(t)

	v, err := newComposer(client).Compose(context.Background(), 10, models.Anonymous())
	require.NoError(t, err)

	require.Equal(t, "Driver", v.Project.Name)
	require.Equal(t, []string{"Driving"}, v.Project.Skills)

	require.NotNil(t, v.Organization)
	require.Equal(t, "http://foodrescue.org", v.Organization.WebsiteURL)
	require.Equal(t, strings.Repeat("x", 100)+"...", v.Organization.Description)
	require.Equal(t, "Nonprofit", v.CategoryName)

	require.Len(t, v.OrganizationProjects, 2)
	require.Equal(t, int64(10), v.OrganizationProjects[0].ID)
	require.Equal(t, []string{"Logistics", "Excel"}, v.OrganizationProjects[1].Skills)

	require.Equal(t, view.Buttons{Share: true, Apply: true, Bookmark: true}, v.Buttons)
}

func TestCompose_VolunteerWithAppliedLink(t *testing.T) {
	backend, client := seed(t)
	backend.AddLink(10, 7, models.LinkApplied)
	backend.AddLink(11, 7, models.LinkBookmarked)

	v, err := newComposer(client).Compose(context.Background(), 10, principal(models.RoleVolunteer, 7))
	require.NoError(t, err)

	require.True(t, v.Buttons.Apply)
	require.True(t, v.Buttons.Bookmark)
	require.True(t, v.Buttons.Applied)
	require.False(t, v.Buttons.Bookmarked)
	require.False(t, v.Buttons.Edit)
	require.False(t, v.Buttons.Delete)
}

func TestCompose_OrganizationOwnerAndStranger(t *testing.T) {
	_, client := seed(t)
	composer := newComposer(client)

	owner, err := composer.Compose(context.Background(), 10, principal(models.RoleOrganization, 50))
	require.NoError(t, err)
	require.True(t, owner.Buttons.Edit)
	require.True(t, owner.Buttons.Delete)
	require.False(t, owner.Buttons.Apply)
	require.False(t, owner.Buttons.Bookmark)

	stranger, err := composer.Compose(context.Background(), 10, principal(models.RoleOrganization, 60))
	require.NoError(t, err)
	require.False(t, stranger.Buttons.Edit)
	require.False(t, stranger.Buttons.Delete)
	require.True(t, stranger.Buttons.Share)

	orphan, err := composer.Compose(context.Background(), 10, principal(models.RoleOrganization, 61))
	require.NoError(t, err)
	require.False(t, orphan.Buttons.Edit)
}

func TestCompose_Admin(t *testing.T) {
	_, client := seed(t)

	v, err := newComposer(client).Compose(context.Background(), 10, principal(models.RoleAdmin, 1))
	require.NoError(t, err)
	require.Equal(t, view.Buttons{Share: true, Edit: true, Delete: true}, v.Buttons)
}

func TestCompose_OrganizationFailureIsPartial(t *testing.T) {
	backend, client := seed(t)
	backend.Fail("GET /api/organizations/{id}", http.StatusInternalServerError, "down")

	v, err := newComposer(client).Compose(context.Background(), 10, models.Anonymous())
	require.NoError(t, err)
	require.Nil(t, v.Organization)
	require.Empty(t, v.CategoryName)
	require.Len(t, v.OrganizationProjects, 2)
	require.Equal(t, []string{"Driving"}, v.Project.Skills)
}

func TestCompose_SkillFailureLeavesSkillsUnset(t *testing.T) {
	backend, client := seed(t)
	backend.Fail("GET /api/skills/project", http.StatusBadGateway, "skills down")

	v, err := newComposer(client).Compose(context.Background(), 10, models.Anonymous())
	require.NoError(t, err)
	require.Nil(t, v.Project.Skills)
	require.Len(t, v.OrganizationProjects, 2)
	for _, sibling := range v.OrganizationProjects {
		require.Nil(t, sibling.Skills)
	}
	require.NotNil(t, v.Organization)
}

func TestCompose_VolunteerLookupFailureKeepsControlsEnabled(t *testing.T) {
	backend, client := seed(t)
	backend.Fail("GET /api/projects/user", http.StatusInternalServerError, "down")

	v, err := newComposer(client).Compose(context.Background(), 10, principal(models.RoleVolunteer, 7))
	require.NoError(t, err)
	require.True(t, v.Buttons.Apply)
	require.False(t, v.Buttons.Applied)
	require.False(t, v.Buttons.Bookmarked)
}

func TestCompose_ProjectFailure(t *testing.T) {
	backend, client := seed(t)

	_, err := newComposer(client).Compose(context.Background(), 999, models.Anonymous())
	require.ErrorIs(t, err, models.ErrNotFound)
	require.Zero(t, backend.Hits("GET /api/organizations/{id}"))
}

func TestCompose_CancelledContext(t *testing.T) {
	_, client := seed(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newComposer(client).Compose(ctx, 10, models.Anonymous())
	require.ErrorIs(t, err, context.Canceled)
}
