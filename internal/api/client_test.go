package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"c4sg/internal/api"
	"c4sg/internal/api/apitest"
	"c4sg/internal/models"

	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) (*apitest.Backend, *api.Client) {
	t.Helper()
	backend := apitest.New()
	server := backend.Start(t)
	return backend, api.NewClient(server.URL, models.NewTokenStore(t.TempDir()))
}

func TestSearchProjects_MapsPageAndParams(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"id":1,"name":"Food bank"}],"totalElements":31}`))
	}))
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL, nil)
	page, err := client.SearchProjects(context.Background(), models.SearchQuery{
		Keyword: "food",
		Skills:  []string{"Go", "SQL"},
		Status:  models.ProjectActive,
		Remote:  "Y",
		Page:    2,
		Size:    10,
	})
	require.NoError(t, err)
	require.Equal(t, 31, page.TotalItems)
	require.Len(t, page.Data, 1)
	require.Equal(t, "Food bank", page.Data[0].Name)

	require.Equal(t, "/api/projects/search", got.URL.Path)
	q := got.URL.Query()
	require.Equal(t, "food", q.Get("keyWord"))
	require.Equal(t, []string{"Go", "SQL"}, q["skills"])
	require.Equal(t, "A", q.Get("status"))
	require.Equal(t, "Y", q.Get("remote"))
	require.Equal(t, "1", q.Get("page"))
	require.Equal(t, "10", q.Get("size"))
	require.NotEmpty(t, got.Header.Get("X-Request-ID"))
}

func TestSearchProjects_NoFiltersSendsNoParams(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"content":[],"totalElements":0}`))
	}))
	t.Cleanup(server.Close)

	page, err := api.NewClient(server.URL, nil).SearchProjects(context.Background(), models.SearchQuery{})
	require.NoError(t, err)
	require.Empty(t, rawQuery)
	require.Empty(t, page.Data)
}

func TestGetProject_NotFound(t *testing.T) {
	_, client := newBackend(t)

	_, err := client.GetProject(context.Background(), 99)
	require.ErrorIs(t, err, models.ErrNotFound)
	require.Equal(t, "Project not found", api.MessageOf(err))
}

func TestProjectCRUD(t *testing.T) {
	backend, client := newBackend(t)
	ctx := context.Background()
	backend.AddOrganization(models.Organization{ID: 3, Name: "Code for Good"})

	created, err := client.CreateProject(ctx, &models.Project{Name: "Tutoring", OrganizationID: 3})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	fetched, err := client.GetProject(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Tutoring", fetched.Name)
	require.NotNil(t, fetched.Organization)
	require.Equal(t, "Code for Good", fetched.Organization.Name)

	fetched.Description = "Help kids read"
	updated, err := client.UpdateProject(ctx, fetched)
	require.NoError(t, err)
	require.Equal(t, "Help kids read", updated.Description)

	require.NoError(t, client.SaveProjectImage(ctx, created.ID, "https://img.example.org/a.png"))
	img, err := client.GetProjectImage(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "https://img.example.org/a.png", img)

	require.NoError(t, client.DeleteProject(ctx, created.ID))
	_, err = client.GetProject(ctx, created.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetProjectsByOrganizationAndUser(t *testing.T) {
	backend, client := newBackend(t)
	ctx := context.Background()
	backend.AddProject(models.Project{ID: 1, Name: "One", OrganizationID: 5})
	backend.AddProject(models.Project{ID: 2, Name: "Two", OrganizationID: 5, Status: models.ProjectPending})
	backend.AddProject(models.Project{ID: 3, Name: "Three", OrganizationID: 6})
	backend.AddLink(2, 9, models.LinkBookmarked)

	active, err := client.GetProjectsByOrganization(ctx, 5, models.ProjectActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, int64(1), active[0].ID)

	all, err := client.GetProjectsByOrganization(ctx, 5, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	bookmarked, err := client.GetProjectsByUser(ctx, 9, models.LinkBookmarked)
	require.NoError(t, err)
	require.Len(t, bookmarked, 1)
	require.Equal(t, int64(2), bookmarked[0].ID)

	applied, err := client.GetProjectsByUser(ctx, 9, models.LinkApplied)
	require.NoError(t, err)
	require.Empty(t, applied)
}

func TestLinkUserProject_DuplicateSurfacesServerMessage(t *testing.T) {
	backend, client := newBackend(t)
	ctx := context.Background()
	backend.AddProject(models.Project{ID: 1, Name: "One", OrganizationID: 5})

	require.NoError(t, client.LinkUserProject(ctx, 1, 9, models.LinkApplied))
	require.True(t, backend.HasLink(1, 9, models.LinkApplied))

	err := client.LinkUserProject(ctx, 1, 9, models.LinkApplied)
	require.Error(t, err)
	require.Equal(t, "The user already has applied for this project.", api.MessageOf(err))

	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestLinkUserProject_RejectsUnknownStatus(t *testing.T) {
	backend, client := newBackend(t)

	err := client.LinkUserProject(context.Background(), 1, 9, models.LinkStatus("X"))
	require.ErrorIs(t, err, models.ErrInvalidLinkStatus)
	require.Zero(t, backend.TotalHits())
}

func TestOrganizationsAndSkills(t *testing.T) {
	backend, client := newBackend(t)
	ctx := context.Background()
	backend.AddOrganization(models.Organization{ID: 4, Name: "Open Maps", Category: models.CategoryOpenSource}, 21)
	backend.AddProject(models.Project{ID: 8, Name: "Mapping", OrganizationID: 4, Skills: []string{"Go"}})
	backend.AddSkills("Go", "Design")

	org, err := client.GetOrganization(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, "Open Maps", org.Name)

	orgs, err := client.GetUserOrganizations(ctx, 21)
	require.NoError(t, err)
	require.Len(t, orgs, 1)

	none, err := client.GetUserOrganizations(ctx, 22)
	require.NoError(t, err)
	require.Empty(t, none)

	catalog, err := client.GetSkills(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Go", "Design"}, models.SkillNames(catalog))

	names, err := client.GetSkillsByProject(ctx, 8)
	require.NoError(t, err)
	require.Equal(t, []string{"Go"}, names)

	require.NoError(t, client.UpdateSkills(ctx, 8, []string{"Go", "Design"}))
	names, err = client.GetSkillsByProject(ctx, 8)
	require.NoError(t, err)
	require.Equal(t, []string{"Go", "Design"}, names)
}

func TestBearerTokenFromStore(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	store := models.NewTokenStore(t.TempDir())
	require.NoError(t, store.SaveToken("secret"))

	_, err := api.NewClient(server.URL, store).GetSkills(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer secret", auth)
}

func TestAnonymousRequestHasNoAuthorization(t *testing.T) {
	var auth = "unset"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	_, err := api.NewClient(server.URL, models.NewTokenStore(t.TempDir())).GetSkills(context.Background())
	require.NoError(t, err)
	require.Empty(t, auth)
}

func TestLoginAndLogout(t *testing.T) {
	backend, client := newBackend(t)
	ctx := context.Background()
	backend.AddAccount(models.User{ID: 7, Email: "v@example.org", Role: "volunteer"}, "pw")

	_, err := client.Login(ctx, "v@example.org", "wrong")
	require.Error(t, err)
	require.Equal(t, "Invalid email or password", api.MessageOf(err))

	auth, err := client.Login(ctx, "v@example.org", "pw")
	require.NoError(t, err)
	require.Equal(t, int64(7), auth.UserID)
	require.Equal(t, "v@example.org", auth.Email)
	require.NotEmpty(t, auth.Token)
	require.Equal(t, auth.Token, client.AuthToken)

	require.NoError(t, client.Logout(ctx))
	require.Empty(t, client.AuthToken)
}

func TestRateLimitHonoursContext(t *testing.T) {
	_, client := newBackend(t)
	limited := api.NewClient(client.BaseURL, nil, api.WithRateLimit(0.001))

	ctx := context.Background()
	_, err := limited.GetSkills(ctx)
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = limited.GetSkills(cancelled)
	require.Error(t, err)
}

func TestMessageOf(t *testing.T) {
	require.Empty(t, api.MessageOf(nil))
	require.Equal(t, "boom", api.MessageOf(errors.New("boom")))
	require.Equal(t, "dup", api.MessageOf(&api.Error{Op: "x", StatusCode: 400, Message: "dup"}))
}
