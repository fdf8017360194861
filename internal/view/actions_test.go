package view_test

import (
	"context"
	"errors"
	"testing"

	"c4sg/internal/models"
	"c4sg/internal/session"
	"c4sg/internal/view"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProjects struct {
	mock.Mock
}

func (m *mockProjects) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*models.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjects) GetProjectsByOrganization(ctx context.Context, orgID int64, status models.ProjectStatus) ([]models.Project, error) {
	args := m.Called(ctx, orgID, status)
	if list, ok := args.Get(0).([]models.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjects) GetProjectsByUser(ctx context.Context, userID int64, status models.LinkStatus) ([]models.Project, error) {
	args := m.Called(ctx, userID, status)
	if list, ok := args.Get(0).([]models.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjects) LinkUserProject(ctx context.Context, projectID, userID int64, status models.LinkStatus) error {
	return m.Called(ctx, projectID, userID, status).Error(0)
}

func (m *mockProjects) DeleteProject(ctx context.Context, projectID int64) error {
	return m.Called(ctx, projectID).Error(0)
}

func projectView(id int64) *view.ProjectView {
	return &view.ProjectView{Project: &models.Project{ID: id, OrganizationID: 1}}
}

func TestApply_Success(t *testing.T) {
	backend, client := seed(t)
	sess := session.WithPrincipal(principal(models.RoleVolunteer, 7))
	actions := view.NewActions(client, sess, nil, quietLogger())

	v := projectView(10)
	out, err := actions.Apply(context.Background(), v)
	require.NoError(t, err)
	require.NotNil(t, out.Notification)
	require.Equal(t, "Applied for the project", out.Notification.Message)
	require.Equal(t, view.ToastDuration, out.Notification.Duration)
	require.True(t, v.Buttons.Applied)
	require.True(t, backend.HasLink(10, 7, models.LinkApplied))
}

func TestBookmark_DuplicateShowsServerMessage(t *testing.T) {
	backend, client := seed(t)
	backend.AddLink(10, 7, models.LinkBookmarked)
	sess := session.WithPrincipal(principal(models.RoleVolunteer, 7))
	actions := view.NewActions(client, sess, nil, quietLogger())

	v := projectView(10)
	out, err := actions.Bookmark(context.Background(), v)
	require.NoError(t, err)
	require.Equal(t, "The user already has bookmarked this project.", out.Notification.Message)
	require.False(t, v.Buttons.Bookmarked)
}

func TestBookmark_Success(t *testing.T) {
	ctx := context.Background()
	projects := &mockProjects{}
	projects.On("LinkUserProject", ctx, int64(10), int64(7), models.LinkBookmarked).Return(nil)
	actions := view.NewActions(projects, session.WithPrincipal(principal(models.RoleVolunteer, 7)), nil, quietLogger())

	v := projectView(10)
	out, err := actions.Bookmark(ctx, v)
	require.NoError(t, err)
	require.Equal(t, "Bookmark added for the project", out.Notification.Message)
	require.True(t, v.Buttons.Bookmarked)
	projects.AssertExpectations(t)
}

func TestApply_TransportErrorShowsErrorText(t *testing.T) {
	ctx := context.Background()
	projects := &mockProjects{}
	projects.On("LinkUserProject", ctx, int64(10), int64(7), models.LinkApplied).Return(errors.New("connection refused"))
	actions := view.NewActions(projects, session.WithPrincipal(principal(models.RoleVolunteer, 7)), nil, quietLogger())

	out, err := actions.Apply(ctx, projectView(10))
	require.NoError(t, err)
	require.Equal(t, "connection refused", out.Notification.Message)
}

func TestApply_AnonymousStartsLogin(t *testing.T) {
	ctx := context.Background()
	projects := &mockProjects{}
	sess := session.WithPrincipal(models.Anonymous())

	loginCalls := 0
	login := func(context.Context) error {
		loginCalls++
		return nil
	}
	actions := view.NewActions(projects, sess, login, quietLogger())

	out, err := actions.Apply(ctx, projectView(10))
	require.NoError(t, err)
	require.True(t, out.LoginRequired)
	require.Nil(t, out.Notification)
	require.Equal(t, 1, loginCalls)

	route, err := sess.TakeRedirect()
	require.NoError(t, err)
	require.Equal(t, "project/view/10", route)
	projects.AssertNotCalled(t, "LinkUserProject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApply_LoginFailure(t *testing.T) {
	login := func(context.Context) error { return errors.New("cancelled") }
	actions := view.NewActions(&mockProjects{}, session.WithPrincipal(models.Anonymous()), login, quietLogger())

	out, err := actions.Bookmark(context.Background(), projectView(3))
	require.Error(t, err)
	require.True(t, out.LoginRequired)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	projects := &mockProjects{}
	projects.On("DeleteProject", ctx, int64(10)).Return(nil)
	projects.On("DeleteProject", ctx, int64(11)).Return(errors.New("boom"))
	actions := view.NewActions(projects, session.WithPrincipal(principal(models.RoleAdmin, 1)), nil, quietLogger())

	ok := actions.Delete(ctx, projectView(10))
	require.Equal(t, "Project deleted successfully", ok.Notification.Message)
	require.Equal(t, view.ListRoute, ok.Navigate)

	failed := actions.Delete(ctx, projectView(11))
	require.Equal(t, "Error while deleting a project", failed.Notification.Message)
	require.Empty(t, failed.Navigate)
}

func TestEditNavigates(t *testing.T) {
	actions := view.NewActions(&mockProjects{}, session.WithPrincipal(models.Anonymous()), nil, quietLogger())
	require.Equal(t, "project/edit/4", actions.Edit(projectView(4)).Navigate)
}
