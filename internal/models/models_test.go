package models

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseProjectStatus(t *testing.T) {
	require.Equal(t, ProjectActive, ParseProjectStatus("a"))
	require.Equal(t, ProjectDeleted, ParseProjectStatus("D"))
	require.Equal(t, ProjectPending, ParseProjectStatus("P"))
	require.Equal(t, ProjectPending, ParseProjectStatus("zzz"))
	require.Equal(t, "Active", ProjectActive.String())
}

func TestProjectStatusString(t *testing.T) {
	require.Equal(t, "Pending", ProjectPending.String())
	require.Equal(t, "Deleted", ProjectDeleted.String())
	require.Equal(t, "Unknown", ProjectStatus("").String())
	require.Equal(t, "X", ProjectStatus("X").String())
}

func TestParseLinkStatus(t *testing.T) {
	status, err := ParseLinkStatus("a")
	require.NoError(t, err)
	require.Equal(t, LinkApplied, status)

	status, err = ParseLinkStatus(" B ")
	require.NoError(t, err)
	require.Equal(t, LinkBookmarked, status)

	_, err = ParseLinkStatus("X")
	require.ErrorIs(t, err, ErrInvalidLinkStatus)
}

func TestParseRole(t *testing.T) {
	require.Equal(t, RoleVolunteer, ParseRole("VOLUNTEER"))
	require.Equal(t, RoleVolunteer, ParseRole("V"))
	require.Equal(t, RoleOrganization, ParseRole("organization"))
	require.Equal(t, RoleAdmin, ParseRole("A"))
	require.Equal(t, RoleAnonymous, ParseRole(""))
	require.Equal(t, RoleAnonymous, ParseRole("guest"))
}

func TestPrincipalAuthenticated(t *testing.T) {
	require.False(t, Anonymous().Authenticated())
	require.False(t, Principal{Role: RoleVolunteer, Token: "t"}.Authenticated())
	require.True(t, Principal{Role: RoleVolunteer, Token: "t", UserID: 7}.Authenticated())
}

func TestProjectLocation(t *testing.T) {
	p := Project{City: "Denver", State: "CO", Country: " USA "}
	require.Equal(t, "Denver, CO, USA", p.Location())
	require.True(t, (&Project{RemoteFlag: "y"}).IsRemote())
}

func TestTokenStore_RoundTrip(t *testing.T) {
	store := NewTokenStore(t.TempDir())

	_, err := store.GetToken()
	require.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.SaveToken("abc\n"))
	token, err := store.GetToken()
	require.NoError(t, err)
	require.Equal(t, "abc", token)

	require.NoError(t, store.ClearToken())
	require.NoError(t, store.ClearToken())
	_, err = store.GetToken()
	require.ErrorIs(t, err, ErrNoToken)
}

func TestTokenStore_RedirectIsTakenOnce(t *testing.T) {
	dir := t.TempDir()
	store := NewTokenStore(dir)
	require.Equal(t, filepath.Join(dir, ".redirect_after_login"), store.RedirectFile)

	route, err := store.TakeRedirect()
	require.NoError(t, err)
	require.Empty(t, route)

	require.NoError(t, store.SaveRedirect("project/view/42"))
	route, err = store.TakeRedirect()
	require.NoError(t, err)
	require.Equal(t, "project/view/42", route)

	route, err = store.TakeRedirect()
	require.NoError(t, err)
	require.Empty(t, route)
}
