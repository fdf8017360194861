package session

import (
	"testing"
	"time"

	"c4sg/internal/api/apitest"
	"c4sg/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestPrincipalFromToken(t *testing.T) {
	token := apitest.IssueToken(42, "o@example.org", "ORGANIZATION")

	p, err := PrincipalFromToken(token, time.Now())
	require.NoError(t, err)
	require.Equal(t, models.RoleOrganization, p.Role)
	require.Equal(t, int64(42), p.UserID)
	require.Equal(t, "o@example.org", p.Email)
	require.True(t, p.Authenticated())
}

func TestPrincipalFromToken_Expired(t *testing.T) {
	token := apitest.IssueToken(42, "o@example.org", "admin")

	_, err := PrincipalFromToken(token, time.Now().Add(2*time.Hour))
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestPrincipalFromToken_RolesArrayAndNumericID(t *testing.T) {
	claims := jwt.MapClaims{"userId": 5, "roles": []string{"V"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	p, err := PrincipalFromToken(token, time.Now())
	require.NoError(t, err)
	require.Equal(t, models.RoleVolunteer, p.Role)
	require.Equal(t, int64(5), p.UserID)
}

func TestPrincipalFromToken_MissingUserIsAnonymous(t *testing.T) {
	claims := jwt.MapClaims{"role": "admin"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	p, err := PrincipalFromToken(token, time.Now())
	require.NoError(t, err)
	require.Equal(t, models.RoleAnonymous, p.Role)
	require.False(t, p.Authenticated())
}

func TestPrincipalFromToken_Garbage(t *testing.T) {
	_, err := PrincipalFromToken("not-a-token", time.Now())
	require.Error(t, err)
}

func TestSession_SignInPersists(t *testing.T) {
	store := models.NewTokenStore(t.TempDir())
	s := New(store)
	require.False(t, s.Authenticated())

	p, err := s.SignIn(apitest.IssueToken(7, "v@example.org", "volunteer"))
	require.NoError(t, err)
	require.Equal(t, models.RoleVolunteer, p.Role)
	require.True(t, s.Authenticated())

	restored := New(store)
	require.Equal(t, int64(7), restored.Principal().UserID)

	require.NoError(t, restored.SignOut())
	require.False(t, restored.Authenticated())
	require.False(t, New(store).Authenticated())
}

func TestSession_Redirect(t *testing.T) {
	s := WithPrincipal(models.Anonymous())
	require.NoError(t, s.RememberRoute("project/view/3"))

	route, err := s.TakeRedirect()
	require.NoError(t, err)
	require.Equal(t, "project/view/3", route)

	route, err = s.TakeRedirect()
	require.NoError(t, err)
	require.Empty(t, route)
}

func TestSession_RedirectSurvivesRestart(t *testing.T) {
	store := models.NewTokenStore(t.TempDir())
	require.NoError(t, New(store).RememberRoute("project/view/9"))

	route, err := New(store).TakeRedirect()
	require.NoError(t, err)
	require.Equal(t, "project/view/9", route)
}

func TestSession_PendingRouteIgnoresStaleFile(t *testing.T) {
	store := models.NewTokenStore(t.TempDir())
	require.NoError(t, store.SaveRedirect("project/view/2"))

	s := New(store)
	require.Empty(t, s.PendingRoute())

	require.NoError(t, s.RememberRoute("project/view/5"))
	require.Equal(t, "project/view/5", s.PendingRoute())
}
