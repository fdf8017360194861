// Package session holds the identity the front-end acts as and the route to return to
// after login. It is passed explicitly to the controllers and commands that need it.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"c4sg/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the current user's session
type Session struct {
	mu        sync.RWMutex
	store     *models.TokenStore
	principal models.Principal
	redirect  string
}

// New restores the session from the token store. A missing, unreadable or expired token
// yields an anonymous session.
func New(store *models.TokenStore) *Session {
	s := &Session{store: store, principal: models.Anonymous()}
	if store == nil {
		return s
	}
	token, err := store.GetToken()
	if err != nil || token == "" {
		return s
	}
	if p, err := PrincipalFromToken(token, time.Now()); err == nil {
		s.principal = p
	}
	return s
}

// WithPrincipal returns an in-memory session acting as p
func WithPrincipal(p models.Principal) *Session {
	return &Session{principal: p}
}

// Principal returns the identity of the session
func (s *Session) Principal() models.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal
}

// Authenticated reports whether a user is logged in
func (s *Session) Authenticated() bool {
	return s.Principal().Authenticated()
}

// SignIn replaces the session identity with the one carried by token and stores the token
func (s *Session) SignIn(token string) (models.Principal, error) {
	p, err := PrincipalFromToken(token, time.Now())
	if err != nil {
		return models.Anonymous(), err
	}
	if s.store != nil {
		if err := s.store.SaveToken(token); err != nil {
			return models.Anonymous(), fmt.Errorf("failed to save auth token: %w", err)
		}
	}

	s.mu.Lock()
	s.principal = p
	s.mu.Unlock()
	return p, nil
}

// SignOut forgets the session identity
func (s *Session) SignOut() error {
	s.mu.Lock()
	s.principal = models.Anonymous()
	s.mu.Unlock()

	if s.store != nil {
		return s.store.ClearToken()
	}
	return nil
}

// RememberRoute keeps route so the user returns to it after logging in
func (s *Session) RememberRoute(route string) error {
	s.mu.Lock()
	s.redirect = route
	s.mu.Unlock()

	if s.store != nil {
		return s.store.SaveRedirect(route)
	}
	return nil
}

// PendingRoute returns the route remembered by this session, ignoring routes left on disk
// by earlier runs
func (s *Session) PendingRoute() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.redirect
}

// TakeRedirect returns the remembered route, if any, and clears it
func (s *Session) TakeRedirect() (string, error) {
	s.mu.Lock()
	route := s.redirect
	s.redirect = ""
	s.mu.Unlock()

	if s.store != nil {
		stored, err := s.store.TakeRedirect()
		if err != nil {
			return "", err
		}
		if stored != "" {
			route = stored
		}
	}
	return route, nil
}

// ErrTokenExpired is returned for tokens past their expiry
var ErrTokenExpired = errors.New("session token expired")

// PrincipalFromToken reads the identity claims of a session token. The signature is not
// checked here; the backend verifies it on every request.
func PrincipalFromToken(token string, now time.Time) (models.Principal, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return models.Anonymous(), fmt.Errorf("error parsing session token: %w", err)
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(now) {
		return models.Anonymous(), ErrTokenExpired
	}

	p := models.Principal{Token: token}
	p.UserID = claimID(claims, "userId", "user_id", "sub")
	if email, ok := claims["email"].(string); ok {
		p.Email = email
	}
	p.Role = models.ParseRole(claimRole(claims))

	if p.UserID == 0 {
		p.Role = models.RoleAnonymous
	}
	return p, nil
}

func claimID(claims jwt.MapClaims, names ...string) int64 {
	for _, name := range names {
		switch v := claims[name].(type) {
		case float64:
			if v != 0 {
				return int64(v)
			}
		case string:
			if id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil && id != 0 {
				return id
			}
		}
	}
	return 0
}

func claimRole(claims jwt.MapClaims) string {
	if role, ok := claims["role"].(string); ok {
		return role
	}
	if roles, ok := claims["roles"].([]interface{}); ok && len(roles) > 0 {
		if role, ok := roles[0].(string); ok {
			return role
		}
	}
	return ""
}
