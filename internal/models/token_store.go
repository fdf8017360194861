package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore keeps the session token and the post-login redirect route on disk
type TokenStore struct {
	TokenFile    string
	RedirectFile string
}

func NewTokenStore(configDir string) *TokenStore {
	return &TokenStore{
		TokenFile:    filepath.Join(configDir, ".auth_token"),
		RedirectFile: filepath.Join(configDir, ".redirect_after_login"),
	}
}

func (ts *TokenStore) SaveToken(token string) error {
	return os.WriteFile(ts.TokenFile, []byte(token), 0600) // Restricted permissions
}

func (ts *TokenStore) GetToken() (string, error) {
	data, err := os.ReadFile(ts.TokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (ts *TokenStore) ClearToken() error {
	return removeIfExists(ts.TokenFile)
}

// SaveRedirect remembers the route to return to after the next login
func (ts *TokenStore) SaveRedirect(route string) error {
	return os.WriteFile(ts.RedirectFile, []byte(route), 0600)
}

// TakeRedirect returns the remembered route and forgets it
func (ts *TokenStore) TakeRedirect() (string, error) {
	data, err := os.ReadFile(ts.RedirectFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	if err := removeIfExists(ts.RedirectFile); err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func removeIfExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil // File doesn't exist, nothing to clear
	}
	return os.Remove(path)
}
