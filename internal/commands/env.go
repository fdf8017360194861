package commands

import (
	"fmt"
	"os"

	"c4sg/internal/api"
	"c4sg/internal/config"
	"c4sg/internal/models"
	"c4sg/internal/session"
)

// env bundles what a command needs to talk to the server as the current user
type env struct {
	cfg     *config.Config
	dir     string
	store   *models.TokenStore
	client  *api.Client
	session *session.Session
}

// loadEnv prepares the config directory, token store, API client and session
func loadEnv() (*env, error) {
	dir, err := config.GetGlobalConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting global config directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating global config directory: %w", err)
	}

	cfg := globalConfig
	if cfg == nil {
		if cfg, err = config.LoadGlobalConfig(); err != nil {
			return nil, fmt.Errorf("error loading global config: %w", err)
		}
	}
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("server URL not configured")
	}

	store := models.NewTokenStore(dir)
	client := api.NewClient(cfg.ServerURL, store,
		api.WithTimeout(cfg.Timeout()),
		api.WithRateLimit(cfg.RateLimit),
		api.WithLogger(logger),
	)

	return &env{
		cfg:     cfg,
		dir:     dir,
		store:   store,
		client:  client,
		session: session.New(store),
	}, nil
}

// requireLogin reports whether the session is authenticated, printing a hint otherwise
func (e *env) requireLogin(p printer) bool {
	if e.session.Authenticated() {
		return true
	}
	p.Println("You are not logged in. Please log in first with 'c4sg login'.")
	return false
}
