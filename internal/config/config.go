package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultServerURL is used when no server has been configured
	DefaultServerURL = "http://localhost:8080"

	// DefaultPageSize is the number of projects shown per list page
	DefaultPageSize = 10

	configDirName  = ".c4sg"
	configFileName = "config.json"
)

// Config represents the application configuration
type Config struct {
	// API server URL
	ServerURL string `json:"server_url"`

	// User information (populated after login)
	UserID int64  `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`

	// Log level for diagnostics written to stderr
	LogLevel string `json:"log_level,omitempty"`

	// Client-side request throttle in requests per second, zero disables it
	RateLimit float64 `json:"rate_limit,omitempty"`

	// HTTP request timeout in seconds
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`

	// Projects per page in list views
	PageSize int `json:"page_size,omitempty"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		ServerURL:      DefaultServerURL,
		LogLevel:       "warn",
		TimeoutSeconds: 30,
		PageSize:       DefaultPageSize,
	}
}

// Timeout returns the HTTP request timeout
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load loads the configuration from the given file path
func Load(path string) (*Config, error) {
	// If config file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}

	return cfg, nil
}

// Save saves the configuration to the given file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides settings from C4SG_* environment variables. A .env file in the
// working directory is read first when present; variables already set win over it.
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	if url := os.Getenv("C4SG_SERVER_URL"); url != "" {
		c.ServerURL = url
	}
	if level := os.Getenv("C4SG_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if limit := os.Getenv("C4SG_RATE_LIMIT"); limit != "" {
		rps, err := strconv.ParseFloat(limit, 64)
		if err != nil {
			return fmt.Errorf("invalid C4SG_RATE_LIMIT: %w", err)
		}
		c.RateLimit = rps
	}
	if timeout := os.Getenv("C4SG_TIMEOUT_SECONDS"); timeout != "" {
		secs, err := strconv.Atoi(timeout)
		if err != nil {
			return fmt.Errorf("invalid C4SG_TIMEOUT_SECONDS: %w", err)
		}
		c.TimeoutSeconds = secs
	}

	return nil
}

// GetGlobalConfigDir returns the per-user configuration directory. C4SG_CONFIG_DIR overrides it.
func GetGlobalConfigDir() (string, error) {
	if dir := os.Getenv("C4SG_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}

	return filepath.Join(homeDir, configDirName), nil
}

// GetGlobalConfigPath returns the path of the global configuration file
func GetGlobalConfigPath() (string, error) {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadGlobalConfig loads the global configuration file
func LoadGlobalConfig() (*Config, error) {
	path, err := GetGlobalConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// SaveGlobalConfig saves the global configuration file
func SaveGlobalConfig(cfg *Config) error {
	path, err := GetGlobalConfigPath()
	if err != nil {
		return err
	}
	return cfg.Save(path)
}
