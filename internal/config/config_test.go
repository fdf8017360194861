package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	require.Equal(t, DefaultServerURL, cfg.ServerURL)
	require.Equal(t, DefaultPageSize, cfg.PageSize)
	require.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.ServerURL = "https://api.example.org"
	cfg.UserID = 12
	cfg.Role = "volunteer"
	cfg.TimeoutSeconds = 5
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://api.example.org", loaded.ServerURL)
	require.Equal(t, int64(12), loaded.UserID)
	require.Equal(t, "volunteer", loaded.Role)
	require.Equal(t, 5*time.Second, loaded.Timeout())
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("C4SG_SERVER_URL", "http://env.example.org")
	t.Setenv("C4SG_LOG_LEVEL", "debug")
	t.Setenv("C4SG_RATE_LIMIT", "2.5")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	require.Equal(t, "http://env.example.org", cfg.ServerURL)
	require.Equal(t, "debug", cfg.LogLevel)
	require.InDelta(t, 2.5, cfg.RateLimit, 0.0001)
}

func TestApplyEnv_InvalidRateLimit(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("C4SG_RATE_LIMIT", "fast")

	require.Error(t, Default().ApplyEnv())
}

func TestGlobalConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("C4SG_CONFIG_DIR", dir)

	got, err := GetGlobalConfigDir()
	require.NoError(t, err)
	require.Equal(t, dir, got)

	cfg := Default()
	cfg.Email = "v@example.org"
	require.NoError(t, SaveGlobalConfig(cfg))

	loaded, err := LoadGlobalConfig()
	require.NoError(t, err)
	require.Equal(t, "v@example.org", loaded.Email)
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
}
