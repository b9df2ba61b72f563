package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so no stray .env is read.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, "demo-user", cfg.Identity().UserID)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("BAZAAR_API_BASE_URL", "https://bazaar.example/api")
	t.Setenv("BAZAAR_API_TIMEOUT", "3s")
	t.Setenv("BAZAAR_SESSION_USER_ID", "user-7")
	t.Setenv("BAZAAR_SESSION_DEVELOPER_NAME", "Ada")
	t.Setenv("BAZAAR_LOG_LEVEL", "debug")
	t.Setenv("BAZAAR_MCP_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("BAZAAR_MCP_RPS", "7.5")
	t.Setenv("BAZAAR_MCP_STATELESS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://bazaar.example/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "user-7", cfg.Session.UserID)
	assert.Equal(t, "Ada", cfg.Identity().DeveloperName)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.MCP.AllowedOrigins)
	assert.Equal(t, 7.5, cfg.MCP.RPS)
	assert.True(t, cfg.MCP.Stateless)
	assert.Equal(t, 5, cfg.MCP.Burst, "unset keys keep their defaults")
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bazaar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://file.example/api
  cache_ttl: 5m
log:
  format: json
`), 0o600))
	t.Setenv("BAZAAR_CONFIG", path)
	t.Setenv("BAZAAR_LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://file.example/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Minute, cfg.API.CacheTTL)
	assert.Equal(t, "console", cfg.Log.Format, "env wins over file")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BAZAAR_SESSION_USER_ID=from-dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("BAZAAR_SESSION_USER_ID") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Session.UserID)
}

func TestLoad_MissingFile(t *testing.T) {
	isolate(t)
	t.Setenv("BAZAAR_CONFIG", "/does/not/exist.yaml")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "bad base url", mutate: func(c *Config) { c.API.BaseURL = "localhost:8000" }, wantErr: "BaseURL must be an http(s) URL"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: "Level must be one of"},
		{name: "empty user", mutate: func(c *Config) { c.Session.UserID = "" }, wantErr: "UserID is required"},
		{name: "zero rps", mutate: func(c *Config) { c.MCP.RPS = 0 }, wantErr: "RPS must be greater than 0"},
		{name: "bad origin", mutate: func(c *Config) { c.MCP.AllowedOrigins = []string{"evil"} }, wantErr: "http(s) URL"},
		{name: "zero timeout", mutate: func(c *Config) { c.API.Timeout = 0 }, wantErr: "api.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := Validate(&cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMCPAdminEnabled(t *testing.T) {
	c := MCPConfig{EnableAdmin: true}
	assert.False(t, c.AdminEnabled())
	c.APIKey = "secret"
	assert.True(t, c.AdminEnabled())
}
