// Package config loads bazaar settings from defaults, an optional YAML
// file, a .env file and BAZAAR_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/agentbazaar/bazaar/types"
)

// Config holds all runtime settings of the TUI and the MCP binaries.
type Config struct {
	API     APIConfig     `koanf:"api"`
	Session SessionConfig `koanf:"session"`
	Log     LogConfig     `koanf:"log"`
	MCP     MCPConfig     `koanf:"mcp"`
}

// APIConfig points the client at the marketplace API.
type APIConfig struct {
	BaseURL  string        `koanf:"base_url" validate:"required,http_url"`
	Timeout  time.Duration `koanf:"timeout"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// SessionConfig identifies the principal. Until a real auth collaborator
// exists, the user id is a configured placeholder.
type SessionConfig struct {
	UserID        string `koanf:"user_id" validate:"required"`
	DeveloperName string `koanf:"developer_name"`
}

// LogConfig controls zerolog output.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	File   string `koanf:"file"`
}

// MCPConfig configures the MCP servers.
type MCPConfig struct {
	Port               string        `koanf:"port" validate:"required,numeric"`
	AllowedOrigins     []string      `koanf:"allowed_origins" validate:"dive,http_url"`
	Stateless          bool          `koanf:"stateless"`
	EnableAdmin        bool          `koanf:"enable_admin"`
	APIKey             string        `koanf:"api_key"`
	RPS                float64       `koanf:"rps" validate:"gt=0"`
	Burst              int           `koanf:"burst" validate:"gt=0"`
	SessionTimeout     time.Duration `koanf:"session_timeout"`
	CacheClearInterval time.Duration `koanf:"cache_clear_interval"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:  "http://localhost:8000/api",
			Timeout:  10 * time.Second,
			CacheTTL: time.Minute,
		},
		Session: SessionConfig{
			UserID: "demo-user",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		MCP: MCPConfig{
			Port:               "8080",
			RPS:                2,
			Burst:              5,
			SessionTimeout:     15 * time.Minute,
			CacheClearInterval: 30 * time.Minute,
		},
	}
}

// Identity returns the identity the storefront acts for.
func (c Config) Identity() types.Session {
	return types.Session{
		UserID:        c.Session.UserID,
		DeveloperName: c.Session.DeveloperName,
	}
}

// AdminEnabled reports whether admin MCP tools may be registered. They
// require an API key.
func (c MCPConfig) AdminEnabled() bool {
	return c.EnableAdmin && c.APIKey != ""
}

func (c Config) String() string {
	return fmt.Sprintf("api=%s user=%s log=%s/%s", c.API.BaseURL, c.Session.UserID, c.Log.Level, c.Log.Format)
}
