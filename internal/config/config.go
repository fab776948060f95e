package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all wander configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Graph    GraphConfig    `toml:"graph"`
	Database DatabaseConfig `toml:"database"`
	Limits   LimitsConfig   `toml:"limits"`
}

type ServerConfig struct {
	Bind string `toml:"bind"`
	Port int    `toml:"port"`
}

type GraphConfig struct {
	Path           string `toml:"path"`            // interest-graph.json location
	LegacyMarkdown string `toml:"legacy_markdown"` // auto-migrated on first load if present
}

type DatabaseConfig struct {
	Path string `toml:"path"` // session history / rate-limit sqlite db
}

type LimitsConfig struct {
	Threshold     float64 `toml:"threshold"` // refuse at this fraction of a ceiling
	DailyTokens   int64   `toml:"daily_tokens"`
	WeeklyTokens  int64   `toml:"weekly_tokens"`
	SessionTokens int64   `toml:"session_tokens"`
}

// Default returns a Config with sensible defaults. Paths are left empty and
// resolved at runtime (graph.DefaultGraphPath / history.DefaultDBPath) so
// tests can inject their own locations.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37878,
		},
		Limits: LimitsConfig{
			Threshold: 0.6,
		},
	}
}

// DefaultConfigPath returns ~/.wander/config.toml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".wander", "config.toml"), nil
}

// Load reads a TOML config file over the defaults. A missing file is not an
// error; you get the defaults back.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
