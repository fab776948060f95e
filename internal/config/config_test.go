package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 37878 {
		t.Errorf("port = %d, want 37878", cfg.Server.Port)
	}
	if cfg.Limits.Threshold != 0.6 {
		t.Errorf("threshold = %f, want 0.6", cfg.Limits.Threshold)
	}
	if got := cfg.ListenAddr(); got != "127.0.0.1:37878" {
		t.Errorf("listen addr = %q", got)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 37878 {
		t.Errorf("port = %d, want default", cfg.Server.Port)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
bind = "0.0.0.0"
port = 9000

[graph]
path = "/tmp/graph.json"

[limits]
threshold = 0.8
daily_tokens = 500000
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Bind != "0.0.0.0" || cfg.Server.Port != 9000 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Graph.Path != "/tmp/graph.json" {
		t.Errorf("graph path = %q", cfg.Graph.Path)
	}
	if cfg.Limits.DailyTokens != 500000 || cfg.Limits.Threshold != 0.8 {
		t.Errorf("limits = %+v", cfg.Limits)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[server\nport="), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid TOML")
	}
}
