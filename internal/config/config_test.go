package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Audience.PageSize != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[ui]
load-delay-ms = 250

[audience]
page-size = 15
selection-scope = "filtered"

[library]
page-size = 6

[data]
seed = 99
members = 120

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UI.LoadDelayMs == nil || *cfg.UI.LoadDelayMs != 250 {
		t.Fatalf("expected load delay 250")
	}
	if cfg.Audience.PageSize == nil || *cfg.Audience.PageSize != 15 {
		t.Fatalf("expected audience page size 15")
	}
	if cfg.Audience.Scope == nil || *cfg.Audience.Scope != "filtered" {
		t.Fatalf("expected filtered scope")
	}
	if cfg.Library.PageSize == nil || *cfg.Library.PageSize != 6 {
		t.Fatalf("expected library page size 6")
	}
	if cfg.Downloads.PageSize != nil {
		t.Fatalf("expected downloads page size unset")
	}
	if cfg.Data.Seed == nil || *cfg.Data.Seed != 99 || cfg.Data.Members == nil || *cfg.Data.Members != 120 {
		t.Fatalf("unexpected data config: %+v", cfg.Data)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("expected debug log level")
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[audience]\npage-sise = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "page-sise") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsHonourXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "cfg"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	if got := DefaultConfigPath(); got != filepath.Join(dir, "cfg", "creatordesk", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join(dir, "data", "creatordesk", "creatordesk.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join(dir, "state", "creatordesk", "creatordesk.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}
