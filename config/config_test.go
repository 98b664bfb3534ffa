package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/plughook/config"
)

// TestDefault verifies the built-in settings.
func TestDefault(t *testing.T) {
	cfg := config.Default()
	if cfg.Lua.Timeout() != 5*time.Second {
		t.Errorf("expected 5s lua timeout, got %v", cfg.Lua.Timeout())
	}
	if cfg.History.Depth != 2 || cfg.History.Variables != 2 {
		t.Errorf("expected 2/2 history defaults, got %+v", cfg.History)
	}
}

// TestLoadMissingFile verifies a missing config file yields defaults
// without error.
func TestLoadMissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

// TestLoadFile verifies file values layer over the defaults.
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plughook.toml")
	body := `
[lua]
plug_dir = "/opt/plugs"
timeout_ms = 250

[history]
depth = 6
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Lua.PlugDir != "/opt/plugs" {
		t.Errorf("expected plug_dir set, got %q", cfg.Lua.PlugDir)
	}
	if cfg.Lua.Timeout() != 250*time.Millisecond {
		t.Errorf("expected 250ms timeout, got %v", cfg.Lua.Timeout())
	}
	// Unset keys keep their defaults.
	if cfg.History.Depth != 6 || cfg.History.Variables != 2 {
		t.Errorf("expected depth 6, variables 2, got %+v", cfg.History)
	}
}

// TestLoadInvalid verifies parse failures are surfaced.
func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[lua\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Error("expected parse error")
	}
}
