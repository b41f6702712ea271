package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv blanks every override so the ambient environment cannot leak
// into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PLANBOOK_ADDR",
		"PLANBOOK_SHUTDOWN_SECONDS",
		"PLANBOOK_DB_PATH",
		"PLANBOOK_LOG_LEVEL",
		"PLANBOOK_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("got addr %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Server.ShutdownSeconds != 5 {
		t.Errorf("got shutdown_seconds %d, want 5", cfg.Server.ShutdownSeconds)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("got log %q/%q, want info/json", cfg.Log.Level, cfg.Log.Format)
	}
	if cfg.Storage.DBPath == "" {
		t.Error("expected a default db path")
	}
}

func TestLoadFrom_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
addr = ":9090"
shutdown_seconds = 10

[storage]
db_path = "/tmp/planbook-test.db"

[log]
level = "debug"
format = "text"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("got addr %q, want %q", cfg.Server.Addr, ":9090")
	}
	if cfg.Server.ShutdownSeconds != 10 {
		t.Errorf("got shutdown_seconds %d, want 10", cfg.Server.ShutdownSeconds)
	}
	if cfg.Storage.DBPath != "/tmp/planbook-test.db" {
		t.Errorf("got db_path %q", cfg.Storage.DBPath)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("got log %q/%q, want debug/text", cfg.Log.Level, cfg.Log.Format)
	}
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \":3000\"\n"), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":3000" {
		t.Errorf("got addr %q, want %q", cfg.Server.Addr, ":3000")
	}
	if cfg.Server.ShutdownSeconds != 5 {
		t.Errorf("got shutdown_seconds %d, want default 5", cfg.Server.ShutdownSeconds)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("got level %q, want default info", cfg.Log.Level)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLANBOOK_ADDR", ":7070")
	t.Setenv("PLANBOOK_DB_PATH", "/tmp/env-override.db")
	t.Setenv("PLANBOOK_LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \":9090\"\n"), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Environment wins over the file.
	if cfg.Server.Addr != ":7070" {
		t.Errorf("got addr %q, want %q", cfg.Server.Addr, ":7070")
	}
	if cfg.Storage.DBPath != "/tmp/env-override.db" {
		t.Errorf("got db_path %q", cfg.Storage.DBPath)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("got level %q, want warn", cfg.Log.Level)
	}
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not valid toml ["), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"zero shutdown", func(c *Config) { c.Server.ShutdownSeconds = 0 }},
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		if err := Default().Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestSaveAndReload(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Server.Addr = ":4040"
	cfg.Storage.DBPath = "/tmp/saved.db"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if loaded.Server.Addr != ":4040" {
		t.Errorf("got addr %q, want %q", loaded.Server.Addr, ":4040")
	}
	if loaded.Storage.DBPath != "/tmp/saved.db" {
		t.Errorf("got db_path %q", loaded.Storage.DBPath)
	}
}
