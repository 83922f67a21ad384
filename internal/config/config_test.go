package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return configPath
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
telegram:
  token: "123:abc"
database:
  path: "/tmp/publist.db"
  timeout: 2s
log_file: "/tmp/test.log"
debug: true
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Telegram.Token != "123:abc" {
		t.Errorf("Telegram.Token = %q, want %q", cfg.Telegram.Token, "123:abc")
	}

	if cfg.Database.Path != "/tmp/publist.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/publist.db")
	}

	if got := cfg.StoreTimeout(); got != 2*time.Second {
		t.Errorf("StoreTimeout() = %v, want 2s", got)
	}

	if cfg.LogFile != "/tmp/test.log" {
		t.Errorf("LogFile = %q, want %q", cfg.LogFile, "/tmp/test.log")
	}

	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
telegram:
  token: "123:abc"
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.StoreTimeout(); got != DefaultStoreTimeout {
		t.Errorf("StoreTimeout() = %v, want %v", got, DefaultStoreTimeout)
	}

	want := filepath.Join("/home/pub", ".config", "publist", "publist.db")
	if got := cfg.DatabasePath("/home/pub"); got != want {
		t.Errorf("DatabasePath() = %q, want %q", got, want)
	}

	if cfg.Debug {
		t.Error("Debug = true, want false")
	}
}

func TestLoadZeroTimeoutDisables(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
telegram:
  token: "123:abc"
database:
  timeout: 0s
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.StoreTimeout(); got != 0 {
		t.Errorf("StoreTimeout() = %v, want 0", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing token", "debug: true\n"},
		{"negative timeout", "telegram:\n  token: x\ndatabase:\n  timeout: -1s\n"},
		{"invalid yaml", "telegram: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load() should error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() should error on missing file")
	}
}

func TestDatabasePathExpandsHome(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Path: "~/data/pubs.db"}}

	if got := cfg.DatabasePath("/home/pub"); got != "/home/pub/data/pubs.db" {
		t.Errorf("DatabasePath() = %q, want %q", got, "/home/pub/data/pubs.db")
	}
}
