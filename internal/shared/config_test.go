package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[credentials.youtube]
api_key = "key123"

[database]
path = "lib.db"
max_open_conns = 3

[library]
owner_email = "owner@example.com"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Credentials.YouTube.APIKey != "key123" {
			t.Errorf("unexpected api key: %q", cfg.Credentials.YouTube.APIKey)
		}
		if cfg.Database.Path != "lib.db" {
			t.Errorf("unexpected database path: %q", cfg.Database.Path)
		}
		if cfg.Library.OwnerEmail != "owner@example.com" {
			t.Errorf("unexpected owner email: %q", cfg.Library.OwnerEmail)
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Database.Path == "" {
		t.Error("default config should set a database path")
	}
	if cfg.Server.Port == 0 {
		t.Error("default config should set a server port")
	}
}

func TestCreateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := LoadConfig(path); err != nil {
		t.Errorf("created config should load: %v", err)
	}
	if err := CreateConfigFile(path); err == nil {
		t.Error("expected error when file already exists")
	}
}
