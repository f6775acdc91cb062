package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WHATSTRIAGE_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv("DROPEA_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.StoreName != "IBericaStore" {
		t.Errorf("expected default store name, got %q", cfg.StoreName)
	}
	if cfg.PendingDaysBack != 5 || cfg.PendingDaysForward != 2 {
		t.Errorf("unexpected pending window: -%d/+%d", cfg.PendingDaysBack, cfg.PendingDaysForward)
	}
	if cfg.IncidenceDaysBack != 15 || cfg.IncidenceDaysForward != 1 {
		t.Errorf("unexpected incidence window: -%d/+%d", cfg.IncidenceDaysBack, cfg.IncidenceDaysForward)
	}
	if !cfg.HideResolvedDefault() {
		t.Error("hide_resolved should default to true")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `dropea_api_key: "file-key"
store_name: "OtraTienda"
product_names:
  SKU1: "Nombre bonito"
hide_resolved: false
pending_days_back: 3
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WHATSTRIAGE_CONFIG", path)
	t.Setenv("DROPEA_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DropeaAPIKey != "file-key" {
		t.Errorf("expected file-key, got %q", cfg.DropeaAPIKey)
	}
	if cfg.StoreName != "OtraTienda" {
		t.Errorf("expected OtraTienda, got %q", cfg.StoreName)
	}
	if cfg.ProductNames["SKU1"] != "Nombre bonito" {
		t.Errorf("product overrides not loaded: %v", cfg.ProductNames)
	}
	if cfg.HideResolvedDefault() {
		t.Error("hide_resolved: false should survive loading")
	}
	if cfg.PendingDaysBack != 3 {
		t.Errorf("expected pending_days_back 3, got %d", cfg.PendingDaysBack)
	}
	// Unset window fields keep their defaults.
	if cfg.IncidenceDaysBack != 15 {
		t.Errorf("expected default incidence window, got %d", cfg.IncidenceDaysBack)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(`dropea_api_key: "file-key"`), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WHATSTRIAGE_CONFIG", path)
	t.Setenv("DROPEA_API_KEY", "env-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DropeaAPIKey != "env-key" {
		t.Errorf("env var should win, got %q", cfg.DropeaAPIKey)
	}
}

func TestSavePreservesAPIKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(`dropea_api_key: "secret"`), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WHATSTRIAGE_CONFIG", path)
	t.Setenv("DROPEA_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg.Theme = "nord"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "secret") {
		t.Error("Save must preserve the stored API key")
	}
	if !strings.Contains(string(data), "nord") {
		t.Error("Save must write the updated theme")
	}
}

func TestSaveExampleConfigDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("WHATSTRIAGE_CONFIG", path)

	if err := SaveExampleConfig(); err != nil {
		t.Fatalf("SaveExampleConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("example config not written: %v", err)
	}

	if err := os.WriteFile(path, []byte("store_name: Mine"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := SaveExampleConfig(); err != nil {
		t.Fatalf("second SaveExampleConfig failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "Mine") {
		t.Error("SaveExampleConfig must not overwrite an existing file")
	}
}
