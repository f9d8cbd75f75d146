package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"auraforge/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CACHE_HOME", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantCache := filepath.Join(tempHome, ".cache", "auraforge")
	if cfg.Paths.CacheDir != wantCache {
		t.Fatalf("unexpected cache dir: got %q want %q", cfg.Paths.CacheDir, wantCache)
	}
	wantOutput := filepath.Join(tempHome, ".local", "share", "auraforge", "output")
	if cfg.Paths.OutputDir != wantOutput {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Armory.ItemURL != config.Default().Armory.ItemURL {
		t.Fatalf("unexpected armory item url: %q", cfg.Armory.ItemURL)
	}
	if cfg.Armory.TimeoutSeconds != 10 {
		t.Fatalf("unexpected armory timeout: %d", cfg.Armory.TimeoutSeconds)
	}
	if cfg.Runs.DatabasePath != filepath.Join(cfg.Paths.LogDir, "runs.db") {
		t.Fatalf("expected ledger db under log dir, got %q", cfg.Runs.DatabasePath)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.CacheDir, cfg.Paths.OutputDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "auraforge.toml")

	type payload struct {
		Paths struct {
			CacheDir string `toml:"cache_dir"`
		} `toml:"paths"`
		Armory struct {
			ItemURL        string `toml:"item_url"`
			TimeoutSeconds int    `toml:"timeout_seconds"`
		} `toml:"armory"`
		Listing struct {
			BaseURL string `toml:"base_url"`
		} `toml:"listing"`
	}
	custom := payload{}
	custom.Paths.CacheDir = filepath.Join(tempDir, "cache")
	custom.Armory.ItemURL = "https://example.com/records/item"
	custom.Armory.TimeoutSeconds = 5
	custom.Listing.BaseURL = "https://example.com/listings/"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.CacheDir != custom.Paths.CacheDir {
		t.Fatalf("expected cache dir from file, got %q", cfg.Paths.CacheDir)
	}
	if cfg.Armory.ItemURL != "https://example.com/records/item" {
		t.Fatalf("expected armory item url override, got %q", cfg.Armory.ItemURL)
	}
	if cfg.Armory.SpellURL != config.Default().Armory.SpellURL {
		t.Fatalf("expected default spell url, got %q", cfg.Armory.SpellURL)
	}
	if cfg.Armory.TimeoutSeconds != 5 {
		t.Fatalf("expected armory timeout 5, got %d", cfg.Armory.TimeoutSeconds)
	}
	if cfg.Listing.BaseURL != "https://example.com/listings" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Listing.BaseURL)
	}
}

func TestEnvVarOverridesConfigFileForAPIKey(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "auraforge.toml")

	content := "[armory]\napi_key = \"file-key\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	t.Setenv("ARMORY_API_KEY", "env-key")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Armory.APIKey != "env-key" {
		t.Errorf("expected armory key from env, got %q", cfg.Armory.APIKey)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "armory.auraforge.dev") {
		t.Fatalf("sample config missing armory endpoint: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.CacheDir, "auraforge") {
		t.Fatalf("expected cache dir to contain auraforge, got %q", cfg.Paths.CacheDir)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Armory.TimeoutSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive armory timeout")
	}

	cfg = config.Default()
	cfg.Armory.ItemURL = "ftp://example.com/item"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-http item url")
	}

	cfg = config.Default()
	cfg.Listing.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty listing base url")
	}

	cfg = config.Default()
	cfg.Listing.TimeoutSeconds = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative listing timeout")
	}
}
