package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration to")

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample config: %v", err)
	}
	requireContains(t, string(data), "[armory]")
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err != nil {
		t.Fatalf("first init: %v", err)
	}

	_, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("init with --overwrite: %v", err)
	}
}

func TestConfigShowRedactsAPIKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[armory]
api_key = "super-secret-key"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ARMORY_API_KEY", "")

	out, _, err := runCLI(t, []string{"config", "show"}, path)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "# Config path: "+path)
	requireContains(t, out, "(redacted)")
	if strings.Contains(out, "super-secret-key") {
		t.Fatal("api key leaked into config show output")
	}
}

func TestConfigShowMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.toml")

	out, _, err := runCLI(t, []string{"config", "show"}, path)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "# File does not exist; showing defaults")
	requireContains(t, out, "item_url")
}

func TestConfigPathPrintsResolvedLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[paths]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, stderr, err := runCLI(t, []string{"config", "path"}, path)
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Fatalf("expected %q, got %q", path, strings.TrimSpace(out))
	}
	if stderr != "" {
		t.Fatalf("unexpected stderr for existing config: %q", stderr)
	}
}

func TestConfigPathMissingFileNotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	out, stderr, err := runCLI(t, []string{"config", "path"}, path)
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Fatalf("expected %q, got %q", path, strings.TrimSpace(out))
	}
	requireContains(t, stderr, "defaults in effect")
}
