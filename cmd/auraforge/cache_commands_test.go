package main

import (
	"strings"
	"testing"

	"auraforge/internal/catalog"
	"auraforge/internal/record"
)

func seedCache(t *testing.T, env *cliTestEnv, category string) {
	t.Helper()
	store := catalog.NewStore(env.cacheDir, nil)
	items := []record.Item{{ID: 100, Name: "Glowing Charm", Spells: []int64{10}}}
	spells := []record.Spell{{ID: 10, Name: "Haste Boost", Effects: []record.Effect{{GrantsAura: true}}}}
	if err := store.SaveItems(category, items); err != nil {
		t.Fatalf("seed items: %v", err)
	}
	if err := store.SaveSpells(category, spells); err != nil {
		t.Fatalf("seed spells: %v", err)
	}
	output := record.Output{100: record.AuraMap{10: "Haste Boost"}}
	if err := store.WriteOutput(category, output); err != nil {
		t.Fatalf("seed output: %v", err)
	}
}

func TestCacheStatusEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"cache", "status"}, env.configPath)
	if err != nil {
		t.Fatalf("cache status: %v", err)
	}
	requireContains(t, out, "Cache is empty")
}

func TestCacheStatusShowsCounts(t *testing.T) {
	env := setupCLITestEnv(t)
	seedCache(t, env, "trinkets")

	out, _, err := runCLI(t, []string{"cache", "status"}, env.configPath)
	if err != nil {
		t.Fatalf("cache status: %v", err)
	}
	requireContains(t, out, "trinkets")
	requireContains(t, out, "Cache root: "+env.cacheDir)
}

func TestCacheClearRequiresForce(t *testing.T) {
	env := setupCLITestEnv(t)
	seedCache(t, env, "trinkets")

	_, _, err := runCLI(t, []string{"cache", "clear"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected refusal without --force, got %v", err)
	}

	store := catalog.NewStore(env.cacheDir, nil)
	categories, err := store.Categories()
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("cache should be untouched, got %v", categories)
	}
}

func TestCacheClearRemovesCategories(t *testing.T) {
	env := setupCLITestEnv(t)
	seedCache(t, env, "trinkets")
	seedCache(t, env, "rings")

	out, _, err := runCLI(t, []string{"cache", "clear", "--force"}, env.configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Cleared 2 categories")

	store := catalog.NewStore(env.cacheDir, nil)
	categories, err := store.Categories()
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 0 {
		t.Fatalf("cache should be empty, got %v", categories)
	}
}

func TestCacheClearSubset(t *testing.T) {
	env := setupCLITestEnv(t)
	seedCache(t, env, "trinkets")
	seedCache(t, env, "rings")

	out, _, err := runCLI(t, []string{"cache", "clear", "--force", "rings"}, env.configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Cleared 1 categories")

	store := catalog.NewStore(env.cacheDir, nil)
	categories, err := store.Categories()
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 1 || categories[0] != "trinkets" {
		t.Fatalf("expected only trinkets to remain, got %v", categories)
	}
}
