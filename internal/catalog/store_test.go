package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"auraforge/internal/record"
)

func TestStoreSaveAndLoadItems(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	items := []record.Item{
		{ID: 300, Name: "Band of Embers", Spells: []int64{41}},
		{ID: 100, Name: "Glowing Charm", Spells: []int64{10, 12}},
	}

	if err := store.SaveItems("rings", items); err != nil {
		t.Fatalf("SaveItems failed: %v", err)
	}

	loaded, err := store.LoadItems("rings")
	if err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded))
	}
	if loaded[0].ID != 100 || loaded[1].ID != 300 {
		t.Errorf("expected ascending id order, got %d, %d", loaded[0].ID, loaded[1].ID)
	}
	if loaded[0].Name != "Glowing Charm" {
		t.Errorf("Name mismatch: got %q", loaded[0].Name)
	}
	if len(loaded[0].Spells) != 2 || loaded[0].Spells[0] != 10 {
		t.Errorf("granted spells mismatch: got %v", loaded[0].Spells)
	}
}

func TestStoreSaveAndLoadSpells(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	spells := []record.Spell{
		{ID: 41, Name: "Ember Ward", Effects: []record.Effect{{GrantsAura: true}}},
		{ID: 10, Name: "Haste Boost", Effects: []record.Effect{{GrantsAura: true, AffectedSpell: 41}}},
	}

	if err := store.SaveSpells("rings", spells); err != nil {
		t.Fatalf("SaveSpells failed: %v", err)
	}

	loaded, err := store.LoadSpells("rings")
	if err != nil {
		t.Fatalf("LoadSpells failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 spells, got %d", len(loaded))
	}
	if loaded[0].ID != 10 || loaded[1].ID != 41 {
		t.Errorf("expected ascending id order, got %d, %d", loaded[0].ID, loaded[1].ID)
	}
	if !loaded[0].Effects[0].GrantsAura {
		t.Error("expected aura flag to survive round trip")
	}
	if loaded[0].Effects[0].AffectedSpell != 41 {
		t.Errorf("AffectedSpell mismatch: got %d", loaded[0].Effects[0].AffectedSpell)
	}
}

func TestLoadMissingCategoryReturnsEmpty(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	items, err := store.LoadItems("never-cached")
	if err != nil {
		t.Fatalf("LoadItems should not fail for missing category: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty collection, got %d items", len(items))
	}

	spells, err := store.LoadSpells("never-cached")
	if err != nil {
		t.Fatalf("LoadSpells should not fail for missing category: %v", err)
	}
	if len(spells) != 0 {
		t.Errorf("expected empty collection, got %d spells", len(spells))
	}
}

func TestWriteOutputDeterministicBytes(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, nil)

	output := record.Output{
		200: {21: "Regen"},
		100: {10: "Haste Boost", 2: "Shield"},
	}

	if err := store.WriteOutput("trinkets", output); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(root, "trinkets", "auras.json"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if err := store.WriteOutput("trinkets", output); err != nil {
		t.Fatalf("second WriteOutput failed: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(root, "trinkets", "auras.json"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("output bytes differ across identical writes:\n%s\nvs\n%s", first, second)
	}

	loaded, err := store.LoadOutput("trinkets")
	if err != nil {
		t.Fatalf("LoadOutput failed: %v", err)
	}
	if loaded.AuraCount() != 3 {
		t.Errorf("expected 3 auras after round trip, got %d", loaded.AuraCount())
	}
	if loaded[100][2] != "Shield" {
		t.Errorf("aura name mismatch: got %q", loaded[100][2])
	}
}

func TestStorePersistenceAcrossInstances(t *testing.T) {
	root := t.TempDir()

	store1 := NewStore(root, nil)
	if err := store1.SaveItems("relics", []record.Item{{ID: 7, Name: "Dusty Idol"}}); err != nil {
		t.Fatalf("SaveItems failed: %v", err)
	}

	store2 := NewStore(root, nil)
	items, err := store2.LoadItems("relics")
	if err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Dusty Idol" {
		t.Errorf("expected persisted item, got %v", items)
	}
}

func TestCategoriesListsSorted(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	for _, category := range []string{"trinkets", "relics", "rings"} {
		if err := store.SaveItems(category, nil); err != nil {
			t.Fatalf("SaveItems failed: %v", err)
		}
	}

	categories, err := store.Categories()
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	want := []string{"relics", "rings", "trinkets"}
	if len(categories) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(categories))
	}
	for i, category := range want {
		if categories[i] != category {
			t.Errorf("categories[%d] = %q, want %q", i, categories[i], category)
		}
	}
}

func TestCategoriesMissingRoot(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never-created"), nil)

	categories, err := store.Categories()
	if err != nil {
		t.Fatalf("Categories should not fail for missing root: %v", err)
	}
	if categories != nil {
		t.Errorf("expected nil categories, got %v", categories)
	}
}

func TestClearRemovesCategory(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, nil)

	if err := store.SaveItems("trinkets", []record.Item{{ID: 1, Name: "Chipped Fang"}}); err != nil {
		t.Fatalf("SaveItems failed: %v", err)
	}
	if err := store.Clear("trinkets"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "trinkets")); !os.IsNotExist(err) {
		t.Errorf("expected category directory removed, stat err = %v", err)
	}

	items, err := store.LoadItems("trinkets")
	if err != nil {
		t.Fatalf("LoadItems after clear failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty collection after clear, got %d items", len(items))
	}
}

func TestInvalidCategoryNames(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	for _, category := range []string{"", "  ", "..", "a/b", `a\b`} {
		if err := store.SaveItems(category, nil); err == nil {
			t.Errorf("SaveItems(%q) should fail", category)
		}
	}
}

func TestCorruptedCacheSurfacesError(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, nil)

	dir := filepath.Join(root, "trinkets")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "items.json"), []byte("not valid json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, err := store.LoadItems("trinkets"); err == nil {
		t.Error("expected error for corrupt cache file")
	}
}
