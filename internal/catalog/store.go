package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"auraforge/internal/fileutil"
	"auraforge/internal/logging"
	"auraforge/internal/record"
)

const (
	itemsFile  = "items.json"
	spellsFile = "spells.json"
	aurasFile  = "auras.json"
)

// Store provides access to per-category record caches under a root directory.
type Store struct {
	root   string
	logger *slog.Logger
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// first save.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{
		root:   dir,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}
}

// Root returns the cache root directory.
func (s *Store) Root() string {
	return s.root
}

// LoadItems returns the cached item collection for a category, or an empty
// collection when the category has never been cached.
func (s *Store) LoadItems(category string) ([]record.Item, error) {
	var items []record.Item
	if err := s.load(category, itemsFile, &items); err != nil {
		return nil, err
	}
	s.logger.Debug("loaded item cache",
		logging.String(logging.FieldCategory, category),
		logging.Int("record_count", len(items)))
	return items, nil
}

// LoadSpells returns the cached spell collection for a category, or an empty
// collection when the category has never been cached.
func (s *Store) LoadSpells(category string) ([]record.Spell, error) {
	var spells []record.Spell
	if err := s.load(category, spellsFile, &spells); err != nil {
		return nil, err
	}
	s.logger.Debug("loaded spell cache",
		logging.String(logging.FieldCategory, category),
		logging.Int("record_count", len(spells)))
	return spells, nil
}

// SaveItems replaces a category's item cache. The collection is sorted
// ascending by id before writing.
func (s *Store) SaveItems(category string, items []record.Item) error {
	record.SortItems(items)
	if err := s.save(category, itemsFile, items); err != nil {
		return fmt.Errorf("save items for %q: %w", category, err)
	}
	s.logger.Debug("saved item cache",
		logging.String(logging.FieldCategory, category),
		logging.Int("record_count", len(items)))
	return nil
}

// SaveSpells replaces a category's spell cache. The collection is sorted
// ascending by id before writing.
func (s *Store) SaveSpells(category string, spells []record.Spell) error {
	record.SortSpells(spells)
	if err := s.save(category, spellsFile, spells); err != nil {
		return fmt.Errorf("save spells for %q: %w", category, err)
	}
	s.logger.Debug("saved spell cache",
		logging.String(logging.FieldCategory, category),
		logging.Int("record_count", len(spells)))
	return nil
}

// WriteOutput persists a category's resolved item-to-aura mapping, replacing
// any previous run's artifact.
func (s *Store) WriteOutput(category string, output record.Output) error {
	if err := s.save(category, aurasFile, output); err != nil {
		return fmt.Errorf("write output for %q: %w", category, err)
	}
	s.logger.Debug("wrote category output",
		logging.String(logging.FieldCategory, category),
		logging.Int("item_count", len(output)))
	return nil
}

// LoadOutput returns a category's persisted output, or an empty mapping when
// none has been written yet.
func (s *Store) LoadOutput(category string) (record.Output, error) {
	output := make(record.Output)
	if err := s.load(category, aurasFile, &output); err != nil {
		return nil, err
	}
	return output, nil
}

// Categories lists every category directory present under the cache root,
// sorted ascending.
func (s *Store) Categories() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache root: %w", err)
	}
	var categories []string
	for _, entry := range entries {
		if entry.IsDir() {
			categories = append(categories, entry.Name())
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// Clear removes a category's cache directory entirely.
func (s *Store) Clear(category string) error {
	dir, err := s.categoryDir(category)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear category %q: %w", category, err)
	}
	s.logger.Debug("cleared category cache", logging.String(logging.FieldCategory, category))
	return nil
}

func (s *Store) load(category, file string, target any) error {
	path, err := s.filePath(category, file)
	if err != nil {
		return err
	}
	data, err := fileutil.ReadIfExists(path)
	if err != nil {
		return fmt.Errorf("read %s for %q: %w", file, category, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse %s for %q: %w", file, category, err)
	}
	return nil
}

func (s *Store) save(category, file string, payload any) error {
	path, err := s.filePath(category, file)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", file, err)
	}
	data = append(data, '\n')

	return fileutil.WriteAtomic(path, data)
}

func (s *Store) filePath(category, file string) (string, error) {
	dir, err := s.categoryDir(category)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, file), nil
}

// categoryDir rejects names that would escape the cache root.
func (s *Store) categoryDir(category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "", errors.New("category cannot be empty")
	}
	if strings.ContainsAny(category, "/\\") || category == "." || category == ".." {
		return "", fmt.Errorf("invalid category name %q", category)
	}
	return filepath.Join(s.root, category), nil
}
