package resolve

import (
	"log/slog"

	"auraforge/internal/armory"
	"auraforge/internal/catalog"
	"auraforge/internal/logging"
	"auraforge/internal/record"
)

// Engine drives cache reconciliation and aura resolution for one run. It is
// not safe for concurrent use; the pipeline drives it from a single goroutine.
type Engine struct {
	fetcher armory.Fetcher
	store   *catalog.Store
	logger  *slog.Logger
}

// NewEngine creates an engine over the given fetcher and record store.
func NewEngine(fetcher armory.Fetcher, store *catalog.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{
		fetcher: fetcher,
		store:   store,
		logger:  logging.NewComponentLogger(logger, "resolve"),
	}
}

// spellIndex builds an id-indexed lookup over a spell collection. Ordering
// only matters for persistence, not lookup.
func spellIndex(spells []record.Spell) map[int64]record.Spell {
	index := make(map[int64]record.Spell, len(spells))
	for _, spell := range spells {
		index[spell.ID] = spell
	}
	return index
}
