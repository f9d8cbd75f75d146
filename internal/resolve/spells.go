package resolve

import (
	"context"

	"auraforge/internal/logging"
	"auraforge/internal/record"
)

// SpellUpdate is the result of expanding one category's spell graph.
type SpellUpdate struct {
	// Spells is the full collection, cached plus newly discovered.
	Spells []record.Spell
	// IDSet mirrors exactly the ids present in Spells.
	IDSet map[int64]struct{}
	// Fetched counts records retrieved this run.
	Fetched int
	// Failed counts referenced ids whose fetch failed; anything reachable
	// only through them stays absent this run.
	Failed int
}

// spellExpansion carries the mutable traversal state through the recursion.
type spellExpansion struct {
	category string
	spells   []record.Spell
	idSet    map[int64]struct{}
	fetched  int
	failed   int
}

// UpdateSpells ensures every spell directly granted by an item, and every
// spell transitively reachable via affected-spell references, is present in
// the cache. Discovery is depth-first: effects in record order, granted
// spells in item order, items in collection order. When the collection grew
// it is sorted ascending by id and persisted; a persistence failure aborts
// the category.
func (e *Engine) UpdateSpells(ctx context.Context, category string, items []record.Item, cached []record.Spell, names *Names) (SpellUpdate, error) {
	exp := &spellExpansion{
		category: category,
		spells:   append(make([]record.Spell, 0, len(cached)), cached...),
		idSet:    record.SpellIDSet(cached),
	}

	for _, item := range items {
		for _, spellID := range item.Spells {
			e.ensureSpell(ctx, exp, spellID)
		}
	}

	if exp.fetched > 0 {
		record.SortSpells(exp.spells)
		if err := e.store.SaveSpells(category, exp.spells); err != nil {
			return SpellUpdate{}, err
		}
	}

	if names != nil {
		for _, spell := range exp.spells {
			names.RecordSpell(spell.ID, spell.Name)
		}
	}

	e.logger.Debug("spell graph expanded",
		logging.String(logging.FieldCategory, category),
		logging.Int("cached", len(cached)),
		logging.Int("fetched", exp.fetched),
		logging.Int("failed", exp.failed))

	return SpellUpdate{Spells: exp.spells, IDSet: exp.idSet, Fetched: exp.fetched, Failed: exp.failed}, nil
}

// ensureSpell fetches id unless already present, then expands its effect
// references depth-first. The id joins the id-set before any recursion; that
// ordering is what terminates reference cycles.
func (e *Engine) ensureSpell(ctx context.Context, exp *spellExpansion, id int64) {
	if _, known := exp.idSet[id]; known {
		return
	}

	spell, err := e.fetcher.FetchSpell(ctx, id)
	if err != nil {
		exp.failed++
		logging.WarnWithContext(e.logger, "spell fetch failed", "fetch_failed",
			logging.String(logging.FieldCategory, exp.category),
			logging.String(logging.FieldKind, string(record.KindSpell)),
			logging.Int64(logging.FieldRecordID, id),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "record unavailable this run, retried next run"),
			logging.String(logging.FieldImpact, "branch abandoned, spells reachable only through it stay absent"))
		return
	}

	exp.spells = append(exp.spells, spell)
	exp.idSet[id] = struct{}{}
	exp.fetched++

	for _, effect := range spell.Effects {
		if effect.AffectedSpell != 0 {
			e.ensureSpell(ctx, exp, effect.AffectedSpell)
		}
	}
}
