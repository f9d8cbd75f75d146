package resolve

import (
	"context"
	"sort"

	"auraforge/internal/logging"
	"auraforge/internal/record"
)

// CategoryResult summarizes one category's aggregation for the run ledger
// and CLI reporting.
type CategoryResult struct {
	Category      string
	Listed        int
	Items         int
	Spells        int
	ItemsFetched  int
	ItemFailures  int
	SpellsFetched int
	SpellFailures int
	WithAuras     int
	WithoutAuras  int
	AuraTotal     int
	Output        record.Output
}

// Aggregate runs the full flow for one category: reconcile the item cache
// against the listed ids, expand the spell graph, resolve each item's auras,
// and persist the resolved output artifact. Only persistence failures abort;
// everything else degrades to logged warnings.
func (e *Engine) Aggregate(ctx context.Context, category string, listed []int64, names *Names) (*CategoryResult, error) {
	if names == nil {
		names = NewNames()
	}

	cachedItems, err := e.store.LoadItems(category)
	if err != nil {
		return nil, err
	}
	itemUpdate, err := e.UpdateItems(ctx, category, listed, cachedItems, names)
	if err != nil {
		return nil, err
	}

	cachedSpells, err := e.store.LoadSpells(category)
	if err != nil {
		return nil, err
	}
	spellUpdate, err := e.UpdateSpells(ctx, category, itemUpdate.Items, cachedSpells, names)
	if err != nil {
		return nil, err
	}

	spells := spellIndex(spellUpdate.Spells)

	output := make(record.Output)
	considered := make(map[int64]struct{}, len(itemUpdate.Items))
	for _, item := range itemUpdate.Items {
		considered[item.ID] = struct{}{}
	}

	auraTotal := 0
	for _, item := range itemUpdate.Items {
		auras := make(record.AuraMap)
		for _, spellID := range item.Spells {
			visited := make(map[int64]struct{})
			e.resolveAuras(category, spellID, spells, visited, auras)
		}
		if len(auras) > 0 {
			output[item.ID] = auras
			auraTotal += len(auras)
			delete(considered, item.ID)
		}
	}

	reportAuraless(e, category, considered, names)

	if err := e.store.WriteOutput(category, output); err != nil {
		return nil, err
	}

	result := &CategoryResult{
		Category:      category,
		Listed:        len(listed),
		Items:         len(itemUpdate.Items),
		Spells:        len(spellUpdate.Spells),
		ItemsFetched:  itemUpdate.Fetched,
		ItemFailures:  itemUpdate.Failed,
		SpellsFetched: spellUpdate.Fetched,
		SpellFailures: spellUpdate.Failed,
		WithAuras:     len(output),
		WithoutAuras:  len(considered),
		AuraTotal:     auraTotal,
		Output:        output,
	}

	e.logger.Info("category resolved",
		logging.String(logging.FieldCategory, category),
		logging.Int("listed", result.Listed),
		logging.Int("items", result.Items),
		logging.Int("spells", result.Spells),
		logging.Int("items_with_auras", result.WithAuras),
		logging.Int("items_without_auras", result.WithoutAuras),
		logging.Int("auras", result.AuraTotal))

	return result, nil
}

// reportAuraless warns once per item left in the considered set, ascending by
// id so log output is stable.
func reportAuraless(e *Engine, category string, considered map[int64]struct{}, names *Names) {
	if len(considered) == 0 {
		return
	}
	ids := make([]int64, 0, len(considered))
	for id := range considered {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		name, _ := names.Item(id)
		logging.WarnWithContext(e.logger, "no auras found for item", "no_auras",
			logging.String(logging.FieldCategory, category),
			logging.String(logging.FieldKind, string(record.KindItem)),
			logging.Int64(logging.FieldRecordID, id),
			logging.String("item_name", name),
			logging.String(logging.FieldErrorHint, "item grants no aura-bearing spells or references failed to resolve"),
			logging.String(logging.FieldImpact, "item omitted from category output"))
	}
}
