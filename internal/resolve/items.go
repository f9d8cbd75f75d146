package resolve

import (
	"context"

	"auraforge/internal/logging"
	"auraforge/internal/record"
)

// ItemUpdate is the result of reconciling one category's item cache.
type ItemUpdate struct {
	// Items is the full collection, cached plus newly fetched.
	Items []record.Item
	// IDSet mirrors exactly the ids present in Items.
	IDSet map[int64]struct{}
	// Fetched counts records retrieved this run.
	Fetched int
	// Failed counts listed ids whose fetch failed; they stay absent from the
	// cache and are retried next run.
	Failed int
}

// UpdateItems reconciles a category's listed item ids against the cached
// collection, fetching every listed id not yet present. Per-id fetch failures
// are logged and skipped, never aborting the batch. When the collection grew
// it is sorted ascending by id and persisted; a persistence failure aborts
// the category.
func (e *Engine) UpdateItems(ctx context.Context, category string, listed []int64, cached []record.Item, names *Names) (ItemUpdate, error) {
	update := ItemUpdate{
		Items: append(make([]record.Item, 0, len(cached)), cached...),
		IDSet: record.ItemIDSet(cached),
	}

	for _, id := range listed {
		if _, known := update.IDSet[id]; known {
			continue
		}
		item, err := e.fetcher.FetchItem(ctx, id)
		if err != nil {
			update.Failed++
			logging.WarnWithContext(e.logger, "item fetch failed", "fetch_failed",
				logging.String(logging.FieldCategory, category),
				logging.String(logging.FieldKind, string(record.KindItem)),
				logging.Int64(logging.FieldRecordID, id),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "record unavailable this run, retried next run"),
				logging.String(logging.FieldImpact, "item absent from cache and output"))
			continue
		}
		update.Items = append(update.Items, item)
		update.IDSet[id] = struct{}{}
		update.Fetched++
	}

	if update.Fetched > 0 {
		record.SortItems(update.Items)
		if err := e.store.SaveItems(category, update.Items); err != nil {
			return ItemUpdate{}, err
		}
	}

	if names != nil {
		for _, item := range update.Items {
			names.RecordItem(item.ID, item.Name)
		}
	}

	e.logger.Debug("item cache reconciled",
		logging.String(logging.FieldCategory, category),
		logging.Int("listed", len(listed)),
		logging.Int("cached", len(cached)),
		logging.Int("fetched", update.Fetched),
		logging.Int("failed", update.Failed))

	return update, nil
}
