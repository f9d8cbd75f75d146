package testsupport

import (
	"context"
	"fmt"

	"auraforge/internal/armory"
	"auraforge/internal/record"
)

// FakeFetcher serves item and spell records from in-memory tables. Ids listed
// in FailItems/FailSpells, and ids absent from the tables, fail with
// armory.ErrUnavailable the way a real fetch would. Every fetch is appended
// to ItemFetches/SpellFetches so tests can assert order and count.
type FakeFetcher struct {
	Items      map[int64]record.Item
	Spells     map[int64]record.Spell
	FailItems  map[int64]bool
	FailSpells map[int64]bool

	ItemFetches  []int64
	SpellFetches []int64
}

var _ armory.Fetcher = (*FakeFetcher)(nil)

// NewFakeFetcher returns an empty fetcher ready for table population.
func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{
		Items:      make(map[int64]record.Item),
		Spells:     make(map[int64]record.Spell),
		FailItems:  make(map[int64]bool),
		FailSpells: make(map[int64]bool),
	}
}

// AddItem registers an item record.
func (f *FakeFetcher) AddItem(item record.Item) *FakeFetcher {
	f.Items[item.ID] = item
	return f
}

// AddSpell registers a spell record.
func (f *FakeFetcher) AddSpell(spell record.Spell) *FakeFetcher {
	f.Spells[spell.ID] = spell
	return f
}

// FetchItem implements armory.Fetcher.
func (f *FakeFetcher) FetchItem(_ context.Context, id int64) (record.Item, error) {
	f.ItemFetches = append(f.ItemFetches, id)
	if f.FailItems[id] {
		return record.Item{}, fmt.Errorf("%w: item %d: forced failure", armory.ErrUnavailable, id)
	}
	item, found := f.Items[id]
	if !found {
		return record.Item{}, fmt.Errorf("%w: item %d: no such record", armory.ErrUnavailable, id)
	}
	return item, nil
}

// FetchSpell implements armory.Fetcher.
func (f *FakeFetcher) FetchSpell(_ context.Context, id int64) (record.Spell, error) {
	f.SpellFetches = append(f.SpellFetches, id)
	if f.FailSpells[id] {
		return record.Spell{}, fmt.Errorf("%w: spell %d: forced failure", armory.ErrUnavailable, id)
	}
	spell, found := f.Spells[id]
	if !found {
		return record.Spell{}, fmt.Errorf("%w: spell %d: no such record", armory.ErrUnavailable, id)
	}
	return spell, nil
}
