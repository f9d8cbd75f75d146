package record

import (
	"fmt"
	"sort"
)

// Kind identifies which remote catalog a record belongs to.
type Kind string

const (
	// KindItem marks records served by the item service.
	KindItem Kind = "item"
	// KindSpell marks records served by the spell service.
	KindSpell Kind = "spell"
)

// Valid reports whether the kind is one of the two known catalogs.
func (k Kind) Valid() bool {
	return k == KindItem || k == KindSpell
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a wire string into a Kind.
func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case KindItem:
		return KindItem, nil
	case KindSpell:
		return KindSpell, nil
	default:
		return "", fmt.Errorf("unknown record kind %q", value)
	}
}

// Item is a snapshot of one item record: its display name and the ordered
// spell references the item grants.
type Item struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Spells []int64 `json:"spells,omitempty"`
}

// Effect is one unit of behavior attached to a spell. An effect may grant an
// aura, chain into another spell, or both. AffectedSpell of zero means the
// effect references no other spell.
type Effect struct {
	GrantsAura    bool  `json:"grants_aura"`
	AffectedSpell int64 `json:"affected_spell,omitempty"`
}

// Spell is a snapshot of one spell record with its ordered effects.
type Spell struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Effects []Effect `json:"effects,omitempty"`
}

// SortItems orders a collection ascending by id in place. Collections are
// normalized this way before every persistence write.
func SortItems(items []Item) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}

// SortSpells orders a collection ascending by id in place.
func SortSpells(spells []Spell) {
	sort.Slice(spells, func(i, j int) bool { return spells[i].ID < spells[j].ID })
}

// ItemIDSet derives the membership set for a cached item collection.
func ItemIDSet(items []Item) map[int64]struct{} {
	set := make(map[int64]struct{}, len(items))
	for _, it := range items {
		set[it.ID] = struct{}{}
	}
	return set
}

// SpellIDSet derives the membership set for a cached spell collection.
func SpellIDSet(spells []Spell) map[int64]struct{} {
	set := make(map[int64]struct{}, len(spells))
	for _, sp := range spells {
		set[sp.ID] = struct{}{}
	}
	return set
}
