package resolve

// Names is the per-run display-name index for items and spells. The
// orchestrator owns one instance per run and discards it at run end. Ids are
// recorded once; later writes for the same id are ignored.
type Names struct {
	items  map[int64]string
	spells map[int64]string
}

// NewNames returns an empty name index.
func NewNames() *Names {
	return &Names{
		items:  make(map[int64]string),
		spells: make(map[int64]string),
	}
}

// RecordItem stores an item display name unless the id was already recorded.
func (n *Names) RecordItem(id int64, name string) {
	if _, exists := n.items[id]; !exists {
		n.items[id] = name
	}
}

// RecordSpell stores a spell display name unless the id was already recorded.
func (n *Names) RecordSpell(id int64, name string) {
	if _, exists := n.spells[id]; !exists {
		n.spells[id] = name
	}
}

// Item returns the recorded display name for an item id.
func (n *Names) Item(id int64) (string, bool) {
	name, found := n.items[id]
	return name, found
}

// Spell returns the recorded display name for a spell id.
func (n *Names) Spell(id int64) (string, bool) {
	name, found := n.spells[id]
	return name, found
}
