package resolve

// auraExclusions lists spell display names never emitted as aura entries,
// even when an effect flags them as aura-granting. Exact match only.
var auraExclusions = map[string]struct{}{
	"Food":      {},
	"Drink":     {},
	"Well Fed":  {},
	"First Aid": {},
}

func excluded(name string) bool {
	_, found := auraExclusions[name]
	return found
}
