// Package catalog persists category record caches and resolved outputs.
//
// Each category owns one directory under the cache root holding items.json,
// spells.json, and auras.json. Collections are stored sorted ascending by id
// and written atomically (temp file + rename) so a crashed run never leaves a
// torn cache behind. Loading a category that was never cached yields an empty
// collection, not an error; every other failure propagates so callers can
// abort the category whose cache can no longer be reconciled durably.
package catalog
