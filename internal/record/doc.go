// Package record defines the item and spell records exchanged with the
// remote armory services and the resolved aura structures derived from them.
//
// Records are snapshots of remote truth at fetch time and are never mutated
// after construction. Ids are unique per category per kind only; callers must
// keep caches category-scoped.
//
// AuraMap and Output stay associative containers throughout the pipeline and
// convert to their serialization-friendly shape (string keys in ascending
// numeric order) only when marshalled at the persistence boundary, so a
// category's artifact bytes are stable across runs with unchanged inputs.
package record
