// Package resolve implements the incremental cache-and-resolve engine. Per
// category it reconciles the item cache against the listed ids, expands the
// spell reference graph depth-first, derives each item's aura mapping, and
// persists the resolved output.
//
// All work is sequential and fully ordered: one item at a time, one fetch at
// a time. A fetch failure is soft and scoped to its one id; the id stays
// absent from the cache and is retried on the next run. Persistence failures
// abort the current category because the in-memory cache can no longer be
// reconciled durably.
//
// The expander's id-set and the resolver's visited set serve different
// purposes and are never conflated: the id-set prevents redundant fetches
// across the whole run, the visited set breaks reference cycles within one
// resolution call tree.
package resolve
