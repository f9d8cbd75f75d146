// Package pipeline drives one resolve run end to end: lock acquisition,
// ledger bookkeeping, and the per-category listing, resolve, and
// artifact steps. Categories are independent; a failure in one is
// recorded and the run moves on to the next.
package pipeline
