// Package runlog persists the history of resolve runs in SQLite.
//
// Each pipeline invocation becomes one row in the runs table, with a
// child row per processed category recording listing size, fetch
// counters, and aura totals. The ledger backs the runs and status
// commands and survives across invocations, so failures in one run
// remain visible after later successful runs.
package runlog
