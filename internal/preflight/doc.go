// Package preflight validates the runtime environment before a resolve
// run: directory permissions for the cache, output, and log paths, and
// reachability of the armory and listing services. Checks never mutate
// state; each returns a Result the status command renders.
package preflight
