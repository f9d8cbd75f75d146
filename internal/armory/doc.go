// Package armory retrieves item and spell records from the record service.
//
// The resolve engine consumes it through the narrow Fetcher contract and
// treats every failure the same way: the id is unavailable this run. All
// transport, status, and decode failures wrap ErrUnavailable so callers can
// classify without inspecting causes.
package armory
