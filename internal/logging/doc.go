// Package logging configures slog output for auraforge and standardizes the
// structured fields components attach to their records.
//
// Two handler formats are supported: "console" renders compact
// timestamp/level/component lines with key=value attributes for interactive
// use, and "json" emits one JSON object per record for ingestion. Components
// obtain loggers through NewComponentLogger so every record carries the
// component field, and warnings go through WarnWithContext so operators
// always see an event type, a hint, and the impact.
package logging
