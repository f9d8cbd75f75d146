// Package genlua renders category outputs as Lua data files for the
// downstream addon. Artifacts are deterministic: entries are ordered by
// id and the header carries only input-derived text, so unchanged
// sources produce byte-identical files.
package genlua
