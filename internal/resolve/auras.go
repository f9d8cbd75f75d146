package resolve

import (
	"auraforge/internal/logging"
	"auraforge/internal/record"
)

// resolveAuras walks the effect graph rooted at rootID and accumulates every
// discovered aura into out, keyed by the containing spell's id. The visited
// set is shared across the whole call tree and never reset per branch; out is
// shared across all roots of one item so the item's aura map is the union of
// resolving every spell it grants.
//
// Returns false without touching out when rootID was already visited, which
// both breaks cycles and deliberately contributes nothing for the repeated
// path. Callers treat false exactly like an empty contribution.
func (e *Engine) resolveAuras(category string, rootID int64, spells map[int64]record.Spell, visited map[int64]struct{}, out record.AuraMap) bool {
	if _, seen := visited[rootID]; seen {
		return false
	}

	spell, found := spells[rootID]
	if !found {
		logging.WarnWithContext(e.logger, "referenced spell missing from cache", "missing_reference",
			logging.String(logging.FieldCategory, category),
			logging.String(logging.FieldKind, string(record.KindSpell)),
			logging.Int64(logging.FieldRecordID, rootID),
			logging.String(logging.FieldErrorHint, "id referenced by an effect but never fetched"),
			logging.String(logging.FieldImpact, "branch skipped"))
		return true
	}

	visited[rootID] = struct{}{}

	for _, effect := range spell.Effects {
		if effect.GrantsAura && !excluded(spell.Name) {
			// The containing spell is itself the aura entry.
			out[spell.ID] = spell.Name
		}
		if effect.AffectedSpell != 0 {
			e.resolveAuras(category, effect.AffectedSpell, spells, visited, out)
		}
	}

	return true
}
