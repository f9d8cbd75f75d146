package runlog

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var ledgerSchema string

// schemaRevisions holds one DDL batch per ledger schema version, applied in
// order. A database at user_version N has revisions [0, N) applied.
var schemaRevisions = []string{ledgerSchema}

// ensureSchema brings the database up to the current ledger schema. The
// applied version lives in SQLite's user_version header field, so a fresh
// file reads as version zero.
func (s *Store) ensureSchema(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read ledger schema version: %w", err)
	}
	if version > len(schemaRevisions) {
		return fmt.Errorf("ledger schema version %d is newer than this build supports (%d)", version, len(schemaRevisions))
	}

	for rev := version; rev < len(schemaRevisions); rev++ {
		if err := s.applyRevision(ctx, rev); err != nil {
			return err
		}
	}
	return nil
}

// applyRevision runs one schema batch and stamps the new version in the
// same transaction.
func (s *Store) applyRevision(ctx context.Context, rev int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, schemaRevisions[rev]); err != nil {
		return fmt.Errorf("apply ledger schema revision %d: %w", rev+1, err)
	}
	// PRAGMA does not take placeholders.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", rev+1)); err != nil {
		return fmt.Errorf("stamp ledger schema revision %d: %w", rev+1, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger schema revision %d: %w", rev+1, err)
	}
	return nil
}
