package runlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"auraforge/internal/config"
)

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the run ledger database and brings its
// schema current.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.Runs.DatabasePath
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the ledger database location.
func (s *Store) Path() string {
	return s.path
}

// BeginRun inserts a new run in the running state.
func (s *Store) BeginRun(ctx context.Context, id string) (*Run, error) {
	if id == "" {
		return nil, errors.New("run id is required")
	}
	startedAt := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, started_at, status) VALUES (?, ?, ?)`,
		id,
		startedAt,
		RunStatusRunning,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return s.GetRun(ctx, id)
}

// FinishRun marks an existing run as finished and records its totals.
func (s *Store) FinishRun(ctx context.Context, id string, status RunStatus, errMessage string, totals RunTotals) error {
	if id == "" {
		return errors.New("run id is required")
	}
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE runs
         SET finished_at = ?, status = ?, error_message = ?,
             categories_total = ?, categories_failed = ?, items_fetched = ?, spells_fetched = ?
         WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		status,
		nullableString(errMessage),
		totals.Categories,
		totals.Failed,
		totals.ItemsFetched,
		totals.SpellsFetched,
		id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run: run %s not found", id)
	}
	return nil
}

// RecordCategory appends a per-category row to the ledger.
func (s *Store) RecordCategory(ctx context.Context, rec CategoryRecord) error {
	if rec.RunID == "" {
		return errors.New("run id is required")
	}
	if rec.Category == "" {
		return errors.New("category is required")
	}
	finishedAt := rec.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO run_categories (
            run_id, category, outcome, listed, items, spells,
            items_fetched, item_failures, spells_fetched, spell_failures,
            with_auras, without_auras, aura_total, error_message, finished_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Category,
		rec.Outcome,
		rec.Listed,
		rec.Items,
		rec.Spells,
		rec.ItemsFetched,
		rec.ItemFailures,
		rec.SpellsFetched,
		rec.SpellFailures,
		rec.WithAuras,
		rec.WithoutAuras,
		rec.AuraTotal,
		nullableString(rec.ErrorMessage),
		finishedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record category: %w", err)
	}
	return nil
}

// GetRun fetches a run by identifier.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// LastRun returns the most recently started run, or nil when the ledger is empty.
func (s *Store) LastRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY started_at DESC LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last run: %w", err)
	}
	return run, nil
}

// RecentRuns returns runs ordered newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CategoriesForRun returns a run's category rows in processing order.
func (s *Store) CategoriesForRun(ctx context.Context, runID string) ([]*CategoryRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+categoryColumns+` FROM run_categories WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list run categories: %w", err)
	}
	defer rows.Close()

	var records []*CategoryRecord
	for rows.Next() {
		rec, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Prune removes finished runs beyond the newest keep entries.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM runs
         WHERE status != ?
           AND id NOT IN (SELECT id FROM runs ORDER BY started_at DESC LIMIT ?)`,
		RunStatusRunning,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

const runColumns = "id, started_at, finished_at, status, error_message, categories_total, categories_failed, items_fetched, spells_fetched"

const categoryColumns = "run_id, category, outcome, listed, items, spells, items_fetched, item_failures, spells_fetched, spell_failures, with_auras, without_auras, aura_total, error_message, finished_at"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id               string
		startedRaw       string
		finishedRaw      sql.NullString
		statusStr        string
		errorMessage     sql.NullString
		categoriesTotal  int
		categoriesFailed int
		itemsFetched     int
		spellsFetched    int
	)

	if err := scanner.Scan(
		&id,
		&startedRaw,
		&finishedRaw,
		&statusStr,
		&errorMessage,
		&categoriesTotal,
		&categoriesFailed,
		&itemsFetched,
		&spellsFetched,
	); err != nil {
		return nil, err
	}

	run := &Run{
		ID:               id,
		Status:           RunStatus(statusStr),
		ErrorMessage:     errorMessage.String,
		CategoriesTotal:  categoriesTotal,
		CategoriesFailed: categoriesFailed,
		ItemsFetched:     itemsFetched,
		SpellsFetched:    spellsFetched,
	}
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return run, nil
}

func scanCategory(scanner interface{ Scan(dest ...any) error }) (*CategoryRecord, error) {
	var (
		rec          CategoryRecord
		outcomeStr   string
		errorMessage sql.NullString
		finishedRaw  string
	)

	if err := scanner.Scan(
		&rec.RunID,
		&rec.Category,
		&outcomeStr,
		&rec.Listed,
		&rec.Items,
		&rec.Spells,
		&rec.ItemsFetched,
		&rec.ItemFailures,
		&rec.SpellsFetched,
		&rec.SpellFailures,
		&rec.WithAuras,
		&rec.WithoutAuras,
		&rec.AuraTotal,
		&errorMessage,
		&finishedRaw,
	); err != nil {
		return nil, err
	}

	rec.Outcome = CategoryOutcome(outcomeStr)
	rec.ErrorMessage = errorMessage.String
	if finished, err := parseTimeString(finishedRaw); err == nil {
		rec.FinishedAt = finished
	}
	return &rec, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
