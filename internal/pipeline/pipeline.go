package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"auraforge/internal/armory"
	"auraforge/internal/catalog"
	"auraforge/internal/config"
	"auraforge/internal/genlua"
	"auraforge/internal/listing"
	"auraforge/internal/logging"
	"auraforge/internal/resolve"
	"auraforge/internal/runlog"
)

// ErrLocked reports that another process holds the run lock.
var ErrLocked = errors.New("another auraforge run is already in progress")

// ListingSource produces the current item ids for a listing page.
type ListingSource interface {
	Fetch(ctx context.Context, path string) (listing.Listing, error)
}

// Pipeline executes full resolve runs and enforces single-instance execution.
type Pipeline struct {
	cfg    *config.Config
	source ListingSource
	engine *resolve.Engine
	store  *catalog.Store
	gen    *genlua.Generator
	ledger *runlog.Store
	logger *slog.Logger

	lockPath string
	lock     *flock.Flock
}

// New constructs a pipeline with initialized dependencies.
func New(cfg *config.Config, source ListingSource, fetcher armory.Fetcher, ledger *runlog.Store, logger *slog.Logger) (*Pipeline, error) {
	if cfg == nil || source == nil || fetcher == nil || ledger == nil {
		return nil, errors.New("pipeline requires config, listing source, fetcher, and ledger")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	store := catalog.NewStore(cfg.Paths.CacheDir, logger)
	lockPath := filepath.Join(cfg.Paths.CacheDir, "auraforge.lock")
	return &Pipeline{
		cfg:      cfg,
		source:   source,
		engine:   resolve.NewEngine(fetcher, store, logger),
		store:    store,
		gen:      genlua.New(cfg.Paths.OutputDir, logger),
		ledger:   ledger,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// LockPath returns the run lock location.
func (p *Pipeline) LockPath() string {
	return p.lockPath
}

// Store returns the catalog store backing this pipeline.
func (p *Pipeline) Store() *catalog.Store {
	return p.store
}

// Run processes the given categories in order and returns the finished
// ledger row. An empty category slice means the full compiled-in list.
// Category failures do not fail the run; they are recorded per category
// and summarized on the run row.
func (p *Pipeline) Run(ctx context.Context, categories []Category) (*runlog.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	if err := p.cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	ok, err := p.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	defer func() {
		if unlockErr := p.lock.Unlock(); unlockErr != nil {
			p.logger.Warn("failed to release run lock",
				logging.Error(unlockErr),
				logging.String("lock", p.lockPath))
		}
	}()

	runID := uuid.NewString()
	if _, err := p.ledger.BeginRun(ctx, runID); err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}

	started := time.Now()
	p.logger.Info("run started",
		logging.String(logging.FieldRunID, runID),
		logging.Int("categories", len(categories)))

	names := resolve.NewNames()
	var totals runlog.RunTotals
	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			p.finishRun(runID, runlog.RunStatusFailed, err.Error(), totals)
			return nil, fmt.Errorf("run %s interrupted: %w", runID, err)
		}

		rec := p.processCategory(ctx, runID, category, names)
		totals.Categories++
		totals.ItemsFetched += rec.ItemsFetched
		totals.SpellsFetched += rec.SpellsFetched
		if rec.Outcome == runlog.CategoryFailed {
			totals.Failed++
		}
		if err := p.ledger.RecordCategory(ctx, rec); err != nil {
			logging.ErrorWithContext(p.logger, "failed to record category in ledger", "ledger_write_failed",
				logging.String(logging.FieldRunID, runID),
				logging.String(logging.FieldCategory, category.Name),
				logging.Error(err))
		}
	}

	status := runlog.RunStatusCompleted
	var runMessage string
	if totals.Failed > 0 {
		runMessage = fmt.Sprintf("%d of %d categories failed", totals.Failed, totals.Categories)
	}
	p.finishRun(runID, status, runMessage, totals)

	p.logger.Info("run finished",
		logging.String(logging.FieldRunID, runID),
		logging.Duration("duration", time.Since(started)),
		logging.Int("categories", totals.Categories),
		logging.Int("failed", totals.Failed),
		logging.Int("items_fetched", totals.ItemsFetched),
		logging.Int("spells_fetched", totals.SpellsFetched))

	return p.ledger.GetRun(context.Background(), runID)
}

// finishRun closes the ledger row with a background context so the row
// is written even when the run context is already cancelled.
func (p *Pipeline) finishRun(runID string, status runlog.RunStatus, message string, totals runlog.RunTotals) {
	if err := p.ledger.FinishRun(context.Background(), runID, status, message, totals); err != nil {
		logging.ErrorWithContext(p.logger, "failed to finalize run in ledger", "ledger_write_failed",
			logging.String(logging.FieldRunID, runID),
			logging.Error(err))
	}
}

func (p *Pipeline) processCategory(ctx context.Context, runID string, category Category, names *resolve.Names) runlog.CategoryRecord {
	rec := runlog.CategoryRecord{
		RunID:    runID,
		Category: category.Name,
		Outcome:  runlog.CategoryResolved,
	}

	page, err := p.source.Fetch(ctx, category.ListingPath)
	if err != nil {
		logging.ErrorWithContext(p.logger, "listing fetch failed", "listing_failed",
			logging.String(logging.FieldCategory, category.Name),
			logging.String("listing_path", category.ListingPath),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check listing base URL and network reachability"),
			logging.String(logging.FieldImpact, "category skipped this run"))
		rec.Outcome = runlog.CategoryFailed
		rec.ErrorMessage = fmt.Sprintf("listing: %v", err)
		return rec
	}
	rec.Listed = len(page.IDs)

	result, err := p.engine.Aggregate(ctx, category.Name, page.IDs, names)
	if err != nil {
		logging.ErrorWithContext(p.logger, "category aborted", "category_aborted",
			logging.String(logging.FieldCategory, category.Name),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "cache directory may be unwritable or corrupted"),
			logging.String(logging.FieldImpact, "category output unchanged this run"))
		rec.Outcome = runlog.CategoryFailed
		rec.ErrorMessage = err.Error()
		return rec
	}

	rec.Items = result.Items
	rec.Spells = result.Spells
	rec.ItemsFetched = result.ItemsFetched
	rec.ItemFailures = result.ItemFailures
	rec.SpellsFetched = result.SpellsFetched
	rec.SpellFailures = result.SpellFailures
	rec.WithAuras = result.WithAuras
	rec.WithoutAuras = result.WithoutAuras
	rec.AuraTotal = result.AuraTotal

	if _, err := p.gen.Write(category.Name, page.Stamp, result.Output, names); err != nil {
		logging.ErrorWithContext(p.logger, "artifact generation failed", "artifact_failed",
			logging.String(logging.FieldCategory, category.Name),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check output directory permissions"),
			logging.String(logging.FieldImpact, "category artifact stale this run"))
		rec.Outcome = runlog.CategoryFailed
		rec.ErrorMessage = fmt.Sprintf("artifact: %v", err)
		return rec
	}

	return rec
}
