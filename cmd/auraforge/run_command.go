package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"auraforge/internal/config"
	"auraforge/internal/logging"
	"auraforge/internal/pipeline"
	"auraforge/internal/runlog"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var cacheDir string
	var outputDir string
	var logLevel string

	cmd := &cobra.Command{
		Use:   "run [category...]",
		Short: "Resolve item auras for all categories or a subset",
		Long: "Fetches the current item listings, reconciles the record caches, resolves " +
			"item auras, and writes the category outputs and Lua artifacts. " +
			"Known categories: " + pipeline.KnownCategoryNames() + ".",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := pipeline.SelectCategories(args)
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyRunOverrides(cfg, cacheDir, outputDir, logLevel); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			ledger, err := ctx.openLedger()
			if err != nil {
				return fmt.Errorf("open run ledger: %w", err)
			}
			defer ledger.Close()

			fetcher, err := ctx.newFetcher()
			if err != nil {
				return fmt.Errorf("initialize armory client: %w", err)
			}
			source, err := ctx.newListingSource()
			if err != nil {
				return fmt.Errorf("initialize listing source: %w", err)
			}

			p, err := pipeline.New(cfg, source, fetcher, ledger, logger)
			if err != nil {
				return err
			}

			run, err := p.Run(cmd.Context(), categories)
			if err != nil {
				if errors.Is(err, pipeline.ErrLocked) {
					return fmt.Errorf("%w (lock: %s)", err, p.LockPath())
				}
				return err
			}

			return printRunSummary(cmd, ledger, run)
		},
	}

	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Override the record cache directory")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Override the artifact output directory")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Override the log level (debug, info, warn, error)")
	return cmd
}

func applyRunOverrides(cfg *config.Config, cacheDir, outputDir, logLevel string) error {
	if cacheDir != "" {
		expanded, err := config.ExpandPath(cacheDir)
		if err != nil {
			return fmt.Errorf("resolve cache dir: %w", err)
		}
		cfg.Paths.CacheDir = expanded
	}
	if outputDir != "" {
		expanded, err := config.ExpandPath(outputDir)
		if err != nil {
			return fmt.Errorf("resolve output dir: %w", err)
		}
		cfg.Paths.OutputDir = expanded
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg.EnsureDirectories()
}

func printRunSummary(cmd *cobra.Command, ledger *runlog.Store, run *runlog.Run) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Run %s %s in %s\n", shortID(run.ID), run.Status, formatRunDuration(run))
	if run.ErrorMessage != "" {
		fmt.Fprintf(out, "  %s\n", run.ErrorMessage)
	}

	rows, err := ledger.CategoriesForRun(cmd.Context(), run.ID)
	if err != nil {
		return fmt.Errorf("load run categories: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	tbl := newSummaryTable(
		textColumn("CATEGORY"),
		numericColumn("LISTED"),
		numericColumn("ITEMS"),
		numericColumn("SPELLS"),
		numericColumn("FETCHED"),
		numericColumn("FAILURES"),
		numericColumn("WITH AURAS"),
		numericColumn("AURAS"),
		textColumn("OUTCOME"),
	)
	for _, rec := range rows {
		outcome := string(rec.Outcome)
		if rec.Outcome == runlog.CategoryFailed && rec.ErrorMessage != "" {
			outcome = fmt.Sprintf("failed: %s", rec.ErrorMessage)
		}
		tbl.addRow(
			rec.Category,
			rec.Listed,
			rec.Items,
			rec.Spells,
			rec.ItemsFetched+rec.SpellsFetched,
			rec.ItemFailures+rec.SpellFailures,
			rec.WithAuras,
			rec.AuraTotal,
			outcome,
		)
	}
	fmt.Fprintln(out, tbl.render())
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatRunDuration(run *runlog.Run) string {
	if run == nil || run.FinishedAt == nil || run.StartedAt.IsZero() {
		return "?"
	}
	return run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
}
