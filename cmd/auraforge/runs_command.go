package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"auraforge/internal/runlog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent resolve runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := ctx.openLedger()
			if err != nil {
				return fmt.Errorf("open run ledger: %w", err)
			}
			defer ledger.Close()

			runs, err := ledger.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			tbl := newSummaryTable(
				textColumn("RUN"),
				textColumn("STARTED"),
				numericColumn("DURATION"),
				textColumn("STATUS"),
				numericColumn("CATEGORIES"),
				numericColumn("FAILED"),
				numericColumn("ITEMS"),
				numericColumn("SPELLS"),
				textColumn("MESSAGE"),
			)
			for _, run := range runs {
				tbl.addRow(
					shortID(run.ID),
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					formatRunDuration(run),
					string(run.Status),
					run.CategoriesTotal,
					run.CategoriesFailed,
					run.ItemsFetched,
					run.SpellsFetched,
					run.ErrorMessage,
				)
			}
			fmt.Fprintln(out, tbl.render())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of runs to display")
	cmd.AddCommand(newRunsShowCommand(ctx))
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run's per-category breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := ctx.openLedger()
			if err != nil {
				return fmt.Errorf("open run ledger: %w", err)
			}
			defer ledger.Close()

			run, err := findRun(cmd, ledger, args[0])
			if err != nil {
				return err
			}
			return printRunSummary(cmd, ledger, run)
		},
	}
}

// findRun resolves a full or unambiguous short run id against the ledger.
func findRun(cmd *cobra.Command, ledger *runlog.Store, id string) (*runlog.Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("run id is required")
	}

	run, err := ledger.GetRun(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("look up run: %w", err)
	}
	if run != nil {
		return run, nil
	}

	recent, err := ledger.RecentRuns(cmd.Context(), 100)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	var matches []*runlog.Run
	for _, candidate := range recent {
		if strings.HasPrefix(candidate.ID, id) {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no run matches %q", id)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("run id %q is ambiguous (%d matches)", id, len(matches))
	}
}
