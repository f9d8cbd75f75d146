package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"auraforge/internal/preflight"
	"auraforge/internal/runlog"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check environment readiness and the last run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			printer := newStatusPrinter(cmd.OutOrStdout())

			printer.section("Preflight")
			failures := 0
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				printer.check(result.Name, result.Passed, result.Detail)
				if !result.Passed {
					failures++
				}
			}
			printer.blank()

			printer.section("Last run")
			if err := printLastRun(cmd, ctx, printer); err != nil {
				return err
			}

			if failures > 0 {
				printer.blank()
				fmt.Fprintf(cmd.OutOrStdout(), "%d preflight checks need attention\n", failures)
			}
			return nil
		},
	}
}

func printLastRun(cmd *cobra.Command, ctx *commandContext, printer *statusPrinter) error {
	ledger, err := ctx.openLedger()
	if err != nil {
		return fmt.Errorf("open run ledger: %w", err)
	}
	defer ledger.Close()

	last, err := ledger.LastRun(cmd.Context())
	if err != nil {
		return fmt.Errorf("query last run: %w", err)
	}
	if last == nil {
		printer.info("Ledger", "no runs recorded yet")
		return nil
	}

	message := fmt.Sprintf("%s %s ago", last.Status, formatAge(time.Since(last.StartedAt)))
	if last.CategoriesTotal > 0 {
		message += fmt.Sprintf(" (%d categories, %d failed)", last.CategoriesTotal, last.CategoriesFailed)
	}
	if last.ErrorMessage != "" {
		message += ": " + last.ErrorMessage
	}

	label := "Run " + shortID(last.ID)
	switch last.Status {
	case runlog.RunStatusFailed:
		printer.fail(label, message)
	case runlog.RunStatusRunning:
		printer.info(label, message)
	default:
		printer.ok(label, message)
	}
	return nil
}

func formatAge(age time.Duration) string {
	switch {
	case age < time.Minute:
		return fmt.Sprintf("%ds", int(age.Seconds()))
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd", int(age.Hours()/24))
	}
}
