package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"auraforge/internal/catalog"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Record cache utilities",
	}

	cacheCmd.AddCommand(newCacheStatusCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show cached record counts per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store := catalog.NewStore(cfg.Paths.CacheDir, nil)

			categories, err := store.Categories()
			if err != nil {
				return fmt.Errorf("list cache categories: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(categories) == 0 {
				fmt.Fprintln(out, "Cache is empty")
				return nil
			}

			tbl := newSummaryTable(
				textColumn("CATEGORY"),
				numericColumn("ITEMS"),
				numericColumn("SPELLS"),
				numericColumn("WITH AURAS"),
				numericColumn("AURAS"),
			)
			for _, category := range categories {
				items, err := store.LoadItems(category)
				if err != nil {
					return err
				}
				spells, err := store.LoadSpells(category)
				if err != nil {
					return err
				}
				output, err := store.LoadOutput(category)
				if err != nil {
					return err
				}
				tbl.addRow(category, len(items), len(spells), len(output), output.AuraCount())
			}
			fmt.Fprintln(out, tbl.render())
			fmt.Fprintf(out, "Cache root: %s\n", store.Root())
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear [category...]",
		Short: "Remove cached records for all categories or a subset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to clear the cache without --force; cleared records are re-fetched on the next run")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store := catalog.NewStore(cfg.Paths.CacheDir, nil)

			targets := args
			if len(targets) == 0 {
				targets, err = store.Categories()
				if err != nil {
					return fmt.Errorf("list cache categories: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			if len(targets) == 0 {
				fmt.Fprintln(out, "Cache is already empty")
				return nil
			}

			for _, category := range targets {
				if err := store.Clear(category); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "Cleared %d categories\n", len(targets))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Actually remove the cached records")
	return cmd
}
