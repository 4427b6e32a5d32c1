package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"trackpub/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent publish journal entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := journal.Open(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list journal: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Journal is empty.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.ID,
					entry.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					entry.ProductName,
					entry.ProductType,
					fmt.Sprintf("v%03d", entry.Version),
					strconv.Itoa(entry.ComponentCount),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Recorded", "Product", "Type", "Version", "Components"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit journal entries as JSON")

	return cmd
}
