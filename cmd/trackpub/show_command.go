package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trackpub/internal/journal"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <entry-id>",
		Short: "Show one journal entry with its full component list",
		Args:  cobra.ExactArgs(1),
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

			entry, err := store.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, entry)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Entry:    %s\n", entry.ID)
			fmt.Fprintf(out, "Recorded: %s\n", entry.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Product:  %s (%s) v%03d\n", entry.ProductName, entry.ProductType, entry.Version)
			fmt.Fprintln(out)
			printComponents(out, entry.Components)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the entry as JSON")

	return cmd
}
