package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"trackpub/internal/assemble"
	"trackpub/internal/journal"
	"trackpub/internal/publish"
)

func newAssembleCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var noJournal bool

	cmd := &cobra.Command{
		Use:   "assemble <instance.json>",
		Short: "Assemble the component list for a publish instance manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			manifestPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve manifest path: %w", err)
			}
			instance, err := publish.LoadInstance(manifestPath)
			if err != nil {
				return fmt.Errorf("load instance: %w", err)
			}

			assembler := assemble.New(cfg, logger)
			components, err := assembler.Assemble(cmd.Context(), instance)
			if err != nil {
				return err
			}

			if !noJournal {
				store, err := journal.Open(cfg)
				if err != nil {
					return fmt.Errorf("open journal: %w", err)
				}
				entry, recordErr := store.Record(cmd.Context(), instance, components)
				closeErr := store.Close()
				if recordErr != nil {
					return fmt.Errorf("record publish: %w", recordErr)
				}
				if closeErr != nil {
					return fmt.Errorf("close journal: %w", closeErr)
				}
				logger.Info("recorded publish",
					"entry_id", entry.ID,
					"product", entry.ProductName,
					"components", entry.ComponentCount)
			}

			if jsonOut {
				return writeJSON(cmd, components)
			}

			out := cmd.OutOrStdout()
			if len(components) == 0 {
				fmt.Fprintln(out, "No components to publish.")
				return nil
			}
			printComponents(out, components)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the component list as JSON")
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, "Skip recording the run in the publish journal")

	return cmd
}

func printComponents(out io.Writer, components []publish.ComponentItem) {
	if !isTerminal(out) {
		for _, item := range components {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\n",
				item.Component.Name, item.Asset.Name, item.LocationName, item.ComponentPath)
		}
		return
	}

	rows := make([][]string, 0, len(components))
	for i, item := range components {
		thumb := ""
		if item.Thumbnail {
			thumb = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			item.Component.Name,
			item.Asset.Name,
			fmt.Sprintf("v%03d", item.AssetVersion.Version),
			item.LocationName,
			thumb,
			item.ComponentPath,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Component", "Asset", "Version", "Location", "Thumb", "Path"},
		rows,
		[]columnAlignment{alignRight},
	))
}
