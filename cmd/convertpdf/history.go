// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/forkcoder/mit-convertpdf/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past conversions recorded in the journal",
	Long: `History lists recent conversion attempts from the local journal,
newest first. Use the export subcommand to dump the journal as YAML or
JSON.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := journal.Open(journalConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return store.ExportJSON(os.Stdout, limit)
	}

	recs, err := store.List(limit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-7s  %-40s  %s\n", "When", "Status", "Input", "Output / Detail")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, r := range recs {
		result := r.Output
		if r.Detail != "" {
			result = r.Detail
		}
		input := r.Input
		if len(input) > 40 {
			input = "..." + input[len(input)-37:]
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-7s  %-40s  %s\n",
			r.CreatedAt.Local().Format(time.DateTime), r.Status, input, result)
	}
	fmt.Fprintf(os.Stdout, "\n%d record(s)\n", len(recs))
	return nil
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the conversion journal to YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := journal.Open(journalConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		switch format {
		case "yaml", "":
			return store.ExportYAML(os.Stdout, limit)
		case "json":
			return store.ExportJSON(os.Stdout, limit)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
	},
}

func init() {
	historyCmd.PersistentFlags().String("journal-dir", "", "directory for the conversion journal (default: ~/.convertpdf)")
	historyCmd.PersistentFlags().Int("limit", 20, "maximum records to show (0 = all)")
	historyCmd.Flags().Bool("json", false, "output records as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
