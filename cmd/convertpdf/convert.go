// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/forkcoder/mit-convertpdf/internal/convert"
	"github.com/forkcoder/mit-convertpdf/internal/journal"
	"github.com/forkcoder/mit-convertpdf/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert one or more documents to PDF",
	Long: `Convert runs each input document through LibreOffice in headless mode
and writes the resulting PDF. With no --output or --output-dir, each PDF
lands next to its input as <name>.pdf.

A failing input does not stop the batch: every input is attempted and the
failures are reported together at the end.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	if output != "" && len(args) > 1 {
		return fmt.Errorf("--output applies to a single input; use --output-dir for batches")
	}

	orch, err := convert.New(converterConfig(cmd))
	if err != nil {
		return err
	}

	store := openJournal(cmd)
	if store != nil {
		defer store.Close()
	}

	// The CLI drives conversions one at a time rather than through
	// ConvertAll so it can time and journal each attempt individually.
	var batch convert.BatchError
	var converted int
	for _, in := range args {
		dest := output
		if dest == "" && outputDir != "" {
			base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
			dest = filepath.Join(outputDir, base+".pdf")
		}

		start := time.Now()
		out, convErr := orch.ConvertToPDF(in, dest)
		recordConversion(store, in, out, convErr, time.Since(start))

		if convErr != nil {
			fmt.Fprintf(os.Stdout, "failed:  %s (%v)\n", in, convErr)
			batch.Failures = append(batch.Failures, convert.BatchFailure{Input: in, Err: convErr})
			continue
		}
		fmt.Fprintf(os.Stdout, "converted: %s -> %s\n", in, out)
		converted++
	}

	if len(args) > 1 {
		fmt.Fprintf(os.Stdout, "\n%d converted, %d failed\n", converted, len(batch.Failures))
	}
	if len(batch.Failures) > 0 {
		return &batch
	}
	return nil
}

// openJournal opens the conversion journal, or returns nil when journaling
// is disabled or unavailable. Journal problems never block a conversion.
func openJournal(cmd *cobra.Command) *journal.Store {
	cfg := journalConfig(cmd)
	if cfg.Disabled {
		return nil
	}
	store, err := journal.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: journal unavailable: %v\n", err)
		return nil
	}
	return store
}

func recordConversion(store *journal.Store, input, output string, convErr error, elapsed time.Duration) {
	if store == nil {
		return
	}
	rec := types.ConversionRecord{
		Input:     input,
		Output:    output,
		Status:    types.ConversionDone,
		Duration:  elapsed,
		CreatedAt: time.Now().UTC(),
	}
	if convErr != nil {
		rec.Status = types.ConversionFailed
		rec.Detail = convErr.Error()
	}
	if err := store.Append(rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not journal conversion: %v\n", err)
	}
}

func init() {
	convertCmd.Flags().String("output", "", "explicit output path (single input only)")
	convertCmd.Flags().String("output-dir", "", "directory for converted PDFs")
	convertCmd.Flags().String("journal-dir", "", "directory for the conversion journal (default: ~/.convertpdf)")
	convertCmd.Flags().Bool("no-journal", false, "do not record conversions in the journal")

	rootCmd.AddCommand(convertCmd)
}
