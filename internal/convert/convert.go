// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert orchestrates document-to-PDF conversion through an
// external LibreOffice process: it validates the input, drives the
// converter against a per-call scratch directory, and relocates the
// produced PDF to its final destination.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/forkcoder/mit-convertpdf/internal/soffice"
	"github.com/forkcoder/mit-convertpdf/pkg/types"
)

// runner invokes the converter binary. Factored out so tests can fake and
// count invocations.
type runner func(bin, outDir, input string) (soffice.Result, error)

// Orchestrator converts office documents to PDF by driving a LibreOffice
// process in headless mode. Construct with New; the zero value is unusable.
//
// Concurrent ConvertToPDF calls are safe with respect to each other: every
// call owns a uniquely named scratch directory and shares no mutable state.
// SetConverterPath is not synchronized against in-flight conversions;
// callers must serialize that themselves.
type Orchestrator struct {
	converter string
	outputDir string
	run       runner
}

// New builds an Orchestrator from cfg. When cfg.Path is empty the converter
// is auto-detected from the platform candidate list; a *soffice.NotFoundError
// return means no candidate resolved and the caller must supply an explicit
// location. A non-empty cfg.Path is validated before being accepted.
func New(cfg types.ConverterConfig) (*Orchestrator, error) {
	loc := cfg.Path
	if loc == "" {
		var err error
		loc, err = soffice.Locate()
		if err != nil {
			return nil, err
		}
	} else if err := soffice.Validate(loc); err != nil {
		return nil, &InvalidConverterError{Path: loc, Err: err}
	}
	return &Orchestrator{
		converter: loc,
		outputDir: cfg.OutputDir,
		run:       soffice.Run,
	}, nil
}

// ConverterPath returns the converter location in use.
func (o *Orchestrator) ConverterPath() string { return o.converter }

// SetConverterPath replaces the converter location after re-validating it.
// On failure the stored location is unchanged.
func (o *Orchestrator) SetConverterPath(path string) error {
	if err := soffice.Validate(path); err != nil {
		return &InvalidConverterError{Path: path, Err: err}
	}
	o.converter = path
	return nil
}

// IsSupported reports whether path's extension names a supported input
// format. The check is case-insensitive.
func (o *Orchestrator) IsSupported(path string) bool {
	_, ok := types.FormatForPath(path)
	return ok
}

// SupportedExtensions returns the supported input extensions in their
// fixed order.
func (o *Orchestrator) SupportedExtensions() []string {
	return types.FormatStrings()
}

// ConvertToPDF converts the document at input to PDF and returns the final
// output path. When output is empty the result is named <base>.pdf and
// placed in the configured default output directory, or next to the input
// when no default is configured. Missing output directories are created.
//
// Input validation happens before any side effect: a missing, unreadable,
// or unsupported input fails without spawning a process or creating a
// directory. The scratch directory backing the conversion is removed on
// every path out of this function, success or failure alike.
func (o *Orchestrator) ConvertToPDF(input, output string) (out string, err error) {
	if err := checkInput(input); err != nil {
		return "", err
	}
	if _, ok := types.FormatForPath(input); !ok {
		return "", &UnsupportedFormatError{
			Ext:       strings.TrimPrefix(strings.ToLower(filepath.Ext(input)), "."),
			Supported: types.FormatStrings(),
		}
	}

	dest := output
	if dest == "" {
		dir := o.outputDir
		if dir == "" {
			dir = filepath.Dir(input)
		}
		dest = filepath.Join(dir, pdfName(input))
	}
	if dir := filepath.Dir(dest); dir != "." {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return "", fmt.Errorf("%w %s: %v", ErrCreateDir, dir, mkErr)
		}
	}

	scratch, err := os.MkdirTemp("", "convertpdf-*")
	if err != nil {
		return "", fmt.Errorf("%w (scratch): %v", ErrCreateDir, err)
	}
	// Scratch removal is mandatory on every exit path; a removal failure
	// after an otherwise successful conversion surfaces as the call's error.
	defer func() {
		if rmErr := os.RemoveAll(scratch); rmErr != nil && err == nil {
			out = ""
			err = fmt.Errorf("removing scratch directory %s: %w", scratch, rmErr)
		}
	}()

	res, runErr := o.run(o.converter, scratch, input)
	if runErr != nil {
		return "", fmt.Errorf("invoking converter: %w", runErr)
	}
	if res.ExitCode != 0 {
		return "", &ProcessError{ExitCode: res.ExitCode, Output: res.Output}
	}

	produced := filepath.Join(scratch, pdfName(input))
	if _, statErr := os.Stat(produced); statErr != nil {
		// The converter normalizes some file names; accept whatever PDF
		// landed in the scratch directory.
		matches, _ := filepath.Glob(filepath.Join(scratch, "*.pdf"))
		if len(matches) == 0 {
			return "", &OutputMissingError{Output: res.Output}
		}
		produced = matches[0]
	}

	if copyErr := copyFile(produced, dest); copyErr != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrCopyOutput, dest, copyErr)
	}
	if verifyErr := checkReadable(dest); verifyErr != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrVerifyOutput, dest, verifyErr)
	}
	return dest, nil
}

// ConvertAll converts every input independently, printing a per-file status
// line to w. A failing input does not stop the batch: its error is
// collected and the remaining inputs are still attempted. When outputDir is
// non-empty every output lands there as <base>.pdf; otherwise each input
// gets the single-file default destination.
//
// The returned slice holds the output paths of the inputs that converted,
// in input order. When any input failed the error is a *BatchError
// aggregating every per-input failure; the successes are still returned.
func (o *Orchestrator) ConvertAll(inputs []string, outputDir string, w io.Writer) ([]string, error) {
	var outputs []string
	var batch BatchError
	for _, in := range inputs {
		var dest string
		if outputDir != "" {
			dest = filepath.Join(outputDir, pdfName(in))
		}
		out, err := o.ConvertToPDF(in, dest)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", in, err)
			batch.Failures = append(batch.Failures, BatchFailure{Input: in, Err: err})
			continue
		}
		fmt.Fprintf(w, "converted: %s -> %s\n", in, out)
		outputs = append(outputs, out)
	}
	if len(batch.Failures) > 0 {
		return outputs, &batch
	}
	return outputs, nil
}

// pdfName derives the output file name for input: its base name with the
// extension swapped for .pdf.
func pdfName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".pdf"
}

// checkInput verifies that the input exists and is readable.
func checkInput(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInputUnreadable, path, err)
	}
	return f.Close()
}

// checkReadable verifies the destination post-copy.
func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

// copyFile copies src to dst, leaving src in place.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
