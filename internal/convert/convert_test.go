// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/forkcoder/mit-convertpdf/internal/soffice"
	"github.com/forkcoder/mit-convertpdf/pkg/types"
)

// fakeRunner simulates the converter process: it writes configured files
// into the scratch directory and records every invocation.
type fakeRunner struct {
	calls    []string // input paths, in invocation order
	scratch  []string // scratch directories, parallel to calls
	exitCode int
	output   string
	files    func(input string) map[string]string // name -> content written into outDir
}

func (f *fakeRunner) run(bin, outDir, input string) (soffice.Result, error) {
	f.calls = append(f.calls, input)
	f.scratch = append(f.scratch, outDir)
	if f.files != nil {
		for name, content := range f.files(input) {
			if err := os.WriteFile(filepath.Join(outDir, name), []byte(content), 0o644); err != nil {
				return soffice.Result{}, err
			}
		}
	}
	return soffice.Result{ExitCode: f.exitCode, Output: f.output}, nil
}

// sameNamePDF makes the fake converter behave per contract: a PDF with the
// input's base name, deterministic content derived from the input.
func sameNamePDF(input string) map[string]string {
	return map[string]string{pdfName(input): "%PDF fake render of " + filepath.Base(input)}
}

func testOrchestrator(fr *fakeRunner, outputDir string) *Orchestrator {
	return &Orchestrator{converter: "soffice", outputDir: outputDir, run: fr.run}
}

// writeInput creates a document file to convert.
func writeInput(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("document body"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// assertScratchRemoved checks the cleanup invariant: no scratch directory
// used by the fake runner survives the call.
func assertScratchRemoved(t *testing.T, fr *fakeRunner) {
	t.Helper()
	for _, dir := range fr.scratch {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Errorf("scratch directory %s still exists after call", dir)
		}
	}
}

func TestIsSupported(t *testing.T) {
	o := testOrchestrator(&fakeRunner{}, "")

	for _, ext := range types.FormatStrings() {
		if !o.IsSupported("x." + strings.ToUpper(ext)) {
			t.Errorf("IsSupported should accept uppercase .%s", ext)
		}
		if !o.IsSupported("x." + ext) {
			t.Errorf("IsSupported should accept .%s", ext)
		}
	}

	for _, path := range []string{"x.xyz", "x.pdf", "x", "x.docx.bak"} {
		if o.IsSupported(path) {
			t.Errorf("IsSupported should reject %q", path)
		}
	}
}

func TestSupportedExtensionsOrder(t *testing.T) {
	o := testOrchestrator(&fakeRunner{}, "")
	got := o.SupportedExtensions()
	want := []string{"doc", "docx", "xls", "xlsx", "ppt", "pptx", "odt", "ods", "odp", "rtf", "txt"}
	if len(got) != len(want) {
		t.Fatalf("got %d extensions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("extension[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestConvertToPDF_DefaultsNextToInput(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "report.docx")
	fr := &fakeRunner{files: sameNamePDF}
	o := testOrchestrator(fr, "")

	out, err := o.ConvertToPDF(input, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(dir, "report.pdf"); out != want {
		t.Errorf("output path = %q, want %q", out, want)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "%PDF fake render of report.docx" {
		t.Errorf("output content = %q", data)
	}
	assertScratchRemoved(t, fr)
}

func TestConvertToPDF_ConfiguredOutputDir(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "report.odt")
	outDir := filepath.Join(dir, "converted")
	fr := &fakeRunner{files: sameNamePDF}
	o := testOrchestrator(fr, outDir)

	out, err := o.ConvertToPDF(input, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(outDir, "report.pdf"); out != want {
		t.Errorf("output path = %q, want %q", out, want)
	}
}

func TestConvertToPDF_CreatesExplicitOutputDirs(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "a.txt")
	dest := filepath.Join(dir, "deep", "nested", "a.pdf")
	fr := &fakeRunner{files: sameNamePDF}
	o := testOrchestrator(fr, "")

	out, err := o.ConvertToPDF(input, dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != dest {
		t.Errorf("output path = %q, want %q", out, dest)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("destination not created: %v", err)
	}
}

func TestConvertToPDF_InputMissing(t *testing.T) {
	fr := &fakeRunner{files: sameNamePDF}
	o := testOrchestrator(fr, "")

	_, err := o.ConvertToPDF(filepath.Join(t.TempDir(), "absent.docx"), "")
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
	if len(fr.calls) != 0 {
		t.Errorf("converter invoked %d times for missing input", len(fr.calls))
	}
}

func TestConvertToPDF_UnsupportedBeforeSideEffects(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "data.xyz")
	fr := &fakeRunner{files: sameNamePDF}
	o := testOrchestrator(fr, filepath.Join(dir, "never-created"))

	_, err := o.ConvertToPDF(input, "")
	var ufe *UnsupportedFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected *UnsupportedFormatError, got %v", err)
	}
	if ufe.Ext != "xyz" {
		t.Errorf("Ext = %q, want %q", ufe.Ext, "xyz")
	}
	if len(ufe.Supported) != len(types.FormatStrings()) {
		t.Errorf("Supported lists %d formats, want %d", len(ufe.Supported), len(types.FormatStrings()))
	}
	if len(fr.calls) != 0 {
		t.Error("converter should not be invoked for unsupported input")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "never-created")); !os.IsNotExist(statErr) {
		t.Error("output directory should not be created on rejection")
	}
}

func TestConvertToPDF_ProcessFailure(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "bad.docx")
	fr := &fakeRunner{exitCode: 1, output: "Error: source file could not be loaded"}
	o := testOrchestrator(fr, "")

	_, err := o.ConvertToPDF(input, "")
	var pe *ProcessError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProcessError, got %v", err)
	}
	if pe.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", pe.ExitCode)
	}
	if !strings.Contains(pe.Output, "could not be loaded") {
		t.Errorf("Output = %q, should carry process output", pe.Output)
	}
	assertScratchRemoved(t, fr)
}

func TestConvertToPDF_GlobFallback(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "Report Final.docx")
	// The converter normalized the name; only glob discovery finds it.
	fr := &fakeRunner{files: func(string) map[string]string {
		return map[string]string{"weirdname.pdf": "%PDF normalized output"}
	}}
	o := testOrchestrator(fr, "")

	out, err := o.ConvertToPDF(input, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "%PDF normalized output" {
		t.Errorf("output content = %q, want discovered file content", data)
	}
	assertScratchRemoved(t, fr)
}

func TestConvertToPDF_NoOutputProduced(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "empty.docx")
	fr := &fakeRunner{output: "Warning: nothing converted"}
	o := testOrchestrator(fr, "")

	_, err := o.ConvertToPDF(input, "")
	var ome *OutputMissingError
	if !errors.As(err, &ome) {
		t.Fatalf("expected *OutputMissingError, got %v", err)
	}
	if !strings.Contains(ome.Output, "nothing converted") {
		t.Errorf("Output = %q, should carry process output", ome.Output)
	}
	assertScratchRemoved(t, fr)
}

func TestConvertToPDF_Idempotent(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "stable.docx")
	fr := &fakeRunner{files: sameNamePDF}
	o := testOrchestrator(fr, "")

	out1, err := o.ConvertToPDF(input, filepath.Join(dir, "first.pdf"))
	if err != nil {
		t.Fatalf("first conversion: %v", err)
	}
	out2, err := o.ConvertToPDF(input, filepath.Join(dir, "second.pdf"))
	if err != nil {
		t.Fatalf("second conversion: %v", err)
	}

	data1, err := os.ReadFile(out1)
	if err != nil {
		t.Fatal(err)
	}
	data2, err := os.ReadFile(out2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data1, data2) {
		t.Error("converting the same input twice should yield identical bytes")
	}
}

func TestConvertAll(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.docx")
	b := writeInput(t, dir, "b.xyz")
	c := writeInput(t, dir, "c.xlsx")
	outDir := filepath.Join(dir, "out")
	fr := &fakeRunner{files: sameNamePDF}
	o := testOrchestrator(fr, "")

	var log bytes.Buffer
	outputs, err := o.ConvertAll([]string{a, b, c}, outDir, &log)

	var be *BatchError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BatchError, got %v", err)
	}
	if len(be.Failures) != 1 {
		t.Fatalf("got %d failures, want 1", len(be.Failures))
	}
	if be.Failures[0].Input != b {
		t.Errorf("failure input = %q, want %q", be.Failures[0].Input, b)
	}
	if !strings.Contains(err.Error(), "b.xyz") {
		t.Errorf("batch error should reference b.xyz, got: %v", err)
	}

	// Both valid inputs were independently attempted despite the failure.
	if len(fr.calls) != 2 {
		t.Fatalf("converter invoked %d times, want 2", len(fr.calls))
	}
	if fr.calls[0] != a || fr.calls[1] != c {
		t.Errorf("converter invoked for %v, want [%s %s]", fr.calls, a, c)
	}

	// Partial successes are returned alongside the error, in input order.
	want := []string{
		filepath.Join(outDir, "a.pdf"),
		filepath.Join(outDir, "c.pdf"),
	}
	if len(outputs) != len(want) {
		t.Fatalf("got %d outputs, want %d", len(outputs), len(want))
	}
	for i := range want {
		if outputs[i] != want[i] {
			t.Errorf("outputs[%d] = %q, want %q", i, outputs[i], want[i])
		}
	}

	if !strings.Contains(log.String(), "failed:") {
		t.Error("status output should contain a failed line")
	}
	if !strings.Contains(log.String(), "converted:") {
		t.Error("status output should contain converted lines")
	}
}

func TestConvertAll_AllSucceed(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.odt")
	b := writeInput(t, dir, "b.rtf")
	fr := &fakeRunner{files: sameNamePDF}
	o := testOrchestrator(fr, "")

	var log bytes.Buffer
	outputs, err := o.ConvertAll([]string{a, b}, "", &log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outputs) != 2 {
		t.Fatalf("got %d outputs, want 2", len(outputs))
	}
	// No output dir given: each result lands next to its input.
	if outputs[0] != filepath.Join(dir, "a.pdf") {
		t.Errorf("outputs[0] = %q", outputs[0])
	}
}

func TestSetConverterPath_InvalidKeepsOld(t *testing.T) {
	o := testOrchestrator(&fakeRunner{}, "")
	before := o.ConverterPath()

	err := o.SetConverterPath(filepath.Join(t.TempDir(), "nonexistent"))
	var ice *InvalidConverterError
	if !errors.As(err, &ice) {
		t.Fatalf("expected *InvalidConverterError, got %v", err)
	}
	if o.ConverterPath() != before {
		t.Errorf("converter path changed to %q on failed set", o.ConverterPath())
	}
}

func TestSetConverterPath_NotExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bit not meaningful on windows")
	}
	plain := filepath.Join(t.TempDir(), "plainfile")
	if err := os.WriteFile(plain, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	o := testOrchestrator(&fakeRunner{}, "")
	before := o.ConverterPath()
	err := o.SetConverterPath(plain)
	var ice *InvalidConverterError
	if !errors.As(err, &ice) {
		t.Fatalf("expected *InvalidConverterError, got %v", err)
	}
	if o.ConverterPath() != before {
		t.Error("converter path should be unchanged after rejection")
	}
}

func TestSetConverterPath_Valid(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test installs a unix script")
	}
	script := filepath.Join(t.TempDir(), "soffice")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	o := testOrchestrator(&fakeRunner{}, "")
	if err := o.SetConverterPath(script); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.ConverterPath() != script {
		t.Errorf("converter path = %q, want %q", o.ConverterPath(), script)
	}
}
