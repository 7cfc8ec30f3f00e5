// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for precondition and filesystem failures. Each is wrapped
// with path context when returned; match with errors.Is.
var (
	ErrInputNotFound   = errors.New("input file not found")
	ErrInputUnreadable = errors.New("input file not readable")
	ErrCreateDir       = errors.New("cannot create directory")
	ErrCopyOutput      = errors.New("cannot copy converted output")
	ErrVerifyOutput    = errors.New("converted output not readable")
)

// InvalidConverterError reports a rejected converter location. The
// orchestrator's stored location is unchanged when this is returned from
// SetConverterPath.
type InvalidConverterError struct {
	Path string
	Err  error
}

func (e *InvalidConverterError) Error() string {
	return fmt.Sprintf("invalid converter path %s: %v", e.Path, e.Err)
}

func (e *InvalidConverterError) Unwrap() error { return e.Err }

// UnsupportedFormatError reports an input whose extension is not in the
// supported set.
type UnsupportedFormatError struct {
	Ext       string
	Supported []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q (supported: %s)",
		e.Ext, strings.Join(e.Supported, ", "))
}

// ProcessError reports a converter process that exited non-zero. Output is
// the combined stdout+stderr of the process.
type ProcessError struct {
	ExitCode int
	Output   string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("converter exited with status %d: %s",
		e.ExitCode, strings.TrimSpace(e.Output))
}

// OutputMissingError reports that the converter exited zero but left no PDF
// in the scratch directory. Output is the process output, kept for
// diagnosis.
type OutputMissingError struct {
	Output string
}

func (e *OutputMissingError) Error() string {
	return fmt.Sprintf("converter produced no PDF output: %s",
		strings.TrimSpace(e.Output))
}

// BatchFailure pairs one batch input with its conversion error.
type BatchFailure struct {
	Input string
	Err   error
}

// BatchError aggregates per-input failures from ConvertAll. Inputs that
// converted successfully are reported through the outputs return value,
// not here.
type BatchError struct {
	Failures []BatchFailure
}

func (e *BatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d conversion(s) failed:", len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "\n  %s: %v", f.Input, f.Err)
	}
	return b.String()
}
