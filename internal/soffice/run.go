// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package soffice

import (
	"errors"
	"fmt"
	"os/exec"
)

// Result captures one converter invocation: the exit status and the
// combined stdout+stderr.
type Result struct {
	ExitCode int
	Output   string
}

// Run invokes bin in headless mode, converting input to PDF inside outDir.
// Arguments are passed directly to the process, never through a shell. Run
// blocks until the process exits; a non-zero exit is reported through
// Result, while err covers failures to start the process at all.
func Run(bin, outDir, input string) (Result, error) {
	cmd := exec.Command(bin,
		"--headless", "--convert-to", "pdf", "--outdir", outDir, input)
	out, err := cmd.CombinedOutput()
	res := Result{Output: string(out)}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("running %s: %w", bin, err)
	}
	return res, nil
}
